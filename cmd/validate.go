// Copyright 2025 Binaek Sarkar
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"context"
	"flag"
	"fmt"
)

func validateCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	packLocation := fs.String("pack-location", ".", "directory of <key>.json decision documents")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("validate requires <key>")
	}

	eng, err := newEngine(*packLocation)
	if err != nil {
		return err
	}
	decision, err := eng.GetDecision(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	if err := decision.Validate(); err != nil {
		return err
	}
	fmt.Println("ok")
	return nil
}
