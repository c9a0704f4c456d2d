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
	"fmt"
	"os"

	"github.com/decisimo/decisimo/engine"
	"github.com/decisimo/decisimo/loader"
)

func renderCmd(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("render requires <template-file> <context.json>")
	}
	tmpl, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	env, err := readContext(args[1])
	if err != nil {
		return err
	}
	eng, err := engine.New(loader.Noop{})
	if err != nil {
		return err
	}
	result, err := eng.RenderTemplate(string(tmpl), env)
	if err != nil {
		return err
	}
	return printJSON(result)
}
