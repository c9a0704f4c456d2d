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
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/decisimo/decisimo/graph"
)

func evalCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	packLocation := fs.String("pack-location", ".", "directory of <key>.json decision documents")
	trace := fs.Bool("trace", false, "include per-node trace in the result")
	maxDepth := fs.Int("max-depth", 0, "sub-decision recursion ceiling (0 = engine default)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("eval requires <key> <context.json>")
	}
	key, contextFile := fs.Arg(0), fs.Arg(1)

	eng, err := newEngine(*packLocation)
	if err != nil {
		return err
	}
	input, err := readContext(contextFile)
	if err != nil {
		return err
	}

	result, err := eng.Evaluate(ctx, key, input, graph.Options{Trace: *trace, MaxDepth: *maxDepth})
	if err != nil {
		return err
	}
	return printJSON(result)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
