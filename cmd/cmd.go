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

// Package cmd implements decisimo's command-line entrypoint: enough to
// exercise the engine end to end against a directory of decision
// documents, not a general-purpose CLI framework.
package cmd

import (
	"context"
	"fmt"
)

type subcommand func(ctx context.Context, args []string) error

var subcommands = map[string]subcommand{
	"eval":     evalCmd,
	"validate": validateCmd,
	"expr":     exprCmd,
	"unary":    unaryCmd,
	"render":   renderCmd,
}

// Execute dispatches args[0] to the matching subcommand. args excludes
// the program name (os.Args[1:]).
func Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError()
	}
	cmd, ok := subcommands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q: %w", args[0], usageError())
	}
	return cmd(ctx, args[1:])
}

func usageError() error {
	return fmt.Errorf(`usage:
  decisimo eval --pack-location=<dir> <key> <context.json>
  decisimo validate --pack-location=<dir> <key>
  decisimo expr <source> <context.json>
  decisimo unary <source> <context.json>
  decisimo render <template-file> <context.json>`)
}
