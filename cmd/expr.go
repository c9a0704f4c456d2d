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

	"github.com/decisimo/decisimo/engine"
	"github.com/decisimo/decisimo/loader"
)

func exprCmd(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("expr requires <source> <context.json>")
	}
	env, err := readContext(args[1])
	if err != nil {
		return err
	}
	eng, err := engine.New(loader.Noop{})
	if err != nil {
		return err
	}
	result, err := eng.EvaluateExpression(args[0], env)
	if err != nil {
		return err
	}
	return printJSON(result)
}

func unaryCmd(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("unary requires <source> <context.json>")
	}
	env, err := readContext(args[1])
	if err != nil {
		return err
	}
	eng, err := engine.New(loader.Noop{})
	if err != nil {
		return err
	}
	ok, err := eng.EvaluateUnaryExpression(args[0], env)
	if err != nil {
		return err
	}
	fmt.Println(ok)
	return nil
}
