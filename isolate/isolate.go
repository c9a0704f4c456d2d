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

// Package isolate exposes the compile/run façade the rest of the engine
// (and external callers) use, hiding the lexer/parser/compiler/vm
// pipeline behind two small entry points: standard and unary expressions.
package isolate

import (
	"github.com/decisimo/decisimo/ast"
	"github.com/decisimo/decisimo/compiler"
	"github.com/decisimo/decisimo/opcode"
	"github.com/decisimo/decisimo/parser"
	"github.com/decisimo/decisimo/value"
	"github.com/decisimo/decisimo/vm"
)

// Expression is a compiled, reusable program. Its bytecode is immutable
// once built; callers run it against many different environments.
type Expression struct {
	Source string
	Code   []opcode.Instruction
	tree   *ast.Tree
	root   ast.Ref
}

// CompileStandard parses and compiles a full expression.
func CompileStandard(source string) (*Expression, error) {
	tree, root, err := parser.ParseStandard(source)
	if err != nil {
		return nil, err
	}
	code, err := compiler.Compile(tree, root)
	if err != nil {
		return nil, err
	}
	return &Expression{Source: source, Code: code, tree: tree, root: root}, nil
}

// CompileUnary parses and compiles the condition-shorthand dialect.
func CompileUnary(source string) (*Expression, error) {
	tree, root, err := parser.ParseUnary(source)
	if err != nil {
		return nil, err
	}
	code, err := compiler.Compile(tree, root)
	if err != nil {
		return nil, err
	}
	return &Expression{Source: source, Code: code, tree: tree, root: root}, nil
}

// Isolate owns a single reusable VM instance. It is not safe for
// concurrent use; callers needing concurrency pool Isolates, the same
// way the rest of the engine pools goja runtimes.
type Isolate struct {
	machine *vm.VM
}

func New() *Isolate {
	return &Isolate{machine: vm.New()}
}

// RunCompiled executes a previously compiled Expression against env.
func (iso *Isolate) RunCompiled(expr *Expression, env value.Variable) (value.Variable, error) {
	return iso.machine.Run(expr.Code, env)
}

// RunStandard compiles and runs source in one step. Prefer RunCompiled
// with a cached Expression on any hot path.
func (iso *Isolate) RunStandard(source string, env value.Variable) (value.Variable, error) {
	expr, err := CompileStandard(source)
	if err != nil {
		return value.Null(), err
	}
	return iso.RunCompiled(expr, env)
}

// RunUnary compiles and runs the shorthand dialect against candidate
// (bound to the implicit `$`), with root still reachable via `$root`.
func (iso *Isolate) RunUnary(source string, root, candidate value.Variable) (bool, error) {
	expr, err := CompileUnary(source)
	if err != nil {
		return false, err
	}
	result, err := iso.machine.RunUnary(expr.Code, root, candidate)
	if err != nil {
		return false, err
	}
	return result.Truthy(), nil
}

// RunCompiledUnary is RunUnary for an already-compiled Expression.
func (iso *Isolate) RunCompiledUnary(expr *Expression, root, candidate value.Variable) (bool, error) {
	result, err := iso.machine.RunUnary(expr.Code, root, candidate)
	if err != nil {
		return false, err
	}
	return result.Truthy(), nil
}
