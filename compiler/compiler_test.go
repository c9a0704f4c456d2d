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

package compiler_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decisimo/decisimo/ast"
	"github.com/decisimo/decisimo/compiler"
	"github.com/decisimo/decisimo/opcode"
)

func TestCompileLiteral(t *testing.T) {
	tree := ast.NewTree()
	root := tree.Push(ast.Node{Kind: ast.KNumber, Num: decimal.NewFromInt(5)})

	code, err := compiler.Compile(tree, root)
	require.NoError(t, err)
	require.Len(t, code, 1)
	assert.Equal(t, opcode.Push, code[0].Code)
}

func TestCompileBinaryAddition(t *testing.T) {
	tree := ast.NewTree()
	left := tree.Push(ast.Node{Kind: ast.KNumber, Num: decimal.NewFromInt(1)})
	right := tree.Push(ast.Node{Kind: ast.KNumber, Num: decimal.NewFromInt(2)})
	root := tree.Push(ast.Node{Kind: ast.KBinary, Op: "+", A: left, B: right})

	code, err := compiler.Compile(tree, root)
	require.NoError(t, err)
	require.Len(t, code, 3)
	assert.Equal(t, opcode.Add, code[2].Code)
}

func TestCompileNotEqualDesugarsToEqualThenNot(t *testing.T) {
	tree := ast.NewTree()
	left := tree.Push(ast.Node{Kind: ast.KNumber, Num: decimal.NewFromInt(1)})
	right := tree.Push(ast.Node{Kind: ast.KNumber, Num: decimal.NewFromInt(2)})
	root := tree.Push(ast.Node{Kind: ast.KBinary, Op: "!=", A: left, B: right})

	code, err := compiler.Compile(tree, root)
	require.NoError(t, err)
	require.Len(t, code, 4)
	assert.Equal(t, opcode.Equal, code[2].Code)
	assert.Equal(t, opcode.Not, code[3].Code)
}

func TestCompileConditionalEmitsJumps(t *testing.T) {
	tree := ast.NewTree()
	cond := tree.Push(ast.Node{Kind: ast.KBool, Bool: true})
	then := tree.Push(ast.Node{Kind: ast.KNumber, Num: decimal.NewFromInt(1)})
	els := tree.Push(ast.Node{Kind: ast.KNumber, Num: decimal.NewFromInt(2)})
	root := tree.Push(ast.Node{Kind: ast.KConditional, A: cond, B: then, C: els})

	code, err := compiler.Compile(tree, root)
	require.NoError(t, err)

	var sawJumpIfFalse, sawJump bool
	for _, instr := range code {
		if instr.Code == opcode.JumpIfFalse {
			sawJumpIfFalse = true
		}
		if instr.Code == opcode.Jump {
			sawJump = true
		}
	}
	assert.True(t, sawJumpIfFalse)
	assert.True(t, sawJump)
}

func TestCompileRejectsErrorNode(t *testing.T) {
	tree := ast.NewTree()
	root := tree.Push(ast.Node{Kind: ast.KError, Str: "boom"})

	_, err := compiler.Compile(tree, root)
	require.Error(t, err)
}

func TestCompileWrongArityBuiltinFails(t *testing.T) {
	tree := ast.NewTree()
	arg := tree.Push(ast.Node{Kind: ast.KString, Str: "x"})
	extra := tree.Push(ast.Node{Kind: ast.KString, Str: "y"})
	root := tree.Push(ast.Node{Kind: ast.KFunctionCall, Str: "len", Items: []ast.Ref{arg, extra}})

	_, err := compiler.Compile(tree, root)
	require.Error(t, err)
}

func TestCompileClosureVerbCompilesBodySeparately(t *testing.T) {
	tree := ast.NewTree()
	arr := tree.Push(ast.Node{Kind: ast.KArray})
	pointer := tree.Push(ast.Node{Kind: ast.KPointer})
	closureBody := tree.Push(ast.Node{Kind: ast.KClosure, A: pointer})
	root := tree.Push(ast.Node{
		Kind:  ast.KFunctionCall,
		Str:   "all",
		Items: []ast.Ref{arr, closureBody},
	})

	code, err := compiler.Compile(tree, root)
	require.NoError(t, err)
	require.Len(t, code, 2)
	assert.Equal(t, opcode.Closure, code[1].Code)
	assert.Equal(t, "all", code[1].Name)
	require.Len(t, code[1].Body, 1)
	assert.Equal(t, opcode.Pointer, code[1].Body[0].Code)
}
