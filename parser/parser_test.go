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

package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decisimo/decisimo/ast"
	"github.com/decisimo/decisimo/parser"
)

func TestParseStandardLiteral(t *testing.T) {
	tree, root, err := parser.ParseStandard("42")
	require.NoError(t, err)
	assert.Equal(t, ast.KNumber, tree.Get(root).Kind)
}

func TestParseStandardMultiplicationBindsTighterThanAddition(t *testing.T) {
	tree, root, err := parser.ParseStandard("1 + 2 * 3")
	require.NoError(t, err)

	node := tree.Get(root)
	require.Equal(t, ast.KBinary, node.Kind)
	assert.Equal(t, "+", node.Op)

	rhs := tree.Get(node.B)
	require.Equal(t, ast.KBinary, rhs.Kind)
	assert.Equal(t, "*", rhs.Op)
}

func TestParseStandardExponentIsRightAssociative(t *testing.T) {
	tree, root, err := parser.ParseStandard("2 ^ 3 ^ 2")
	require.NoError(t, err)

	node := tree.Get(root)
	require.Equal(t, ast.KBinary, node.Kind)
	assert.Equal(t, "^", node.Op)

	// right-associative: the right child is itself "3 ^ 2", not the left.
	rhs := tree.Get(node.B)
	require.Equal(t, ast.KBinary, rhs.Kind)
	assert.Equal(t, "^", rhs.Op)

	lhs := tree.Get(node.A)
	assert.Equal(t, ast.KNumber, lhs.Kind)
}

func TestParseStandardSubtractionIsLeftAssociative(t *testing.T) {
	tree, root, err := parser.ParseStandard("10 - 3 - 2")
	require.NoError(t, err)

	node := tree.Get(root)
	require.Equal(t, ast.KBinary, node.Kind)
	assert.Equal(t, "-", node.Op)

	lhs := tree.Get(node.A)
	require.Equal(t, ast.KBinary, lhs.Kind)
	assert.Equal(t, "-", lhs.Op)
}

func TestParseStandardNotInOperator(t *testing.T) {
	tree, root, err := parser.ParseStandard("x not in [1, 2]")
	require.NoError(t, err)

	node := tree.Get(root)
	require.Equal(t, ast.KBinary, node.Kind)
	assert.Equal(t, "not in", node.Op)
}

func TestParseStandardTernary(t *testing.T) {
	tree, root, err := parser.ParseStandard("x > 0 ? 1 : -1")
	require.NoError(t, err)

	node := tree.Get(root)
	require.Equal(t, ast.KConditional, node.Kind)
	assert.Equal(t, ast.KBinary, tree.Get(node.A).Kind)
}

func TestParseStandardUnaryNot(t *testing.T) {
	tree, root, err := parser.ParseStandard("not x")
	require.NoError(t, err)

	node := tree.Get(root)
	require.Equal(t, ast.KUnary, node.Kind)
	assert.Equal(t, "not", node.Op)
}

func TestParseStandardMemberAccess(t *testing.T) {
	tree, root, err := parser.ParseStandard("customer.age")
	require.NoError(t, err)

	node := tree.Get(root)
	require.Equal(t, ast.KMember, node.Kind)
	assert.Equal(t, ast.KIdentifier, tree.Get(node.A).Kind)
	assert.Equal(t, "age", tree.Get(node.B).Str)
}

func TestParseStandardSliceExpression(t *testing.T) {
	tree, root, err := parser.ParseStandard("items[1:3]")
	require.NoError(t, err)

	node := tree.Get(root)
	require.Equal(t, ast.KSlice, node.Kind)
	assert.NotEqual(t, ast.RefNone, node.B)
	assert.NotEqual(t, ast.RefNone, node.C)
}

func TestParseStandardBuiltinCallClosureArity(t *testing.T) {
	tree, root, err := parser.ParseStandard("all(items, # > 0)")
	require.NoError(t, err)

	node := tree.Get(root)
	require.Equal(t, ast.KFunctionCall, node.Kind)
	assert.Equal(t, "all", node.Str)
	require.Len(t, node.Items, 2)

	closure := tree.Get(node.Items[1])
	assert.Equal(t, ast.KClosure, closure.Kind)
}

func TestParseStandardMethodCallDesugarsToMemberReceiver(t *testing.T) {
	tree, root, err := parser.ParseStandard(`name.startsWith("A")`)
	require.NoError(t, err)

	node := tree.Get(root)
	require.Equal(t, ast.KFunctionCall, node.Kind)
	assert.Equal(t, ast.CallMethod, node.CallKind)

	member := tree.Get(node.A)
	require.Equal(t, ast.KMember, member.Kind)
	assert.Equal(t, "startsWith", tree.Get(member.B).Str)
}

func TestParseStandardArrayLiteral(t *testing.T) {
	tree, root, err := parser.ParseStandard("[1, 2, 3]")
	require.NoError(t, err)

	node := tree.Get(root)
	require.Equal(t, ast.KArray, node.Kind)
	assert.Len(t, node.Items, 3)
}

func TestParseStandardTemplateLiteralProducesHoleAndText(t *testing.T) {
	tree, root, err := parser.ParseStandard("`hello ${name}`")
	require.NoError(t, err)

	node := tree.Get(root)
	require.Equal(t, ast.KTemplateString, node.Kind)
	require.Len(t, node.Parts, 2)
	assert.False(t, node.Parts[0].IsExpr)
	assert.Equal(t, "hello ", node.Parts[0].Text)
	assert.True(t, node.Parts[1].IsExpr)
}

func TestParseStandardUnexpectedTrailingInputIsError(t *testing.T) {
	tree, _, err := parser.ParseStandard("1 2")
	require.Error(t, err)
	assert.True(t, tree.HasErrors())
}

func TestParseStandardUnclosedParenIsError(t *testing.T) {
	_, _, err := parser.ParseStandard("(1 + 2")
	require.Error(t, err)
}

func TestParseUnaryImplicitEquality(t *testing.T) {
	tree, root, err := parser.ParseUnary("5")
	require.NoError(t, err)

	node := tree.Get(root)
	require.Equal(t, ast.KBinary, node.Kind)
	assert.Equal(t, "==", node.Op)
	assert.Equal(t, ast.KPointer, tree.Get(node.A).Kind)
}

func TestParseUnaryExplicitComparator(t *testing.T) {
	tree, root, err := parser.ParseUnary("> 0")
	require.NoError(t, err)

	node := tree.Get(root)
	require.Equal(t, ast.KBinary, node.Kind)
	assert.Equal(t, ">", node.Op)
}

func TestParseUnaryIntervalBecomesIn(t *testing.T) {
	tree, root, err := parser.ParseUnary("[0..10]")
	require.NoError(t, err)

	node := tree.Get(root)
	require.Equal(t, ast.KBinary, node.Kind)
	assert.Equal(t, "in", node.Op)
}

func TestParseUnaryMultipleClausesJoinedByOr(t *testing.T) {
	tree, root, err := parser.ParseUnary("1, 2, 3")
	require.NoError(t, err)

	node := tree.Get(root)
	require.Equal(t, ast.KBinary, node.Kind)
	assert.Equal(t, "or", node.Op)
}

func TestParseUnaryEmptySourceIsError(t *testing.T) {
	tree, _, err := parser.ParseUnary("")
	require.Error(t, err)
	assert.True(t, tree.HasErrors())
}
