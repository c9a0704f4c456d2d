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

package vm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decisimo/decisimo/compiler"
	"github.com/decisimo/decisimo/parser"
	"github.com/decisimo/decisimo/value"
	"github.com/decisimo/decisimo/vm"
)

func run(t *testing.T, src string, env value.Variable) value.Variable {
	t.Helper()
	tree, root, err := parser.ParseStandard(src)
	require.NoError(t, err)
	instrs, err := compiler.Compile(tree, root)
	require.NoError(t, err)
	m := vm.New()
	result, err := m.Run(instrs, env)
	require.NoError(t, err)
	return result
}

func envWith(fields map[string]any) value.Variable {
	v, _ := value.FromAny(fields)
	return v
}

func TestArithmeticPrecedence(t *testing.T) {
	result := run(t, "1 + 2 * 3", value.Null())
	assert.True(t, result.Equal(value.NumberFromInt(7)))
}

func TestExponentRightAssociative(t *testing.T) {
	result := run(t, "2 ^ 3 ^ 2", value.Null())
	assert.True(t, result.Equal(value.NumberFromInt(512)))
}

func TestComparisonAndLogic(t *testing.T) {
	result := run(t, "1 < 2 and 3 > 2", value.Null())
	assert.True(t, result.Equal(value.Bool(true)))
}

func TestTernary(t *testing.T) {
	result := run(t, "age >= 18 ? 'adult' : 'minor'", envWith(map[string]any{"age": 21}))
	assert.True(t, result.Equal(value.String("adult")))
}

func TestMemberAccess(t *testing.T) {
	result := run(t, "user.address.city", envWith(map[string]any{
		"user": map[string]any{"address": map[string]any{"city": "Pune"}},
	}))
	assert.True(t, result.Equal(value.String("Pune")))
}

func TestMissingMemberIsNull(t *testing.T) {
	result := run(t, "user.missing", envWith(map[string]any{"user": map[string]any{}}))
	assert.True(t, result.IsNull())
}

func TestIntervalMembership(t *testing.T) {
	result := run(t, "age in [18..65]", envWith(map[string]any{"age": 30}))
	assert.True(t, result.Equal(value.Bool(true)))

	result = run(t, "age in [18..65)", envWith(map[string]any{"age": 65}))
	assert.True(t, result.Equal(value.Bool(false)))
}

func TestNotIn(t *testing.T) {
	result := run(t, "status not in ['banned', 'suspended']", envWith(map[string]any{"status": "active"}))
	assert.True(t, result.Equal(value.Bool(true)))
}

func TestSliceOpenEnded(t *testing.T) {
	result := run(t, "items[1:]", envWith(map[string]any{"items": []any{1, 2, 3, 4}}))
	assert.Equal(t, 3, result.Len())
}

func TestStringBuiltins(t *testing.T) {
	assert.True(t, run(t, "upper('abc')", value.Null()).Equal(value.String("ABC")))
	assert.True(t, run(t, "startsWith('hello', 'he')", value.Null()).Equal(value.Bool(true)))
}

func TestClosureAll(t *testing.T) {
	result := run(t, "all(nums, # > 0)", envWith(map[string]any{"nums": []any{1, 2, 3}}))
	assert.True(t, result.Equal(value.Bool(true)))
}

func TestClosureFilterAndMap(t *testing.T) {
	result := run(t, "filter(nums, $ > 2)", envWith(map[string]any{"nums": []any{1, 2, 3, 4}}))
	assert.Equal(t, 2, result.Len())

	mapped := run(t, "map(nums, $ * 2)", envWith(map[string]any{"nums": []any{1, 2, 3}}))
	assert.True(t, mapped.Items()[2].Equal(value.NumberFromInt(6)))
}

func TestNullishCoalescing(t *testing.T) {
	result := run(t, "missing ?? 'fallback'", value.EmptyObject())
	assert.True(t, result.Equal(value.String("fallback")))
}

func TestUnaryNot(t *testing.T) {
	result := run(t, "not (1 == 2)", value.Null())
	assert.True(t, result.Equal(value.Bool(true)))
}

func TestArraySumAvg(t *testing.T) {
	assert.True(t, run(t, "sum([1,2,3])", value.Null()).Equal(value.NumberFromInt(6)))
	assert.True(t, run(t, "avg([2,4,6])", value.Null()).Equal(value.NumberFromInt(4)))
}

func TestTemplateStringJoin(t *testing.T) {
	result := run(t, "`hello ${name}, you are ${age}`", envWith(map[string]any{"name": "Ada", "age": 30}))
	assert.True(t, result.Equal(value.String("hello Ada, you are 30")))
}
