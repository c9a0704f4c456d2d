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

package isolate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decisimo/decisimo/isolate"
	"github.com/decisimo/decisimo/value"
)

func TestRunStandard(t *testing.T) {
	iso := isolate.New()
	env, _ := value.FromAny(map[string]any{"a": 2, "b": 3})
	result, err := iso.RunStandard("a + b", env)
	require.NoError(t, err)
	assert.True(t, result.Equal(value.NumberFromInt(5)))
}

func TestRunUnaryBareValue(t *testing.T) {
	iso := isolate.New()
	ok, err := iso.RunUnary("5", value.Null(), value.NumberFromInt(5))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRunUnaryComparator(t *testing.T) {
	iso := isolate.New()
	ok, err := iso.RunUnary("> 10", value.Null(), value.NumberFromInt(20))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = iso.RunUnary("> 10", value.Null(), value.NumberFromInt(5))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRunUnaryInterval(t *testing.T) {
	iso := isolate.New()
	ok, err := iso.RunUnary("[18..65]", value.Null(), value.NumberFromInt(30))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRunUnaryMultiClause(t *testing.T) {
	iso := isolate.New()
	ok, err := iso.RunUnary("< 10, > 90", value.Null(), value.NumberFromInt(95))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRunUnaryReusesExpression(t *testing.T) {
	iso := isolate.New()
	expr, err := isolate.CompileUnary("> 0")
	require.NoError(t, err)

	ok, err := iso.RunCompiledUnary(expr, value.Null(), value.NumberFromInt(1))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = iso.RunCompiledUnary(expr, value.Null(), value.NumberFromInt(-1))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMissingContextReferenceNotReachableFromRunUnary(t *testing.T) {
	// RunUnary always seeds the pointer, so this is really asserting the
	// happy path never regresses into MissingContextReference.
	iso := isolate.New()
	_, err := iso.RunUnary("$ == 1", value.Null(), value.NumberFromInt(1))
	require.NoError(t, err)
}
