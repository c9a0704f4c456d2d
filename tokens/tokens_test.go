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

package tokens_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/decisimo/decisimo/tokens"
)

func TestInstanceIs(t *testing.T) {
	tok := tokens.New(tokens.Number, "42", tokens.Span{})
	assert.True(t, tok.Is(tokens.Number, tokens.String))
	assert.False(t, tok.Is(tokens.String))
}

func TestInstanceIsOperator(t *testing.T) {
	tok := tokens.New(tokens.Operator, "==", tokens.Span{})
	assert.True(t, tok.IsOperator("==", "!="))
	assert.False(t, tok.IsOperator("+"))

	nonOp := tokens.New(tokens.Number, "1", tokens.Span{})
	assert.False(t, nonOp.IsOperator("1"))
}

func TestInstanceString(t *testing.T) {
	assert.Equal(t, "<EOF>", tokens.New(tokens.EOF, "", tokens.Span{}).String())
	assert.Equal(t, `Number("42")`, tokens.New(tokens.Number, "42", tokens.Span{}).String())
}

func TestIsReserved(t *testing.T) {
	v, ok := tokens.IsReserved("and")
	assert.True(t, ok)
	assert.Equal(t, "and", v)

	_, ok = tokens.IsReserved("foo")
	assert.False(t, ok)
}

func TestPositionAndSpanString(t *testing.T) {
	span := tokens.Span{Start: tokens.Position{Line: 1, Column: 1}, End: tokens.Position{Line: 1, Column: 5}}
	assert.Equal(t, "1:1-1:5", span.String())
}

func TestErrTokenIsErrorKind(t *testing.T) {
	tok := tokens.Err(tokens.Span{}, "unexpected character")
	assert.Equal(t, tokens.Error, tok.Kind)
	assert.Equal(t, "unexpected character", tok.Value)
}
