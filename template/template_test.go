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

package template_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decisimo/decisimo/template"
	"github.com/decisimo/decisimo/value"
)

func TestRenderPlainText(t *testing.T) {
	out, err := template.Render("hello world", value.Null())
	require.NoError(t, err)
	assert.Equal(t, value.String("hello world"), out)
}

func TestRenderEmptyTemplateIsNull(t *testing.T) {
	out, err := template.Render("", value.Null())
	require.NoError(t, err)
	assert.True(t, out.IsNull())
}

func TestRenderBareExpressionKeepsType(t *testing.T) {
	obj := value.NewObject()
	obj.Set("age", value.Number(decimal.NewFromInt(42)))
	out, err := template.Render("{{ age }}", value.FromObject(obj))
	require.NoError(t, err)
	require.True(t, out.IsNumber())
	assert.True(t, out.AsNumber().Equal(decimal.NewFromInt(42)))
}

func TestRenderMixedTextAndExpressionConcatenates(t *testing.T) {
	obj := value.NewObject()
	obj.Set("name", value.String("Ada"))
	out, err := template.Render("hello {{ name }}!", value.FromObject(obj))
	require.NoError(t, err)
	assert.Equal(t, value.String("hello Ada!"), out)
}

func TestRenderMultipleExpressionsStringifyEachValue(t *testing.T) {
	obj := value.NewObject()
	obj.Set("active", value.Bool(true))
	obj.Set("count", value.Number(decimal.NewFromInt(3)))
	out, err := template.Render("{{ active }}-{{ count }}", value.FromObject(obj))
	require.NoError(t, err)
	assert.Equal(t, value.String("true-3"), out)
}

func TestRenderPropagatesExpressionError(t *testing.T) {
	_, err := template.Render("{{ 1 + }}", value.Null())
	require.Error(t, err)
}
