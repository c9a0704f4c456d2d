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

package engine_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decisimo/decisimo/engine"
	"github.com/decisimo/decisimo/graph"
	"github.com/decisimo/decisimo/loader"
	"github.com/decisimo/decisimo/value"
)

const passThroughDocument = `{
	"nodes": [
		{"id": "in", "name": "input", "type": "inputNode", "content": {}},
		{"id": "out", "name": "output", "type": "outputNode", "content": {}}
	],
	"edges": [
		{"id": "e1", "sourceId": "in", "targetId": "out"}
	]
}`

func TestEngineCreateDecisionAndEvaluate(t *testing.T) {
	eng, err := engine.New(loader.Noop{})
	require.NoError(t, err)

	decision, err := eng.CreateDecision([]byte(passThroughDocument))
	require.NoError(t, err)
	require.NoError(t, decision.Validate())

	obj := value.NewObject()
	obj.Set("x", value.Number(decimal.NewFromInt(7)))
	result, err := decision.Evaluate(context.Background(), value.FromObject(obj), graph.Options{})
	require.NoError(t, err)

	out, ok := result.Result.Dot("x")
	require.True(t, ok)
	assert.True(t, out.AsNumber().Equal(decimal.NewFromInt(7)))
}

func TestEngineEvaluateByKey(t *testing.T) {
	mem := loader.NewMemory()
	content, err := graph.ParseContent([]byte(passThroughDocument))
	require.NoError(t, err)
	mem.Set("passthrough", content)

	eng, err := engine.New(mem)
	require.NoError(t, err)

	result, err := eng.Evaluate(context.Background(), "passthrough", value.Null(), graph.Options{})
	require.NoError(t, err)
	assert.True(t, result.Result.IsNull())
}

func TestEngineGetDecisionNotFound(t *testing.T) {
	eng, err := engine.New(loader.Noop{})
	require.NoError(t, err)

	_, err = eng.GetDecision(context.Background(), "missing")
	require.Error(t, err)
}

func TestEngineEvaluateExpression(t *testing.T) {
	eng, err := engine.New(loader.Noop{})
	require.NoError(t, err)

	out, err := eng.EvaluateExpression("1 + 2", value.Null())
	require.NoError(t, err)
	assert.True(t, out.AsNumber().Equal(decimal.NewFromInt(3)))
}

func TestEngineEvaluateUnaryExpression(t *testing.T) {
	eng, err := engine.New(loader.Noop{})
	require.NoError(t, err)

	env := value.NewObject()
	env.Set("$", value.Number(decimal.NewFromInt(10)))

	ok, err := eng.EvaluateUnaryExpression("$ > 5", value.FromObject(env))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEngineEvaluateUnaryExpressionMissingDollarIsError(t *testing.T) {
	eng, err := engine.New(loader.Noop{})
	require.NoError(t, err)

	_, err = eng.EvaluateUnaryExpression("$ > 5", value.EmptyObject())
	require.Error(t, err)
}

func TestEngineRenderTemplate(t *testing.T) {
	eng, err := engine.New(loader.Noop{})
	require.NoError(t, err)

	obj := value.NewObject()
	obj.Set("name", value.String("Ada"))
	out, err := eng.RenderTemplate("hi {{ name }}", value.FromObject(obj))
	require.NoError(t, err)
	assert.Equal(t, value.String("hi Ada"), out)
}
