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

package graph_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decisimo/decisimo/graph"
	"github.com/decisimo/decisimo/value"
)

const tableDocument = `{
  "nodes": [
    {"id": "in", "name": "in", "type": "inputNode", "content": {}},
    {"id": "t1", "name": "t1", "type": "decisionTableNode", "content": {
      "hitPolicy": "first",
      "inputs": [{"id": "i1", "name": "input", "field": "input"}],
      "outputs": [{"id": "o1", "name": "output", "field": "output"}],
      "rules": [
        {"_id": "r1", "i1": "> 10", "o1": "100"},
        {"_id": "r2", "i1": "", "o1": "0"}
      ]
    }},
    {"id": "out", "name": "out", "type": "outputNode", "content": {}}
  ],
  "edges": [
    {"sourceId": "in", "targetId": "t1"},
    {"sourceId": "t1", "targetId": "out"}
  ]
}`

func TestParseContentTableDocument(t *testing.T) {
	content, err := graph.ParseContent([]byte(tableDocument))
	require.NoError(t, err)

	g := graph.New(content, nil, nil, nil, graph.Options{}, 0)
	input, _ := value.FromAny(map[string]any{"input": 15})
	result, err := g.Evaluate(context.Background(), input)
	require.NoError(t, err)
	out, ok := result.Result.Dot("output")
	require.True(t, ok)
	assert.True(t, out.Equal(value.NumberFromInt(100)))
}

func TestParseContentRejectsMissingInputNode(t *testing.T) {
	_, err := graph.ParseContent([]byte(`{"nodes":[{"id":"out","name":"out","type":"outputNode","content":{}}],"edges":[]}`))
	require.Error(t, err)
}
