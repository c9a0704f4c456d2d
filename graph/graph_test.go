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
	"github.com/decisimo/decisimo/xerr"
)

func ioWrapped(nodes []graph.DecisionNode, edges []graph.Edge) (*graph.Content, error) {
	full := append([]graph.DecisionNode{
		{ID: "in", Name: "in", Kind: graph.KindInput},
	}, nodes...)
	full = append(full, graph.DecisionNode{ID: "out", Name: "out", Kind: graph.KindOutput})
	return graph.NewContent(full, edges)
}

func TestTableHitPolicyFirst(t *testing.T) {
	content, err := ioWrapped(
		[]graph.DecisionNode{{
			ID: "t1", Name: "t1", Kind: graph.KindTable,
			Content: &graph.TableContent{
				Inputs:  []graph.TableColumn{{ID: "i1", Field: "input"}},
				Outputs: []graph.TableColumn{{ID: "o1", Field: "output"}},
				Rules: []graph.TableRule{
					{ID: "r1", Cells: map[string]string{"i1": "> 10", "o1": "100"}},
					{ID: "r2", Cells: map[string]string{"i1": "", "o1": "0"}},
				},
				HitPolicy: graph.HitFirst,
			},
		}},
		[]graph.Edge{{SourceID: "in", TargetID: "t1"}, {SourceID: "t1", TargetID: "out"}},
	)
	require.NoError(t, err)

	g := graph.New(content, nil, nil, nil, graph.Options{}, 0)

	input, _ := value.FromAny(map[string]any{"input": 15})
	result, err := g.Evaluate(context.Background(), input)
	require.NoError(t, err)
	out, ok := result.Result.Dot("output")
	require.True(t, ok)
	assert.True(t, out.Equal(value.NumberFromInt(100)))

	input2, _ := value.FromAny(map[string]any{"input": 5})
	result2, err := g.Evaluate(context.Background(), input2)
	require.NoError(t, err)
	out2, ok := result2.Result.Dot("output")
	require.True(t, ok)
	assert.True(t, out2.Equal(value.NumberFromInt(0)))
}

func TestExpressionNodeSequentialBinding(t *testing.T) {
	content, err := ioWrapped(
		[]graph.DecisionNode{{
			ID: "e1", Name: "e1", Kind: graph.KindExpression,
			Content: &graph.ExpressionContent{Pairs: []graph.ExpressionPair{
				{Key: "largeNumbers", Value: "filter(numbers, # > 10)"},
				{Key: "smallNumbers", Value: "filter(numbers, # <= 10)"},
				{Key: "fullName", Value: "firstName + ' ' + lastName"},
				{Key: "deep.nested.sum", Value: "sum(numbers)"},
			}},
		}},
		[]graph.Edge{{SourceID: "in", TargetID: "e1"}, {SourceID: "e1", TargetID: "out"}},
	)
	require.NoError(t, err)

	g := graph.New(content, nil, nil, nil, graph.Options{}, 0)
	input, _ := value.FromAny(map[string]any{
		"numbers":   []any{1, 5, 15, 25},
		"firstName": "John",
		"lastName":  "Doe",
	})
	result, err := g.Evaluate(context.Background(), input)
	require.NoError(t, err)

	fullName, _ := result.Result.Dot("fullName")
	assert.Equal(t, "John Doe", fullName.AsString())
	sum, _ := result.Result.Dot("deep.nested.sum")
	assert.True(t, sum.Equal(value.NumberFromInt(46)))
}

type selfLoader struct {
	content *graph.Content
}

func (l *selfLoader) Load(_ context.Context, _ string) (*graph.Content, error) {
	return l.content, nil
}

func TestDepthLimitExceeded(t *testing.T) {
	loader := &selfLoader{}
	content, err := ioWrapped(
		[]graph.DecisionNode{{
			ID: "d1", Name: "d1", Kind: graph.KindDecision,
			Content: &graph.DecisionContentRef{Key: "self"},
		}},
		[]graph.Edge{{SourceID: "in", TargetID: "d1"}, {SourceID: "d1", TargetID: "out"}},
	)
	require.NoError(t, err)
	loader.content = content

	g := graph.New(content, loader, nil, nil, graph.Options{}, 0)
	_, err = g.Evaluate(context.Background(), value.EmptyObject())
	require.Error(t, err)

	evalErr, ok := err.(xerr.EvaluationError)
	require.True(t, ok)
	assert.Equal(t, "nodeError", evalErr.Tag())

	nodeErr, ok := evalErr.Source.(xerr.NodeError)
	require.True(t, ok)
	assert.ErrorIs(t, nodeErr.Source, xerr.ErrDepthLimitExceeded())
}

func TestValidateRejectsZeroInputNodes(t *testing.T) {
	_, err := graph.NewContent([]graph.DecisionNode{
		{ID: "out", Name: "out", Kind: graph.KindOutput},
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input node")
}

func TestValidateRejectsCycle(t *testing.T) {
	_, err := graph.NewContent([]graph.DecisionNode{
		{ID: "in", Name: "in", Kind: graph.KindInput},
		{ID: "a", Name: "a", Kind: graph.KindExpression, Content: &graph.ExpressionContent{}},
		{ID: "b", Name: "b", Kind: graph.KindExpression, Content: &graph.ExpressionContent{}},
		{ID: "out", Name: "out", Kind: graph.KindOutput},
	}, []graph.Edge{
		{SourceID: "in", TargetID: "a"},
		{SourceID: "a", TargetID: "b"},
		{SourceID: "b", TargetID: "a"},
		{SourceID: "b", TargetID: "out"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestSwitchNodeGatesEdges(t *testing.T) {
	content, err := ioWrapped(
		[]graph.DecisionNode{
			{ID: "sw", Name: "sw", Kind: graph.KindSwitch, Content: &graph.SwitchContent{
				Statements: []graph.SwitchStatement{
					{ID: "s1", Condition: "$.n > 10"},
					{ID: "s2", Condition: "$.n <= 10"},
				},
				HitPolicy: graph.HitFirst,
			}},
			{ID: "hi", Name: "hi", Kind: graph.KindExpression, Content: &graph.ExpressionContent{
				Pairs: []graph.ExpressionPair{{Key: "branch", Value: "'hi'"}},
			}},
			{ID: "lo", Name: "lo", Kind: graph.KindExpression, Content: &graph.ExpressionContent{
				Pairs: []graph.ExpressionPair{{Key: "branch", Value: "'lo'"}},
			}},
		},
		[]graph.Edge{
			{SourceID: "in", TargetID: "sw"},
			{SourceID: "sw", TargetID: "hi", SourceHandle: "s1"},
			{SourceID: "sw", TargetID: "lo", SourceHandle: "s2"},
			{SourceID: "hi", TargetID: "out"},
			{SourceID: "lo", TargetID: "out"},
		},
	)
	require.NoError(t, err)

	g := graph.New(content, nil, nil, nil, graph.Options{}, 0)
	input, _ := value.FromAny(map[string]any{"n": 15})
	result, err := g.Evaluate(context.Background(), input)
	require.NoError(t, err)
	branch, ok := result.Result.Dot("branch")
	require.True(t, ok)
	assert.Equal(t, "hi", branch.AsString())
}

func TestTraceRecordsCompletionOrder(t *testing.T) {
	content, err := ioWrapped(
		[]graph.DecisionNode{{
			ID: "e1", Name: "e1", Kind: graph.KindExpression,
			Content: &graph.ExpressionContent{Pairs: []graph.ExpressionPair{{Key: "x", Value: "1"}}},
		}},
		[]graph.Edge{{SourceID: "in", TargetID: "e1"}, {SourceID: "e1", TargetID: "out"}},
	)
	require.NoError(t, err)

	g := graph.New(content, nil, nil, nil, graph.Options{Trace: true}, 0)
	result, err := g.Evaluate(context.Background(), value.EmptyObject())
	require.NoError(t, err)
	require.Len(t, result.Trace, 3)
	for i, tr := range result.Trace {
		assert.Equal(t, i, tr.Order)
	}
}
