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

package graph

import (
	"context"
	"fmt"

	"github.com/decisimo/decisimo/value"
)

// handleExpression iterates (key, value) pairs in order, binding each
// result into the environment under "$.<key>" before evaluating the
// next pair, and assembling the node's output object by dot_insert at
// the same path.
func handleExpression(_ context.Context, g *DecisionGraph, node *DecisionNode, input value.Variable) (handlerResult, error) {
	content, ok := node.Content.(*ExpressionContent)
	if !ok {
		return handlerResult{}, fmt.Errorf("expression node %s: missing content", node.ID)
	}

	env := input
	out := value.EmptyObject()
	trace := value.NewObject()

	for _, pair := range content.Pairs {
		if pair.Key == "" || pair.Value == "" {
			continue
		}
		result, err := g.iso.RunStandard(pair.Value, env)
		if err != nil {
			return handlerResult{}, err
		}
		env = env.DotInsert(pair.Key, result)
		out = out.DotInsert(pair.Key, result)

		t := value.NewObject()
		t.Set("result", result)
		trace.Set(pair.Key, value.FromObject(t))
	}

	return handlerResult{Output: out, TraceData: value.FromObject(trace)}, nil
}

// handleSwitch evaluates each statement's condition as a unary
// expression against the input; its output equals its input, and the
// statements that matched are surfaced as chosen edge handles for the
// evaluator to apply during predecessor merging of successor nodes.
func handleSwitch(_ context.Context, g *DecisionGraph, node *DecisionNode, input value.Variable) (handlerResult, error) {
	content, ok := node.Content.(*SwitchContent)
	if !ok {
		return handlerResult{}, fmt.Errorf("switch node %s: missing content", node.ID)
	}

	var chosen []string
	for _, stmt := range content.Statements {
		matched, err := g.iso.RunUnary(stmt.Condition, input, input)
		if err != nil {
			return handlerResult{}, err
		}
		if !matched {
			continue
		}
		chosen = append(chosen, stmt.ID)
		if content.HitPolicy == HitFirst {
			break
		}
	}

	traceData := value.EmptyArray()
	for _, id := range chosen {
		traceData.Push(value.String(id))
	}

	return handlerResult{Output: input, TraceData: traceData, ChosenHandles: chosen}, nil
}
