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

	"github.com/decisimo/decisimo/sandbox"
	"github.com/decisimo/decisimo/value"
)

// handleFunction runs the node's source in the shared sandbox pool.
// On failure or timeout, logs collected so far are still surfaced
// under trace_data so a caller can see what the function printed
// before it died.
func handleFunction(ctx context.Context, g *DecisionGraph, node *DecisionNode, input value.Variable) (handlerResult, error) {
	content, ok := node.Content.(*FunctionContent)
	if !ok {
		return handlerResult{}, fmt.Errorf("function node %s: missing content", node.ID)
	}
	if g.ext == nil || g.ext.Sandbox == nil {
		return handlerResult{}, fmt.Errorf("function node %s: no sandbox configured", node.ID)
	}

	if content.OmitNodes {
		input = stripNodes(input)
	}

	config := value.NewObject()
	config.Set("iteration", value.NumberFromInt(int64(g.iteration)))
	config.Set("maxDepth", value.NumberFromInt(int64(g.maxDepth)))
	config.Set("trace", value.Bool(g.trace))

	out, logs, err := g.ext.Sandbox.RunWithConfig(ctx, content.Source, input, value.FromObject(config), sandbox.DefaultBudget, g.iteration)
	traceData := logsTrace(logs)
	if err != nil {
		return handlerResult{TraceData: traceData}, err
	}
	return handlerResult{Output: out, TraceData: traceData}, nil
}

func logsTrace(logs []string) value.Variable {
	arr := value.EmptyArray()
	for _, l := range logs {
		arr.Push(value.String(l))
	}
	o := value.NewObject()
	o.Set("lines", arr)
	o.Set("msSinceRun", value.NumberFromInt(0))
	return value.FromObject(o)
}
