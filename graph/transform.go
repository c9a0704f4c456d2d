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

// applyTransform wraps a node's handler call with its TransformAttributes,
// applied in the fixed order: input projection, execution mode, pass-
// through, output-path wrapping, then $nodes stripping.
func (g *DecisionGraph) applyTransform(ctx context.Context, node *DecisionNode, input value.Variable, h handlerFunc) (handlerResult, error) {
	t := node.Transform

	projected := input
	if t.InputField != "" {
		p, err := g.iso.RunStandard(t.InputField, input)
		if err != nil {
			return handlerResult{}, err
		}
		projected = reattachNodes(p, input)
	}

	var res handlerResult
	var err error
	switch t.ExecutionMode {
	case ExecutionLoop:
		if !projected.IsArray() {
			return handlerResult{}, fmt.Errorf("node %s: loop execution mode requires an array input, got %s", node.ID, projected.Type())
		}
		res, err = g.runLoop(ctx, node, input, projected, h)
	default:
		res, err = h(ctx, g, node, projected)
	}
	if err != nil {
		return res, err
	}

	if t.PassThrough {
		if t.ExecutionMode == ExecutionLoop {
			res.Output = mergeEachElement(projected, res.Output)
		} else {
			res.Output = value.MergeClone(input, res.Output)
		}
	}

	if t.OutputPath != "" {
		res.Output = value.EmptyObject().DotInsert(t.OutputPath, res.Output)
	}

	res.Output = stripNodes(res.Output)
	if t.PassThrough {
		res.Output = value.MergeClone(input, res.Output)
	}

	return res, nil
}

// runLoop invokes h once per element of projected, collecting outputs
// and trace_data in order. Each element sees the parent's $nodes
// accumulator re-attached at its own top level.
func (g *DecisionGraph) runLoop(ctx context.Context, node *DecisionNode, input, projected value.Variable, h handlerFunc) (handlerResult, error) {
	items := projected.Items()
	outputs := make([]value.Variable, len(items))
	traces := make([]value.Variable, len(items))

	for i, item := range items {
		itemInput := reattachNodes(item, input)
		r, err := h(ctx, g, node, itemInput)
		if err != nil {
			return handlerResult{TraceData: value.FromArray(traces[:i])}, err
		}
		outputs[i] = r.Output
		traces[i] = r.TraceData
	}

	return handlerResult{Output: value.FromArray(outputs), TraceData: value.FromArray(traces)}, nil
}

// reattachNodes copies the $nodes value from source onto target, if
// source carries one and target is an object.
func reattachNodes(target, source value.Variable) value.Variable {
	nodes, ok := source.Dot("$nodes")
	if !ok || !target.IsObject() {
		return target
	}
	clone := target.Object().Clone()
	clone.Set("$nodes", nodes)
	return value.FromObject(clone)
}

// mergeEachElement merges out[i] over original's i-th element,
// matching TransformAttributes{Loop, PassThrough: true} semantics.
func mergeEachElement(original, out value.Variable) value.Variable {
	if !out.IsArray() {
		return out
	}
	origItems := original.Items()
	outItems := out.Items()
	merged := make([]value.Variable, len(outItems))
	for i, o := range outItems {
		if i < len(origItems) {
			merged[i] = value.MergeClone(origItems[i], o)
		} else {
			merged[i] = o
		}
	}
	return value.FromArray(merged)
}
