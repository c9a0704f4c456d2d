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
	"time"

	"github.com/decisimo/decisimo/isolate"
	"github.com/decisimo/decisimo/sandbox"
	"github.com/decisimo/decisimo/schema"
	"github.com/decisimo/decisimo/value"
	"github.com/decisimo/decisimo/xerr"
)

// DefaultMaxDepth matches the documented default for opts.max_depth.
const DefaultMaxDepth = 5

// Loader resolves a sub-decision's content by key.
type Loader interface {
	Load(ctx context.Context, key string) (*Content, error)
}

// CustomNodeInfo is the node metadata handed to a CustomNodeAdapter.
type CustomNodeInfo struct {
	ID     string
	Name   string
	Kind   Kind
	Config map[string]any
}

// CustomNodeAdapter delegates CustomNode evaluation to caller-supplied
// logic the engine knows nothing about.
type CustomNodeAdapter interface {
	Handle(ctx context.Context, input value.Variable, node CustomNodeInfo) (output value.Variable, traceData value.Variable, err error)
}

// Extensions bundles the collaborators shared across one Engine's
// decisions: the schema validator cache and the sandbox pool that
// engine.New creates up front. Both are safe for concurrent reuse across
// independent evaluations.
type Extensions struct {
	Schemas *schema.Cache
	Sandbox *sandbox.Pool
}

// Options controls one evaluation.
type Options struct {
	Trace    bool
	MaxDepth int
}

// DecisionGraph is one evaluation's worth of bound state: a validated
// Content plus everything its handlers need to run. It is built fresh
// per evaluation (including every recursive sub-decision evaluation)
// and never shared across evaluations, matching the single-threaded,
// per-task execution model the rest of the engine assumes.
type DecisionGraph struct {
	content   *Content
	loader    Loader
	adapter   CustomNodeAdapter
	ext       *Extensions
	maxDepth  int
	iteration int
	trace     bool
	iso       *isolate.Isolate
}

// New builds a DecisionGraph ready to evaluate content at the given
// iteration depth (0 for a top-level evaluation).
func New(content *Content, loader Loader, adapter CustomNodeAdapter, ext *Extensions, opts Options, iteration int) *DecisionGraph {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &DecisionGraph{
		content:   content,
		loader:    loader,
		adapter:   adapter,
		ext:       ext,
		maxDepth:  maxDepth,
		iteration: iteration,
		trace:     opts.Trace,
		iso:       isolate.New(),
	}
}

// Evaluate runs the graph against input, implementing the topological
// execution algorithm.
func (g *DecisionGraph) Evaluate(ctx context.Context, input value.Variable) (*Result, error) {
	evalStarted := time.Now()
	nodeOutputs := make(map[string]value.Variable, len(g.content.Nodes))
	chosenHandles := make(map[string][]string)
	nodesAccum := value.EmptyObject()
	var trace []Trace
	order := 0

	active := make(map[string]bool, len(g.content.Nodes))
	var finalOutput value.Variable
	for _, id := range g.content.order {
		node := g.content.Get(id)
		if node == nil {
			continue
		}

		if node.Kind != KindInput && !g.isActive(id, active, chosenHandles) {
			continue // every inbound edge was a switch branch that wasn't chosen
		}
		active[id] = true

		if node.Kind != KindInput && g.iteration >= g.maxDepth {
			err := xerr.ErrEvaluation(xerr.ErrNode(id, toVariable(trace), xerr.ErrDepthLimitExceeded()))
			return partialResult(trace, g.trace), err
		}

		var nodeInput value.Variable
		if node.Kind == KindInput {
			nodeInput = input
		} else {
			nodeInput = g.mergePredecessors(id, nodeOutputs, chosenHandles)
		}
		nodeInput = withNodes(nodeInput, value.FromObject(nodesAccum))

		started := time.Now()
		res, err := g.dispatch(ctx, node, nodeInput)
		if err != nil {
			if g.trace {
				trace = append(trace, Trace{
					ID:          id,
					Name:        node.Name,
					Input:       stripNodes(nodeInput).DeepClone(),
					Output:      value.Null(),
					TraceData:   res.TraceData,
					Performance: performance(started),
					Order:       order,
				})
			}
			if _, already := err.(xerr.EvaluationError); already {
				return partialResult(trace, g.trace), err
			}
			wrapped := xerr.ErrEvaluation(xerr.ErrNode(id, toVariable(trace), err))
			return partialResult(trace, g.trace), wrapped
		}

		recordedOutput := stripNodes(res.Output)
		nodeOutputs[id] = res.Output
		if len(res.ChosenHandles) > 0 {
			chosenHandles[id] = res.ChosenHandles
		}
		nodesAccum.Set(node.Name, recordedOutput)

		if g.trace {
			trace = append(trace, Trace{
				ID:          id,
				Name:        node.Name,
				Input:       stripNodes(nodeInput).DeepClone(),
				Output:      recordedOutput.DeepClone(),
				TraceData:   res.TraceData,
				Performance: performance(started),
				Order:       order,
			})
		}
		order++

		if node.Kind == KindOutput {
			finalOutput = res.Output
		}
	}

	return &Result{Result: stripNodes(finalOutput), Performance: performance(evalStarted), Trace: trace}, nil
}

func partialResult(trace []Trace, enabled bool) *Result {
	if !enabled {
		return nil
	}
	return &Result{Trace: trace}
}

// mergePredecessors folds a node's direct predecessor outputs into one
// environment, in content edge order, skipping edges a switch source
// did not select.
func (g *DecisionGraph) mergePredecessors(id string, outputs map[string]value.Variable, chosen map[string][]string) value.Variable {
	merged := value.EmptyObject()
	for _, e := range g.content.Edges {
		if e.TargetID != id {
			continue
		}
		src := g.content.Get(e.SourceID)
		if src != nil && src.Kind == KindSwitch {
			handles := chosen[e.SourceID]
			if !containsString(handles, e.SourceHandle) {
				continue
			}
		}
		out, ok := outputs[e.SourceID]
		if !ok {
			continue
		}
		merged = value.MergeClone(merged, out)
	}
	return merged
}

// isActive reports whether id has at least one inbound edge whose
// source already ran and, if that source is a SwitchNode, whose handle
// was among the statements it chose. A node with no inbound edges at
// all (an orphan, not ruled out by validation) is treated as active.
func (g *DecisionGraph) isActive(id string, active map[string]bool, chosen map[string][]string) bool {
	hasInbound := false
	for _, e := range g.content.Edges {
		if e.TargetID != id {
			continue
		}
		hasInbound = true
		if !active[e.SourceID] {
			continue
		}
		src := g.content.Get(e.SourceID)
		if src != nil && src.Kind == KindSwitch && !containsString(chosen[e.SourceID], e.SourceHandle) {
			continue
		}
		return true
	}
	return !hasInbound
}

func containsString(haystack []string, needle string) bool {
	for _, h := range haystack {
		if h == needle {
			return true
		}
	}
	return false
}

// withNodes returns input with $nodes attached, if input is an object.
func withNodes(input, nodes value.Variable) value.Variable {
	if !input.IsObject() {
		return input
	}
	clone := input.Object().Clone()
	clone.Set("$nodes", nodes)
	return value.FromObject(clone)
}

// stripNodes removes $nodes from v, if present, without mutating v.
func stripNodes(v value.Variable) value.Variable {
	if !v.IsObject() {
		return v
	}
	if _, ok := v.Object().Get("$nodes"); !ok {
		return v
	}
	clone := v.Object().Clone()
	clone.Delete("$nodes")
	return value.FromObject(clone)
}
