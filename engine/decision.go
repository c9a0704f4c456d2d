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

package engine

import (
	"context"

	"github.com/decisimo/decisimo/graph"
	"github.com/decisimo/decisimo/value"
)

// Decision is one validated decision document bound to the Engine that
// produced it, so recursive sub-decision lookups and function-node
// sandboxing share the engine's loader, adapter, and extensions.
type Decision struct {
	content *graph.Content
	engine  *engineImpl
}

// Validate re-checks the decision's structural invariants (exactly one
// input node, at least one output node, no cycles, every edge endpoint
// resolvable). Content loaded through Engine.GetDecision or built
// through Engine.CreateDecision is already validated; Validate exists
// for callers who want to check a decision again after mutating its
// backing content directly, or simply as the documented entry point
// from the language-neutral API surface.
func (d *Decision) Validate() error {
	return d.content.Validate()
}

// Evaluate runs the decision against input, honoring opts.Trace and
// opts.MaxDepth (zero defaults to the engine's ceiling: WithMaxDepth,
// else graph.DefaultMaxDepth).
func (d *Decision) Evaluate(ctx context.Context, input value.Variable, opts graph.Options) (*graph.Result, error) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = d.engine.maxDepth
	}
	dg := graph.New(d.content, d.engine.loader, d.engine.adapter, d.engine.ext, opts, 0)
	return dg.Evaluate(ctx, input)
}

// Content exposes the underlying decision document, e.g. for callers
// that want to re-serialize it or inspect its nodes directly.
func (d *Decision) Content() *graph.Content {
	return d.content
}
