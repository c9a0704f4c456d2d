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
	"github.com/decisimo/decisimo/xerr"
)

// handleSubDecision resolves a nested decision by key through the
// loader and recurses with a fresh environment: per the engine's fixed
// semantics, sub-decisions never inherit the parent's $root, only the
// projected input the transform executor has already produced.
func handleSubDecision(ctx context.Context, g *DecisionGraph, node *DecisionNode, input value.Variable) (handlerResult, error) {
	ref, ok := node.Content.(*DecisionContentRef)
	if !ok {
		return handlerResult{}, fmt.Errorf("decision node %s: missing content", node.ID)
	}
	if g.loader == nil {
		return handlerResult{}, xerr.ErrLoaderNotFound(ref.Key)
	}

	content, err := g.loader.Load(ctx, ref.Key)
	if err != nil {
		return handlerResult{}, err
	}

	sub := New(content, g.loader, g.adapter, g.ext, Options{Trace: g.trace, MaxDepth: g.maxDepth}, g.iteration+1)
	result, err := sub.Evaluate(ctx, input)
	if err != nil {
		return handlerResult{}, err
	}

	output := value.MergeClone(input, result.Result)
	traceData := value.Null()
	if g.trace {
		traceData = toVariable(result.Trace)
	}
	return handlerResult{Output: output, TraceData: traceData}, nil
}
