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

// handlerResult is what every node-kind handler produces before the
// transform executor post-processes it.
type handlerResult struct {
	Output        value.Variable
	TraceData     value.Variable
	ChosenHandles []string // non-nil only for SwitchNode
}

type handlerFunc func(ctx context.Context, g *DecisionGraph, node *DecisionNode, input value.Variable) (handlerResult, error)

// dispatch applies the node's transform attributes around its handler.
func (g *DecisionGraph) dispatch(ctx context.Context, node *DecisionNode, input value.Variable) (handlerResult, error) {
	var h handlerFunc
	switch node.Kind {
	case KindInput:
		h = handleInputOutput
	case KindOutput:
		h = handleInputOutput
	case KindTable:
		h = handleTable
	case KindExpression:
		h = handleExpression
	case KindSwitch:
		h = handleSwitch
	case KindDecision:
		h = handleSubDecision
	case KindFunction:
		h = handleFunction
	case KindCustom:
		h = handleCustom
	default:
		return handlerResult{}, fmt.Errorf("unknown node kind %q", node.Kind)
	}
	return g.applyTransform(ctx, node, input, h)
}

// handleInputOutput backs both InputNode and OutputNode: pass input
// through, validating against the node's schema when one is present.
func handleInputOutput(ctx context.Context, g *DecisionGraph, node *DecisionNode, input value.Variable) (handlerResult, error) {
	content, _ := node.Content.(*InputOutputContent)
	if content != nil && len(content.Schema) > 0 && g.ext != nil && g.ext.Schemas != nil {
		validator, err := g.ext.Schemas.Get(ctx, content.Schema)
		if err != nil {
			return handlerResult{}, err
		}
		if err := validator.Validate(input); err != nil {
			return handlerResult{}, err
		}
	}
	return handlerResult{Output: input, TraceData: value.Null()}, nil
}

// handleCustom delegates to the caller-supplied adapter.
func handleCustom(ctx context.Context, g *DecisionGraph, node *DecisionNode, input value.Variable) (handlerResult, error) {
	content, _ := node.Content.(*CustomContent)
	if g.adapter == nil {
		return handlerResult{}, fmt.Errorf("custom node %s: no adapter configured", node.ID)
	}
	var config map[string]any
	if content != nil {
		config = content.Config
	}
	output, traceData, err := g.adapter.Handle(ctx, input, CustomNodeInfo{
		ID:     node.ID,
		Name:   node.Name,
		Kind:   node.Kind,
		Config: config,
	})
	if err != nil {
		return handlerResult{}, err
	}
	return handlerResult{Output: output, TraceData: traceData}, nil
}
