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
	"strings"

	"github.com/decisimo/decisimo/value"
)

// handleTable implements the DecisionTable algorithm: per rule
// (top-to-bottom), per input column, a blank cell always matches; a
// cell on a column with a field runs as a unary expression against
// that field, otherwise as a standard expression against the whole
// input. A rule hits when every input cell matches.
func handleTable(_ context.Context, g *DecisionGraph, node *DecisionNode, input value.Variable) (handlerResult, error) {
	content, ok := node.Content.(*TableContent)
	if !ok {
		return handlerResult{}, fmt.Errorf("table node %s: missing content", node.ID)
	}

	var hits []value.Variable
	var hitTraces []value.Variable

	for idx, rule := range content.Rules {
		matched, refMap, err := g.evalTableInputs(content.Inputs, rule, input)
		if err != nil {
			return handlerResult{}, err
		}
		if !matched {
			continue
		}

		out := value.EmptyObject()
		cellTrace := value.NewObject()
		for _, col := range content.Outputs {
			cell := rule.Cells[col.ID]
			if strings.TrimSpace(cell) == "" {
				continue
			}
			result, err := g.iso.RunStandard(cell, input)
			if err != nil {
				return handlerResult{}, err
			}
			out = out.DotInsert(col.Field, result)
			cellTrace.Set(col.ID, result)
		}
		hits = append(hits, out)

		t := value.NewObject()
		t.Set("index", value.NumberFromInt(int64(idx)))
		t.Set("ruleId", value.String(rule.ID))
		if rule.Description != "" {
			t.Set("ruleDescription", value.String(rule.Description))
		}
		t.Set("expressions", value.FromObject(cellTrace))
		t.Set("referenceMap", refMap)
		hitTraces = append(hitTraces, value.FromObject(t))

		if content.HitPolicy == HitFirst {
			break
		}
	}

	traceData := value.FromArray(hitTraces)
	if content.HitPolicy == HitCollect {
		return handlerResult{Output: value.FromArray(hits), TraceData: traceData}, nil
	}
	if len(hits) == 0 {
		return handlerResult{Output: value.Null(), TraceData: traceData}, nil
	}
	return handlerResult{Output: hits[0], TraceData: traceData}, nil
}

// evalTableInputs checks every input column's cell for one rule,
// returning whether every cell matched and a field->evaluated-reference
// map for the rule's trace entry.
func (g *DecisionGraph) evalTableInputs(cols []TableColumn, rule TableRule, input value.Variable) (bool, value.Variable, error) {
	refMap := value.NewObject()
	for _, col := range cols {
		cell := rule.Cells[col.ID]
		if strings.TrimSpace(cell) == "" {
			continue
		}
		if col.Field != "" {
			candidate, _ := input.Dot(col.Field)
			ok, err := g.iso.RunUnary(cell, input, candidate)
			if err != nil {
				return false, value.Null(), err
			}
			refMap.Set(col.Field, candidate)
			if !ok {
				return false, value.Null(), nil
			}
			continue
		}
		result, err := g.iso.RunStandard(cell, input)
		if err != nil {
			return false, value.Null(), err
		}
		if !result.Truthy() {
			return false, value.Null(), nil
		}
	}
	return true, value.FromObject(refMap), nil
}
