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
	"encoding/json"
	"fmt"
)

// wireNode and wireEdge mirror the camelCase-on-the-wire decision
// document format. The node's content shape depends on its type, so
// Content is decoded lazily as json.RawMessage and dispatched below.
type wireNode struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Type    Kind            `json:"type"`
	Content json.RawMessage `json:"content"`

	InputField    string        `json:"inputField,omitempty"`
	OutputPath    string        `json:"outputPath,omitempty"`
	ExecutionMode ExecutionMode `json:"executionMode,omitempty"`
	PassThrough   bool          `json:"passThrough,omitempty"`
}

type wireEdge struct {
	SourceID     string `json:"sourceId"`
	TargetID     string `json:"targetId"`
	SourceHandle string `json:"sourceHandle,omitempty"`
}

type wireDocument struct {
	Nodes []wireNode `json:"nodes"`
	Edges []wireEdge `json:"edges"`
}

type wireInputOutput struct {
	Schema json.RawMessage `json:"schema,omitempty"`
}

type wireTableColumn struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Field string `json:"field,omitempty"`
}

type wireTable struct {
	HitPolicy HitPolicy           `json:"hitPolicy"`
	Inputs    []wireTableColumn   `json:"inputs"`
	Outputs   []wireTableColumn   `json:"outputs"`
	Rules     []map[string]string `json:"rules"`
}

type wireExpressionPair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type wireExpression struct {
	Expressions []wireExpressionPair `json:"expressions"`
}

type wireSwitchStatement struct {
	ID        string `json:"id"`
	Condition string `json:"condition"`
}

type wireSwitch struct {
	HitPolicy  HitPolicy             `json:"hitPolicy"`
	Statements []wireSwitchStatement `json:"statements"`
}

type wireDecisionRef struct {
	Key string `json:"key"`
}

type wireFunctionV2 struct {
	Source    string `json:"source"`
	OmitNodes bool   `json:"omitNodes"`
}

type wireCustom struct {
	Kind   string         `json:"kind"`
	Config map[string]any `json:"config"`
}

// ParseContent decodes a decision document from its wire JSON form and
// validates it.
func ParseContent(raw []byte) (*Content, error) {
	var doc wireDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode decision content: %w", err)
	}

	nodes := make([]DecisionNode, 0, len(doc.Nodes))
	for _, wn := range doc.Nodes {
		content, err := decodeNodeContent(wn.Type, wn.Content)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", wn.ID, err)
		}
		nodes = append(nodes, DecisionNode{
			ID:      wn.ID,
			Name:    wn.Name,
			Kind:    wn.Type,
			Content: content,
			Transform: TransformAttributes{
				InputField:    wn.InputField,
				OutputPath:    wn.OutputPath,
				ExecutionMode: wn.ExecutionMode,
				PassThrough:   wn.PassThrough,
			},
		})
	}

	edges := make([]Edge, 0, len(doc.Edges))
	for _, we := range doc.Edges {
		edges = append(edges, Edge{SourceID: we.SourceID, TargetID: we.TargetID, SourceHandle: we.SourceHandle})
	}

	return NewContent(nodes, edges)
}

func decodeNodeContent(kind Kind, raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		raw = []byte("null")
	}
	switch kind {
	case KindInput, KindOutput:
		var w wireInputOutput
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		var schema []byte
		if len(w.Schema) > 0 && string(w.Schema) != "null" {
			schema = []byte(w.Schema)
		}
		return &InputOutputContent{Schema: schema}, nil

	case KindTable:
		var w wireTable
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		rules := make([]TableRule, 0, len(w.Rules))
		for _, r := range w.Rules {
			cells := make(map[string]string, len(r))
			id, description := "", ""
			for k, v := range r {
				switch k {
				case "_id":
					id = v
				case "_description":
					description = v
				default:
					cells[k] = v
				}
			}
			rules = append(rules, TableRule{ID: id, Description: description, Cells: cells})
		}
		inputs := make([]TableColumn, len(w.Inputs))
		for i, c := range w.Inputs {
			inputs[i] = TableColumn{ID: c.ID, Name: c.Name, Field: c.Field}
		}
		outputs := make([]TableColumn, len(w.Outputs))
		for i, c := range w.Outputs {
			outputs[i] = TableColumn{ID: c.ID, Name: c.Name, Field: c.Field}
		}
		return &TableContent{Inputs: inputs, Outputs: outputs, Rules: rules, HitPolicy: orFirst(w.HitPolicy)}, nil

	case KindExpression:
		var w wireExpression
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		pairs := make([]ExpressionPair, len(w.Expressions))
		for i, p := range w.Expressions {
			pairs[i] = ExpressionPair{Key: p.Key, Value: p.Value}
		}
		return &ExpressionContent{Pairs: pairs}, nil

	case KindSwitch:
		var w wireSwitch
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		statements := make([]SwitchStatement, len(w.Statements))
		for i, s := range w.Statements {
			statements[i] = SwitchStatement{ID: s.ID, Condition: s.Condition}
		}
		return &SwitchContent{Statements: statements, HitPolicy: orFirst(w.HitPolicy)}, nil

	case KindDecision:
		var w wireDecisionRef
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return &DecisionContentRef{Key: w.Key}, nil

	case KindFunction:
		// v1 content is a bare JSON string (the source); v2 is
		// {source, omitNodes}. Treat v1 as v2 with omitNodes: false.
		var source string
		if err := json.Unmarshal(raw, &source); err == nil {
			return &FunctionContent{Source: source}, nil
		}
		var w wireFunctionV2
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return &FunctionContent{Source: w.Source, OmitNodes: w.OmitNodes}, nil

	case KindCustom:
		var w wireCustom
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return &CustomContent{Kind: w.Kind, Config: w.Config}, nil

	default:
		return nil, fmt.Errorf("unknown node type %q", kind)
	}
}

func orFirst(h HitPolicy) HitPolicy {
	if h == "" {
		return HitFirst
	}
	return h
}
