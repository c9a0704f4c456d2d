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

// Package graph implements the decision-graph evaluator: an immutable
// document of heterogeneous nodes and edges, validated once and
// evaluated many times against different runtime contexts.
package graph

// Kind discriminates a DecisionNode's content.
type Kind string

const (
	KindInput      Kind = "inputNode"
	KindOutput     Kind = "outputNode"
	KindTable      Kind = "decisionTableNode"
	KindExpression Kind = "expressionNode"
	KindSwitch     Kind = "switchNode"
	KindDecision   Kind = "decisionNode"
	KindFunction   Kind = "functionNode"
	KindCustom     Kind = "customNode"
)

// HitPolicy governs how multiple matching rows/statements resolve.
type HitPolicy string

const (
	HitFirst   HitPolicy = "first"
	HitCollect HitPolicy = "collect"
)

// ExecutionMode governs whether a transform-wrapped handler runs once
// or once per element of a projected array input.
type ExecutionMode string

const (
	ExecutionSingle ExecutionMode = "single"
	ExecutionLoop   ExecutionMode = "loop"
)

// TransformAttributes wraps a handler call; see the transform executor
// in transform.go for the order these are applied in.
type TransformAttributes struct {
	InputField    string
	OutputPath    string
	ExecutionMode ExecutionMode
	PassThrough   bool
}

// DecisionNode is one vertex of a DecisionContent.
type DecisionNode struct {
	ID      string
	Name    string
	Kind    Kind
	Content any // one of *InputOutputContent, *TableContent, *ExpressionContent, *SwitchContent, *DecisionContentRef (sub-decision key), *FunctionContent, *CustomContent
	Transform TransformAttributes
}

// Edge connects two nodes. SourceHandle, when the source is a
// SwitchNode, is the statement id gating whether this edge propagates.
type Edge struct {
	SourceID     string
	TargetID     string
	SourceHandle string
}

// Content is the immutable, validated document a DecisionGraph
// evaluates against many different contexts.
type Content struct {
	Nodes []DecisionNode
	Edges []Edge

	byID  map[string]*DecisionNode
	order []string // topological order, computed by Validate
}

// InputOutputContent is the content of InputNode/OutputNode.
type InputOutputContent struct {
	Schema []byte // raw JSON Schema document, nil if unvalidated
}

// TableContent is DecisionTableContent.
type TableContent struct {
	Inputs    []TableColumn
	Outputs   []TableColumn
	Rules     []TableRule
	HitPolicy HitPolicy
}

type TableColumn struct {
	ID    string
	Name  string
	Field string // dotted path; required on outputs, optional on inputs
}

type TableRule struct {
	ID          string
	Description string
	Cells       map[string]string // column id -> cell source text
}

// ExpressionContent is ExpressionNodeContent: an ordered write-path list.
type ExpressionContent struct {
	Pairs []ExpressionPair
}

type ExpressionPair struct {
	Key   string
	Value string
}

// SwitchContent is SwitchNodeContent.
type SwitchContent struct {
	Statements []SwitchStatement
	HitPolicy  HitPolicy
}

type SwitchStatement struct {
	ID        string
	Condition string
}

// DecisionContentRef is the content of a sub-decision DecisionNode: the
// key the Loader resolves to get the nested Content.
type DecisionContentRef struct {
	Key string
}

// FunctionContent is FunctionNode{source, omit_nodes}. V1 nodes never
// set OmitNodes; V2 nodes may.
type FunctionContent struct {
	Source     string
	OmitNodes  bool
}

// CustomContent is CustomNode{kind, config}.
type CustomContent struct {
	Kind   string
	Config map[string]any
}

// Get returns the node with id, or nil.
func (c *Content) Get(id string) *DecisionNode {
	if c.byID == nil {
		return nil
	}
	return c.byID[id]
}
