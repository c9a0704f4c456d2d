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

package ast

import (
	"github.com/shopspring/decimal"

	"github.com/decisimo/decisimo/tokens"
)

// Ref indexes a Node within a Tree. RefNone (-1) means "absent".
type Ref int

const RefNone Ref = -1

// Node is a single arena slot. Only a subset of the fields are meaningful
// for any given Kind:
//
//	KNull            (no fields)
//	KBool            Bool
//	KNumber          Num
//	KString          Str
//	KTemplateString  Parts
//	KPointer         Str (closure parameter name, "" for the implicit $)
//	KArray           Items
//	KIdentifier      Str
//	KClosure         A (body expression)
//	KRoot            (no fields)
//	KMember          A (base), B (prop expr), Optional
//	KSlice           A (base), B (from, may be RefNone), C (to, may be RefNone)
//	KInterval        A (left), B (right), LeftBracket, RightBracket
//	KConditional     A (cond), B (then), C (else)
//	KUnary           Op, A (operand)
//	KBinary          Op, A (left), B (right)
//	KFunctionCall    CallKind, Str (name), A (receiver KMember for CallMethod), Items (args)
//	KParenthesized   A (inner)
//	KError           Str (diagnostic message)
type Node struct {
	Kind Kind
	Span tokens.Span

	Bool  bool
	Num   decimal.Decimal
	Str   string
	Op    string
	Items []Ref
	Parts []TemplatePart

	A, B, C Ref

	CallKind CallKind

	LeftBracket, RightBracket byte // '[' (inclusive) or '(' (exclusive)
	Optional                  bool
}

// Tree owns every node produced while parsing a single expression. The
// parser returns the Ref of the expression's root alongside the Tree.
type Tree struct {
	Nodes []Node
}

// NewTree returns an empty arena.
func NewTree() *Tree {
	return &Tree{Nodes: make([]Node, 0, 16)}
}

// Push appends n and returns its Ref.
func (t *Tree) Push(n Node) Ref {
	t.Nodes = append(t.Nodes, n)
	return Ref(len(t.Nodes) - 1)
}

// Get returns a copy of the node at r (a KNull node for RefNone). The
// copy does not see later Set calls; use the Ref, not the copy, for
// anything long-lived.
func (t *Tree) Get(r Ref) Node {
	if r == RefNone {
		return Node{Kind: KNull}
	}
	return t.Nodes[r]
}

// Set overwrites the node at r, used by passes that rewrite a node in
// place (e.g. unary-expression desugaring).
func (t *Tree) Set(r Ref, n Node) {
	t.Nodes[r] = n
}

// Last returns the Ref of the most recently pushed node.
func (t *Tree) Last() Ref {
	return Ref(len(t.Nodes) - 1)
}

// HasErrors reports whether any KError node is reachable at all (not just
// at the root) — the compiler refuses to lower a tree containing one.
func (t *Tree) HasErrors() bool {
	for _, n := range t.Nodes {
		if n.Kind == KError {
			return true
		}
	}
	return false
}
