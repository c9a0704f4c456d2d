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

import "github.com/decisimo/decisimo/xerr"

// NewContent builds a Content from nodes and edges and validates it.
func NewContent(nodes []DecisionNode, edges []Edge) (*Content, error) {
	c := &Content{Nodes: nodes, Edges: edges}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks structural invariants and computes the topological
// order cached for every later evaluation: exactly one InputNode, at
// least one OutputNode, every edge endpoint exists, and no cycle.
func (c *Content) Validate() error {
	c.byID = make(map[string]*DecisionNode, len(c.Nodes))
	inputs, outputs := 0, 0
	adj := newAdjacency()

	for i := range c.Nodes {
		n := &c.Nodes[i]
		c.byID[n.ID] = n
		adj.addNode(n.ID)
		switch n.Kind {
		case KindInput:
			inputs++
		case KindOutput:
			outputs++
		}
	}
	if inputs != 1 {
		return xerr.ErrInvalidInputCount(inputs)
	}
	if outputs < 1 {
		return xerr.ErrInvalidOutputCount(outputs)
	}

	for _, e := range c.Edges {
		if _, ok := c.byID[e.SourceID]; !ok {
			return xerr.ErrNodeConnect(e.SourceID, e.TargetID)
		}
		if _, ok := c.byID[e.TargetID]; !ok {
			return xerr.ErrNodeConnect(e.SourceID, e.TargetID)
		}
		adj.addEdge(e.SourceID, e.TargetID)
	}

	if cycle := adj.cyclePath(); cycle != nil {
		return xerr.ErrCyclicGraph()
	}

	c.order = adj.topoSort()
	return nil
}

// predecessors returns the edges targeting id, in content order.
func (c *Content) predecessors(id string) []Edge {
	var out []Edge
	for _, e := range c.Edges {
		if e.TargetID == id {
			out = append(out, e)
		}
	}
	return out
}
