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

// Package template renders the `{{ expr }}` mini-templating language:
// plain text is passed through, and each `{{ ... }}` span is evaluated
// as a standard expression against the render context. A template that
// is exactly one expression with no surrounding text returns that
// expression's value unchanged, rather than stringified.
package template

import (
	"strconv"
	"strings"

	"github.com/decisimo/decisimo/isolate"
	"github.com/decisimo/decisimo/value"
)

type node struct {
	text   string
	expr   string
	isExpr bool
}

// lex splits source into alternating text/expression nodes, the same
// two-state scan the language's lexer/parser use: "{{" opens an
// expression span, "}}" closes it, and bracket pairs may not nest.
func lex(source string) []node {
	var nodes []node
	var textStart int
	var exprStart int
	inExpr := false

	i := 0
	for i < len(source) {
		if !inExpr && i+1 < len(source) && source[i] == '{' && source[i+1] == '{' {
			if i > textStart {
				nodes = append(nodes, node{text: source[textStart:i]})
			}
			i += 2
			exprStart = i
			inExpr = true
			continue
		}
		if inExpr && i+1 < len(source) && source[i] == '}' && source[i+1] == '}' {
			nodes = append(nodes, node{expr: source[exprStart:i], isExpr: true})
			i += 2
			textStart = i
			inExpr = false
			continue
		}
		i++
	}
	if inExpr {
		nodes = append(nodes, node{expr: source[exprStart:], isExpr: true})
	} else if textStart < len(source) {
		nodes = append(nodes, node{text: source[textStart:]})
	}
	return nodes
}

// Render evaluates source against context. Zero nodes (an empty
// template) renders to Null; exactly one node renders to that node's
// value directly (a bare expression keeps its type, e.g. a number
// stays a number); two or more nodes stringify and concatenate.
func Render(source string, context value.Variable) (value.Variable, error) {
	nodes := lex(source)
	iso := isolate.New()

	if len(nodes) == 0 {
		return value.Null(), nil
	}
	if len(nodes) == 1 {
		n := nodes[0]
		if !n.isExpr {
			return value.String(n.text), nil
		}
		return iso.RunStandard(n.expr, context)
	}

	var sb strings.Builder
	for _, n := range nodes {
		if !n.isExpr {
			sb.WriteString(n.text)
			continue
		}
		result, err := iso.RunStandard(n.expr, context)
		if err != nil {
			return value.Null(), err
		}
		sb.WriteString(stringify(result))
	}
	return value.String(sb.String()), nil
}

func stringify(v value.Variable) string {
	switch v.Type() {
	case value.TNull:
		return "null"
	case value.TBool:
		return strconv.FormatBool(v.AsBool())
	case value.TString:
		return v.AsString()
	case value.TNumber:
		return v.AsNumber().String()
	default:
		b, err := v.ToJSON()
		if err != nil {
			return ""
		}
		return string(b)
	}
}
