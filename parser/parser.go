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

package parser

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/decisimo/decisimo/ast"
	"github.com/decisimo/decisimo/lexer"
	"github.com/decisimo/decisimo/tokens"
	"github.com/decisimo/decisimo/xerr"
)

// closureArityBuiltins take their final argument as a closure body
// evaluated once per element against an implicit `$`/`#` pointer.
var closureArityBuiltins = map[string]bool{
	"all": true, "some": true, "none": true, "one": true,
	"filter": true, "map": true, "flatMap": true, "count": true,
}

// Parser drives a Pratt engine over a fixed token slice, pushing nodes
// into a shared Tree. A Parser is single-use: construct one per parse.
type Parser struct {
	tree *ast.Tree
	toks []tokens.Instance
	pos  int
}

// ParseStandard parses a full expression and returns the tree together
// with the root node's Ref. Lexical/parse errors are recorded in-tree as
// Error nodes rather than aborting outright, so a caller inspecting
// tree.HasErrors() can still report every problem found in one pass.
func ParseStandard(src string) (*ast.Tree, ast.Ref, error) {
	toks, lexErr := lexer.Tokenize(src)
	tree := ast.NewTree()
	p := &Parser{tree: tree, toks: toks}
	if lexErr != nil {
		root := tree.Push(ast.Node{Kind: ast.KError, Str: lexErr.Error()})
		return tree, root, lexErr
	}
	root := p.parseTernary()
	if !p.atEnd() {
		root = tree.Push(ast.Node{Kind: ast.KError, Str: "unexpected trailing input"})
	}
	if tree.HasErrors() {
		return tree, root, xerr.ErrFailedToParse(p.cur().Span.Start.Offset, "expression contains syntax errors")
	}
	return tree, root, nil
}

// ParseUnary parses the condition-shorthand dialect: a comma-separated
// list of clauses, each implicitly comparing against `$`, joined with a
// logical or.
func ParseUnary(src string) (*ast.Tree, ast.Ref, error) {
	toks, lexErr := lexer.Tokenize(src)
	if lexErr != nil {
		tree := ast.NewTree()
		root := tree.Push(ast.Node{Kind: ast.KError, Str: lexErr.Error()})
		return tree, root, lexErr
	}

	clauses := splitTopLevel(toks, ",")
	tree := ast.NewTree()
	var refs []ast.Ref
	for _, clause := range clauses {
		ref, err := parseUnaryClause(tree, clause)
		if err != nil {
			return tree, tree.Push(ast.Node{Kind: ast.KError, Str: err.Error()}), err
		}
		refs = append(refs, ref)
	}
	if len(refs) == 0 {
		return tree, tree.Push(ast.Node{Kind: ast.KBool, Bool: true}), nil
	}
	root := refs[0]
	for _, r := range refs[1:] {
		root = tree.Push(ast.Node{Kind: ast.KBinary, Op: "or", A: root, B: r})
	}
	if tree.HasErrors() {
		return tree, root, xerr.ErrFailedToParse(0, "unary expression contains syntax errors")
	}
	return tree, root, nil
}

var comparators = map[string]bool{"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true}

func parseUnaryClause(tree *ast.Tree, clause []tokens.Instance) (ast.Ref, error) {
	dollar := tree.Push(ast.Node{Kind: ast.KPointer})

	if len(clause) == 0 {
		return tree.Push(ast.Node{Kind: ast.KError, Str: "empty unary clause"}), nil
	}

	first := clause[0]
	if first.Kind == tokens.Operator && comparators[first.Value] {
		rhs := subParse(tree, clause[1:])
		return tree.Push(ast.Node{Kind: ast.KBinary, Op: first.Value, A: dollar, B: rhs}), nil
	}
	if first.Kind == tokens.Operator && (first.Value == "in" || first.Value == "not in") {
		rhs := subParse(tree, clause[1:])
		return tree.Push(ast.Node{Kind: ast.KBinary, Op: first.Value, A: dollar, B: rhs}), nil
	}

	value := subParse(tree, clause)
	if tree.Get(value).Kind == ast.KInterval {
		return tree.Push(ast.Node{Kind: ast.KBinary, Op: "in", A: dollar, B: value}), nil
	}
	return tree.Push(ast.Node{Kind: ast.KBinary, Op: "==", A: dollar, B: value}), nil
}

// subParse parses a fixed token slice (already lexed) as a standalone
// expression sharing tree's arena.
func subParse(tree *ast.Tree, toks []tokens.Instance) ast.Ref {
	toks = append(append([]tokens.Instance{}, toks...), tokens.New(tokens.EOF, "", tokens.Span{}))
	p := &Parser{tree: tree, toks: toks}
	return p.parseTernary()
}

// splitTopLevel splits toks on occurrences of an operator token whose
// value equals sep, ignoring occurrences nested inside brackets/parens.
func splitTopLevel(toks []tokens.Instance, sep string) [][]tokens.Instance {
	var out [][]tokens.Instance
	var cur []tokens.Instance
	depth := 0
	for _, t := range toks {
		if t.Kind == tokens.EOF {
			break
		}
		if t.Kind == tokens.Bracket {
			switch t.Value {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				depth--
			}
		}
		if depth == 0 && t.Kind == tokens.Operator && t.Value == sep {
			out = append(out, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	out = append(out, cur)
	return out
}

func (p *Parser) cur() tokens.Instance {
	if p.pos >= len(p.toks) {
		return tokens.New(tokens.EOF, "", tokens.Span{})
	}
	return p.toks[p.pos]
}

func (p *Parser) peek(n int) tokens.Instance {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return tokens.New(tokens.EOF, "", tokens.Span{})
	}
	return p.toks[idx]
}

func (p *Parser) advance() tokens.Instance {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) atEnd() bool { return p.cur().Kind == tokens.EOF }

func (p *Parser) errNode(msg string) ast.Ref {
	return p.tree.Push(ast.Node{Kind: ast.KError, Str: msg})
}

func (p *Parser) parseTernary() ast.Ref {
	cond := p.parseBinary(0)
	if p.cur().IsOperator("?") {
		p.advance()
		then := p.parseTernary()
		if !p.cur().IsOperator(":") {
			return p.errNode("expected ':' in conditional expression")
		}
		p.advance()
		els := p.parseTernary()
		return p.tree.Push(ast.Node{Kind: ast.KConditional, A: cond, B: then, C: els})
	}
	return cond
}

func binaryOpText(t tokens.Instance) (string, bool) {
	if t.Kind != tokens.Operator {
		return "", false
	}
	_, ok := binaryPrecedence[t.Value]
	return t.Value, ok
}

func (p *Parser) parseBinary(minPrec int) ast.Ref {
	left := p.parseUnary()
	for {
		opText, ok := binaryOpText(p.cur())
		if !ok {
			break
		}
		info := binaryPrecedence[opText]
		if info.precedence < minPrec {
			break
		}
		p.advance()
		nextMin := info.precedence + 1
		if info.assoc == RightAssoc {
			nextMin = info.precedence
		}
		right := p.parseBinary(nextMin)
		left = p.tree.Push(ast.Node{Kind: ast.KBinary, Op: opText, A: left, B: right})
	}
	return left
}

func (p *Parser) parseUnary() ast.Ref {
	tok := p.cur()
	if tok.IsOperator("not") || tok.IsOperator("!") {
		p.advance()
		operand := p.parseBinary(unaryNotPrecedence)
		return p.tree.Push(ast.Node{Kind: ast.KUnary, Op: "not", A: operand})
	}
	if tok.IsOperator("-") || tok.IsOperator("+") {
		p.advance()
		operand := p.parseBinary(unarySignPrecedence)
		return p.tree.Push(ast.Node{Kind: ast.KUnary, Op: tok.Value, A: operand})
	}
	return p.parsePostfix(p.parsePrimary())
}

func (p *Parser) parsePrimary() ast.Ref {
	tok := p.cur()

	switch {
	case tok.Kind == tokens.Number:
		p.advance()
		num, err := decimal.NewFromString(tok.Value)
		if err != nil {
			return p.errNode("invalid number literal " + tok.Value)
		}
		return p.tree.Push(ast.Node{Kind: ast.KNumber, Num: num, Span: tok.Span})

	case tok.Kind == tokens.Boolean:
		p.advance()
		return p.tree.Push(ast.Node{Kind: ast.KBool, Bool: tok.Value == "true", Span: tok.Span})

	case tok.IsOperator("null"):
		p.advance()
		return p.tree.Push(ast.Node{Kind: ast.KNull, Span: tok.Span})

	case tok.Kind == tokens.String:
		p.advance()
		return p.tree.Push(ast.Node{Kind: ast.KString, Str: tok.Value, Span: tok.Span})

	case tok.Kind == tokens.Template:
		p.advance()
		return p.parseTemplateLiteral(tok)

	case tok.Kind == tokens.Identifier:
		return p.parseIdentifierOrCall()

	case tok.Kind == tokens.Bracket && (tok.Value == "(" || tok.Value == "["):
		return p.parseBracketedPrimary()

	default:
		p.advance()
		return p.errNode("unexpected token " + tok.String())
	}
}

func (p *Parser) parseBracketedPrimary() ast.Ref {
	open := p.advance()
	leftBracket := open.Value[0]

	first := p.parseTernary()

	if p.cur().IsOperator("..") {
		p.advance()
		second := p.parseTernary()
		rightBracket := byte(')')
		if p.cur().Kind == tokens.Bracket && (p.cur().Value == "]" || p.cur().Value == ")") {
			rightBracket = p.cur().Value[0]
			p.advance()
		}
		return p.tree.Push(ast.Node{
			Kind: ast.KInterval, A: first, B: second,
			LeftBracket: leftBracket, RightBracket: rightBracket,
		})
	}

	if leftBracket == '(' {
		if !(p.cur().Kind == tokens.Bracket && p.cur().Value == ")") {
			return p.errNode("expected ')'")
		}
		p.advance()
		return p.tree.Push(ast.Node{Kind: ast.KParenthesized, A: first})
	}

	items := []ast.Ref{first}
	for p.cur().IsOperator(",") {
		p.advance()
		if p.cur().Kind == tokens.Bracket && p.cur().Value == "]" {
			break
		}
		items = append(items, p.parseTernary())
	}
	if !(p.cur().Kind == tokens.Bracket && p.cur().Value == "]") {
		return p.errNode("expected ']'")
	}
	p.advance()
	return p.tree.Push(ast.Node{Kind: ast.KArray, Items: items})
}

func (p *Parser) parseIdentifierOrCall() ast.Ref {
	tok := p.advance()
	name := tok.Value

	switch {
	case name == "$":
		return p.tree.Push(ast.Node{Kind: ast.KPointer, Span: tok.Span})
	case name == "$root":
		return p.tree.Push(ast.Node{Kind: ast.KRoot, Span: tok.Span})
	case strings.HasPrefix(name, "#"):
		return p.tree.Push(ast.Node{Kind: ast.KPointer, Str: name, Span: tok.Span})
	}

	if p.cur().Kind == tokens.Bracket && p.cur().Value == "(" {
		p.advance()
		args := p.parseArgs()
		if !(p.cur().Kind == tokens.Bracket && p.cur().Value == ")") {
			return p.errNode("expected ')' to close call to " + name)
		}
		p.advance()
		if closureArityBuiltins[name] && len(args) > 0 {
			last := len(args) - 1
			args[last] = p.tree.Push(ast.Node{Kind: ast.KClosure, A: args[last]})
		}
		return p.tree.Push(ast.Node{Kind: ast.KFunctionCall, CallKind: ast.CallBuiltin, Str: name, Items: args, Span: tok.Span})
	}

	return p.tree.Push(ast.Node{Kind: ast.KIdentifier, Str: name, Span: tok.Span})
}

func (p *Parser) parseArgs() []ast.Ref {
	var args []ast.Ref
	if p.cur().Kind == tokens.Bracket && p.cur().Value == ")" {
		return args
	}
	args = append(args, p.parseTernary())
	for p.cur().IsOperator(",") {
		p.advance()
		args = append(args, p.parseTernary())
	}
	return args
}

func (p *Parser) parsePostfix(base ast.Ref) ast.Ref {
	for {
		tok := p.cur()
		switch {
		case tok.IsOperator("."):
			p.advance()
			prop := p.cur()
			if prop.Kind != tokens.Identifier {
				return p.errNode("expected property name after '.'")
			}
			p.advance()
			propRef := p.tree.Push(ast.Node{Kind: ast.KString, Str: prop.Value})
			base = p.tree.Push(ast.Node{Kind: ast.KMember, A: base, B: propRef})

		case tok.Kind == tokens.Bracket && tok.Value == "[":
			p.advance()
			if p.cur().IsOperator(":") {
				p.advance()
				to := ast.RefNone
				if !(p.cur().Kind == tokens.Bracket && p.cur().Value == "]") {
					to = p.parseTernary()
				}
				if !(p.cur().Kind == tokens.Bracket && p.cur().Value == "]") {
					return p.errNode("expected ']'")
				}
				p.advance()
				base = p.tree.Push(ast.Node{Kind: ast.KSlice, A: base, B: ast.RefNone, C: to})
				continue
			}
			first := p.parseTernary()
			if p.cur().IsOperator(":") {
				p.advance()
				to := ast.RefNone
				if !(p.cur().Kind == tokens.Bracket && p.cur().Value == "]") {
					to = p.parseTernary()
				}
				if !(p.cur().Kind == tokens.Bracket && p.cur().Value == "]") {
					return p.errNode("expected ']'")
				}
				p.advance()
				base = p.tree.Push(ast.Node{Kind: ast.KSlice, A: base, B: first, C: to})
				continue
			}
			if !(p.cur().Kind == tokens.Bracket && p.cur().Value == "]") {
				return p.errNode("expected ']'")
			}
			p.advance()
			base = p.tree.Push(ast.Node{Kind: ast.KMember, A: base, B: first})

		case tok.Kind == tokens.Bracket && tok.Value == "(":
			p.advance()
			args := p.parseArgs()
			if !(p.cur().Kind == tokens.Bracket && p.cur().Value == ")") {
				return p.errNode("expected ')'")
			}
			p.advance()
			base = p.tree.Push(ast.Node{Kind: ast.KFunctionCall, CallKind: ast.CallMethod, A: base, Items: args})

		default:
			return base
		}
	}
}

func (p *Parser) parseTemplateLiteral(tok tokens.Instance) ast.Ref {
	raw := []rune(tok.Value)
	var parts []ast.TemplatePart
	var text strings.Builder
	i := 0
	for i < len(raw) {
		if raw[i] == '$' && i+1 < len(raw) && raw[i+1] == '{' {
			if text.Len() > 0 {
				parts = append(parts, ast.TemplatePart{Text: text.String()})
				text.Reset()
			}
			i += 2
			depth := 1
			start := i
			for i < len(raw) && depth > 0 {
				if raw[i] == '{' {
					depth++
				} else if raw[i] == '}' {
					depth--
					if depth == 0 {
						break
					}
				}
				i++
			}
			exprSrc := string(raw[start:i])
			i++ // skip closing '}'
			exprToks, err := lexer.Tokenize(exprSrc)
			if err != nil {
				parts = append(parts, ast.TemplatePart{IsExpr: true, Expr: p.errNode(err.Error())})
				continue
			}
			exprRef := subParse(p.tree, exprToks)
			parts = append(parts, ast.TemplatePart{IsExpr: true, Expr: exprRef})
			continue
		}
		text.WriteRune(raw[i])
		i++
	}
	if text.Len() > 0 {
		parts = append(parts, ast.TemplatePart{Text: text.String()})
	}
	return p.tree.Push(ast.Node{Kind: ast.KTemplateString, Parts: parts, Span: tok.Span})
}
