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

// Package compiler lowers an expression AST into opcode bytecode.
package compiler

import (
	"github.com/decisimo/decisimo/ast"
	"github.com/decisimo/decisimo/opcode"
	"github.com/decisimo/decisimo/value"
	"github.com/decisimo/decisimo/xerr"
)

var closureVerbs = map[string]bool{
	"all": true, "some": true, "none": true, "one": true,
	"filter": true, "map": true, "flatMap": true, "count": true,
}

// directArity pins the expected argument count for builtins that the
// compiler validates eagerly, before ever reaching the VM. Variadic
// builtins (sum, avg, min, max, ...) are left unchecked here and
// validated at runtime instead.
var directArity = map[string]int{
	"len": 1, "abs": 1, "upper": 1, "lower": 1, "uppercase": 1, "lowercase": 1,
	"flatten": 1, "keys": 1, "string": 1, "number": 1, "isNumeric": 1,
	"startsWith": 2, "endsWith": 2, "contains": 2, "matches": 2, "extract": 2,
}

type compiler struct {
	instrs []opcode.Instruction
	tree   *ast.Tree
}

// Compile lowers the expression rooted at root into a flat instruction
// stream.
func Compile(tree *ast.Tree, root ast.Ref) ([]opcode.Instruction, error) {
	if tree.HasErrors() {
		return nil, xerr.ErrUnexpectedErrorNode("tree contains unresolved parse errors")
	}
	c := &compiler{tree: tree}
	if err := c.emit(root); err != nil {
		return nil, err
	}
	return c.instrs, nil
}

func (c *compiler) push(i opcode.Instruction) int {
	c.instrs = append(c.instrs, i)
	return len(c.instrs) - 1
}

func (c *compiler) patchJump(idx int) {
	c.instrs[idx].Offset = len(c.instrs) - idx - 1
}

func (c *compiler) emit(ref ast.Ref) error {
	n := c.tree.Get(ref)
	switch n.Kind {
	case ast.KNull:
		c.push(opcode.Instruction{Code: opcode.Push, Literal: value.Null()})
	case ast.KBool:
		c.push(opcode.Instruction{Code: opcode.Push, Literal: value.Bool(n.Bool)})
	case ast.KNumber:
		c.push(opcode.Instruction{Code: opcode.Push, Literal: value.Number(n.Num)})
	case ast.KString:
		c.push(opcode.Instruction{Code: opcode.Push, Literal: value.String(n.Str)})
	case ast.KTemplateString:
		return c.emitTemplate(n)
	case ast.KPointer:
		c.push(opcode.Instruction{Code: opcode.Pointer, Name: n.Str})
	case ast.KRoot:
		c.push(opcode.Instruction{Code: opcode.FetchRootEnv})
	case ast.KIdentifier:
		c.push(opcode.Instruction{Code: opcode.FetchEnv, Name: n.Str})
	case ast.KParenthesized:
		return c.emit(n.A)
	case ast.KArray:
		for _, item := range n.Items {
			if err := c.emit(item); err != nil {
				return err
			}
		}
		c.push(opcode.Instruction{Code: opcode.Array, Count: len(n.Items)})
	case ast.KMember:
		if err := c.emit(n.A); err != nil {
			return err
		}
		if err := c.emit(n.B); err != nil {
			return err
		}
		c.push(opcode.Instruction{Code: opcode.Fetch})
	case ast.KSlice:
		if err := c.emit(n.A); err != nil {
			return err
		}
		if err := c.emitOptional(n.B); err != nil {
			return err
		}
		if err := c.emitOptional(n.C); err != nil {
			return err
		}
		c.push(opcode.Instruction{Code: opcode.Slice})
	case ast.KInterval:
		if err := c.emit(n.A); err != nil {
			return err
		}
		if err := c.emit(n.B); err != nil {
			return err
		}
		c.push(opcode.Instruction{
			Code: opcode.Interval,
			LeftInclusive:  n.LeftBracket == '[',
			RightInclusive: n.RightBracket == ']',
		})
	case ast.KConditional:
		return c.emitConditional(n)
	case ast.KUnary:
		return c.emitUnary(n)
	case ast.KBinary:
		return c.emitBinary(n)
	case ast.KFunctionCall:
		return c.emitCall(n)
	case ast.KClosure:
		return c.emit(n.A)
	case ast.KError:
		return xerr.ErrUnexpectedErrorNode(n.Str)
	default:
		return xerr.ErrUnexpectedErrorNode("unhandled ast kind")
	}
	return nil
}

func (c *compiler) emitOptional(ref ast.Ref) error {
	if ref == ast.RefNone {
		c.push(opcode.Instruction{Code: opcode.Push, Literal: value.Null()})
		return nil
	}
	return c.emit(ref)
}

func (c *compiler) emitTemplate(n ast.Node) error {
	if len(n.Parts) == 0 {
		c.push(opcode.Instruction{Code: opcode.Push, Literal: value.Null()})
		return nil
	}
	if len(n.Parts) == 1 && n.Parts[0].IsExpr {
		return c.emit(n.Parts[0].Expr)
	}
	for _, part := range n.Parts {
		if part.IsExpr {
			if err := c.emit(part.Expr); err != nil {
				return err
			}
		} else {
			c.push(opcode.Instruction{Code: opcode.Push, Literal: value.String(part.Text)})
		}
	}
	c.push(opcode.Instruction{Code: opcode.Call, Name: "$templateJoin", Count: len(n.Parts)})
	return nil
}

func (c *compiler) emitConditional(n ast.Node) error {
	if err := c.emit(n.A); err != nil {
		return err
	}
	jFalse := c.push(opcode.Instruction{Code: opcode.JumpIfFalse})
	if err := c.emit(n.B); err != nil {
		return err
	}
	jEnd := c.push(opcode.Instruction{Code: opcode.Jump})
	c.patchJump(jFalse)
	if err := c.emit(n.C); err != nil {
		return err
	}
	c.patchJump(jEnd)
	return nil
}

func (c *compiler) emitUnary(n ast.Node) error {
	if err := c.emit(n.A); err != nil {
		return err
	}
	switch n.Op {
	case "not", "!":
		c.push(opcode.Instruction{Code: opcode.Not})
	case "-":
		c.push(opcode.Instruction{Code: opcode.Negate})
	case "+":
		// unary plus is a numeric identity; nothing to emit.
	default:
		return xerr.ErrUnknownUnaryOperator(n.Op)
	}
	return nil
}

func (c *compiler) emitBinary(n ast.Node) error {
	switch n.Op {
	case "and":
		if err := c.emit(n.A); err != nil {
			return err
		}
		jFalse := c.push(opcode.Instruction{Code: opcode.JumpIfFalse})
		if err := c.emit(n.B); err != nil {
			return err
		}
		jEnd := c.push(opcode.Instruction{Code: opcode.Jump})
		c.patchJump(jFalse)
		c.push(opcode.Instruction{Code: opcode.Push, Literal: value.Bool(false)})
		c.patchJump(jEnd)
		return nil
	case "or":
		if err := c.emit(n.A); err != nil {
			return err
		}
		jTrue := c.push(opcode.Instruction{Code: opcode.JumpIfTrue})
		if err := c.emit(n.B); err != nil {
			return err
		}
		jEnd := c.push(opcode.Instruction{Code: opcode.Jump})
		c.patchJump(jTrue)
		c.push(opcode.Instruction{Code: opcode.Push, Literal: value.Bool(true)})
		c.patchJump(jEnd)
		return nil
	case "??":
		if err := c.emit(n.A); err != nil {
			return err
		}
		if err := c.emit(n.B); err != nil {
			return err
		}
		c.push(opcode.Instruction{Code: opcode.Call, Name: "$nullish", Count: 2})
		return nil
	}

	if err := c.emit(n.A); err != nil {
		return err
	}
	if err := c.emit(n.B); err != nil {
		return err
	}
	switch n.Op {
	case "==":
		c.push(opcode.Instruction{Code: opcode.Equal})
	case "!=":
		c.push(opcode.Instruction{Code: opcode.Equal})
		c.push(opcode.Instruction{Code: opcode.Not})
	case "<":
		c.push(opcode.Instruction{Code: opcode.Less})
	case ">":
		c.push(opcode.Instruction{Code: opcode.More})
	case "<=":
		c.push(opcode.Instruction{Code: opcode.LessOrEqual})
	case ">=":
		c.push(opcode.Instruction{Code: opcode.MoreOrEqual})
	case "in":
		c.push(opcode.Instruction{Code: opcode.In})
	case "not in":
		c.push(opcode.Instruction{Code: opcode.In})
		c.push(opcode.Instruction{Code: opcode.Not})
	case "+":
		c.push(opcode.Instruction{Code: opcode.Add})
	case "-":
		c.push(opcode.Instruction{Code: opcode.Subtract})
	case "*":
		c.push(opcode.Instruction{Code: opcode.Multiply})
	case "/":
		c.push(opcode.Instruction{Code: opcode.Divide})
	case "%":
		c.push(opcode.Instruction{Code: opcode.Modulo})
	case "^":
		c.push(opcode.Instruction{Code: opcode.Exponent})
	default:
		return xerr.ErrUnknownBinaryOperator(n.Op)
	}
	return nil
}

func (c *compiler) emitCall(n ast.Node) error {
	if n.CallKind == ast.CallMethod {
		// `x.method(args...)` parses as a call on a Member node (x.method);
		// desugar it into the same shape as a builtin call with the
		// receiver prepended as the first argument.
		member := c.tree.Get(n.A)
		if member.Kind != ast.KMember {
			return xerr.ErrUnexpectedErrorNode("method call on non-member expression")
		}
		prop := c.tree.Get(member.B)
		if prop.Kind != ast.KString {
			return xerr.ErrUnexpectedErrorNode("dynamic method names are not supported")
		}
		args := append([]ast.Ref{member.A}, n.Items...)
		return c.emitBuiltinCall(prop.Str, args)
	}
	return c.emitBuiltinCall(n.Str, n.Items)
}

func (c *compiler) emitBuiltinCall(name string, argRefs []ast.Ref) error {
	if closureVerbs[name] {
		return c.emitClosureVerb(name, argRefs)
	}

	if want, ok := directArity[name]; ok && want != len(argRefs) {
		return xerr.ErrInvalidFunctionCall(name, "wrong number of arguments")
	}

	switch name {
	case "len":
		if err := c.emit(argRefs[0]); err != nil {
			return err
		}
		c.push(opcode.Instruction{Code: opcode.Len})
		return nil
	case "keys":
		if err := c.emit(argRefs[0]); err != nil {
			return err
		}
		c.push(opcode.Instruction{Code: opcode.Keys})
		return nil
	case "flatten":
		if err := c.emit(argRefs[0]); err != nil {
			return err
		}
		c.push(opcode.Instruction{Code: opcode.Flatten})
		return nil
	case "contains":
		if err := c.emit(argRefs[0]); err != nil {
			return err
		}
		if err := c.emit(argRefs[1]); err != nil {
			return err
		}
		c.push(opcode.Instruction{Code: opcode.Contains})
		return nil
	case "number":
		return c.emitConversion(argRefs, opcode.ConvNumber)
	case "string":
		return c.emitConversion(argRefs, opcode.ConvString)
	case "isNumeric":
		if err := c.emit(argRefs[0]); err != nil {
			return err
		}
		c.push(opcode.Instruction{Code: opcode.TypeCheck})
		return nil
	case "date", "time", "duration", "year", "dayOfWeek", "dayOfMonth", "dayOfYear",
		"weekOfYear", "monthOfYear", "monthString", "dateString", "weekdayString",
		"startOf", "endOf":
		for _, a := range argRefs {
			if err := c.emit(a); err != nil {
				return err
			}
		}
		c.push(opcode.Instruction{Code: opcode.DateFunction, Name: name, Count: len(argRefs)})
		return nil
	default:
		for _, a := range argRefs {
			if err := c.emit(a); err != nil {
				return err
			}
		}
		c.push(opcode.Instruction{Code: opcode.Call, Name: name, Count: len(argRefs)})
		return nil
	}
}

func (c *compiler) emitConversion(argRefs []ast.Ref, to opcode.ConvTarget) error {
	if err := c.emit(argRefs[0]); err != nil {
		return err
	}
	c.push(opcode.Instruction{Code: opcode.TypeConversion, ConvTo: to})
	return nil
}

// emitClosureVerb compiles the iterable eagerly and the closure body into
// its own sub-program, which the VM re-runs once per element.
func (c *compiler) emitClosureVerb(name string, argRefs []ast.Ref) error {
	if len(argRefs) != 2 {
		return xerr.ErrInvalidFunctionCall(name, "expects exactly 2 arguments: iterable and closure")
	}
	if err := c.emit(argRefs[0]); err != nil {
		return err
	}
	closure := c.tree.Get(argRefs[1])
	body, err := Compile(c.tree, closure.A)
	if err != nil {
		return err
	}
	c.push(opcode.Instruction{Code: opcode.Closure, Name: name, Body: body})
	return nil
}
