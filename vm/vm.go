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

// Package vm executes compiled bytecode against an environment Variable.
package vm

import (
	"github.com/decisimo/decisimo/opcode"
	"github.com/decisimo/decisimo/value"
	"github.com/decisimo/decisimo/xerr"
)

// VM is a re-entrant stack machine: Run resets all mutable state, so a
// single VM can be pooled and reused across many evaluations.
type VM struct {
	stack   []value.Variable
	root    value.Variable
	pointer []value.Variable // innermost-active closure item, stack of nested iterations
}

func New() *VM {
	return &VM{}
}

// Run executes instrs against root (the top-level `$root` / identifier
// environment) and returns the single remaining value on the stack.
func (m *VM) Run(instrs []opcode.Instruction, root value.Variable) (value.Variable, error) {
	m.stack = m.stack[:0]
	m.pointer = m.pointer[:0]
	m.root = root

	if err := m.exec(instrs); err != nil {
		return value.Null(), err
	}
	if len(m.stack) != 1 {
		return value.Null(), xerr.ErrStackOutOfBounds(len(m.stack))
	}
	return m.stack[0], nil
}

// RunUnary is Run with the implicit `$` pointer seeded to candidate,
// for the condition-shorthand dialect where `$` is never bound by an
// enclosing closure.
func (m *VM) RunUnary(instrs []opcode.Instruction, root, candidate value.Variable) (value.Variable, error) {
	m.stack = m.stack[:0]
	m.pointer = []value.Variable{candidate}
	m.root = root

	if err := m.exec(instrs); err != nil {
		return value.Null(), err
	}
	if len(m.stack) != 1 {
		return value.Null(), xerr.ErrStackOutOfBounds(len(m.stack))
	}
	return m.stack[0], nil
}

func (m *VM) push(v value.Variable) { m.stack = append(m.stack, v) }

func (m *VM) pop() (value.Variable, error) {
	if len(m.stack) == 0 {
		return value.Null(), xerr.ErrStackOutOfBounds(0)
	}
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v, nil
}

func (m *VM) peek() (value.Variable, error) {
	if len(m.stack) == 0 {
		return value.Null(), xerr.ErrStackOutOfBounds(0)
	}
	return m.stack[len(m.stack)-1], nil
}

func (m *VM) exec(instrs []opcode.Instruction) error {
	pc := 0
	for pc < len(instrs) {
		in := instrs[pc]
		switch in.Code {
		case opcode.Push:
			m.push(in.Literal)

		case opcode.Pop:
			if _, err := m.pop(); err != nil {
				return err
			}

		case opcode.Not:
			v, err := m.pop()
			if err != nil {
				return err
			}
			m.push(value.Bool(!v.Truthy()))

		case opcode.Negate:
			v, err := m.pop()
			if err != nil {
				return err
			}
			if !v.IsNumber() {
				return xerr.ErrNumberConversion(v.Type().String())
			}
			m.push(value.Number(v.AsNumber().Neg()))

		case opcode.Equal:
			b, err := m.pop()
			if err != nil {
				return err
			}
			a, err := m.pop()
			if err != nil {
				return err
			}
			m.push(value.Bool(a.Equal(b)))

		case opcode.Less, opcode.More, opcode.LessOrEqual, opcode.MoreOrEqual:
			if err := m.execCompare(in.Code); err != nil {
				return err
			}

		case opcode.In:
			container, err := m.pop()
			if err != nil {
				return err
			}
			needle, err := m.pop()
			if err != nil {
				return err
			}
			m.push(value.Bool(container.Contains(needle)))

		case opcode.Add, opcode.Subtract, opcode.Multiply, opcode.Divide, opcode.Modulo, opcode.Exponent:
			if err := m.execArith(in.Code); err != nil {
				return err
			}

		case opcode.Jump:
			pc += in.Offset

		case opcode.JumpIfTrue:
			v, err := m.pop()
			if err != nil {
				return err
			}
			if v.Truthy() {
				pc += in.Offset
				continue
			}

		case opcode.JumpIfFalse:
			v, err := m.pop()
			if err != nil {
				return err
			}
			if !v.Truthy() {
				pc += in.Offset
				continue
			}

		case opcode.FetchRootEnv:
			m.push(m.root)

		case opcode.FetchEnv:
			if m.root.IsObject() {
				if v, ok := m.root.Object().Get(in.Name); ok {
					m.push(v)
					break
				}
			}
			m.push(value.Null())

		case opcode.FetchFast:
			cur := m.root
			for _, seg := range in.Segments {
				next, ok := cur.Dot(seg)
				if !ok {
					cur = value.Null()
					break
				}
				cur = next
			}
			m.push(cur)

		case opcode.Fetch:
			if err := m.execFetch(); err != nil {
				return err
			}

		case opcode.Slice:
			if err := m.execSlice(); err != nil {
				return err
			}

		case opcode.Interval:
			right, err := m.pop()
			if err != nil {
				return err
			}
			left, err := m.pop()
			if err != nil {
				return err
			}
			m.push(value.NewInterval(left, right, in.LeftInclusive, in.RightInclusive))

		case opcode.Array:
			items := make([]value.Variable, in.Count)
			for i := in.Count - 1; i >= 0; i-- {
				v, err := m.pop()
				if err != nil {
					return err
				}
				items[i] = v
			}
			m.push(value.FromArray(items))

		case opcode.Len:
			v, err := m.pop()
			if err != nil {
				return err
			}
			m.push(value.NumberFromInt(int64(v.Len())))

		case opcode.Keys:
			v, err := m.pop()
			if err != nil {
				return err
			}
			if !v.IsObject() {
				return xerr.ErrValueCast(v.Type().String(), "object")
			}
			keys := v.Object().Keys()
			items := make([]value.Variable, len(keys))
			for i, k := range keys {
				items[i] = value.String(k)
			}
			m.push(value.FromArray(items))

		case opcode.Flatten:
			v, err := m.pop()
			if err != nil {
				return err
			}
			m.push(flatten(v))

		case opcode.Contains:
			needle, err := m.pop()
			if err != nil {
				return err
			}
			container, err := m.pop()
			if err != nil {
				return err
			}
			m.push(value.Bool(container.Contains(needle)))

		case opcode.TypeConversion:
			if err := m.execConversion(in.ConvTo); err != nil {
				return err
			}

		case opcode.TypeCheck:
			v, err := m.pop()
			if err != nil {
				return err
			}
			m.push(value.Bool(isNumeric(v)))

		case opcode.DateFunction:
			args := make([]value.Variable, in.Count)
			for i := in.Count - 1; i >= 0; i-- {
				v, err := m.pop()
				if err != nil {
					return err
				}
				args[i] = v
			}
			result, err := callDateFunction(in.Name, args)
			if err != nil {
				return err
			}
			m.push(result)

		case opcode.Pointer:
			if len(m.pointer) == 0 {
				return xerr.ErrMissingContextReference()
			}
			m.push(m.pointer[len(m.pointer)-1])

		case opcode.Call:
			if err := m.execCall(in); err != nil {
				return err
			}

		case opcode.Closure:
			if err := m.execClosure(in); err != nil {
				return err
			}

		case opcode.Begin, opcode.End, opcode.IncrementIt, opcode.IncrementCount, opcode.GetCount, opcode.GetLen, opcode.JumpIfEnd:
			// Reserved for a future flattened-loop codegen path; the
			// compiler currently lowers every closure-arity builtin
			// through the single Closure opcode above instead.
			return xerr.ErrOpcode("iteration primitive", "not emitted by this compiler")

		default:
			return xerr.ErrOpcode("unknown", "unrecognized opcode")
		}
		pc++
	}
	return nil
}

func (m *VM) execFetch() error {
	prop, err := m.pop()
	if err != nil {
		return err
	}
	base, err := m.pop()
	if err != nil {
		return err
	}
	switch {
	case base.IsObject() && prop.IsString():
		v, ok := base.Object().Get(prop.AsString())
		if !ok {
			m.push(value.Null())
			return nil
		}
		m.push(v)
	case base.IsArray() && prop.IsNumber():
		idx := int(prop.AsNumber().IntPart())
		items := base.Items()
		if idx < 0 {
			idx += len(items)
		}
		if idx < 0 || idx >= len(items) {
			m.push(value.Null())
			return nil
		}
		m.push(items[idx])
	default:
		m.push(value.Null())
	}
	return nil
}

func (m *VM) execSlice() error {
	to, err := m.pop()
	if err != nil {
		return err
	}
	from, err := m.pop()
	if err != nil {
		return err
	}
	base, err := m.pop()
	if err != nil {
		return err
	}

	var length int
	switch {
	case base.IsArray():
		length = len(base.Items())
	case base.IsString():
		length = len([]rune(base.AsString()))
	default:
		m.push(value.Null())
		return nil
	}

	start, end := 0, length
	if from.IsNumber() {
		start = normalizeIndex(int(from.AsNumber().IntPart()), length)
	}
	if to.IsNumber() {
		end = normalizeIndex(int(to.AsNumber().IntPart()), length)
	}
	if start > end {
		start = end
	}

	if base.IsArray() {
		m.push(value.FromArray(base.Items()[start:end]))
	} else {
		runes := []rune(base.AsString())
		m.push(value.String(string(runes[start:end])))
	}
	return nil
}

func normalizeIndex(i, length int) int {
	if i < 0 {
		i += length
	}
	if i < 0 {
		return 0
	}
	if i > length {
		return length
	}
	return i
}

func flatten(v value.Variable) value.Variable {
	if !v.IsArray() {
		return v
	}
	var out []value.Variable
	for _, it := range v.Items() {
		if it.IsArray() {
			flat := flatten(it)
			out = append(out, flat.Items()...)
		} else {
			out = append(out, it)
		}
	}
	return value.FromArray(out)
}

func isNumeric(v value.Variable) bool {
	if v.IsNumber() {
		return true
	}
	if v.IsString() {
		_, err := parseDecimalLenient(v.AsString())
		return err == nil
	}
	return false
}
