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

package vm

import (
	"github.com/decisimo/decisimo/opcode"
	"github.com/decisimo/decisimo/value"
	"github.com/decisimo/decisimo/xerr"
)

func (m *VM) execClosure(in opcode.Instruction) error {
	iterable, err := m.pop()
	if err != nil {
		return err
	}
	if !iterable.IsArray() {
		return xerr.ErrValueCast(iterable.Type().String(), "array")
	}
	items := iterable.Items()

	switch in.Name {
	case "all":
		for _, it := range items {
			r, err := m.runClosureBody(in.Body, it)
			if err != nil {
				return err
			}
			if !r.Truthy() {
				m.push(value.Bool(false))
				return nil
			}
		}
		m.push(value.Bool(true))

	case "some":
		for _, it := range items {
			r, err := m.runClosureBody(in.Body, it)
			if err != nil {
				return err
			}
			if r.Truthy() {
				m.push(value.Bool(true))
				return nil
			}
		}
		m.push(value.Bool(false))

	case "none":
		for _, it := range items {
			r, err := m.runClosureBody(in.Body, it)
			if err != nil {
				return err
			}
			if r.Truthy() {
				m.push(value.Bool(false))
				return nil
			}
		}
		m.push(value.Bool(true))

	case "one":
		count := 0
		for _, it := range items {
			r, err := m.runClosureBody(in.Body, it)
			if err != nil {
				return err
			}
			if r.Truthy() {
				count++
			}
		}
		m.push(value.Bool(count == 1))

	case "count":
		count := 0
		for _, it := range items {
			r, err := m.runClosureBody(in.Body, it)
			if err != nil {
				return err
			}
			if r.Truthy() {
				count++
			}
		}
		m.push(value.NumberFromInt(int64(count)))

	case "filter":
		var out []value.Variable
		for _, it := range items {
			r, err := m.runClosureBody(in.Body, it)
			if err != nil {
				return err
			}
			if r.Truthy() {
				out = append(out, it)
			}
		}
		m.push(value.FromArray(out))

	case "map":
		out := make([]value.Variable, len(items))
		for i, it := range items {
			r, err := m.runClosureBody(in.Body, it)
			if err != nil {
				return err
			}
			out[i] = r
		}
		m.push(value.FromArray(out))

	case "flatMap":
		var out []value.Variable
		for _, it := range items {
			r, err := m.runClosureBody(in.Body, it)
			if err != nil {
				return err
			}
			if r.IsArray() {
				out = append(out, r.Items()...)
			} else {
				out = append(out, r)
			}
		}
		m.push(value.FromArray(out))

	default:
		return xerr.ErrUnknownFunction(in.Name)
	}
	return nil
}

// runClosureBody evaluates body with item bound as the innermost `$`,
// using a fresh operand stack so the closure can't disturb the caller's
// in-progress evaluation.
func (m *VM) runClosureBody(body []opcode.Instruction, item value.Variable) (value.Variable, error) {
	saved := m.stack
	m.stack = nil
	m.pointer = append(m.pointer, item)

	err := m.exec(body)

	m.pointer = m.pointer[:len(m.pointer)-1]
	if err != nil {
		m.stack = saved
		return value.Null(), err
	}
	if len(m.stack) != 1 {
		n := len(m.stack)
		m.stack = saved
		return value.Null(), xerr.ErrStackOutOfBounds(n)
	}
	result := m.stack[0]
	m.stack = saved
	return result, nil
}
