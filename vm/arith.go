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
	"strings"

	"github.com/shopspring/decimal"

	"github.com/decisimo/decisimo/opcode"
	"github.com/decisimo/decisimo/value"
	"github.com/decisimo/decisimo/xerr"
)

func parseDecimalLenient(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

func (m *VM) execCompare(code opcode.Code) error {
	b, err := m.pop()
	if err != nil {
		return err
	}
	a, err := m.pop()
	if err != nil {
		return err
	}

	var cmp int
	switch {
	case a.IsNumber() && b.IsNumber():
		cmp = a.AsNumber().Cmp(b.AsNumber())
	case a.IsString() && b.IsString():
		cmp = strings.Compare(a.AsString(), b.AsString())
	default:
		return xerr.ErrOpcode("compare", "operands are not both numbers or both strings")
	}

	var result bool
	switch code {
	case opcode.Less:
		result = cmp < 0
	case opcode.More:
		result = cmp > 0
	case opcode.LessOrEqual:
		result = cmp <= 0
	case opcode.MoreOrEqual:
		result = cmp >= 0
	}
	m.push(value.Bool(result))
	return nil
}

func (m *VM) execArith(code opcode.Code) error {
	b, err := m.pop()
	if err != nil {
		return err
	}
	a, err := m.pop()
	if err != nil {
		return err
	}

	if code == opcode.Add && a.IsString() && b.IsString() {
		m.push(value.String(a.AsString() + b.AsString()))
		return nil
	}
	if code == opcode.Add && a.IsArray() && b.IsArray() {
		m.push(value.FromArray(append(append([]value.Variable{}, a.Items()...), b.Items()...)))
		return nil
	}

	if !a.IsNumber() || !b.IsNumber() {
		return xerr.ErrNumberConversion(a.Type().String() + " " + b.Type().String())
	}
	an, bn := a.AsNumber(), b.AsNumber()

	switch code {
	case opcode.Add:
		m.push(value.Number(an.Add(bn)))
	case opcode.Subtract:
		m.push(value.Number(an.Sub(bn)))
	case opcode.Multiply:
		m.push(value.Number(an.Mul(bn)))
	case opcode.Divide:
		if bn.IsZero() {
			return xerr.ErrOpcode("divide", "division by zero")
		}
		m.push(value.Number(an.Div(bn)))
	case opcode.Modulo:
		if bn.IsZero() {
			return xerr.ErrOpcode("modulo", "division by zero")
		}
		m.push(value.Number(an.Mod(bn)))
	case opcode.Exponent:
		m.push(value.Number(an.Pow(bn)))
	}
	return nil
}

func (m *VM) execConversion(to opcode.ConvTarget) error {
	v, err := m.pop()
	if err != nil {
		return err
	}
	switch to {
	case opcode.ConvNumber:
		switch {
		case v.IsNumber():
			m.push(v)
		case v.IsString():
			d, err := parseDecimalLenient(v.AsString())
			if err != nil {
				return xerr.ErrNumberConversion(v.AsString())
			}
			m.push(value.Number(d))
		case v.IsBool():
			if v.AsBool() {
				m.push(value.NumberFromInt(1))
			} else {
				m.push(value.NumberFromInt(0))
			}
		default:
			return xerr.ErrNumberConversion(v.Type().String())
		}
	case opcode.ConvString:
		if v.IsString() {
			m.push(v)
			return nil
		}
		m.push(value.String(stringify(v)))
	case opcode.ConvBool:
		m.push(value.Bool(v.Truthy()))
	}
	return nil
}

func stringify(v value.Variable) string {
	switch v.Type() {
	case value.TNull:
		return "null"
	case value.TBool:
		if v.AsBool() {
			return "true"
		}
		return "false"
	case value.TNumber:
		return v.AsNumber().String()
	case value.TString:
		return v.AsString()
	default:
		data, err := v.ToJSON()
		if err != nil {
			return ""
		}
		return string(data)
	}
}
