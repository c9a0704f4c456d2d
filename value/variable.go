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

// Package value implements Variable, the dynamically-typed JSON-like
// value that flows through the expression VM and the decision graph.
// Arrays and objects are reference types (backed by a pointer to shared
// storage) so that mutating operations like dot_insert are visible
// through every alias of the same Variable, mirroring the interior
// mutability the engine this was modeled on relies on for cheap cloning.
package value

import (
	"github.com/shopspring/decimal"
)

// Type tags the kind of value a Variable holds.
type Type int

const (
	TNull Type = iota
	TBool
	TNumber
	TString
	TArray
	TObject
	// TInterval is a [from, to] range with inclusive/exclusive endpoints,
	// produced by interval literals and consumed by `in`.
	TInterval
)

func (t Type) String() string {
	switch t {
	case TNull:
		return "null"
	case TBool:
		return "bool"
	case TNumber:
		return "number"
	case TString:
		return "string"
	case TArray:
		return "array"
	case TObject:
		return "object"
	case TInterval:
		return "interval"
	default:
		return "unknown"
	}
}

// Interval is an inclusive/exclusive numeric range.
type Interval struct {
	Left, Right               Variable
	LeftInclusive, RightInclusive bool
}

// Variable is a tagged union over the JSON-ish value model shared by the
// expression engine and the decision graph.
type Variable struct {
	typ Type

	b    bool
	n    decimal.Decimal
	s    string
	arr  *Array
	obj  *Object
	ival *Interval
}

// Array is shared, mutable backing storage for a Variable of kind TArray.
type Array struct {
	items []Variable
}

func Null() Variable                 { return Variable{typ: TNull} }
func Bool(b bool) Variable            { return Variable{typ: TBool, b: b} }
func Number(n decimal.Decimal) Variable { return Variable{typ: TNumber, n: n} }
func NumberFromInt(i int64) Variable  { return Number(decimal.NewFromInt(i)) }
func NumberFromFloat(f float64) Variable { return Number(decimal.NewFromFloat(f)) }
func String(s string) Variable        { return Variable{typ: TString, s: s} }

func EmptyArray() Variable { return Variable{typ: TArray, arr: &Array{}} }

func FromArray(items []Variable) Variable {
	cp := make([]Variable, len(items))
	copy(cp, items)
	return Variable{typ: TArray, arr: &Array{items: cp}}
}

func EmptyObject() Variable { return Variable{typ: TObject, obj: NewObject()} }

func FromObject(o *Object) Variable { return Variable{typ: TObject, obj: o} }

func NewInterval(left, right Variable, leftIncl, rightIncl bool) Variable {
	return Variable{typ: TInterval, ival: &Interval{Left: left, Right: right, LeftInclusive: leftIncl, RightInclusive: rightIncl}}
}

func (v Variable) Type() Type     { return v.typ }
func (v Variable) IsNull() bool   { return v.typ == TNull }
func (v Variable) IsBool() bool   { return v.typ == TBool }
func (v Variable) IsNumber() bool { return v.typ == TNumber }
func (v Variable) IsString() bool { return v.typ == TString }
func (v Variable) IsArray() bool  { return v.typ == TArray }
func (v Variable) IsObject() bool { return v.typ == TObject }
func (v Variable) IsInterval() bool { return v.typ == TInterval }

func (v Variable) AsBool() bool               { return v.b }
func (v Variable) AsNumber() decimal.Decimal  { return v.n }
func (v Variable) AsString() string           { return v.s }
func (v Variable) AsInterval() *Interval      { return v.ival }

// Items returns the backing slice of an array Variable. Callers must not
// retain it past the next mutation of v, since arrays are shared.
func (v Variable) Items() []Variable {
	if v.arr == nil {
		return nil
	}
	return v.arr.items
}

func (v Variable) Len() int {
	switch v.typ {
	case TArray:
		return len(v.Items())
	case TString:
		return len([]rune(v.s))
	case TObject:
		return v.obj.Len()
	default:
		return 0
	}
}

// Push appends to an array Variable in place (shared storage mutates).
func (v Variable) Push(item Variable) {
	v.arr.items = append(v.arr.items, item)
}

// Set replaces the element at index i in place.
func (v Variable) Set(i int, item Variable) {
	v.arr.items[i] = item
}

func (v Variable) Object() *Object {
	return v.obj
}

// Truthy implements the engine's coercion-to-condition rule: null and
// false are falsy, every other value (including 0, "", empty arrays and
// objects) is truthy.
func (v Variable) Truthy() bool {
	switch v.typ {
	case TNull:
		return false
	case TBool:
		return v.b
	default:
		return true
	}
}

// DeepClone recursively copies v, breaking all aliasing with the
// original's array/object storage.
func (v Variable) DeepClone() Variable {
	switch v.typ {
	case TArray:
		items := make([]Variable, len(v.Items()))
		for i, it := range v.Items() {
			items[i] = it.DeepClone()
		}
		return FromArray(items)
	case TObject:
		clone := NewObject()
		for _, k := range v.obj.Keys() {
			val, _ := v.obj.Get(k)
			clone.Set(k, val.DeepClone())
		}
		return FromObject(clone)
	default:
		return v
	}
}

// Equal implements structural (not reference) equality.
func (v Variable) Equal(other Variable) bool {
	if v.typ != other.typ {
		// Numbers and numeric strings never compare equal across types;
		// null only equals null.
		return false
	}
	switch v.typ {
	case TNull:
		return true
	case TBool:
		return v.b == other.b
	case TNumber:
		return v.n.Equal(other.n)
	case TString:
		return v.s == other.s
	case TArray:
		a, b := v.Items(), other.Items()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	case TObject:
		if v.obj.Len() != other.obj.Len() {
			return false
		}
		for _, k := range v.obj.Keys() {
			a, ok := v.obj.Get(k)
			if !ok {
				return false
			}
			b, ok := other.obj.Get(k)
			if !ok || !a.Equal(b) {
				return false
			}
		}
		return true
	case TInterval:
		return v.ival.Left.Equal(other.ival.Left) && v.ival.Right.Equal(other.ival.Right) &&
			v.ival.LeftInclusive == other.ival.LeftInclusive && v.ival.RightInclusive == other.ival.RightInclusive
	default:
		return false
	}
}

// Contains implements interval/array/string/object membership for the
// `in` operator's right-hand side.
func (v Variable) Contains(needle Variable) bool {
	switch v.typ {
	case TInterval:
		if !needle.IsNumber() {
			return false
		}
		left := needle.n.Cmp(v.ival.Left.n)
		right := needle.n.Cmp(v.ival.Right.n)
		lowOK := left > 0 || (left == 0 && v.ival.LeftInclusive)
		highOK := right < 0 || (right == 0 && v.ival.RightInclusive)
		return lowOK && highOK
	case TArray:
		for _, it := range v.Items() {
			if it.Equal(needle) {
				return true
			}
		}
		return false
	case TString:
		if !needle.IsString() {
			return false
		}
		return containsSubstring(v.s, needle.s)
	case TObject:
		if !needle.IsString() {
			return false
		}
		_, ok := v.obj.Get(needle.s)
		return ok
	default:
		return false
	}
}

func containsSubstring(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	if len(needle) > len(haystack) {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}
