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

package value

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// FromJSON decodes raw JSON into a Variable, preserving exact decimal
// textual precision for numbers (no float64 round-trip).
func FromJSON(raw []byte) (Variable, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return Null(), err
	}
	return FromAny(v)
}

// FromAny converts a decoded-JSON-shaped Go value (nil, bool,
// json.Number/float64/int, string, []any, map[string]any) into a
// Variable.
func FromAny(v any) (Variable, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return Null(), err
		}
		return Number(d), nil
	case float64:
		return Number(decimal.NewFromFloat(t)), nil
	case int:
		return NumberFromInt(int64(t)), nil
	case int64:
		return NumberFromInt(t), nil
	case string:
		return String(t), nil
	case []any:
		items := make([]Variable, len(t))
		for i, it := range t {
			cv, err := FromAny(it)
			if err != nil {
				return Null(), err
			}
			items[i] = cv
		}
		return FromArray(items), nil
	case map[string]any:
		obj := NewObject()
		for _, k := range orderedKeys(t) {
			cv, err := FromAny(t[k])
			if err != nil {
				return Null(), err
			}
			obj.Set(k, cv)
		}
		return FromObject(obj), nil
	case Variable:
		return t, nil
	default:
		return Null(), fmt.Errorf("value: unsupported Go type %T", v)
	}
}

// orderedKeys sorts keys so conversions from plain map[string]any (which
// has no inherent order) are at least deterministic across runs.
func orderedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// ToJSON renders v as standard JSON (no $refs envelope).
func (v Variable) ToJSON() ([]byte, error) {
	return json.Marshal(v.ToAny())
}

// ToAny converts v back into a plain Go value suitable for
// encoding/json, text/template, or handing to goja.
func (v Variable) ToAny() any {
	switch v.typ {
	case TNull:
		return nil
	case TBool:
		return v.b
	case TNumber:
		f, _ := v.n.Float64()
		if v.n.IsInteger() {
			i := v.n.IntPart()
			if decimal.NewFromInt(i).Equal(v.n) {
				return i
			}
		}
		return f
	case TString:
		return v.s
	case TArray:
		out := make([]any, len(v.Items()))
		for i, it := range v.Items() {
			out[i] = it.ToAny()
		}
		return out
	case TObject:
		out := make(map[string]any, v.obj.Len())
		for _, k := range v.obj.Keys() {
			val, _ := v.obj.Get(k)
			out[k] = val.ToAny()
		}
		return out
	case TInterval:
		return map[string]any{
			"from": v.ival.Left.ToAny(), "to": v.ival.Right.ToAny(),
			"leftInclusive": v.ival.LeftInclusive, "rightInclusive": v.ival.RightInclusive,
		}
	default:
		return nil
	}
}

func (v Variable) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.ToAny())
}

func (v *Variable) UnmarshalJSON(data []byte) error {
	dv, err := FromJSON(data)
	if err != nil {
		return err
	}
	*v = dv
	return nil
}
