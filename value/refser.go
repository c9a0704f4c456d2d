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
	"encoding/json"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// SerializeWithRefs renders v the way decision-graph traces do: shared
// array/object storage (the same node output reachable from more than
// one place, which is common once $nodes starts accumulating) is written
// once into a top-level "$refs" array, with every other occurrence
// collapsed to a "@N" back-reference string. The envelope is
// {"$refs": [...], "$root": ...}; "$refs" is omitted entirely when
// nothing qualified. Minimum sharing threshold is two occurrences.
//
// Unlike the reference-counted string interning this was modeled on, our
// Variable does not share string storage, so only containers
// (arrays/objects) participate in ref counting here.
func SerializeWithRefs(v Variable) ([]byte, error) {
	counts := map[uintptr]int{}
	countRefs(v, counts)

	type candidate struct {
		addr  uintptr
		count int
	}
	var candidates []candidate
	for addr, c := range counts {
		if c >= 2 {
			candidates = append(candidates, candidate{addr, c})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].count != candidates[j].count {
			return candidates[i].count > candidates[j].count
		}
		return candidates[i].addr > candidates[j].addr
	})

	refID := make(map[uintptr]int, len(candidates))
	for i, c := range candidates {
		refID[c.addr] = i
	}

	seen := map[uintptr]bool{}
	refs := make([]any, len(candidates))
	root := serializeWithRefs(v, refID, seen, refs)

	if len(refs) == 0 {
		return json.Marshal(root)
	}
	return json.Marshal(map[string]any{"$refs": refs, "$root": root})
}

func addrOf(v Variable) (uintptr, bool) {
	switch v.typ {
	case TArray:
		return reflect.ValueOf(v.arr).Pointer(), true
	case TObject:
		return reflect.ValueOf(v.obj).Pointer(), true
	default:
		return 0, false
	}
}

func countRefs(v Variable, counts map[uintptr]int) {
	if addr, ok := addrOf(v); ok {
		counts[addr]++
		if counts[addr] > 1 {
			return // already descended into this shared node once
		}
	}
	switch v.typ {
	case TArray:
		for _, it := range v.Items() {
			countRefs(it, counts)
		}
	case TObject:
		for _, k := range v.obj.Keys() {
			val, _ := v.obj.Get(k)
			countRefs(val, counts)
		}
	}
}

func escapeAtPrefix(s string) any {
	if strings.HasPrefix(s, "@") {
		return "@" + s
	}
	return s
}

func serializeWithRefs(v Variable, refID map[uintptr]int, seen map[uintptr]bool, refs []any) any {
	if addr, ok := addrOf(v); ok {
		if id, isRef := refID[addr]; isRef {
			if seen[addr] {
				return "@" + strconv.Itoa(id)
			}
			seen[addr] = true
			refs[id] = serializeBody(v, refID, seen, refs)
			return "@" + strconv.Itoa(id)
		}
	}
	return serializeBody(v, refID, seen, refs)
}

func serializeBody(v Variable, refID map[uintptr]int, seen map[uintptr]bool, refs []any) any {
	switch v.typ {
	case TString:
		return escapeAtPrefix(v.s)
	case TArray:
		out := make([]any, len(v.Items()))
		for i, it := range v.Items() {
			out[i] = serializeWithRefs(it, refID, seen, refs)
		}
		return out
	case TObject:
		out := make(map[string]any, v.obj.Len())
		for _, k := range v.obj.Keys() {
			val, _ := v.obj.Get(k)
			out[k] = serializeWithRefs(val, refID, seen, refs)
		}
		return out
	default:
		return v.ToAny()
	}
}

// DeserializeWithRefs reverses SerializeWithRefs.
func DeserializeWithRefs(data []byte) (Variable, error) {
	var envelope struct {
		Refs []json.RawMessage `json:"$refs"`
		Root json.RawMessage   `json:"$root"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Root != nil {
		resolved := make([]*Variable, len(envelope.Refs))
		var resolve func(raw json.RawMessage) (Variable, error)
		resolve = func(raw json.RawMessage) (Variable, error) {
			var any any
			dec := json.NewDecoder(strings.NewReader(string(raw)))
			dec.UseNumber()
			if err := dec.Decode(&any); err != nil {
				return Null(), err
			}
			return deserializeValue(any, envelope.Refs, resolved)
		}
		for i := range envelope.Refs {
			if resolved[i] != nil {
				continue
			}
			v, err := resolve(envelope.Refs[i])
			if err != nil {
				return Null(), err
			}
			resolved[i] = &v
		}
		return resolve(envelope.Root)
	}
	return FromJSON(data)
}

func deserializeValue(v any, refs []json.RawMessage, resolved []*Variable) (Variable, error) {
	switch t := v.(type) {
	case string:
		if id, ok := refMarker(t); ok && id < len(resolved) {
			if resolved[id] != nil {
				return *resolved[id], nil
			}
			var any any
			dec := json.NewDecoder(strings.NewReader(string(refs[id])))
			dec.UseNumber()
			if err := dec.Decode(&any); err != nil {
				return Null(), err
			}
			rv, err := deserializeValue(any, refs, resolved)
			if err != nil {
				return Null(), err
			}
			resolved[id] = &rv
			return rv, nil
		}
		if strings.HasPrefix(t, "@@") {
			return String(t[1:]), nil
		}
		return String(t), nil
	case []any:
		items := make([]Variable, len(t))
		for i, it := range t {
			cv, err := deserializeValue(it, refs, resolved)
			if err != nil {
				return Null(), err
			}
			items[i] = cv
		}
		return FromArray(items), nil
	case map[string]any:
		obj := NewObject()
		for _, k := range orderedKeys(t) {
			cv, err := deserializeValue(t[k], refs, resolved)
			if err != nil {
				return Null(), err
			}
			obj.Set(k, cv)
		}
		return FromObject(obj), nil
	default:
		return FromAny(v)
	}
}

func refMarker(s string) (int, bool) {
	if len(s) < 2 || s[0] != '@' || s[1] == '@' {
		return 0, false
	}
	id, err := strconv.Atoi(s[1:])
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
