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
	"strconv"
	"strings"
)

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// Dot reads the value at a dotted path, e.g. "$nodes.table1.output.amount".
// Numeric segments index into arrays. Returns Null with ok=false when any
// segment along the way is missing.
func (v Variable) Dot(path string) (Variable, bool) {
	cur := v
	for _, seg := range splitPath(path) {
		switch cur.typ {
		case TObject:
			next, ok := cur.obj.Get(seg)
			if !ok {
				return Null(), false
			}
			cur = next
		case TArray:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(cur.Items()) {
				return Null(), false
			}
			cur = cur.Items()[idx]
		default:
			return Null(), false
		}
	}
	return cur, true
}

// DotInsert writes val at path, creating intermediate objects as needed.
// It mutates v's shared storage in place; v itself must already be, or
// become via the first segment, an object.
func (v Variable) DotInsert(path string, val Variable) Variable {
	segs := splitPath(path)
	if len(segs) == 0 {
		return val
	}
	return dotInsertInto(v, segs, val)
}

func dotInsertInto(container Variable, segs []string, val Variable) Variable {
	if container.typ != TObject {
		container = EmptyObject()
	}
	seg := segs[0]
	if len(segs) == 1 {
		container.obj.Set(seg, val)
		return container
	}
	child, ok := container.obj.Get(seg)
	if !ok || child.typ != TObject {
		child = EmptyObject()
	}
	container.obj.Set(seg, dotInsertInto(child, segs[1:], val))
	return container
}

// DotRemove deletes the value at path if present. No-op otherwise.
func (v Variable) DotRemove(path string) {
	segs := splitPath(path)
	if len(segs) == 0 {
		return
	}
	cur := v
	for _, seg := range segs[:len(segs)-1] {
		if cur.typ != TObject {
			return
		}
		next, ok := cur.obj.Get(seg)
		if !ok {
			return
		}
		cur = next
	}
	if cur.typ == TObject {
		cur.obj.Delete(segs[len(segs)-1])
	}
}

// DepthClone clones the first n levels of nesting and shares everything
// below that depth with the original. depth 0 returns v unchanged
// (shared); a very large depth behaves like DeepClone.
func (v Variable) DepthClone(depth int) Variable {
	if depth <= 0 {
		return v
	}
	switch v.typ {
	case TArray:
		items := make([]Variable, len(v.Items()))
		for i, it := range v.Items() {
			items[i] = it.DepthClone(depth - 1)
		}
		return FromArray(items)
	case TObject:
		clone := NewObject()
		for _, k := range v.obj.Keys() {
			val, _ := v.obj.Get(k)
			clone.Set(k, val.DepthClone(depth-1))
		}
		return FromObject(clone)
	default:
		return v
	}
}
