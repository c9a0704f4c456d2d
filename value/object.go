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

// Object is an insertion-ordered string-keyed map. Key order is
// significant: it drives decision-table trace ordering, so a plain Go
// map (unordered) cannot stand in for it.
type Object struct {
	keys   []string
	values map[string]Variable
}

func NewObject() *Object {
	return &Object{values: make(map[string]Variable)}
}

func (o *Object) Get(key string) (Variable, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *Object) Set(key string, v Variable) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

func (o *Object) Delete(key string) {
	if _, exists := o.values[key]; !exists {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

func (o *Object) Keys() []string {
	return o.keys
}

func (o *Object) Len() int {
	return len(o.keys)
}

// Clone produces a shallow copy: same Variables, independent key/value
// storage, so adding keys to the clone never affects the original.
func (o *Object) Clone() *Object {
	clone := NewObject()
	for _, k := range o.keys {
		clone.Set(k, o.values[k])
	}
	return clone
}
