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

// Merge applies RFC 7396 JSON Merge Patch semantics: patch mutates base
// in place (base must be an object or will become one), null values in
// patch delete the corresponding key, and nested objects are merged
// recursively rather than replaced wholesale.
func Merge(base, patch Variable) Variable {
	if patch.typ != TObject {
		return patch
	}
	if base.typ != TObject {
		base = EmptyObject()
	}
	for _, k := range patch.obj.Keys() {
		pv, _ := patch.obj.Get(k)
		if pv.typ == TNull {
			base.obj.Delete(k)
			continue
		}
		bv, exists := base.obj.Get(k)
		if exists && bv.typ == TObject && pv.typ == TObject {
			base.obj.Set(k, Merge(bv, pv))
		} else {
			base.obj.Set(k, pv)
		}
	}
	return base
}

// MergeClone is Merge without mutating base: it clones base first so the
// caller's original is left untouched.
func MergeClone(base, patch Variable) Variable {
	return Merge(base.DeepClone(), patch)
}
