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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDotInsertAndGet(t *testing.T) {
	root := EmptyObject()
	root = root.DotInsert("a.b.c", NumberFromInt(42))
	got, ok := root.Dot("a.b.c")
	require.True(t, ok)
	assert.True(t, got.Equal(NumberFromInt(42)))
}

func TestDotRemove(t *testing.T) {
	root := EmptyObject()
	root = root.DotInsert("a.b", String("x"))
	root.DotRemove("a.b")
	_, ok := root.Dot("a.b")
	assert.False(t, ok)
}

func TestMergePatchesDeleteOnNull(t *testing.T) {
	base, err := FromAny(map[string]any{"a": 1, "b": 2})
	require.NoError(t, err)
	patch, err := FromAny(map[string]any{"b": nil, "c": 3})
	require.NoError(t, err)
	merged := MergeClone(base, patch)

	_, hasB := merged.Object().Get("b")
	assert.False(t, hasB)
	c, _ := merged.Object().Get("c")
	assert.True(t, c.Equal(NumberFromInt(3)))
	// original untouched
	_, stillHasB := base.Object().Get("b")
	assert.True(t, stillHasB)
}

func TestIntervalContains(t *testing.T) {
	iv := NewInterval(NumberFromInt(1), NumberFromInt(5), true, false)
	assert.True(t, iv.Contains(NumberFromInt(1)))
	assert.False(t, iv.Contains(NumberFromInt(5)))
	assert.True(t, iv.Contains(NumberFromInt(4)))
}

func TestSerializeWithRefsRoundTrip(t *testing.T) {
	shared, err := FromAny(map[string]any{"x": 1})
	require.NoError(t, err)
	root := EmptyObject()
	root.Object().Set("a", shared)
	root.Object().Set("b", shared)

	data, err := SerializeWithRefs(root)
	require.NoError(t, err)

	back, err := DeserializeWithRefs(data)
	require.NoError(t, err)
	a, _ := back.Object().Get("a")
	b, _ := back.Object().Get("b")
	assert.True(t, a.Equal(b))
}
