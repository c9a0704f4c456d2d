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

package schema_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decisimo/decisimo/schema"
	"github.com/decisimo/decisimo/value"
)

const personSchema = `{
	"type": "object",
	"required": ["name", "age"],
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer", "minimum": 0}
	}
}`

func TestValidatePassesConformingDocument(t *testing.T) {
	c := schema.NewCache(4)
	v, err := c.Get(context.Background(), []byte(personSchema))
	require.NoError(t, err)

	doc, _ := value.FromAny(map[string]any{"name": "Ada", "age": 30})
	assert.NoError(t, v.Validate(doc))
}

func TestValidateReportsFailures(t *testing.T) {
	c := schema.NewCache(4)
	v, err := c.Get(context.Background(), []byte(personSchema))
	require.NoError(t, err)

	doc, _ := value.FromAny(map[string]any{"age": -1})
	err = v.Validate(doc)
	require.Error(t, err)
}

func TestCacheReusesCompiledValidator(t *testing.T) {
	c := schema.NewCache(4)
	ctx := context.Background()
	a, err := c.Get(ctx, []byte(personSchema))
	require.NoError(t, err)
	b, err := c.Get(ctx, []byte(personSchema))
	require.NoError(t, err)
	assert.Same(t, a, b)
}
