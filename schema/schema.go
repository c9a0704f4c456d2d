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

// Package schema compiles and caches JSON Schema validators for
// Input/Output node payloads. Many graph nodes across many concurrent
// evaluations reference the same schema document, so compiled
// validators are cached by content hash instead of recompiled on
// every evaluation.
package schema

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/mitchellh/hashstructure/v2"
	"github.com/xeipuuv/gojsonschema"

	"github.com/decisimo/decisimo/cache"
	"github.com/decisimo/decisimo/value"
	"github.com/decisimo/decisimo/xerr"
)

// Validator wraps a compiled schema document.
type Validator struct {
	compiled *gojsonschema.Schema
}

// Validate checks v against the schema, returning a SchemaValidationError
// listing every failing field when v does not conform.
func (va *Validator) Validate(v value.Variable) error {
	result, err := va.compiled.Validate(gojsonschema.NewGoLoader(v.ToAny()))
	if err != nil {
		return xerr.ErrSchemaCompile(err)
	}
	if result.Valid() {
		return nil
	}
	failures := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "(root)" {
			field = "root"
		}
		failures = append(failures, fmt.Sprintf("%s: %s", field, desc.Description()))
	}
	return xerr.ErrSchemaValidation(failures)
}

func compile(raw []byte) (*Validator, error) {
	loader := gojsonschema.NewBytesLoader(raw)
	compiled, err := gojsonschema.NewSchema(loader)
	if err != nil {
		return nil, xerr.ErrSchemaCompile(err)
	}
	return &Validator{compiled: compiled}, nil
}

// TTL is how long a compiled validator stays cached after it is
// compiled; cache hits do not extend it.
// Schema documents are immutable once hashed, so this mostly bounds
// memory rather than guarding against staleness.
const TTL = 30 * time.Minute

// Cache compiles raw JSON Schema documents on first use and reuses the
// compiled Validator for every later document with identical content,
// deduping concurrent compiles of the same schema.
type Cache struct {
	compiled *cache.Cache[*Validator]
}

// NewCache builds a cache holding at most capacity distinct compiled
// schemas.
func NewCache(capacity int) *Cache {
	return &Cache{compiled: cache.New[*Validator](capacity)}
}

// Get returns the compiled Validator for raw, compiling and caching it
// on first sight of this exact content.
func (c *Cache) Get(ctx context.Context, raw []byte) (*Validator, error) {
	key, err := contentHash(raw)
	if err != nil {
		return nil, err
	}
	return c.compiled.Get(ctx, key, TTL, func(_ context.Context, _ string) (*Validator, error) {
		return compile(raw)
	})
}

func contentHash(raw []byte) (string, error) {
	h, err := hashstructure.Hash(string(raw), hashstructure.FormatV2, nil)
	if err != nil {
		return "", xerr.ErrSchemaCompile(err)
	}
	return strconv.FormatUint(h, 16), nil
}
