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

// Package loader implements the sub-decision content loader contract:
// load(key) -> DecisionContent | NotFound | Internal{key, source}.
package loader

import (
	"context"
	"sync"

	"github.com/decisimo/decisimo/graph"
	"github.com/decisimo/decisimo/xerr"
)

// Noop always fails with NotFound; it is the zero-configuration default
// for engines that never reference a sub-decision.
type Noop struct{}

func (Noop) Load(_ context.Context, key string) (*graph.Content, error) {
	return nil, xerr.ErrLoaderNotFound(key)
}

// Closure adapts a plain function to the Loader contract, normalizing
// any error the function returns that isn't already a LoaderNotFoundError
// or LoaderInternalError into LoaderError::Internal.
type Closure func(ctx context.Context, key string) (*graph.Content, error)

func (f Closure) Load(ctx context.Context, key string) (*graph.Content, error) {
	content, err := f(ctx, key)
	if err == nil {
		if content == nil {
			return nil, xerr.ErrLoaderNotFound(key)
		}
		return content, nil
	}
	switch err.(type) {
	case xerr.LoaderNotFoundError, xerr.LoaderInternalError:
		return nil, err
	default:
		return nil, xerr.ErrLoaderInternal(key, err)
	}
}

// Memory serves decisions from an in-process map. Safe for concurrent
// use; callers add entries with Set before or during evaluation.
type Memory struct {
	mu       sync.RWMutex
	contents map[string]*graph.Content
}

func NewMemory() *Memory {
	return &Memory{contents: make(map[string]*graph.Content)}
}

func (m *Memory) Set(key string, content *graph.Content) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contents[key] = content
}

func (m *Memory) Load(_ context.Context, key string) (*graph.Content, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	content, ok := m.contents[key]
	if !ok {
		return nil, xerr.ErrLoaderNotFound(key)
	}
	return content, nil
}
