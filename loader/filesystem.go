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

package loader

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/decisimo/decisimo/graph"
	"github.com/decisimo/decisimo/xerr"
)

// Filesystem resolves a key to "<root>/<key>.json" and decodes its wire
// document. Parsed content is cached in memory by key (never
// invalidated) when cacheResults is set, so a sub-decision referenced
// from many evaluations is only read and parsed off disk once.
type Filesystem struct {
	root         string
	cacheResults bool

	mu    sync.RWMutex
	cache map[string]*graph.Content
}

func NewFilesystem(root string, cacheResults bool) *Filesystem {
	return &Filesystem{root: root, cacheResults: cacheResults, cache: make(map[string]*graph.Content)}
}

func (f *Filesystem) Load(ctx context.Context, key string) (*graph.Content, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if f.cacheResults {
		f.mu.RLock()
		cached, ok := f.cache[key]
		f.mu.RUnlock()
		if ok {
			return cached, nil
		}
	}

	path := filepath.Join(f.root, filepath.Clean("/"+key+".json"))
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, xerr.ErrLoaderNotFound(key)
		}
		return nil, xerr.ErrLoaderInternal(key, errors.Wrap(err, "read decision file"))
	}

	content, err := graph.ParseContent(raw)
	if err != nil {
		return nil, xerr.ErrLoaderInternal(key, errors.Wrap(err, "parse decision content"))
	}

	if f.cacheResults {
		f.mu.Lock()
		f.cache[key] = content
		f.mu.Unlock()
	}
	return content, nil
}
