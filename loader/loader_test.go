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

package loader_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decisimo/decisimo/graph"
	"github.com/decisimo/decisimo/loader"
	"github.com/decisimo/decisimo/xerr"
)

func TestNoopAlwaysNotFound(t *testing.T) {
	_, err := loader.Noop{}.Load(context.Background(), "anything")
	require.Error(t, err)
	var notFound xerr.LoaderNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestMemoryRoundTrip(t *testing.T) {
	m := loader.NewMemory()
	content := &graph.Content{}
	m.Set("k", content)

	got, err := m.Load(context.Background(), "k")
	require.NoError(t, err)
	assert.Same(t, content, got)

	_, err = m.Load(context.Background(), "missing")
	require.Error(t, err)
}

func TestClosureNormalizesGenericErrors(t *testing.T) {
	c := loader.Closure(func(_ context.Context, key string) (*graph.Content, error) {
		return nil, assertErr{}
	})
	_, err := c.Load(context.Background(), "k")
	var internal xerr.LoaderInternalError
	require.ErrorAs(t, err, &internal)
	assert.Equal(t, "k", internal.Key)
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }

func TestFilesystemLoadsAndCaches(t *testing.T) {
	dir := t.TempDir()
	doc := `{"nodes":[{"id":"in","name":"in","type":"inputNode","content":{}},{"id":"out","name":"out","type":"outputNode","content":{}}],"edges":[{"sourceId":"in","targetId":"out"}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub.json"), []byte(doc), 0o644))

	fs := loader.NewFilesystem(dir, true)
	content, err := fs.Load(context.Background(), "sub")
	require.NoError(t, err)
	assert.NotNil(t, content)

	again, err := fs.Load(context.Background(), "sub")
	require.NoError(t, err)
	assert.Same(t, content, again)
}

func TestFilesystemNotFound(t *testing.T) {
	fs := loader.NewFilesystem(t.TempDir(), false)
	_, err := fs.Load(context.Background(), "missing")
	require.Error(t, err)
	var notFound xerr.LoaderNotFoundError
	require.ErrorAs(t, err, &notFound)
}
