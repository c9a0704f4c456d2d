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

package cmd_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/decisimo/decisimo/cmd"
)

const passThroughDocument = `{
	"nodes": [
		{"id": "in", "name": "input", "type": "inputNode", "content": {}},
		{"id": "out", "name": "output", "type": "outputNode", "content": {}}
	],
	"edges": [
		{"id": "e1", "sourceId": "in", "targetId": "out"}
	]
}`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExecuteEval(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "pass.json", passThroughDocument)
	ctxFile := writeFixture(t, dir, "ctx.json", `{"x": 7}`)

	err := cmd.Execute(context.Background(), []string{"eval", "--pack-location=" + dir, "pass", ctxFile})
	require.NoError(t, err)
}

func TestExecuteValidate(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "pass.json", passThroughDocument)

	err := cmd.Execute(context.Background(), []string{"validate", "--pack-location=" + dir, "pass"})
	require.NoError(t, err)
}

func TestExecuteExpr(t *testing.T) {
	dir := t.TempDir()
	ctxFile := writeFixture(t, dir, "ctx.json", `{}`)

	err := cmd.Execute(context.Background(), []string{"expr", "1 + 2", ctxFile})
	require.NoError(t, err)
}

func TestExecuteUnknownCommand(t *testing.T) {
	err := cmd.Execute(context.Background(), []string{"bogus"})
	require.Error(t, err)
}

func TestExecuteNoArgs(t *testing.T) {
	err := cmd.Execute(context.Background(), nil)
	require.Error(t, err)
}
