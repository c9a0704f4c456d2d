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

package cmd

import (
	"os"

	"github.com/decisimo/decisimo/engine"
	"github.com/decisimo/decisimo/loader"
	"github.com/decisimo/decisimo/value"
)

// newEngine builds an Engine backed by a filesystem loader rooted at
// packLocation, with the loader's result cache enabled so parsed
// decision documents are kept for the process's lifetime.
func newEngine(packLocation string) (engine.Engine, error) {
	return engine.New(loader.NewFilesystem(packLocation, true))
}

// readContext loads a JSON file from disk and decodes it into a
// Variable, the shape every subcommand uses for its evaluation input.
func readContext(path string) (value.Variable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return value.Null(), err
	}
	return value.FromJSON(raw)
}
