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

package sandbox

import (
	"fmt"
	"strings"

	"github.com/dop251/goja"
)

// buildConsole mirrors a browser/node console closely enough for
// function-node debugging: every call appends one formatted line to
// state.logs instead of writing anywhere, since sandbox output is
// surfaced through the evaluation trace, not process stdout.
func buildConsole(vm *goja.Runtime, state *execState) (*goja.Object, error) {
	ex := vm.NewObject()

	logger := func(level string) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			parts := make([]string, len(call.Arguments))
			for i, arg := range call.Arguments {
				parts[i] = fmt.Sprint(arg.Export())
			}
			state.logs = append(state.logs, fmt.Sprintf("[%s] %s", level, strings.Join(parts, " ")))
			return goja.Undefined()
		}
	}

	_ = ex.Set("log", logger("log"))
	_ = ex.Set("info", logger("info"))
	_ = ex.Set("warn", logger("warn"))
	_ = ex.Set("error", logger("error"))
	return ex, nil
}
