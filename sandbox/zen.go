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
	"github.com/dop251/goja"

	"github.com/decisimo/decisimo/isolate"
	"github.com/decisimo/decisimo/value"
)

// buildZen exposes the "zen" global: expression evaluation and,
// recursing back into the owning decision graph, nested-decision
// evaluation. One Isolate is reused for the lifetime of the runtime
// since it's only ever driven by this single-threaded VM.
func buildZen(vm *goja.Runtime, state *execState) (*goja.Object, error) {
	iso := isolate.New()
	ex := vm.NewObject()

	_ = ex.Set("evaluateExpression", func(call goja.FunctionCall) goja.Value {
		expr := call.Argument(0).String()
		ctxVal, err := value.FromAny(call.Argument(1).Export())
		if err != nil {
			panic(vm.NewGoError(err))
		}
		result, err := iso.RunStandard(expr, ctxVal)
		if err != nil {
			panic(vm.NewGoError(err))
		}
		return vm.ToValue(result.ToAny())
	})

	_ = ex.Set("evaluateUnaryExpression", func(call goja.FunctionCall) goja.Value {
		expr := call.Argument(0).String()
		ctxVal, err := value.FromAny(call.Argument(1).Export())
		if err != nil {
			panic(vm.NewGoError(err))
		}
		candidate := ctxVal
		if obj, ok := ctxVal.Dot("$"); ok {
			candidate = obj
		}
		ok, err := iso.RunUnary(expr, ctxVal, candidate)
		if err != nil {
			panic(vm.NewGoError(err))
		}
		return vm.ToValue(ok)
	})

	_ = ex.Set("evaluate", func(call goja.FunctionCall) goja.Value {
		if state.evaluator == nil {
			panic(vm.NewGoError(errNoEvaluator{}))
		}
		key := call.Argument(0).String()
		input, err := value.FromAny(call.Argument(1).Export())
		if err != nil {
			panic(vm.NewGoError(err))
		}
		result, err := state.evaluator(state.ctx, key, input, state.iteration+1)
		if err != nil {
			panic(vm.NewGoError(err))
		}
		return vm.ToValue(result.ToAny())
	})

	return ex, nil
}

type errNoEvaluator struct{}

func (errNoEvaluator) Error() string { return "zen.evaluate: no graph evaluator wired into this sandbox" }
