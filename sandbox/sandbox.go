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

// Package sandbox runs function-node JavaScript in pooled goja runtimes.
// Each runtime exposes a "zen" module for recursing back into expression
// evaluation and nested decision graphs, a "console" for log capture, and
// an "http" module for signed outbound calls.
package sandbox

import (
	"context"
	"fmt"
	"time"

	"github.com/dop251/goja"
	"github.com/jackc/puddle/v2"

	"github.com/decisimo/decisimo/value"
	"github.com/decisimo/decisimo/xerr"
)

// DefaultBudget bounds how long a single function-node invocation may
// run before its goja runtime is interrupted.
const DefaultBudget = 5000 * time.Millisecond

// GraphEvaluator recurses back into a decision graph evaluation from
// inside a function node's "zen.evaluate" call. The graph package
// supplies the real implementation; sandbox only depends on this
// function type to avoid an import cycle.
type GraphEvaluator func(ctx context.Context, key string, input value.Variable, iteration int) (value.Variable, error)

// execState is the mutable, per-invocation state closures inside a
// pooled runtime read from. It is reset at the start of every Run so
// the same *goja.Runtime (and its already-registered globals) can be
// reused across many function-node invocations.
type execState struct {
	ctx       context.Context
	evaluator GraphEvaluator
	iteration int
	logs      []string
}

type pooledRuntime struct {
	vm    *goja.Runtime
	state *execState
}

// Pool hands out pre-configured goja runtimes, one at a time, to run
// function-node bodies.
type Pool struct {
	pool *puddle.Pool[*pooledRuntime]
}

// NewPool builds a pool of at most maxSize runtimes. evaluator is
// wired into every runtime's "zen.evaluate" so a function node can
// recurse into a nested decision graph.
func NewPool(maxSize int32, evaluator GraphEvaluator) (*Pool, error) {
	pool, err := puddle.NewPool(&puddle.Config[*pooledRuntime]{
		Constructor: func(ctx context.Context) (*pooledRuntime, error) {
			return newPooledRuntime(evaluator), nil
		},
		Destructor: func(res *pooledRuntime) {
			res.vm.ClearInterrupt()
		},
		MaxSize: maxSize,
	})
	if err != nil {
		return nil, err
	}
	return &Pool{pool: pool}, nil
}

func newPooledRuntime(evaluator GraphEvaluator) *pooledRuntime {
	vm := goja.New()
	state := &execState{evaluator: evaluator}

	console, _ := buildConsole(vm, state)
	_ = vm.Set("console", console)

	zen, _ := buildZen(vm, state)
	_ = vm.Set("zen", zen)

	httpModule, _ := buildHTTP(vm, state)
	_ = vm.Set("http", httpModule)

	return &pooledRuntime{vm: vm, state: state}
}

// Close releases every idle runtime in the pool.
func (p *Pool) Close() { p.pool.Close() }

// Run executes source, which must assign a function to module.exports,
// against input and returns its result plus any console.log lines it
// emitted. iteration is the nesting depth reported to zen.evaluate
// (the caller passes the enclosing graph's current iteration).
func (p *Pool) Run(ctx context.Context, source string, input value.Variable, budget time.Duration, iteration int) (value.Variable, []string, error) {
	return p.RunWithConfig(ctx, source, input, value.Null(), budget, iteration)
}

// RunWithConfig is Run plus a second argument passed to the exported
// function: the {iteration, maxDepth, trace} config object function
// nodes receive per their (input, config) contract. Handlers written
// against the single-argument shape simply ignore the extra parameter.
func (p *Pool) RunWithConfig(ctx context.Context, source string, input, config value.Variable, budget time.Duration, iteration int) (value.Variable, []string, error) {
	if budget <= 0 {
		budget = DefaultBudget
	}

	res, err := p.pool.Acquire(ctx)
	if err != nil {
		return value.Null(), nil, err
	}
	defer res.Release()

	pr := res.Value()
	pr.state.ctx = ctx
	pr.state.iteration = iteration
	pr.state.logs = nil

	fn, err := compile(pr.vm, source)
	if err != nil {
		return value.Null(), nil, err
	}

	done := make(chan struct{})
	timer := time.AfterFunc(budget, func() {
		pr.vm.Interrupt(xerr.ErrSandboxTimeout(budget))
	})
	defer func() {
		timer.Stop()
		close(done)
		pr.vm.ClearInterrupt()
	}()

	result, callErr := fn(goja.Undefined(), pr.vm.ToValue(input.ToAny()), pr.vm.ToValue(config.ToAny()))
	if callErr != nil {
		if interrupted, ok := callErr.(*goja.InterruptedError); ok {
			if v, ok := interrupted.Value().(error); ok {
				return value.Null(), pr.state.logs, v
			}
		}
		return value.Null(), pr.state.logs, xerr.ErrSandboxRuntime(callErr)
	}

	out, err := value.FromAny(result.Export())
	if err != nil {
		return value.Null(), pr.state.logs, xerr.ErrSandboxRuntime(err)
	}
	return out, pr.state.logs, nil
}

// compile wraps source in a CommonJS-style module shell and returns the
// exported default function.
func compile(vm *goja.Runtime, source string) (goja.Callable, error) {
	wrapped := fmt.Sprintf("(function(){var module={exports:{}};var exports=module.exports;\n%s\nreturn module.exports;})()", source)
	program, err := goja.Compile("function-node", wrapped, true)
	if err != nil {
		return nil, xerr.ErrSandboxCompile(err)
	}
	exported, err := vm.RunProgram(program)
	if err != nil {
		return nil, xerr.ErrSandboxCompile(err)
	}
	fn, ok := goja.AssertFunction(exported)
	if !ok {
		return nil, xerr.ErrSandboxNoDefaultExport()
	}
	return fn, nil
}
