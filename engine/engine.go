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

// Package engine ties the expression isolate, decision graph evaluator,
// loader, and sandbox together into the language-neutral API surface:
// evaluate a decision by key, fetch or register decisions directly,
// evaluate bare expressions, and render templates.
package engine

import (
	"context"

	"github.com/decisimo/decisimo/graph"
	"github.com/decisimo/decisimo/isolate"
	"github.com/decisimo/decisimo/sandbox"
	"github.com/decisimo/decisimo/schema"
	"github.com/decisimo/decisimo/template"
	"github.com/decisimo/decisimo/value"
	"github.com/decisimo/decisimo/xerr"
)

const (
	defaultSchemaCacheSize = 128
	defaultSandboxPoolSize = 8
)

// Engine is the façade described in the language-neutral API surface:
// evaluate-by-key, fetch-or-create a Decision, and the standalone
// expression/template helpers that don't need a full decision document.
type Engine interface {
	Evaluate(ctx context.Context, key string, input value.Variable, opts graph.Options) (*graph.Result, error)
	GetDecision(ctx context.Context, key string) (*Decision, error)
	CreateDecision(raw []byte) (*Decision, error)
	EvaluateExpression(source string, env value.Variable) (value.Variable, error)
	EvaluateUnaryExpression(source string, env value.Variable) (bool, error)
	RenderTemplate(source string, env value.Variable) (value.Variable, error)
}

type engineImpl struct {
	loader          graph.Loader
	adapter         graph.CustomNodeAdapter
	ext             *graph.Extensions
	maxDepth        int
	sandboxPoolSize int32
}

// Option configures an Engine at construction time.
type Option func(*engineImpl)

// WithCustomNodeAdapter wires a CustomNodeAdapter for CustomNode
// evaluation. Engines that never reference a custom node can omit this;
// any CustomNode then fails with a nil-adapter error at dispatch time.
func WithCustomNodeAdapter(adapter graph.CustomNodeAdapter) Option {
	return func(e *engineImpl) { e.adapter = adapter }
}

// WithMaxDepth overrides the default sub-decision recursion ceiling.
func WithMaxDepth(depth int) Option {
	return func(e *engineImpl) { e.maxDepth = depth }
}

// WithSchemaCacheSize overrides the compiled-schema cache's capacity.
func WithSchemaCacheSize(capacity int) Option {
	return func(e *engineImpl) { e.ext.Schemas = schema.NewCache(capacity) }
}

// WithSandboxPoolSize overrides how many concurrent goja runtimes a
// function node may use.
func WithSandboxPoolSize(size int32) Option {
	return func(e *engineImpl) { e.sandboxPoolSize = size }
}

// New builds an Engine backed by loader, which resolves sub-decision
// keys referenced by DecisionNode and by a function node's
// zen.evaluate(key, input) call.
func New(loader graph.Loader, opts ...Option) (Engine, error) {
	e := &engineImpl{
		loader:          loader,
		maxDepth:        graph.DefaultMaxDepth,
		ext:             &graph.Extensions{Schemas: schema.NewCache(defaultSchemaCacheSize)},
		sandboxPoolSize: defaultSandboxPoolSize,
	}
	for _, opt := range opts {
		opt(e)
	}

	pool, err := sandbox.NewPool(e.sandboxPoolSize, e.evaluateForSandbox)
	if err != nil {
		return nil, err
	}
	e.ext.Sandbox = pool

	return e, nil
}

// evaluateForSandbox backs a function node's zen.evaluate(key, input)
// call: it loads the named sub-decision and evaluates it one nesting
// level deeper than the caller (zen.evaluate passes iteration already
// incremented), so the shared max-depth ceiling still applies to graphs
// reached this way.
func (e *engineImpl) evaluateForSandbox(ctx context.Context, key string, input value.Variable, iteration int) (value.Variable, error) {
	content, err := e.loader.Load(ctx, key)
	if err != nil {
		return value.Null(), xerr.ErrEvaluation(err)
	}
	dg := graph.New(content, e.loader, e.adapter, e.ext, graph.Options{MaxDepth: e.maxDepth}, iteration)
	result, err := dg.Evaluate(ctx, input)
	if err != nil {
		return value.Null(), err
	}
	return result.Result, nil
}

func (e *engineImpl) Evaluate(ctx context.Context, key string, input value.Variable, opts graph.Options) (*graph.Result, error) {
	decision, err := e.GetDecision(ctx, key)
	if err != nil {
		return nil, err
	}
	return decision.Evaluate(ctx, input, opts)
}

func (e *engineImpl) GetDecision(ctx context.Context, key string) (*Decision, error) {
	content, err := e.loader.Load(ctx, key)
	if err != nil {
		return nil, xerr.ErrEvaluation(err)
	}
	return &Decision{content: content, engine: e}, nil
}

func (e *engineImpl) CreateDecision(raw []byte) (*Decision, error) {
	content, err := graph.ParseContent(raw)
	if err != nil {
		return nil, err
	}
	return &Decision{content: content, engine: e}, nil
}

func (e *engineImpl) EvaluateExpression(source string, env value.Variable) (value.Variable, error) {
	return isolate.New().RunStandard(source, env)
}

func (e *engineImpl) EvaluateUnaryExpression(source string, env value.Variable) (bool, error) {
	if !env.IsObject() {
		return false, xerr.ErrMissingContextReference()
	}
	candidate, ok := env.Object().Get("$")
	if !ok {
		return false, xerr.ErrMissingContextReference()
	}
	return isolate.New().RunUnary(source, env, candidate)
}

func (e *engineImpl) RenderTemplate(source string, env value.Variable) (value.Variable, error) {
	return template.Render(source, env)
}
