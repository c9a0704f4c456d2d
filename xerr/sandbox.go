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

package xerr

import (
	"fmt"
	"time"
)

// SandboxCompileError wraps a function node's source failing to parse.
type SandboxCompileError struct{ Source error }

func (e SandboxCompileError) Error() string {
	return fmt.Sprintf("function node failed to compile: %s", e.Source)
}

func (e SandboxCompileError) Unwrap() error { return e.Source }

func ErrSandboxCompile(source error) error { return SandboxCompileError{Source: source} }

// SandboxRuntimeError wraps a thrown or panicked JS error.
type SandboxRuntimeError struct{ Source error }

func (e SandboxRuntimeError) Error() string {
	return fmt.Sprintf("function node failed: %s", e.Source)
}

func (e SandboxRuntimeError) Unwrap() error { return e.Source }

func ErrSandboxRuntime(source error) error { return SandboxRuntimeError{Source: source} }

// SandboxTimeoutError is returned when a function node exceeds its
// wall-clock interrupt budget.
type SandboxTimeoutError struct{ Budget time.Duration }

func (e SandboxTimeoutError) Error() string {
	return fmt.Sprintf("function node exceeded its %s execution budget", e.Budget)
}

func ErrSandboxTimeout(budget time.Duration) error { return SandboxTimeoutError{Budget: budget} }

// SandboxNoDefaultExportError is returned when a function node's source
// does not assign module.exports to a callable.
type SandboxNoDefaultExportError struct{}

func (e SandboxNoDefaultExportError) Error() string {
	return "function node must export a default function via module.exports"
}

func ErrSandboxNoDefaultExport() error { return SandboxNoDefaultExportError{} }
