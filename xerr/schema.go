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
	"strings"
)

// SchemaCompileError wraps a JSON-schema document that failed to compile.
type SchemaCompileError struct {
	Source error
}

func (e SchemaCompileError) Error() string {
	return fmt.Sprintf("failed to compile schema: %s", e.Source)
}

func (e SchemaCompileError) Unwrap() error { return e.Source }

func ErrSchemaCompile(source error) error {
	return SchemaCompileError{Source: source}
}

// SchemaValidationError collects the field-level failures from one
// validation attempt.
type SchemaValidationError struct {
	Failures []string
}

func (e SchemaValidationError) Error() string {
	return fmt.Sprintf("schema validation failed:\n  %s", strings.Join(e.Failures, "\n  "))
}

func ErrSchemaValidation(failures []string) error {
	return SchemaValidationError{Failures: failures}
}
