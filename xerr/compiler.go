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

import "fmt"

// CompilerError covers lowering failures: unknown operators/functions,
// invalid calls and out-of-range arguments.
type CompilerError struct {
	Message string
}

func (e CompilerError) Error() string { return "compiler error: " + e.Message }

func ErrUnknownFunction(name string) error {
	return CompilerError{Message: fmt.Sprintf("unknown function: %s", name)}
}

func ErrInvalidFunctionCall(name, reason string) error {
	return CompilerError{Message: fmt.Sprintf("invalid call to %s: %s", name, reason)}
}

func ErrArgumentNotFound(name string, index int) error {
	return CompilerError{Message: fmt.Sprintf("argument %d not found for %s", index, name)}
}

func ErrUnknownUnaryOperator(op string) error {
	return CompilerError{Message: fmt.Sprintf("unknown unary operator: %s", op)}
}

func ErrUnknownBinaryOperator(op string) error {
	return CompilerError{Message: fmt.Sprintf("unknown binary operator: %s", op)}
}

func ErrUnexpectedErrorNode(diagnostic string) error {
	return CompilerError{Message: fmt.Sprintf("unexpected error node: %s", diagnostic)}
}
