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

// ParserError covers unexpected tokens, unknown built-ins, and incomplete
// input. When recovery is possible the parser instead embeds an AST Error
// node carrying the same message and keeps parsing.
type ParserError struct {
	Offset  int
	Message string
}

func (e ParserError) Error() string {
	return fmt.Sprintf("parser error at offset %d: %s", e.Offset, e.Message)
}

func ErrUnexpectedToken(offset int, got, expected string) error {
	return ParserError{Offset: offset, Message: fmt.Sprintf("unexpected token %s, expected %s", got, expected)}
}

func ErrUnknownBuiltin(offset int, name string) error {
	return ParserError{Offset: offset, Message: fmt.Sprintf("unknown built-in: %s", name)}
}

func ErrIncompleteInput(offset int) error {
	return ParserError{Offset: offset, Message: "incomplete input"}
}

func ErrFailedToParse(offset int, reason string) error {
	return ParserError{Offset: offset, Message: reason}
}
