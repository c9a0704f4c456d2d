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

package lexer

import "github.com/decisimo/decisimo/tokens"

// Tokenize drains l into a slice, stopping at the first error or EOF. It is
// a convenience used by tests and by callers that want the whole stream
// up front rather than pulling tokens one at a time.
func Tokenize(src string) ([]tokens.Instance, error) {
	l := NewLexer(src)
	var out []tokens.Instance
	for {
		tok, err := l.NextToken()
		if err != nil {
			return out, err
		}
		out = append(out, tok)
		if tok.Kind == tokens.EOF {
			return out, nil
		}
	}
}
