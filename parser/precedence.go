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

// Package parser implements a shared Pratt engine that drives two
// dialects: Standard (full expressions) and Unary (condition shorthand
// evaluated against an implicit `$`).
package parser

// Associativity of a binary operator.
type Associativity int

const (
	LeftAssoc Associativity = iota
	RightAssoc
)

type opInfo struct {
	precedence int
	assoc      Associativity
}

// binaryPrecedence mirrors the operator table of the language this engine
// was modeled on, with one addition: `??` binds tighter than every other
// binary operator so that `a ?? b == c` reads as `(a ?? b) == c`.
var binaryPrecedence = map[string]opInfo{
	"??":     {80, RightAssoc},
	"or":     {10, LeftAssoc},
	"and":    {15, LeftAssoc},
	"==":     {20, LeftAssoc},
	"!=":     {20, LeftAssoc},
	"<":      {20, LeftAssoc},
	">":      {20, LeftAssoc},
	"<=":     {20, LeftAssoc},
	">=":     {20, LeftAssoc},
	"in":     {20, LeftAssoc},
	"not in": {20, LeftAssoc},
	"+":      {30, LeftAssoc},
	"-":      {30, LeftAssoc},
	"*":      {60, LeftAssoc},
	"/":      {60, LeftAssoc},
	"%":      {60, LeftAssoc},
	"^":      {70, RightAssoc},
}

const (
	unaryNotPrecedence = 50
	unarySignPrecedence = 200
)
