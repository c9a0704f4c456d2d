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

// Package opcode defines the bytecode instruction set the compiler emits
// and the VM executes.
package opcode

import "github.com/decisimo/decisimo/value"

type Code int

const (
	Push Code = iota
	Pop
	Rot

	Fetch        // stack: [container, key] -> value
	FetchRootEnv // push $root
	FetchEnv     // push the named top-level environment variable
	FetchFast    // push env[segments[0]][segments[1]]... (pre-resolved flat path)

	Negate
	Not

	Equal
	Less
	More
	LessOrEqual
	MoreOrEqual
	In

	Add
	Subtract
	Multiply
	Divide
	Modulo
	Exponent

	Jump
	JumpIfTrue
	JumpIfFalse
	JumpIfEnd
	JumpBackward

	Interval
	Array
	Len
	Slice
	Contains
	Keys
	Flatten

	TypeConversion
	TypeCheck
	DateFunction
	DateManipulation

	Begin // push an iterator frame for the value on top of stack
	End   // pop the current iterator frame
	IncrementIt
	IncrementCount
	GetCount
	GetLen
	Pointer // push the current iterator frame's current item (or closure param)

	Call // generic built-in dispatch by name with a fixed arg count

	// Closure drives the all/some/none/one/filter/map/flatMap/count
	// family. The VM evaluates Body once per element of the iterable on
	// top of the stack, internally performing the same Begin/Pointer/
	// IncrementIt/IncrementCount/GetLen/End bookkeeping the primitive
	// opcodes above expose individually, and combines the per-element
	// results according to Name.
	Closure
)

// ConvTarget names the target type of a TypeConversion instruction.
type ConvTarget int

const (
	ConvNumber ConvTarget = iota
	ConvString
	ConvBool
)

// Instruction is one bytecode op. Not every field is meaningful for every
// Code; see the Code constant's comment above.
type Instruction struct {
	Code Code

	// Push
	Literal value.Variable

	// FetchEnv / Call / DateFunction / DateManipulation
	Name string

	// FetchFast
	Segments []string

	// Jump family: relative instruction offset
	Offset int

	// Interval
	LeftInclusive, RightInclusive bool

	// Array / Call: operand count
	Count int

	// TypeConversion
	ConvTo ConvTarget

	// Closure
	Body []Instruction
}
