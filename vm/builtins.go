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

package vm

import (
	"math/rand"
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/decisimo/decisimo/opcode"
	"github.com/decisimo/decisimo/value"
	"github.com/decisimo/decisimo/xerr"
)

func (m *VM) execCall(in opcode.Instruction) error {
	args := make([]value.Variable, in.Count)
	for i := in.Count - 1; i >= 0; i-- {
		v, err := m.pop()
		if err != nil {
			return err
		}
		args[i] = v
	}

	switch in.Name {
	case "$templateJoin":
		var sb strings.Builder
		for _, a := range args {
			sb.WriteString(stringify(a))
		}
		m.push(value.String(sb.String()))
		return nil
	case "$nullish":
		if !args[0].IsNull() {
			m.push(args[0])
		} else {
			m.push(args[1])
		}
		return nil
	}

	result, err := callBuiltin(in.Name, args)
	if err != nil {
		return err
	}
	m.push(result)
	return nil
}

// numericOperands returns the numeric elements of args, flattening a
// single array argument (e.g. sum([1,2,3])) so builtins accept both the
// array form and the variadic form (e.g. sum(1,2,3)).
func numericOperands(args []value.Variable) []decimal.Decimal {
	if len(args) == 1 && args[0].IsArray() {
		args = args[0].Items()
	}
	out := make([]decimal.Decimal, 0, len(args))
	for _, a := range args {
		if a.IsNumber() {
			out = append(out, a.AsNumber())
		}
	}
	return out
}

func callBuiltin(name string, args []value.Variable) (value.Variable, error) {
	switch name {
	case "abs":
		return value.Number(args[0].AsNumber().Abs()), nil

	case "sum":
		nums := numericOperands(args)
		total := decimal.Zero
		for _, n := range nums {
			total = total.Add(n)
		}
		return value.Number(total), nil

	case "avg", "average":
		nums := numericOperands(args)
		if len(nums) == 0 {
			return value.Null(), nil
		}
		total := decimal.Zero
		for _, n := range nums {
			total = total.Add(n)
		}
		return value.Number(total.Div(decimal.NewFromInt(int64(len(nums))))), nil

	case "min":
		nums := numericOperands(args)
		if len(nums) == 0 {
			return value.Null(), nil
		}
		best := nums[0]
		for _, n := range nums[1:] {
			if n.LessThan(best) {
				best = n
			}
		}
		return value.Number(best), nil

	case "max":
		nums := numericOperands(args)
		if len(nums) == 0 {
			return value.Null(), nil
		}
		best := nums[0]
		for _, n := range nums[1:] {
			if n.GreaterThan(best) {
				best = n
			}
		}
		return value.Number(best), nil

	case "median":
		nums := numericOperands(args)
		if len(nums) == 0 {
			return value.Null(), nil
		}
		sorted := append([]decimal.Decimal{}, nums...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })
		mid := len(sorted) / 2
		if len(sorted)%2 == 1 {
			return value.Number(sorted[mid]), nil
		}
		return value.Number(sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))), nil

	case "mode":
		nums := numericOperands(args)
		if len(nums) == 0 {
			return value.Null(), nil
		}
		counts := map[string]int{}
		best, bestCount := nums[0], 0
		for _, n := range nums {
			key := n.String()
			counts[key]++
			if counts[key] > bestCount {
				bestCount = counts[key]
				best = n
			}
		}
		return value.Number(best), nil

	case "round":
		precision := int32(0)
		if len(args) > 1 && args[1].IsNumber() {
			precision = int32(args[1].AsNumber().IntPart())
		}
		return value.Number(args[0].AsNumber().Round(precision)), nil

	case "floor":
		return value.Number(args[0].AsNumber().Floor()), nil

	case "ceil":
		return value.Number(args[0].AsNumber().Ceil()), nil

	case "random":
		//nolint:gosec // not security sensitive: rule-engine convenience builtin
		return value.Number(decimal.NewFromFloat(rand.Float64())), nil

	case "upper", "uppercase":
		return value.String(strings.ToUpper(args[0].AsString())), nil

	case "lower", "lowercase":
		return value.String(strings.ToLower(args[0].AsString())), nil

	case "startsWith":
		return value.Bool(strings.HasPrefix(args[0].AsString(), args[1].AsString())), nil

	case "endsWith":
		return value.Bool(strings.HasSuffix(args[0].AsString(), args[1].AsString())), nil

	case "matches":
		re, err := regexp.Compile(args[1].AsString())
		if err != nil {
			return value.Null(), xerr.ErrInvalidFunctionCall("matches", err.Error())
		}
		return value.Bool(re.MatchString(args[0].AsString())), nil

	case "extract":
		re, err := regexp.Compile(args[1].AsString())
		if err != nil {
			return value.Null(), xerr.ErrInvalidFunctionCall("extract", err.Error())
		}
		groups := re.FindStringSubmatch(args[0].AsString())
		items := make([]value.Variable, len(groups))
		for i, g := range groups {
			items[i] = value.String(g)
		}
		return value.FromArray(items), nil

	default:
		return value.Null(), xerr.ErrUnknownFunction(name)
	}
}
