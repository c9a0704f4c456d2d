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

package graph

import (
	"fmt"
	"time"

	"github.com/decisimo/decisimo/value"
)

// Trace is one node's recorded execution, present only when a Decision
// is evaluated with opts.Trace set.
type Trace struct {
	ID          string
	Name        string
	Input       value.Variable
	Output      value.Variable
	TraceData   value.Variable // Null when the handler recorded none
	Performance string         // "<float> ms"
	Order       int            // sequence of completion, zero-based
}

// Result is what a DecisionGraph evaluation returns.
type Result struct {
	Result      value.Variable
	Performance string
	Trace       []Trace // nil unless trace was requested
}

func performance(since time.Time) string {
	return fmt.Sprintf("%.3f ms", float64(time.Since(since).Microseconds())/1000)
}

// toVariable renders a trace slice as a Variable so a sub-decision's
// trace can be embedded under its parent's trace_data.
func toVariable(trace []Trace) value.Variable {
	items := make([]value.Variable, len(trace))
	for i, t := range trace {
		o := value.NewObject()
		o.Set("id", value.String(t.ID))
		o.Set("name", value.String(t.Name))
		o.Set("input", t.Input)
		o.Set("output", t.Output)
		o.Set("traceData", t.TraceData)
		o.Set("performance", value.String(t.Performance))
		o.Set("order", value.NumberFromInt(int64(t.Order)))
		items[i] = value.FromObject(o)
	}
	return value.FromArray(items)
}
