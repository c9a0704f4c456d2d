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

// Dates are represented as a plain Variable number holding Unix
// milliseconds, so the ordinary Add/Subtract/comparison opcodes already
// work on them without a dedicated DateManipulation instruction — the
// one the engine this was modeled on needed only because its Variable
// has no native numeric date representation.
package vm

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/decisimo/decisimo/value"
	"github.com/decisimo/decisimo/xerr"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"15:04:05",
	"15:04",
}

func parseFlexibleTime(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, xerr.ErrParseDateTime(s, "no matching layout")
}

func toEpochMillis(t time.Time) value.Variable {
	return value.Number(decimal.NewFromInt(t.UnixMilli()))
}

func fromEpochMillis(v value.Variable) (time.Time, error) {
	if !v.IsNumber() {
		return time.Time{}, xerr.ErrValueCast(v.Type().String(), "date")
	}
	return time.UnixMilli(v.AsNumber().IntPart()).UTC(), nil
}

func callDateFunction(name string, args []value.Variable) (value.Variable, error) {
	switch name {
	case "date", "time":
		t, err := parseFlexibleTime(args[0].AsString())
		if err != nil {
			return value.Null(), err
		}
		return toEpochMillis(t), nil

	case "duration":
		d, err := time.ParseDuration(args[0].AsString())
		if err != nil {
			return value.Null(), xerr.ErrParseDateTime(args[0].AsString(), err.Error())
		}
		return value.Number(decimal.NewFromInt(d.Milliseconds())), nil

	case "year":
		t, err := fromEpochMillis(args[0])
		if err != nil {
			return value.Null(), err
		}
		return value.NumberFromInt(int64(t.Year())), nil

	case "dayOfWeek":
		t, err := fromEpochMillis(args[0])
		if err != nil {
			return value.Null(), err
		}
		return value.NumberFromInt(int64(t.Weekday())), nil

	case "dayOfMonth":
		t, err := fromEpochMillis(args[0])
		if err != nil {
			return value.Null(), err
		}
		return value.NumberFromInt(int64(t.Day())), nil

	case "dayOfYear":
		t, err := fromEpochMillis(args[0])
		if err != nil {
			return value.Null(), err
		}
		return value.NumberFromInt(int64(t.YearDay())), nil

	case "weekOfYear":
		t, err := fromEpochMillis(args[0])
		if err != nil {
			return value.Null(), err
		}
		_, week := t.ISOWeek()
		return value.NumberFromInt(int64(week)), nil

	case "monthOfYear":
		t, err := fromEpochMillis(args[0])
		if err != nil {
			return value.Null(), err
		}
		return value.NumberFromInt(int64(t.Month())), nil

	case "monthString":
		t, err := fromEpochMillis(args[0])
		if err != nil {
			return value.Null(), err
		}
		return value.String(t.Month().String()), nil

	case "weekdayString":
		t, err := fromEpochMillis(args[0])
		if err != nil {
			return value.Null(), err
		}
		return value.String(t.Weekday().String()), nil

	case "dateString":
		t, err := fromEpochMillis(args[0])
		if err != nil {
			return value.Null(), err
		}
		return value.String(t.Format(time.RFC3339)), nil

	case "startOf", "endOf":
		t, err := fromEpochMillis(args[0])
		if err != nil {
			return value.Null(), err
		}
		unit := "day"
		if len(args) > 1 {
			unit = args[1].AsString()
		}
		return toEpochMillis(boundOfUnit(t, unit, name == "endOf")), nil

	default:
		return value.Null(), xerr.ErrUnknownFunction(name)
	}
}

func boundOfUnit(t time.Time, unit string, end bool) time.Time {
	switch unit {
	case "year":
		if end {
			return time.Date(t.Year(), time.December, 31, 23, 59, 59, 0, time.UTC)
		}
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	case "month":
		if end {
			return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC).Add(-time.Second)
		}
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	case "week":
		offset := int(t.Weekday())
		start := t.AddDate(0, 0, -offset)
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
		if end {
			return start.AddDate(0, 0, 7).Add(-time.Second)
		}
		return start
	default: // "day"
		if end {
			return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, time.UTC)
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}
