// Package cal registers the platform::cal built-ins: the current date and
// component extractors over a DateValue (spec.md §4.7).
package cal

import (
	"time"

	"github.com/solidcoredata/coredb/errs"
	"github.com/solidcoredata/coredb/platform"
	"github.com/solidcoredata/coredb/value"
)

const pkg = "cal"

const (
	opNow Opcode = iota + 100
	opDayOf
	opHour12
	opHour24
	opMinuteOf
	opMonthOf
	opSecondOf
	opYearOf
)

// Opcode aliases platform.Opcode for readability in this file's constants.
type Opcode = platform.Opcode

func asTime(v value.TypedValue) (time.Time, error) {
	if v.Kind != value.KindDate {
		return time.Time{}, &errs.DateExpected{Got: v.TypeOf().Render()}
	}
	return time.UnixMilli(v.Date).UTC(), nil
}

func init() {
	r := platform.Global()

	r.Register(platform.Signature{Package: pkg, Name: "now", Arity: 0, Opcode: opNow,
		Call: platform.Arity0(func() (value.TypedValue, error) {
			return value.DateMillis(time.Now().UnixMilli()), nil
		}),
	})
	r.Register(extractor(opDayOf, "day_of", func(t time.Time) int64 { return int64(t.Day()) }))
	r.Register(extractor(opHour12, "hour12", func(t time.Time) int64 {
		h := int64(t.Hour() % 12)
		if h == 0 {
			h = 12
		}
		return h
	}))
	r.Register(extractor(opHour24, "hour24", func(t time.Time) int64 { return int64(t.Hour()) }))
	r.Register(extractor(opMinuteOf, "minute_of", func(t time.Time) int64 { return int64(t.Minute()) }))
	r.Register(extractor(opMonthOf, "month_of", func(t time.Time) int64 { return int64(t.Month()) }))
	r.Register(extractor(opSecondOf, "second_of", func(t time.Time) int64 { return int64(t.Second()) }))
	r.Register(extractor(opYearOf, "year_of", func(t time.Time) int64 { return int64(t.Year()) }))
}

func extractor(code Opcode, name string, extract func(time.Time) int64) platform.Signature {
	return platform.Signature{
		Package: pkg, Name: name, Arity: 1, Opcode: code,
		Call: platform.Arity1(func(a value.TypedValue) (value.TypedValue, error) {
			t, err := asTime(a)
			if err != nil {
				return value.Undefined(), err
			}
			return value.Int64v(extract(t)), nil
		}),
	}
}
