package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Timestamp is a point in time with millisecond precision.
type Timestamp struct {
	millis uint64
}

var timestampLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

const timestampFormat = "2006-01-02T15:04:05.000Z"

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{millis: uint64(t.UnixMilli())}
}

func TimestampFromMillis(ms uint64) Timestamp {
	return Timestamp{millis: ms}
}

// ParseTimestamp accepts RFC3339-like input such as "2018-02-16 00:31:37" or
// "2018-02-16T00:31:37.123Z". Input without a zone is UTC.
func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			if t.Before(time.UnixMilli(0)) {
				break
			}
			return NewTimestamp(t), nil
		}
	}
	return Timestamp{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

func (t Timestamp) Millis() uint64 { return t.millis }

func (t Timestamp) Time() time.Time { return time.UnixMilli(int64(t.millis)).UTC() }

func (t Timestamp) String() string { return t.Time().Format(timestampFormat) }

func (t Timestamp) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Timestamp) UnmarshalText(input []byte) error {
	parsed, err := ParseTimestamp(string(input))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TimeDiff is a duration with millisecond precision, written in the
// humantime notation ("30min", "1hr 12min", "1day").
type TimeDiff struct {
	millis uint64
}

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
	secondsPerDay    = 86_400
	secondsPerWeek   = 7 * secondsPerDay
	secondsPerMonth  = 2_630_016
	secondsPerYear   = 31_557_600
)

// unit multipliers in nanoseconds
var durationUnits = map[string]uint64{
	"nsec": 1, "ns": 1,
	"usec": 1_000, "us": 1_000,
	"msec": 1_000_000, "ms": 1_000_000,
	"seconds": 1e9, "second": 1e9, "sec": 1e9, "s": 1e9,
	"minutes": secondsPerMinute * 1e9, "minute": secondsPerMinute * 1e9, "min": secondsPerMinute * 1e9, "m": secondsPerMinute * 1e9,
	"hours": secondsPerHour * 1e9, "hour": secondsPerHour * 1e9, "hr": secondsPerHour * 1e9, "h": secondsPerHour * 1e9,
	"days": secondsPerDay * 1e9, "day": secondsPerDay * 1e9, "d": secondsPerDay * 1e9,
	"weeks": secondsPerWeek * 1e9, "week": secondsPerWeek * 1e9, "w": secondsPerWeek * 1e9,
	"months": secondsPerMonth * 1e9, "month": secondsPerMonth * 1e9, "M": secondsPerMonth * 1e9,
	"years": secondsPerYear * 1e9, "year": secondsPerYear * 1e9, "y": secondsPerYear * 1e9,
}

func NewTimeDiff(d time.Duration) TimeDiff {
	return TimeDiff{millis: uint64(d.Milliseconds())}
}

func TimeDiffFromMillis(ms uint64) TimeDiff {
	return TimeDiff{millis: ms}
}

func ParseTimeDiff(s string) (TimeDiff, error) {
	fail := func(reason string) (TimeDiff, error) {
		return TimeDiff{}, fmt.Errorf("%w: %q: %s", ErrInvalidDuration, s, reason)
	}

	rest := strings.TrimSpace(s)
	if rest == "" {
		return fail("empty duration")
	}

	var nanos uint64
	for rest != "" {
		digits := strings.IndexFunc(rest, func(r rune) bool { return r < '0' || r > '9' })
		if digits == 0 {
			return fail("expected number")
		}
		if digits < 0 {
			return fail("unit is required")
		}
		value, err := strconv.ParseUint(rest[:digits], 10, 64)
		if err != nil {
			return fail("number is too large")
		}
		rest = strings.TrimLeft(rest[digits:], " ")

		unitEnd := strings.IndexFunc(rest, func(r rune) bool { return (r >= '0' && r <= '9') || r == ' ' })
		if unitEnd < 0 {
			unitEnd = len(rest)
		}
		mult, ok := durationUnits[rest[:unitEnd]]
		if !ok {
			return fail(fmt.Sprintf("unknown time unit %q", rest[:unitEnd]))
		}
		if value > 0 && mult > (^uint64(0)-nanos)/value {
			return fail("number is too large")
		}
		nanos += value * mult
		rest = strings.TrimLeft(rest[unitEnd:], " ")
	}
	return TimeDiff{millis: nanos / 1_000_000}, nil
}

func (d TimeDiff) Millis() uint64 { return d.millis }

func (d TimeDiff) Duration() time.Duration { return time.Duration(d.millis) * time.Millisecond }

func (d TimeDiff) String() string {
	if d.millis == 0 {
		return "0s"
	}

	secs := d.millis / 1000
	millis := d.millis % 1000

	years := secs / secondsPerYear
	yearRem := secs % secondsPerYear
	months := yearRem / secondsPerMonth
	monthRem := yearRem % secondsPerMonth
	days := monthRem / secondsPerDay
	daySecs := monthRem % secondsPerDay

	var parts []string
	plural := func(value uint64, name string) {
		switch {
		case value == 1:
			parts = append(parts, "1"+name)
		case value > 1:
			parts = append(parts, strconv.FormatUint(value, 10)+name+"s")
		}
	}
	short := func(value uint64, name string) {
		if value > 0 {
			parts = append(parts, strconv.FormatUint(value, 10)+name)
		}
	}

	plural(years, "year")
	plural(months, "month")
	plural(days, "day")
	short(daySecs/secondsPerHour, "h")
	short(daySecs%secondsPerHour/secondsPerMinute, "m")
	short(daySecs%secondsPerMinute, "s")
	short(millis, "ms")
	return strings.Join(parts, " ")
}

func (d TimeDiff) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *TimeDiff) UnmarshalText(input []byte) error {
	parsed, err := ParseTimeDiff(string(input))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Set implements pflag.Value.
func (d *TimeDiff) Set(value string) error {
	return d.UnmarshalText([]byte(value))
}

func (d *TimeDiff) Type() string {
	return "duration"
}
