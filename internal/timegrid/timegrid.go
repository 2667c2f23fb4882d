// Package timegrid aligns epoch-millisecond timestamps to the open/close
// boundaries of a configured timeframe. Every function here is pure.
package timegrid

import "fmt"

const msPerMinute = 60000

// durations maps a timeframe tag to its length in minutes.
var durations = map[string]int64{
	"1m":  1,
	"M15": 15,
	"H1":  60,
	"H4":  240,
	"D1":  1440,
	"W1":  10080,
}

// Duration returns tf's length in minutes.
func Duration(tf string) (int64, error) {
	d, ok := durations[tf]
	if !ok {
		return 0, fmt.Errorf("timegrid: unrecognized timeframe %q", tf)
	}
	return d, nil
}

// AlignOpen floors ts_ms to the start of its tf window. M15..D1 align to a
// fixed UTC grid; W1 aligns to the Monday 00:00:00 UTC of ts's week.
func AlignOpen(ts int64, tf string) (int64, error) {
	dMin, err := Duration(tf)
	if err != nil {
		return 0, err
	}
	if tf == "W1" {
		return alignWeekOpen(ts), nil
	}
	windowMs := dMin * msPerMinute
	return floorDiv(ts, windowMs) * windowMs, nil
}

// EndFromOpen returns the exclusive close of the window that opens at
// t_open.
func EndFromOpen(tOpen int64, tf string) (int64, error) {
	dMin, err := Duration(tf)
	if err != nil {
		return 0, err
	}
	return tOpen + dMin*msPerMinute, nil
}

const (
	msPerDay  = 24 * 60 * msPerMinute
	msPerWeek = 7 * msPerDay
	// Epoch (1970-01-01) was a Thursday; the preceding Monday is 3 days earlier.
	epochToMondayOffsetMs = 3 * msPerDay
)

func alignWeekOpen(ts int64) int64 {
	// Shift so that week boundaries land on Monday 00:00 UTC instead of the
	// epoch's Thursday, floor to the week, then shift back.
	shifted := ts + epochToMondayOffsetMs
	weekStart := floorDiv(shifted, msPerWeek) * msPerWeek
	return weekStart - epochToMondayOffsetMs
}

// floorDiv performs floored (not truncated) integer division, matching ⌊a/b⌋
// for negative a as well as positive.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
