package model

import (
	"time"

	"github.com/k-morita/deployscope/pkg/domain/types"
)

// Period is one calendar bucket of a metric series. Start and End are both
// inclusive dates at midnight UTC.
type Period struct {
	Start time.Time
	End   time.Time
}

// Date builds a midnight-UTC date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the last second of the given date, for queries whose upper
// bound is an inclusive calendar day.
func EndOfDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, d.Location())
}

// DateOf truncates a timestamp to its midnight-UTC date.
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// mondayOnOrBefore aligns weekly and biweekly buckets.
func mondayOnOrBefore(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func clip(end, rangeEnd time.Time) time.Time {
	if end.After(rangeEnd) {
		return rangeEnd
	}
	return end
}

// SplitPeriods buckets [rangeStart, rangeEnd] into periods of the requested
// granularity. Weekly buckets start on the Monday on or before rangeStart and
// end on the following Sunday, biweekly buckets span 14 days, monthly buckets
// follow calendar months; every bucket end is clipped to rangeEnd. An
// unsupported granularity yields no buckets.
func SplitPeriods(g types.Granularity, rangeStart, rangeEnd time.Time) []Period {
	rangeStart = DateOf(rangeStart)
	rangeEnd = DateOf(rangeEnd)

	var periods []Period
	switch g {
	case types.Weekly:
		for start := mondayOnOrBefore(rangeStart); !start.After(rangeEnd); start = start.AddDate(0, 0, 7) {
			periods = append(periods, Period{Start: start, End: clip(start.AddDate(0, 0, 6), rangeEnd)})
		}
	case types.Biweekly:
		for start := mondayOnOrBefore(rangeStart); !start.After(rangeEnd); start = start.AddDate(0, 0, 14) {
			periods = append(periods, Period{Start: start, End: clip(start.AddDate(0, 0, 13), rangeEnd)})
		}
	case types.Monthly:
		start := Date(rangeStart.Year(), rangeStart.Month(), 1)
		for ; !start.After(rangeEnd); start = start.AddDate(0, 1, 0) {
			lastDay := start.AddDate(0, 1, -1)
			periods = append(periods, Period{Start: start, End: clip(lastDay, rangeEnd)})
		}
	}

	return periods
}
