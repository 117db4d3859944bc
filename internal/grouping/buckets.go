package grouping

import (
	"fmt"
	"time"

	"cdr-mcp/internal/record"
)

// GroupBy defines the calendar granularity of the outer time bucketing.
type GroupBy string

const (
	GroupNone  GroupBy = "none"
	GroupWeek  GroupBy = "week"
	GroupMonth GroupBy = "month"
	GroupYear  GroupBy = "year"
)

// TimeBucket is one contiguous calendar slice of a record sequence.
// Buckets with zero records are retained so that "no activity this
// period" stays distinguishable from "no data at all".
type TimeBucket struct {
	Start   time.Time
	Label   string
	Records []record.Record
}

// SnapToStart normalizes a timestamp to the beginning of its bucket.
// Weeks start on Monday (ISO convention).
func SnapToStart(t time.Time, g GroupBy) time.Time {
	if t.IsZero() {
		return t
	}
	switch g {
	case GroupYear:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	case GroupMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	case GroupWeek:
		weekday := int(t.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday -> 7
		}
		daysToSubtract := weekday - 1
		return time.Date(t.Year(), t.Month(), t.Day()-daysToSubtract, 0, 0, 0, 0, t.Location())
	default:
		return t
	}
}

// nextStart advances a normalized bucket start to the following bucket.
func nextStart(t time.Time, g GroupBy) time.Time {
	switch g {
	case GroupYear:
		return t.AddDate(1, 0, 0)
	case GroupMonth:
		return t.AddDate(0, 1, 0)
	default: // week
		return t.AddDate(0, 0, 7)
	}
}

// Label returns a human-readable bucket label ("2024", "Jan 2024",
// "2024-W05").
func Label(t time.Time, g GroupBy) string {
	switch g {
	case GroupYear:
		return t.Format("2006")
	case GroupMonth:
		return t.Format("Jan 2006")
	case GroupWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	default:
		return "all"
	}
}

// SplitTimeBuckets partitions a time-ascending record sequence into
// contiguous calendar buckets. GroupNone yields a single bucket holding
// all records. Gaps between the first and last record produce empty
// buckets rather than being dropped.
func SplitTimeBuckets(records []record.Record, g GroupBy) []TimeBucket {
	if g == GroupNone {
		return []TimeBucket{{Label: Label(time.Time{}, g), Records: records}}
	}
	if len(records) == 0 {
		return nil
	}

	first := SnapToStart(records[0].Timestamp, g)
	last := SnapToStart(records[len(records)-1].Timestamp, g)

	var buckets []TimeBucket
	idx := 0
	for start := first; !start.After(last); start = nextStart(start, g) {
		end := nextStart(start, g)
		b := TimeBucket{Start: start, Label: Label(start, g)}
		for idx < len(records) && records[idx].Timestamp.Before(end) {
			b.Records = append(b.Records, records[idx])
			idx++
		}
		buckets = append(buckets, b)
	}
	return buckets
}
