package grouping

import (
	"time"

	"cdr-mcp/internal/record"
)

// WeekPeriod selects records by weekday class.
type WeekPeriod string

const (
	// AllWeek keeps every record regardless of weekday.
	AllWeek WeekPeriod = "allweek"
	// Weekday keeps records falling outside the user's weekend days.
	Weekday WeekPeriod = "weekday"
	// Weekend keeps records falling on the user's weekend days.
	Weekend WeekPeriod = "weekend"
)

// DayPeriod selects records by time-of-day class.
type DayPeriod string

const (
	// AllDay keeps every record regardless of time of day.
	AllDay DayPeriod = "allday"
	// Day keeps records outside the night window.
	Day DayPeriod = "day"
	// Night keeps records inside the night window.
	Night DayPeriod = "night"
)

// InteractionFilter selects records by communication channel.
type InteractionFilter string

const (
	FilterCall        InteractionFilter = "call"
	FilterText        InteractionFilter = "text"
	FilterCallAndText InteractionFilter = "callandtext"
)

// DirectionFilter optionally restricts records to one call/text direction.
type DirectionFilter string

const (
	DirectionAny DirectionFilter = ""
	DirectionIn  DirectionFilter = "in"
	DirectionOut DirectionFilter = "out"
)

// ByWeekPeriod returns the ordered subsequence of records matching the
// week period. Weekday and Weekend form a true partition of the input.
func ByWeekPeriod(records []record.Record, p WeekPeriod, weekend map[time.Weekday]bool) []record.Record {
	if p == AllWeek {
		return records
	}

	var out []record.Record
	for _, r := range records {
		isWeekend := weekend[r.Timestamp.Weekday()]
		if (p == Weekend) == isWeekend {
			out = append(out, r)
		}
	}
	return out
}

// ByDayPeriod returns the ordered subsequence of records matching the day
// period. The night window is circular, so windows wrapping midnight
// classify correctly (see record.NightWindow.Contains).
func ByDayPeriod(records []record.Record, p DayPeriod, night record.NightWindow) []record.Record {
	if p == AllDay {
		return records
	}

	var out []record.Record
	for _, r := range records {
		if (p == Night) == night.Contains(r.Timestamp) {
			out = append(out, r)
		}
	}
	return out
}

// ByInteraction returns the ordered subsequence of records matching the
// interaction filter. Pure location pings carry no interaction kind and
// are excluded by every filter, including callandtext; spatial indicators
// bypass this filter via WithPosition instead.
func ByInteraction(records []record.Record, f InteractionFilter) []record.Record {
	var out []record.Record
	for _, r := range records {
		switch f {
		case FilterCall:
			if r.Interaction == record.Call {
				out = append(out, r)
			}
		case FilterText:
			if r.Interaction == record.Text {
				out = append(out, r)
			}
		case FilterCallAndText:
			if r.Interaction == record.Call || r.Interaction == record.Text {
				out = append(out, r)
			}
		}
	}
	return out
}

// ByDirection returns records matching the given direction. DirectionAny
// keeps everything, including pings without a direction.
func ByDirection(records []record.Record, d DirectionFilter) []record.Record {
	if d == DirectionAny {
		return records
	}

	var out []record.Record
	for _, r := range records {
		if string(r.Direction) == string(d) {
			out = append(out, r)
		}
	}
	return out
}

// WithPosition returns the subsequence of records carrying location
// information, regardless of interaction kind. Spatial indicators operate
// on this slice instead of the interaction-filtered one.
func WithPosition(records []record.Record) []record.Record {
	var out []record.Record
	for _, r := range records {
		if r.Position.Known() {
			out = append(out, r)
		}
	}
	return out
}
