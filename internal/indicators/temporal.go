package indicators

import (
	"time"

	"cdr-mcp/internal/record"
)

// The temporal analyzers operate on a full record sequence rather than
// through the grouped cross-product: they return event lists, not
// scalars, so the summary reducer does not apply to them.

// Gap is a period of silence between two consecutive interactions.
type Gap struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Hours float64   `json:"duration_hours"`
}

// CommunicationGaps detects periods of silence lasting at least the
// given threshold. The input is expected time-ascending; fewer than two
// records produce no gaps.
func CommunicationGaps(records []record.Record, threshold time.Duration) []Gap {
	var gaps []Gap
	for i := 1; i < len(records); i++ {
		prev, curr := records[i-1], records[i]
		delta := curr.Timestamp.Sub(prev.Timestamp)
		if delta >= threshold {
			gaps = append(gaps, Gap{
				Start: prev.Timestamp,
				End:   curr.Timestamp,
				Hours: delta.Hours(),
			})
		}
	}
	return gaps
}

// Burst is a window of unusually dense activity.
type Burst struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Count    int       `json:"count"`
	Contacts []string  `json:"contacts"`
}

// ActivityBursts finds windows in which activity exceeds the average
// per-window rate by the given multiplier. Windows advance record by
// record and a detected burst is skipped over in full, so overlapping
// bursts are reported once.
func ActivityBursts(records []record.Record, window time.Duration, multiplier float64) []Burst {
	if len(records) < 2 {
		return nil
	}

	span := records[len(records)-1].Timestamp.Sub(records[0].Timestamp)
	if span <= 0 {
		return nil
	}

	avgPerWindow := float64(len(records)) * float64(window) / float64(span)
	threshold := avgPerWindow * multiplier

	var bursts []Burst
	i := 0
	for i < len(records) {
		start := records[i].Timestamp
		end := start.Add(window)

		count := 0
		seen := make(map[string]bool)
		var contacts []string
		for j := i; j < len(records) && records[j].Timestamp.Before(end); j++ {
			count++
			id := records[j].CorrespondentID
			if id != "" && !seen[id] {
				seen[id] = true
				contacts = append(contacts, id)
			}
		}

		if float64(count) >= threshold {
			bursts = append(bursts, Burst{Start: start, End: end, Count: count, Contacts: contacts})
			i += count
		} else {
			i++
		}
	}
	return bursts
}

// HourlyProfile counts interactions per hour of day (0-23), establishing
// the user's routine activity shape.
func HourlyProfile(records []record.Record) [24]int {
	var profile [24]int
	for _, r := range records {
		profile[r.Timestamp.Hour()]++
	}
	return profile
}
