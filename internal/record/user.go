package record

import (
	"sort"
	"time"
)

// NightWindow is a circular time-of-day interval [Start, End) measured as
// offsets from midnight. The window may wrap midnight (e.g. 19:00-07:00).
type NightWindow struct {
	Start time.Duration `json:"start"`
	End   time.Duration `json:"end"`
}

// DefaultNightWindow is the conventional night interval, 19:00-07:00.
func DefaultNightWindow() NightWindow {
	return NightWindow{Start: 19 * time.Hour, End: 7 * time.Hour}
}

// Contains reports whether the wall-clock time of t falls inside the
// window. Matching is circular: when Start > End the interval wraps
// midnight, so 23:00 and 03:00 are inside 19:00-07:00 while 12:00 is not.
func (w NightWindow) Contains(t time.Time) bool {
	tod := time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second

	if w.Start == w.End {
		return false
	}
	if w.Start < w.End {
		return tod >= w.Start && tod < w.End
	}
	return tod >= w.Start || tod < w.End
}

// User binds a record sequence with the per-user analysis context. The
// engine treats it as read-only input; it is never mutated or persisted
// by an indicator run.
type User struct {
	ID string `json:"id"`
	// Records is the time-ascending interaction sequence.
	Records []Record `json:"records"`
	// Night is the day/night classification window.
	Night NightWindow `json:"night_window"`
	// WeekendDays is the set of weekdays counted as weekend.
	WeekendDays map[time.Weekday]bool `json:"-"`
	// Antennas maps antenna identifiers to [lat, lon] coordinates.
	Antennas map[string][2]float64 `json:"antennas,omitempty"`
}

// DefaultWeekendDays returns the conventional Saturday+Sunday weekend set.
func DefaultWeekendDays() map[time.Weekday]bool {
	return map[time.Weekday]bool{time.Saturday: true, time.Sunday: true}
}

// NewUser builds a User with default night window and weekend days. The
// record sequence is sorted chronologically so later stages can rely on
// time-ascending order.
func NewUser(id string, records []Record) *User {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	return &User{
		ID:          id,
		Records:     sorted,
		Night:       DefaultNightWindow(),
		WeekendDays: DefaultWeekendDays(),
	}
}

// IsWeekend reports whether t falls on one of the user's weekend days.
func (u *User) IsWeekend(t time.Time) bool {
	return u.WeekendDays[t.Weekday()]
}

// AntennaCoords resolves an antenna identifier to coordinates.
func (u *User) AntennaCoords(id string) (lat, lon float64, ok bool) {
	c, ok := u.Antennas[id]
	if !ok {
		return 0, 0, false
	}
	return c[0], c[1], true
}

// Coordinates resolves the effective coordinates of a record's position,
// preferring explicit lat/lon over the antenna lookup table.
func (u *User) Coordinates(r Record) (lat, lon float64, ok bool) {
	if r.Position.Latitude != nil && r.Position.Longitude != nil {
		return *r.Position.Latitude, *r.Position.Longitude, true
	}
	if r.Position.Antenna != "" {
		return u.AntennaCoords(r.Position.Antenna)
	}
	return 0, 0, false
}
