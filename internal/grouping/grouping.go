// Package grouping implements the grouped-indicator engine: a pure
// filter pipeline over per-user interaction records, composed with
// calendar time bucketing and a summary reducer. A raw indicator
// supplies only its core computation over an already-filtered slice;
// Apply lifts it across the week/day/interaction cross-product.
package grouping

import (
	"errors"

	"cdr-mcp/internal/record"
	"cdr-mcp/internal/stats"
)

// ErrInsufficientData signals a data-sparsity condition inside a raw
// indicator (typically an empty or too-small filtered slice). The engine
// converts it to a nil cell value and continues with sibling cells; it
// never aborts a grouped computation.
var ErrInsufficientData = errors.New("insufficient data")

// RawFunc is the core computation of an indicator: it maps a filtered
// record slice to the value(s) it contributes. The user context is nil
// unless the indicator declares NeedsUser.
type RawFunc func(records []record.Record, u *record.User) ([]float64, error)

// Indicator describes a raw indicator and its filtering requirements.
type Indicator struct {
	// Name is the stable identifier used in registries and results.
	Name string
	// Doc is a one-line description for tool listings.
	Doc string
	// Compute is the raw computation over a filtered slice.
	Compute RawFunc
	// NeedsUser requests the read-only user context (night window,
	// antenna table) to be passed to Compute.
	NeedsUser bool
	// Pinned restricts the indicator to a single interaction filter
	// (e.g. call duration is call-only). Empty means all three filters
	// are iterated.
	Pinned InteractionFilter
	// Distribution marks indicators whose raw result is a value
	// distribution rather than a scalar. Distributions are reduced by
	// the summary reducer even without time bucketing.
	Distribution bool
	// Spatial indicators operate on located records regardless of
	// interaction kind, and reject day/night and direction options.
	Spatial bool
}

// Apply runs the indicator across the active week/day/interaction
// cross-product and the configured time buckets, producing the grouped
// result tree. Data-sparsity errors degrade individual cells to nil;
// option violations and programmer errors surface immediately.
func Apply(ind Indicator, u *record.User, opts Options) (*Grouped, error) {
	if err := opts.Validate(ind); err != nil {
		return nil, err
	}

	weeks := []WeekPeriod{AllWeek}
	if opts.SplitWeek {
		weeks = []WeekPeriod{AllWeek, Weekday, Weekend}
	}
	days := []DayPeriod{AllDay}
	if opts.SplitDay {
		days = []DayPeriod{AllDay, Day, Night}
	}
	kinds := activeInteractionFilters(ind)

	records := ByDirection(u.Records, opts.Direction)

	g := &Grouped{
		Indicator: ind.Name,
		Options:   opts,
		Cells:     make(map[BucketKey]*Value, len(weeks)*len(days)*len(kinds)),
	}

	for _, wp := range weeks {
		weekSlice := ByWeekPeriod(records, wp, u.WeekendDays)
		for _, dp := range days {
			daySlice := ByDayPeriod(weekSlice, dp, u.Night)
			for _, k := range kinds {
				var cellSlice []record.Record
				if ind.Spatial {
					cellSlice = WithPosition(daySlice)
				} else {
					cellSlice = ByInteraction(daySlice, k)
				}

				value, err := computeCell(ind, u, cellSlice, opts)
				if err != nil {
					return nil, err
				}
				g.Cells[BucketKey{Week: wp, Day: dp, Interaction: k}] = value
			}
		}
	}

	return g, nil
}

func activeInteractionFilters(ind Indicator) []InteractionFilter {
	if ind.Spatial {
		// Spatial indicators do not split by channel; the single cell is
		// keyed callandtext for a uniform result shape.
		return []InteractionFilter{FilterCallAndText}
	}
	if ind.Pinned != "" {
		return []InteractionFilter{ind.Pinned}
	}
	return []InteractionFilter{FilterCall, FilterText, FilterCallAndText}
}

// computeCell evaluates one cell: without time bucketing the raw value is
// returned directly, otherwise per-bucket values are collected and
// reduced. A bucket whose computation reports ErrInsufficientData yields
// no sample values but never aborts the cell.
func computeCell(ind Indicator, u *record.User, records []record.Record, opts Options) (*Value, error) {
	if opts.GroupBy == GroupNone {
		values, err := runRaw(ind, u, records)
		if err != nil {
			if errors.Is(err, ErrInsufficientData) {
				return nil, nil
			}
			return nil, err
		}
		if len(values) == 0 {
			return nil, nil
		}
		if ind.Distribution && opts.Summary != SummaryNone {
			return &Value{Summary: stats.Describe(values, opts.Summary == SummaryExtended)}, nil
		}
		return &Value{Series: values}, nil
	}

	var sample []float64
	for _, bucket := range SplitTimeBuckets(records, opts.GroupBy) {
		values, err := runRaw(ind, u, bucket.Records)
		if err != nil {
			if errors.Is(err, ErrInsufficientData) {
				continue
			}
			return nil, err
		}
		sample = append(sample, values...)
	}

	if opts.Summary == SummaryNone {
		if len(sample) == 0 {
			return nil, nil
		}
		return &Value{Series: sample}, nil
	}

	summary := stats.Describe(sample, opts.Summary == SummaryExtended)
	if summary == nil {
		return nil, nil
	}
	return &Value{Summary: summary}, nil
}

func runRaw(ind Indicator, u *record.User, records []record.Record) ([]float64, error) {
	var ctx *record.User
	if ind.NeedsUser {
		ctx = u
	}
	return ind.Compute(records, ctx)
}
