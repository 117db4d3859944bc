package grouping

import (
	"errors"
	"fmt"
)

// SummaryKind selects the statistical reduction applied per cell when
// time bucketing is active.
type SummaryKind string

const (
	// SummaryDefault reduces to mean and standard deviation.
	SummaryDefault SummaryKind = "default"
	// SummaryExtended adds median, min, max, skewness and kurtosis.
	SummaryExtended SummaryKind = "extended"
	// SummaryNone returns the raw per-bucket values unreduced.
	SummaryNone SummaryKind = "none"
)

// ErrInvalidOptions indicates an option combination the engine rejects
// before any filtering work begins.
var ErrInvalidOptions = errors.New("invalid grouping options")

// Options is the validated configuration of one grouped indicator
// invocation. It is constructed once per call and passed immutably
// through the pipeline.
type Options struct {
	GroupBy   GroupBy         `json:"groupby"`
	Summary   SummaryKind     `json:"summary"`
	SplitWeek bool            `json:"split_week"`
	SplitDay  bool            `json:"split_day"`
	Direction DirectionFilter `json:"direction,omitempty"`
}

// DefaultOptions mirrors the conventional defaults: weekly bucketing,
// mean/std summary, no week or day splitting.
func DefaultOptions() Options {
	return Options{
		GroupBy: GroupWeek,
		Summary: SummaryDefault,
	}
}

// Validate checks the option values and their compatibility with the
// indicator. Violations are fatal and surface before any filtering.
func (o Options) Validate(ind Indicator) error {
	switch o.GroupBy {
	case GroupNone, GroupWeek, GroupMonth, GroupYear:
	default:
		return fmt.Errorf("%w: unknown groupby %q", ErrInvalidOptions, o.GroupBy)
	}

	switch o.Summary {
	case SummaryDefault, SummaryExtended, SummaryNone:
	default:
		return fmt.Errorf("%w: unknown summary %q", ErrInvalidOptions, o.Summary)
	}

	switch o.Direction {
	case DirectionAny, DirectionIn, DirectionOut:
	default:
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidOptions, o.Direction)
	}

	if ind.Spatial {
		if o.SplitDay {
			return fmt.Errorf("%w: indicator %q operates on positions and does not support day/night partitioning", ErrInvalidOptions, ind.Name)
		}
		if o.Direction != DirectionAny {
			return fmt.Errorf("%w: indicator %q operates on positions and has no direction", ErrInvalidOptions, ind.Name)
		}
	}

	return nil
}
