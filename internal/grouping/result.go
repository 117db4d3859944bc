package grouping

import (
	"cdr-mcp/internal/stats"
)

// BucketKey identifies one cell of a grouped result: the week period,
// day period and interaction filter the record slice was produced with.
type BucketKey struct {
	Week        WeekPeriod        `json:"week_period"`
	Day         DayPeriod         `json:"day_period"`
	Interaction InteractionFilter `json:"interaction"`
}

// Value is the tagged payload of one result cell. Exactly one of Series
// or Summary is set; a nil *Value means the cell had no usable data.
type Value struct {
	// Series holds the raw value(s) when no reduction was requested.
	Series []float64 `json:"series,omitempty"`
	// Summary holds the statistical reduction when time bucketing is on.
	Summary *stats.Summary `json:"summary,omitempty"`
}

// Grouped is the result tree of one indicator invocation, keyed by the
// composite BucketKey. It is created fresh per invocation and never
// mutated afterwards.
type Grouped struct {
	Indicator string
	Options   Options
	Cells     map[BucketKey]*Value
}

// Keys returns the cell keys in deterministic cross-product order:
// week period, then day period, then interaction filter.
func (g *Grouped) Keys() []BucketKey {
	weeks := []WeekPeriod{AllWeek, Weekday, Weekend}
	days := []DayPeriod{AllDay, Day, Night}
	kinds := []InteractionFilter{FilterCallAndText, FilterCall, FilterText}

	var keys []BucketKey
	for _, w := range weeks {
		for _, d := range days {
			for _, k := range kinds {
				key := BucketKey{Week: w, Day: d, Interaction: k}
				if _, ok := g.Cells[key]; ok {
					keys = append(keys, key)
				}
			}
		}
	}
	return keys
}

// Tree converts the flat cell map into the nested
// week -> day -> interaction mapping used at the export boundary.
func (g *Grouped) Tree() map[WeekPeriod]map[DayPeriod]map[InteractionFilter]*Value {
	tree := make(map[WeekPeriod]map[DayPeriod]map[InteractionFilter]*Value)
	for key, v := range g.Cells {
		if tree[key.Week] == nil {
			tree[key.Week] = make(map[DayPeriod]map[InteractionFilter]*Value)
		}
		if tree[key.Week][key.Day] == nil {
			tree[key.Week][key.Day] = make(map[InteractionFilter]*Value)
		}
		tree[key.Week][key.Day][key.Interaction] = v
	}
	return tree
}
