package indicators

import (
	"sort"

	"cdr-mcp/internal/grouping"
	"cdr-mcp/internal/record"
	"cdr-mcp/internal/stats"
)

// Count indicators return a true zero for empty slices; statistical
// indicators instead report ErrInsufficientData so the engine can
// distinguish "no activity" from a zero-valued measurement.

// NumberOfInteractions counts the records in each slice.
var NumberOfInteractions = register(grouping.Indicator{
	Name: "number_of_interactions",
	Doc:  "Count of interactions in the filtered slice.",
	Compute: func(records []record.Record, _ *record.User) ([]float64, error) {
		return []float64{float64(len(records))}, nil
	},
})

// NumberOfContacts counts the distinct correspondents in each slice.
var NumberOfContacts = register(grouping.Indicator{
	Name: "number_of_contacts",
	Doc:  "Count of distinct correspondents in the filtered slice.",
	Compute: func(records []record.Record, _ *record.User) ([]float64, error) {
		return []float64{float64(len(contactCounts(records)))}, nil
	},
})

// CallDuration yields the distribution of call lengths in seconds.
var CallDuration = register(grouping.Indicator{
	Name:         "call_duration",
	Doc:          "Distribution of call durations in seconds (calls only).",
	Pinned:       grouping.FilterCall,
	Distribution: true,
	Compute: func(records []record.Record, _ *record.User) ([]float64, error) {
		var durations []float64
		for _, r := range records {
			if r.CallDuration != nil {
				durations = append(durations, float64(*r.CallDuration))
			}
		}
		if len(durations) == 0 {
			return nil, grouping.ErrInsufficientData
		}
		return durations, nil
	},
})

// PercentInitiated is the share of interactions the user initiated.
var PercentInitiated = register(grouping.Indicator{
	Name: "percent_initiated",
	Doc:  "Share of interactions initiated by the user.",
	Compute: func(records []record.Record, _ *record.User) ([]float64, error) {
		if len(records) == 0 {
			return nil, grouping.ErrInsufficientData
		}
		out := 0
		for _, r := range records {
			if r.Direction == record.Outgoing {
				out++
			}
		}
		return []float64{float64(out) / float64(len(records))}, nil
	},
})

// PercentNocturnal is the share of interactions inside the user's night
// window. Computed against the full day, so it only makes sense without
// split_day; with split_day the cell degenerates to 0 or 1 by definition.
var PercentNocturnal = register(grouping.Indicator{
	Name:      "percent_nocturnal",
	Doc:       "Share of interactions falling inside the night window.",
	NeedsUser: true,
	Compute: func(records []record.Record, u *record.User) ([]float64, error) {
		if len(records) == 0 {
			return nil, grouping.ErrInsufficientData
		}
		night := 0
		for _, r := range records {
			if u.Night.Contains(r.Timestamp) {
				night++
			}
		}
		return []float64{float64(night) / float64(len(records))}, nil
	},
})

// InterEventTime yields the distribution of gaps between consecutive
// interactions, in seconds.
var InterEventTime = register(grouping.Indicator{
	Name:         "interevent_time",
	Doc:          "Distribution of gaps between consecutive interactions, in seconds.",
	Distribution: true,
	Compute: func(records []record.Record, _ *record.User) ([]float64, error) {
		if len(records) < 2 {
			return nil, grouping.ErrInsufficientData
		}
		gaps := make([]float64, 0, len(records)-1)
		for i := 1; i < len(records); i++ {
			gaps = append(gaps, records[i].Timestamp.Sub(records[i-1].Timestamp).Seconds())
		}
		return gaps, nil
	},
})

// EntropyOfContacts is the Shannon entropy of the per-contact
// interaction distribution.
var EntropyOfContacts = register(grouping.Indicator{
	Name: "entropy_of_contacts",
	Doc:  "Shannon entropy of the per-contact interaction distribution.",
	Compute: func(records []record.Record, _ *record.User) ([]float64, error) {
		counts := contactCounts(records)
		if len(counts) == 0 {
			return nil, grouping.ErrInsufficientData
		}
		weights := make([]float64, 0, len(counts))
		for _, c := range counts {
			weights = append(weights, float64(c))
		}
		return []float64{stats.Entropy(weights)}, nil
	},
})

// ParetoInteractions is the fraction of contacts that account for 80% of
// the user's interactions.
var ParetoInteractions = register(grouping.Indicator{
	Name: "percent_pareto_interactions",
	Doc:  "Fraction of contacts accounting for 80% of interactions.",
	Compute: func(records []record.Record, _ *record.User) ([]float64, error) {
		counts := contactCounts(records)
		if len(counts) == 0 {
			return nil, grouping.ErrInsufficientData
		}
		weights := make([]float64, 0, len(counts))
		for _, c := range counts {
			weights = append(weights, float64(c))
		}
		return []float64{stats.ParetoShare(weights, 0.8)}, nil
	},
})

// BalanceOfContacts yields, per contact, the share of interactions the
// user initiated with that contact.
var BalanceOfContacts = register(grouping.Indicator{
	Name:         "balance_of_contacts",
	Doc:          "Per-contact share of interactions initiated by the user.",
	Distribution: true,
	Compute: func(records []record.Record, _ *record.User) ([]float64, error) {
		total := make(map[string]int)
		outgoing := make(map[string]int)
		for _, r := range records {
			if r.CorrespondentID == "" {
				continue
			}
			total[r.CorrespondentID]++
			if r.Direction == record.Outgoing {
				outgoing[r.CorrespondentID]++
			}
		}
		if len(total) == 0 {
			return nil, grouping.ErrInsufficientData
		}

		// Deterministic order keeps repeated invocations bit-identical.
		ids := make([]string, 0, len(total))
		for id := range total {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		balances := make([]float64, 0, len(ids))
		for _, id := range ids {
			balances = append(balances, float64(outgoing[id])/float64(total[id]))
		}
		return balances, nil
	},
})

func contactCounts(records []record.Record) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		if r.CorrespondentID != "" {
			counts[r.CorrespondentID]++
		}
	}
	return counts
}
