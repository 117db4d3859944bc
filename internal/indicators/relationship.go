package indicators

import (
	"sort"
	"time"

	"cdr-mcp/internal/record"
)

// ContactStrength ranks one correspondent by communication intensity.
type ContactStrength struct {
	CorrespondentID string    `json:"correspondent_id"`
	Score           float64   `json:"score"`
	Interactions    int       `json:"interactions"`
	CallSeconds     int       `json:"call_seconds"`
	LastContact     time.Time `json:"last_contact"`
}

// RelationshipStrength ranks correspondents by a composite of
// interaction frequency (60%) and total call time (40%), both
// normalized against the user's most intense contact. Ties break on
// correspondent id for deterministic output.
func RelationshipStrength(records []record.Record) []ContactStrength {
	byContact := make(map[string]*ContactStrength)
	for _, r := range records {
		if r.CorrespondentID == "" {
			continue
		}
		cs, ok := byContact[r.CorrespondentID]
		if !ok {
			cs = &ContactStrength{CorrespondentID: r.CorrespondentID}
			byContact[r.CorrespondentID] = cs
		}
		cs.Interactions++
		cs.CallSeconds += r.Duration()
		if r.Timestamp.After(cs.LastContact) {
			cs.LastContact = r.Timestamp
		}
	}
	if len(byContact) == 0 {
		return nil
	}

	maxCount, maxSeconds := 0, 0
	for _, cs := range byContact {
		if cs.Interactions > maxCount {
			maxCount = cs.Interactions
		}
		if cs.CallSeconds > maxSeconds {
			maxSeconds = cs.CallSeconds
		}
	}

	ranked := make([]ContactStrength, 0, len(byContact))
	for _, cs := range byContact {
		freq := float64(cs.Interactions) / float64(maxCount)
		dur := 0.0
		if maxSeconds > 0 {
			dur = float64(cs.CallSeconds) / float64(maxSeconds)
		}
		cs.Score = 0.6*freq + 0.4*dur
		ranked = append(ranked, *cs)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].CorrespondentID < ranked[j].CorrespondentID
	})
	return ranked
}
