package indicators

import (
	"testing"

	"cdr-mcp/internal/record"
)

func TestRelationshipStrengthRanking(t *testing.T) {
	// "a" dominates both frequency and call time; "b" trails on both.
	records := []record.Record{
		callRec(at(9), record.Outgoing, "a", 300),
		callRec(at(10), record.Incoming, "a", 200),
		textRec(at(11), record.Outgoing, "a"),
		callRec(at(12), record.Incoming, "b", 60),
	}

	ranked := RelationshipStrength(records)
	if len(ranked) != 2 {
		t.Fatalf("got %d contacts, want 2", len(ranked))
	}
	if ranked[0].CorrespondentID != "a" {
		t.Errorf("top contact = %q, want %q", ranked[0].CorrespondentID, "a")
	}
	if ranked[0].Score != 1.0 {
		t.Errorf("top contact score = %v, want 1.0 (maximal on both axes)", ranked[0].Score)
	}
	if ranked[0].Interactions != 3 || ranked[0].CallSeconds != 500 {
		t.Errorf("top contact tallies = %d interactions / %d s, want 3 / 500",
			ranked[0].Interactions, ranked[0].CallSeconds)
	}
	if ranked[1].Score >= ranked[0].Score {
		t.Error("ranking is not descending by score")
	}
}

func TestRelationshipStrengthTieBreaksOnID(t *testing.T) {
	// Symmetric contacts must rank in id order, deterministically.
	records := []record.Record{
		textRec(at(9), record.Outgoing, "zed"),
		textRec(at(10), record.Outgoing, "amy"),
	}

	for i := 0; i < 10; i++ {
		ranked := RelationshipStrength(records)
		if len(ranked) != 2 || ranked[0].CorrespondentID != "amy" {
			t.Fatalf("run %d: order %q, %q; want amy first on id tie-break",
				i, ranked[0].CorrespondentID, ranked[1].CorrespondentID)
		}
	}
}

func TestRelationshipStrengthTextOnly(t *testing.T) {
	// No call time anywhere: the duration axis contributes nothing and
	// must not divide by zero.
	records := []record.Record{
		textRec(at(9), record.Outgoing, "a"),
		textRec(at(10), record.Outgoing, "a"),
		textRec(at(11), record.Incoming, "b"),
	}

	ranked := RelationshipStrength(records)
	if len(ranked) != 2 {
		t.Fatalf("got %d contacts, want 2", len(ranked))
	}
	if ranked[0].CorrespondentID != "a" || ranked[0].Score != 0.6 {
		t.Errorf("top contact = %q score %v, want a with frequency-only score 0.6",
			ranked[0].CorrespondentID, ranked[0].Score)
	}
}

func TestRelationshipStrengthIgnoresPings(t *testing.T) {
	records := []record.Record{
		pingAt(at(9), "A01"),
		pingAt(at(10), "A02"),
	}
	if ranked := RelationshipStrength(records); ranked != nil {
		t.Errorf("pings produced relationships: %v", ranked)
	}
}
