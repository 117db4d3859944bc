package indicators

import (
	"testing"
	"time"

	"cdr-mcp/internal/record"
)

func TestCommunicationGaps(t *testing.T) {
	base := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	records := []record.Record{
		textRec(base, record.Outgoing, "a"),
		textRec(base.Add(2*time.Hour), record.Incoming, "b"),
		textRec(base.Add(50*time.Hour), record.Outgoing, "a"), // 48h of silence
		textRec(base.Add(51*time.Hour), record.Incoming, "b"),
	}

	gaps := CommunicationGaps(records, 24*time.Hour)
	if len(gaps) != 1 {
		t.Fatalf("got %d gaps, want 1", len(gaps))
	}
	g := gaps[0]
	if !g.Start.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("gap start = %v, want %v", g.Start, base.Add(2*time.Hour))
	}
	if g.Hours != 48 {
		t.Errorf("gap duration = %v hours, want 48", g.Hours)
	}
}

func TestCommunicationGapsTooFewRecords(t *testing.T) {
	if gaps := CommunicationGaps(nil, time.Hour); gaps != nil {
		t.Errorf("empty input produced gaps: %v", gaps)
	}
	one := []record.Record{textRec(at(9), record.Outgoing, "a")}
	if gaps := CommunicationGaps(one, time.Hour); gaps != nil {
		t.Errorf("single record produced gaps: %v", gaps)
	}
}

func TestActivityBursts(t *testing.T) {
	base := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	// Steady background: one record per hour over 100 hours.
	var records []record.Record
	for i := 0; i <= 100; i++ {
		records = append(records, textRec(base.Add(time.Duration(i)*time.Hour), record.Outgoing, "bg"))
	}
	// Dense burst: 10 records within 30 minutes, mid-sequence.
	burstStart := base.Add(50*time.Hour + 5*time.Minute)
	for i := 0; i < 10; i++ {
		records = append(records, textRec(burstStart.Add(time.Duration(i)*3*time.Minute), record.Outgoing, "hot"))
	}
	sortRecords(records)

	bursts := ActivityBursts(records, time.Hour, 3)
	if len(bursts) != 1 {
		t.Fatalf("got %d bursts, want 1", len(bursts))
	}
	b := bursts[0]
	if b.Count < 10 {
		t.Errorf("burst count = %d, want at least the 10 dense records", b.Count)
	}
	found := false
	for _, c := range b.Contacts {
		if c == "hot" {
			found = true
		}
	}
	if !found {
		t.Errorf("burst contacts %v should include the dense correspondent", b.Contacts)
	}
}

func TestActivityBurstsNoSpread(t *testing.T) {
	ts := at(9)
	records := []record.Record{
		textRec(ts, record.Outgoing, "a"),
		textRec(ts, record.Incoming, "b"),
	}
	if bursts := ActivityBursts(records, time.Hour, 2); bursts != nil {
		t.Errorf("zero-span sequence produced bursts: %v", bursts)
	}
}

func TestHourlyProfile(t *testing.T) {
	records := []record.Record{
		textRec(at(9), record.Outgoing, "a"),
		textRec(at(9).Add(10*time.Minute), record.Incoming, "b"),
		textRec(at(22), record.Outgoing, "a"),
	}

	profile := HourlyProfile(records)
	if profile[9] != 2 {
		t.Errorf("hour 9 count = %d, want 2", profile[9])
	}
	if profile[22] != 1 {
		t.Errorf("hour 22 count = %d, want 1", profile[22])
	}

	total := 0
	for _, n := range profile {
		total += n
	}
	if total != len(records) {
		t.Errorf("profile total = %d, want %d", total, len(records))
	}
}

func sortRecords(records []record.Record) {
	for i := 1; i < len(records); i++ {
		for j := i; j > 0 && records[j].Timestamp.Before(records[j-1].Timestamp); j-- {
			records[j], records[j-1] = records[j-1], records[j]
		}
	}
}
