package mcp

import (
	"errors"
	"testing"

	"cdr-mcp/internal/grouping"
	"cdr-mcp/internal/record"
)

func TestParseOptionsDefaults(t *testing.T) {
	opts, err := parseOptions(map[string]interface{}{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.GroupBy != grouping.GroupWeek {
		t.Errorf("default groupby = %q, want week", opts.GroupBy)
	}
	if opts.Summary != grouping.SummaryDefault {
		t.Errorf("default summary = %q, want default", opts.Summary)
	}
	if opts.SplitWeek || opts.SplitDay {
		t.Error("split flags should default to false")
	}
	if opts.Direction != grouping.DirectionAny {
		t.Errorf("default direction = %q, want any", opts.Direction)
	}
}

func TestParseOptionsExplicit(t *testing.T) {
	args := map[string]interface{}{
		"groupby":    "none",
		"summary":    "extended",
		"split_week": true,
		"split_day":  true,
		"direction":  "out",
	}
	opts, err := parseOptions(args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := grouping.Options{
		GroupBy:   grouping.GroupNone,
		Summary:   grouping.SummaryExtended,
		SplitWeek: true,
		SplitDay:  true,
		Direction: grouping.DirectionOut,
	}
	if opts != want {
		t.Errorf("got %+v, want %+v", opts, want)
	}
}

func TestParseOptionsDirectionNone(t *testing.T) {
	opts, err := parseOptions(map[string]interface{}{"direction": "none"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Direction != grouping.DirectionAny {
		t.Errorf("direction = %q, want the no-filter default", opts.Direction)
	}
	if err := opts.Validate(grouping.Indicator{Name: "x", Compute: nil}); err != nil {
		t.Errorf("parsed options failed validation: %v", err)
	}
}

func TestParseOptionsRejectsNonBooleanFlags(t *testing.T) {
	if _, err := parseOptions(map[string]interface{}{"split_week": "yes"}); err == nil {
		t.Error("string split_week should be rejected")
	}
	if _, err := parseOptions(map[string]interface{}{"split_day": 1.0}); err == nil {
		t.Error("numeric split_day should be rejected")
	}
}

func TestDecodeRecords(t *testing.T) {
	// JSON-decoded tool arguments arrive as []interface{} of maps.
	payload := []interface{}{
		map[string]interface{}{
			"ts":               "2024-03-11T09:00:00Z",
			"interaction":      "call",
			"direction":        "out",
			"correspondent_id": "a",
			"call_duration":    120.0,
		},
		map[string]interface{}{
			"ts":               "2024-03-11T10:00:00Z",
			"interaction":      "text",
			"direction":        "in",
			"correspondent_id": "b",
		},
	}

	records, err := decodeRecords(payload)
	if err != nil {
		t.Fatalf("decodeRecords failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Interaction != record.Call || records[0].Duration() != 120 {
		t.Errorf("first record decoded wrong: %+v", records[0])
	}
}

func TestDecodeRecordsRejectsMalformed(t *testing.T) {
	payload := []interface{}{
		map[string]interface{}{
			"ts":               "2024-03-11T09:00:00Z",
			"interaction":      "text",
			"direction":        "in",
			"correspondent_id": "a",
		},
		map[string]interface{}{
			// Text with a duration violates the record invariant.
			"ts":               "2024-03-11T10:00:00Z",
			"interaction":      "text",
			"direction":        "out",
			"correspondent_id": "b",
			"call_duration":    30.0,
		},
	}

	_, err := decodeRecords(payload)
	if err == nil {
		t.Fatal("malformed record should reject the whole import")
	}
	if !errors.Is(err, record.ErrMalformedRecord) {
		t.Errorf("error = %v, want ErrMalformedRecord", err)
	}
}

func TestDecodeAntennas(t *testing.T) {
	payload := map[string]interface{}{
		"A01":     []interface{}{48.85, 2.35},
		"BROKEN":  []interface{}{48.85},
		"NOTList": "x",
	}

	antennas := decodeAntennas(payload)
	if len(antennas) != 1 {
		t.Fatalf("got %d antennas, want 1 (malformed entries dropped)", len(antennas))
	}
	if antennas["A01"] != [2]float64{48.85, 2.35} {
		t.Errorf("A01 = %v", antennas["A01"])
	}
}

func TestAsInt(t *testing.T) {
	tests := []struct {
		in   interface{}
		want int
	}{
		{nil, 0},
		{4.0, 4},
		{7, 7},
		{"12", 12},
		{true, 0},
	}
	for _, tt := range tests {
		if got := asInt(tt.in); got != tt.want {
			t.Errorf("asInt(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestAsStringSlice(t *testing.T) {
	in := []interface{}{"a", 3.0, "b"}
	got := asStringSlice(in)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("asStringSlice = %v, want [a b]", got)
	}
	if asStringSlice("not a slice") != nil {
		t.Error("non-slice input should return nil")
	}
}
