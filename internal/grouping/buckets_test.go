package grouping

import (
	"testing"
	"time"

	"cdr-mcp/internal/record"
)

func TestSnapToStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		g    GroupBy
		want time.Time
	}{
		{
			name: "WeekFromWednesday",
			in:   time.Date(2024, 3, 13, 15, 30, 0, 0, time.UTC),
			g:    GroupWeek,
			want: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), // Monday
		},
		{
			name: "WeekFromSunday",
			in:   time.Date(2024, 3, 17, 1, 0, 0, 0, time.UTC),
			g:    GroupWeek,
			want: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), // still that Monday
		},
		{
			name: "WeekFromMonday",
			in:   time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
			g:    GroupWeek,
			want: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "Month",
			in:   time.Date(2024, 3, 17, 1, 0, 0, 0, time.UTC),
			g:    GroupMonth,
			want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "Year",
			in:   time.Date(2024, 3, 17, 1, 0, 0, 0, time.UTC),
			g:    GroupYear,
			want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SnapToStart(tt.in, tt.g); !got.Equal(tt.want) {
				t.Errorf("SnapToStart(%v, %s) = %v, want %v", tt.in, tt.g, got, tt.want)
			}
		})
	}
}

func TestLabel(t *testing.T) {
	ts := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC) // Monday of ISO week 6

	tests := []struct {
		g    GroupBy
		want string
	}{
		{GroupYear, "2024"},
		{GroupMonth, "Feb 2024"},
		{GroupWeek, "2024-W06"},
		{GroupNone, "all"},
	}
	for _, tt := range tests {
		if got := Label(ts, tt.g); got != tt.want {
			t.Errorf("Label(%s) = %q, want %q", tt.g, got, tt.want)
		}
	}
}

func TestSplitTimeBucketsRetainsEmptyBuckets(t *testing.T) {
	// Records in week 1 and week 3; week 2 is silent.
	records := []record.Record{
		commRecord(time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC), record.Call, record.Outgoing, "a"),
		commRecord(time.Date(2024, 3, 25, 10, 0, 0, 0, time.UTC), record.Call, record.Outgoing, "b"),
	}

	buckets := SplitTimeBuckets(records, GroupWeek)
	if len(buckets) != 3 {
		t.Fatalf("got %d buckets, want 3 (silent middle week retained)", len(buckets))
	}
	if len(buckets[0].Records) != 1 || len(buckets[2].Records) != 1 {
		t.Errorf("edge buckets hold %d/%d records, want 1/1", len(buckets[0].Records), len(buckets[2].Records))
	}
	if len(buckets[1].Records) != 0 {
		t.Errorf("middle bucket holds %d records, want 0", len(buckets[1].Records))
	}
	if buckets[1].Label != "2024-W12" {
		t.Errorf("middle bucket label = %q, want 2024-W12", buckets[1].Label)
	}
}

func TestSplitTimeBucketsGroupNone(t *testing.T) {
	records := []record.Record{
		commRecord(time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC), record.Call, record.Outgoing, "a"),
		commRecord(time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC), record.Call, record.Outgoing, "b"),
	}

	buckets := SplitTimeBuckets(records, GroupNone)
	if len(buckets) != 1 {
		t.Fatalf("GroupNone produced %d buckets, want 1", len(buckets))
	}
	if len(buckets[0].Records) != 2 {
		t.Errorf("single bucket holds %d records, want all 2", len(buckets[0].Records))
	}
	if buckets[0].Label != "all" {
		t.Errorf("label = %q, want %q", buckets[0].Label, "all")
	}
}

func TestSplitTimeBucketsEmptyInput(t *testing.T) {
	if got := SplitTimeBuckets(nil, GroupWeek); got != nil {
		t.Errorf("empty input produced %d buckets, want none", len(got))
	}
}

func TestSplitTimeBucketsMonthBoundaries(t *testing.T) {
	records := []record.Record{
		commRecord(time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC), record.Text, record.Incoming, "a"),
		commRecord(time.Date(2024, 2, 1, 1, 0, 0, 0, time.UTC), record.Text, record.Incoming, "b"),
	}

	buckets := SplitTimeBuckets(records, GroupMonth)
	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(buckets))
	}
	if len(buckets[0].Records) != 1 || len(buckets[1].Records) != 1 {
		t.Errorf("records split %d/%d across the month boundary, want 1/1",
			len(buckets[0].Records), len(buckets[1].Records))
	}
}
