package batch

import (
	"context"
	"errors"
	"testing"
	"time"

	"cdr-mcp/internal/grouping"
	"cdr-mcp/internal/record"
)

func testUser(id string, count int) *record.User {
	base := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	records := make([]record.Record, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, record.Record{
			Timestamp:       base.Add(time.Duration(i) * time.Hour),
			Interaction:     record.Text,
			Direction:       record.Outgoing,
			CorrespondentID: "contact",
		})
	}
	return record.NewUser(id, records)
}

func countIndicator() grouping.Indicator {
	return grouping.Indicator{
		Name: "interaction_count",
		Compute: func(records []record.Record, _ *record.User) ([]float64, error) {
			return []float64{float64(len(records))}, nil
		},
	}
}

func TestRunComputesAllUsers(t *testing.T) {
	users := []*record.User{
		testUser("u1", 3),
		testUser("u2", 5),
		testUser("u3", 0),
	}
	inds := []grouping.Indicator{countIndicator()}
	opts := grouping.Options{GroupBy: grouping.GroupNone, Summary: grouping.SummaryNone}

	report, err := Run(context.Background(), users, inds, opts, 2)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.RunID == "" {
		t.Error("report has no run id")
	}
	if report.FinishedAt.Before(report.StartedAt) {
		t.Error("finish time precedes start time")
	}
	if len(report.Users) != 3 {
		t.Fatalf("got %d user results, want 3", len(report.Users))
	}

	// Results must land in input order regardless of worker scheduling.
	for i, want := range []string{"u1", "u2", "u3"} {
		if report.Users[i].UserID != want {
			t.Errorf("result %d is for %q, want %q", i, report.Users[i].UserID, want)
		}
	}

	g := report.Users[1].Results["interaction_count"]
	if g == nil {
		t.Fatal("u2 has no interaction_count result")
	}
	v := g.Cells[grouping.BucketKey{Week: grouping.AllWeek, Day: grouping.AllDay, Interaction: grouping.FilterCallAndText}]
	if v == nil || len(v.Series) != 1 || v.Series[0] != 5 {
		t.Errorf("u2 interaction count = %+v, want 5", v)
	}
}

func TestRunContinuesPastFailingUser(t *testing.T) {
	failFor := "u2"
	flaky := grouping.Indicator{
		Name: "flaky",
		Compute: func(records []record.Record, _ *record.User) ([]float64, error) {
			if len(records) > 0 && records[0].CorrespondentID == failFor {
				return nil, errors.New("corrupt data")
			}
			return []float64{1}, nil
		},
	}

	bad := record.NewUser("u2", []record.Record{{
		Timestamp:       time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC),
		Interaction:     record.Text,
		Direction:       record.Outgoing,
		CorrespondentID: failFor,
	}})
	users := []*record.User{testUser("u1", 2), bad, testUser("u3", 2)}
	opts := grouping.Options{GroupBy: grouping.GroupNone, Summary: grouping.SummaryNone}

	report, err := Run(context.Background(), users, []grouping.Indicator{flaky}, opts, 1)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Users[1].Error == "" {
		t.Error("failing user carries no error")
	}
	if report.Users[0].Error != "" || report.Users[2].Error != "" {
		t.Error("failure leaked into sibling users")
	}
	if report.Users[0].Results["flaky"] == nil || report.Users[2].Results["flaky"] == nil {
		t.Error("healthy users lost their results")
	}
}

func TestRunRejectsInvalidOptionsEagerly(t *testing.T) {
	users := []*record.User{testUser("u1", 2)}
	opts := grouping.Options{GroupBy: "fortnight", Summary: grouping.SummaryDefault}

	_, err := Run(context.Background(), users, []grouping.Indicator{countIndicator()}, opts, 1)
	if !errors.Is(err, grouping.ErrInvalidOptions) {
		t.Errorf("Run error = %v, want ErrInvalidOptions", err)
	}
}

func TestRunHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	users := []*record.User{testUser("u1", 2)}
	opts := grouping.Options{GroupBy: grouping.GroupNone, Summary: grouping.SummaryNone}

	if _, err := Run(ctx, users, []grouping.Indicator{countIndicator()}, opts, 1); err == nil {
		t.Error("Run on a cancelled context should fail")
	}
}

func TestRunDefaultsWorkerCount(t *testing.T) {
	users := []*record.User{testUser("u1", 1)}
	opts := grouping.Options{GroupBy: grouping.GroupNone, Summary: grouping.SummaryNone}

	report, err := Run(context.Background(), users, []grouping.Indicator{countIndicator()}, opts, 0)
	if err != nil {
		t.Fatalf("Run with workers=0 failed: %v", err)
	}
	if len(report.Users) != 1 {
		t.Errorf("got %d user results, want 1", len(report.Users))
	}
}
