// Package batch fans a set of grouped indicators out across many users.
// Each user's computation is independent, so the only coordination is
// collecting results; a sparse or failing user never aborts the run.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"cdr-mcp/internal/grouping"
	"cdr-mcp/internal/record"
)

// DefaultWorkers bounds parallelism when the caller does not.
const DefaultWorkers = 4

// UserResult holds the grouped results of one user, keyed by indicator
// name. A per-user failure is recorded in Error; the rest of the batch
// is unaffected.
type UserResult struct {
	UserID  string                       `json:"user_id"`
	Results map[string]*grouping.Grouped `json:"results,omitempty"`
	Error   string                       `json:"error,omitempty"`
}

// Report is the outcome of one batch run.
type Report struct {
	RunID      string           `json:"run_id"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Users      []UserResult     `json:"users"`
	Options    grouping.Options `json:"options"`
}

// Run computes every indicator for every user with bounded parallel
// fan-out. Option violations are checked eagerly against each indicator
// and fail the whole run before any work starts; per-user computation
// errors are recorded and skipped over (continue-on-error).
func Run(ctx context.Context, users []*record.User, inds []grouping.Indicator, opts grouping.Options, workers int) (*Report, error) {
	for _, ind := range inds {
		if err := opts.Validate(ind); err != nil {
			return nil, fmt.Errorf("indicator %q: %w", ind.Name, err)
		}
	}

	if workers <= 0 {
		workers = DefaultWorkers
	}

	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		Users:     make([]UserResult, len(users)),
		Options:   opts,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, u := range users {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report.Users[i] = computeUser(u, inds, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.FinishedAt = time.Now()
	log.Info().
		Str("runId", report.RunID).
		Int("users", len(users)).
		Int("indicators", len(inds)).
		Dur("elapsed", report.FinishedAt.Sub(report.StartedAt)).
		Msg("Batch run finished")
	return report, nil
}

func computeUser(u *record.User, inds []grouping.Indicator, opts grouping.Options) UserResult {
	result := UserResult{
		UserID:  u.ID,
		Results: make(map[string]*grouping.Grouped, len(inds)),
	}

	for _, ind := range inds {
		grouped, err := grouping.Apply(ind, u, opts)
		if err != nil {
			// Options were pre-validated, so this is a data problem local
			// to the user; record it and keep the batch going.
			log.Warn().Err(err).Str("user", u.ID).Str("indicator", ind.Name).Msg("Indicator failed for user")
			result.Error = fmt.Sprintf("%s: %v", ind.Name, err)
			continue
		}
		result.Results[ind.Name] = grouped
	}
	return result
}
