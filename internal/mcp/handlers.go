package mcp

import (
	"context"
	"fmt"
	"time"

	"cdr-mcp/internal/batch"
	"cdr-mcp/internal/grouping"
	"cdr-mcp/internal/indicators"
	"cdr-mcp/internal/record"
)

func (s *Server) handleListIndicators() (interface{}, error) {
	var list []interface{}
	for _, ind := range indicators.All() {
		entry := map[string]interface{}{
			"name":        ind.Name,
			"description": ind.Doc,
		}
		if ind.Pinned != "" {
			entry["pinned_interaction"] = string(ind.Pinned)
		}
		if ind.Spatial {
			entry["spatial"] = true
		}
		if ind.NeedsUser {
			entry["needs_user_context"] = true
		}
		if ind.Distribution {
			entry["distribution"] = true
		}
		list = append(list, entry)
	}
	return map[string]interface{}{"indicators": list}, nil
}

func (s *Server) handleDescribeUser(userID string) (interface{}, error) {
	u, err := s.lookupUser(userID)
	if err != nil {
		return nil, err
	}

	calls, texts, pings := 0, 0, 0
	for _, r := range u.Records {
		switch r.Interaction {
		case record.Call:
			calls++
		case record.Text:
			texts++
		default:
			pings++
		}
	}

	summary := map[string]interface{}{
		"user_id":        u.ID,
		"total_records":  len(u.Records),
		"calls":          calls,
		"texts":          texts,
		"location_pings": pings,
		"hourly_profile": indicators.HourlyProfile(u.Records),
	}

	if len(u.Records) > 0 {
		summary["first_record_at"] = u.Records[0].Timestamp
		summary["last_record_at"] = u.Records[len(u.Records)-1].Timestamp
	}

	if gaps := indicators.CommunicationGaps(u.Records, 24*time.Hour); len(gaps) > 0 {
		summary["silence_gaps"] = gaps
	}

	ranked := indicators.RelationshipStrength(u.Records)
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}
	if len(ranked) > 0 {
		summary["top_relationships"] = ranked
	}

	return summary, nil
}

func (s *Server) handleComputeIndicators(args map[string]interface{}) (interface{}, error) {
	u, err := s.lookupUser(asString(args["user_id"]))
	if err != nil {
		return nil, err
	}

	inds, err := resolveIndicators(asStringSlice(args["indicators"]))
	if err != nil {
		return nil, err
	}

	opts, err := parseOptions(args)
	if err != nil {
		return nil, err
	}

	results := make(map[string]interface{}, len(inds))
	for _, ind := range inds {
		grouped, err := grouping.Apply(ind, u, opts)
		if err != nil {
			return nil, fmt.Errorf("indicator %q: %w", ind.Name, err)
		}
		results[ind.Name] = grouped.Tree()
	}

	return map[string]interface{}{
		"user_id": u.ID,
		"options": opts,
		"results": results,
	}, nil
}

func (s *Server) handleRunBatch(args map[string]interface{}) (interface{}, error) {
	ids := asStringSlice(args["user_ids"])
	var users []*record.User
	if len(ids) == 0 {
		users = s.store.Users()
	} else {
		for _, id := range ids {
			u, err := s.lookupUser(id)
			if err != nil {
				return nil, err
			}
			users = append(users, u)
		}
	}

	inds, err := resolveIndicators(asStringSlice(args["indicators"]))
	if err != nil {
		return nil, err
	}

	opts, err := parseOptions(args)
	if err != nil {
		return nil, err
	}

	workers := asInt(args["workers"])
	if workers <= 0 {
		workers = s.cfg.BatchWorkers
	}

	report, err := batch.Run(context.Background(), users, inds, opts, workers)
	if err != nil {
		return nil, err
	}
	return serializeReport(report), nil
}

func (s *Server) handleImportRecords(args map[string]interface{}) (interface{}, error) {
	userID := asString(args["user_id"])
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	records, err := decodeRecords(args["records"])
	if err != nil {
		return nil, err
	}

	u := record.NewUser(userID, records)
	s.cfg.ApplyTo(u)
	if antennas := decodeAntennas(args["antennas"]); len(antennas) > 0 {
		u.Antennas = antennas
	}

	s.store.Put(u)
	if err := s.store.Save(userID); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"user_id":  userID,
		"imported": len(records),
	}, nil
}

func (s *Server) lookupUser(id string) (*record.User, error) {
	if id == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	u, ok := s.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("unknown user %q: import records first or check DATA_PATH", id)
	}
	return u, nil
}

func resolveIndicators(names []string) ([]grouping.Indicator, error) {
	if len(names) == 0 {
		return indicators.All(), nil
	}

	inds := make([]grouping.Indicator, 0, len(names))
	for _, name := range names {
		ind, ok := indicators.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown indicator %q (see list_indicators)", name)
		}
		inds = append(inds, ind)
	}
	return inds, nil
}

func serializeReport(report *batch.Report) interface{} {
	users := make([]interface{}, 0, len(report.Users))
	for _, ur := range report.Users {
		entry := map[string]interface{}{"user_id": ur.UserID}
		if ur.Error != "" {
			entry["error"] = ur.Error
		}
		trees := make(map[string]interface{}, len(ur.Results))
		for name, grouped := range ur.Results {
			trees[name] = grouped.Tree()
		}
		entry["results"] = trees
		users = append(users, entry)
	}

	return map[string]interface{}{
		"run_id":      report.RunID,
		"started_at":  report.StartedAt,
		"finished_at": report.FinishedAt,
		"options":     report.Options,
		"users":       users,
	}
}
