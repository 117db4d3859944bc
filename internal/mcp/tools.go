package mcp

func (s *Server) listTools() interface{} {
	optionProps := map[string]interface{}{
		"groupby":    map[string]interface{}{"type": "string", "enum": []string{"none", "week", "month", "year"}, "description": "Time-bucketing granularity for the outer aggregation. Default: week."},
		"summary":    map[string]interface{}{"type": "string", "enum": []string{"default", "extended", "none"}, "description": "Statistical reduction per bucket: 'default' (mean/std), 'extended' (adds median/min/max/skewness/kurtosis), 'none' (raw values)."},
		"split_week": map[string]interface{}{"type": "boolean", "description": "Report weekday/weekend cells separately in addition to allweek."},
		"split_day":  map[string]interface{}{"type": "boolean", "description": "Report day/night cells separately in addition to allday."},
		"direction":  map[string]interface{}{"type": "string", "enum": []string{"in", "out", "none"}, "description": "Optional: restrict to incoming or outgoing interactions. 'none' applies no direction filter (the default)."},
	}

	return map[string]interface{}{
		"tools": []interface{}{
			map[string]interface{}{
				"name":        "list_indicators",
				"description": "List the available grouped behavioral indicators with their filtering properties (pinned interaction, spatial, user-context requirement).",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
			map[string]interface{}{
				"name":        "import_records",
				"description": "Import interaction records for a user. Records are validated (a malformed record rejects the whole import), merged with the user's configured night window and weekend days, and persisted as a JSONL snapshot under DATA_PATH.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"user_id": map[string]interface{}{"type": "string", "description": "Identifier of the user the records belong to"},
						"records": map[string]interface{}{
							"type":        "array",
							"description": "Records as objects: {ts, interaction ('call'|'text'|'' for location pings), direction ('in'|'out'), correspondent_id, call_duration (seconds, calls only), position {antenna, lat, lon}}.",
							"items":       map[string]interface{}{"type": "object"},
						},
						"antennas": map[string]interface{}{
							"type":                 "object",
							"description":          "Optional antenna coordinate table: antenna id -> [lat, lon].",
							"additionalProperties": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "number"}},
						},
					},
					"required": []string{"user_id", "records"},
				},
			},
			map[string]interface{}{
				"name":        "describe_user",
				"description": "Probe a user's dataset before computing indicators: record volume, time span, channel mix, hourly activity profile, silence gaps and top relationships. Use this to judge data sparsity first.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"user_id": map[string]interface{}{"type": "string", "description": "Identifier of the user"},
					},
					"required": []string{"user_id"},
				},
			},
			map[string]interface{}{
				"name": "compute_indicators",
				"description": "Compute grouped behavioral indicators for one user. Each indicator is sliced across the week-period x day-period x interaction cross-product and time buckets; cells without matching records report null rather than zero. " +
					"Sparse data degrades gracefully: a user with no usable records yields a tree of null leaves, never an error.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": mergeProps(map[string]interface{}{
						"user_id": map[string]interface{}{"type": "string", "description": "Identifier of the user"},
						"indicators": map[string]interface{}{
							"type":        "array",
							"items":       map[string]interface{}{"type": "string"},
							"description": "Indicator names (see list_indicators). Empty means all registered indicators.",
						},
					}, optionProps),
					"required": []string{"user_id"},
				},
			},
			map[string]interface{}{
				"name": "run_batch",
				"description": "Compute indicators for many users in one run with parallel fan-out. Per-user failures are recorded in the report and never abort the batch.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": mergeProps(map[string]interface{}{
						"user_ids": map[string]interface{}{
							"type":        "array",
							"items":       map[string]interface{}{"type": "string"},
							"description": "Users to include. Empty means every user in the dataset store.",
						},
						"indicators": map[string]interface{}{
							"type":        "array",
							"items":       map[string]interface{}{"type": "string"},
							"description": "Indicator names. Empty means all registered indicators.",
						},
						"workers": map[string]interface{}{"type": "integer", "description": "Parallel worker limit. Default: BATCH_WORKERS."},
					}, optionProps),
				},
			},
		},
	}
}

func mergeProps(base map[string]interface{}, extra map[string]interface{}) map[string]interface{} {
	for k, v := range extra {
		base[k] = v
	}
	return base
}
