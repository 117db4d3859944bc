package mcp

import (
	"encoding/json"
	"fmt"

	"cdr-mcp/internal/grouping"
	"cdr-mcp/internal/record"
)

// parseOptions builds a grouping.Options from loose tool arguments,
// falling back to the engine defaults for absent keys. Unknown values
// are left for Options.Validate to reject with a descriptive message.
func parseOptions(args map[string]interface{}) (grouping.Options, error) {
	opts := grouping.DefaultOptions()

	if v, ok := args["groupby"]; ok {
		opts.GroupBy = grouping.GroupBy(asString(v))
	}
	if v, ok := args["summary"]; ok {
		opts.Summary = grouping.SummaryKind(asString(v))
	}
	if v, ok := args["split_week"]; ok {
		b, isBool := v.(bool)
		if !isBool {
			return opts, fmt.Errorf("split_week must be a boolean")
		}
		opts.SplitWeek = b
	}
	if v, ok := args["split_day"]; ok {
		b, isBool := v.(bool)
		if !isBool {
			return opts, fmt.Errorf("split_day must be a boolean")
		}
		opts.SplitDay = b
	}
	if v, ok := args["direction"]; ok {
		// "none" is the spelled-out form of the no-filter default.
		if d := asString(v); d != "none" {
			opts.Direction = grouping.DirectionFilter(d)
		}
	}

	return opts, nil
}

// decodeRecords converts the raw tool argument into validated records.
// One malformed record rejects the whole import; the engine must never
// see bad data.
func decodeRecords(v interface{}) ([]record.Record, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("invalid records payload: %w", err)
	}

	var records []record.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("invalid records payload: %w", err)
	}

	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return records, nil
}

func decodeAntennas(v interface{}) map[string][2]float64 {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}

	antennas := make(map[string][2]float64, len(m))
	for id, coords := range m {
		pair, ok := coords.([]interface{})
		if !ok || len(pair) != 2 {
			continue
		}
		lat, okLat := pair[0].(float64)
		lon, okLon := pair[1].(float64)
		if okLat && okLon {
			antennas[id] = [2]float64{lat, lon}
		}
	}
	return antennas
}

func asString(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func asInt(v interface{}) int {
	if v == nil {
		return 0
	}
	switch val := v.(type) {
	case float64:
		return int(val)
	case int:
		return val
	case string:
		var res int
		fmt.Sscanf(val, "%d", &res)
		return res
	default:
		return 0
	}
}

func asStringSlice(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
