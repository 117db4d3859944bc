package indicators

import (
	"math"

	"cdr-mcp/internal/grouping"
	"cdr-mcp/internal/record"
	"cdr-mcp/internal/stats"
)

// NumberOfAntennas counts the distinct antennas observed in a slice of
// located records.
var NumberOfAntennas = register(grouping.Indicator{
	Name:    "number_of_antennas",
	Doc:     "Count of distinct antennas observed.",
	Spatial: true,
	Compute: func(records []record.Record, _ *record.User) ([]float64, error) {
		seen := make(map[string]bool)
		for _, r := range records {
			if r.Position.Antenna != "" {
				seen[r.Position.Antenna] = true
			}
		}
		return []float64{float64(len(seen))}, nil
	},
})

// RadiusOfGyration measures the spatial spread of a user's activity: the
// root mean square great-circle distance of located records from their
// centroid, in kilometers.
var RadiusOfGyration = register(grouping.Indicator{
	Name:      "radius_of_gyration",
	Doc:       "RMS distance of located records from their centroid, in km.",
	Spatial:   true,
	NeedsUser: true,
	Compute: func(records []record.Record, u *record.User) ([]float64, error) {
		var lats, lons []float64
		for _, r := range records {
			lat, lon, ok := u.Coordinates(r)
			if !ok {
				continue
			}
			lats = append(lats, lat)
			lons = append(lons, lon)
		}
		if len(lats) == 0 {
			return nil, grouping.ErrInsufficientData
		}

		var cLat, cLon float64
		for i := range lats {
			cLat += lats[i]
			cLon += lons[i]
		}
		cLat /= float64(len(lats))
		cLon /= float64(len(lons))

		var sumSq float64
		for i := range lats {
			d := stats.GreatCircleDistance(cLat, cLon, lats[i], lons[i])
			sumSq += d * d
		}
		return []float64{math.Sqrt(sumSq / float64(len(lats)))}, nil
	},
})

// FrequentAntennasShare is the share of located records observed at the
// user's single most visited antenna.
var FrequentAntennasShare = register(grouping.Indicator{
	Name:    "percent_at_top_antenna",
	Doc:     "Share of located records observed at the most visited antenna.",
	Spatial: true,
	Compute: func(records []record.Record, _ *record.User) ([]float64, error) {
		counts := make(map[string]int)
		total := 0
		for _, r := range records {
			if r.Position.Antenna != "" {
				counts[r.Position.Antenna]++
				total++
			}
		}
		if total == 0 {
			return nil, grouping.ErrInsufficientData
		}

		top := 0
		for _, n := range counts {
			if n > top {
				top = n
			}
		}
		return []float64{float64(top) / float64(total)}, nil
	},
})
