package engine

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"cdr-mcp/internal/record"
)

// GeneratorConfig controls the synthetic record generator.
type GeneratorConfig struct {
	Scenario string // "regular", "nocturnal", "sparse"
	Contacts int
	Antennas int
	Days     int
	Count    int
	Now      time.Time
	Seed     int64
}

// Generate produces a synthetic per-user record set plus an antenna
// coordinate table. Scenarios shape the time-of-day distribution:
// "regular" concentrates activity in waking hours, "nocturnal" inside
// the conventional night window, "sparse" thins the volume and widens
// the gaps.
func Generate(cfg GeneratorConfig) ([]record.Record, map[string][2]float64) {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	if cfg.Contacts <= 0 {
		cfg.Contacts = 12
	}
	if cfg.Antennas <= 0 {
		cfg.Antennas = 8
	}
	if cfg.Days <= 0 {
		cfg.Days = 90
	}
	if cfg.Count <= 0 {
		cfg.Count = 600
	}
	if cfg.Scenario == "sparse" {
		cfg.Count = cfg.Count / 10
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	// Antennas scattered a few km around a home cell.
	homeLat, homeLon := 48.8566, 2.3522
	antennas := make(map[string][2]float64, cfg.Antennas)
	for i := 0; i < cfg.Antennas; i++ {
		id := fmt.Sprintf("A%02d", i+1)
		antennas[id] = [2]float64{
			homeLat + (rng.Float64()-0.5)*0.1,
			homeLon + (rng.Float64()-0.5)*0.1,
		}
	}
	antennaIDs := make([]string, 0, cfg.Antennas)
	for i := 0; i < cfg.Antennas; i++ {
		antennaIDs = append(antennaIDs, fmt.Sprintf("A%02d", i+1))
	}

	// A Zipf-ish contact mix: few strong ties, a long weak tail.
	contacts := make([]string, cfg.Contacts)
	for i := range contacts {
		contacts[i] = fmt.Sprintf("+3360000%04d", i+1)
	}

	// Day offsets and sampled hours compose onto midnight of the span start.
	start := cfg.Now.AddDate(0, 0, -cfg.Days)
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	var records []record.Record

	for i := 0; i < cfg.Count; i++ {
		day := rng.Intn(cfg.Days)
		hour := sampleHour(cfg.Scenario, rng)
		ts := start.AddDate(0, 0, day).
			Add(time.Duration(hour) * time.Hour).
			Add(time.Duration(rng.Intn(3600)) * time.Second)

		contact := contacts[zipfIndex(rng, cfg.Contacts)]
		direction := record.Outgoing
		if rng.Float64() < 0.45 {
			direction = record.Incoming
		}

		r := record.Record{
			Timestamp:       ts,
			Direction:       direction,
			CorrespondentID: contact,
			Position:        record.Position{Antenna: antennaIDs[zipfIndex(rng, cfg.Antennas)]},
		}

		if rng.Float64() < 0.6 {
			r.Interaction = record.Call
			duration := int(30 + rng.ExpFloat64()*180)
			r.CallDuration = &duration
		} else {
			r.Interaction = record.Text
		}

		records = append(records, r)
	}

	return records, antennas
}

func sampleHour(scenario string, rng *rand.Rand) int {
	switch scenario {
	case "nocturnal":
		// Inside the conventional 19:00-07:00 window.
		h := 19 + rng.Intn(12)
		return h % 24
	case "sparse":
		return rng.Intn(24)
	default: // regular
		// Waking hours, peaking around 18:00.
		h := int(math.Round(13 + rng.NormFloat64()*4))
		if h < 8 {
			h = 8
		}
		if h > 22 {
			h = 22
		}
		return h
	}
}

// zipfIndex skews picks toward low indices, mimicking the head-heavy
// contact and antenna distributions seen in real CDR data.
func zipfIndex(rng *rand.Rand, n int) int {
	idx := int(rng.ExpFloat64() * float64(n) / 4)
	if idx >= n {
		idx = n - 1
	}
	return idx
}
