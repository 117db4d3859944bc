package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"cdr-mcp/cmd/recgen/engine"
	"cdr-mcp/internal/dataset"
	"cdr-mcp/internal/record"
)

func main() {
	scenario := flag.String("scenario", "regular", "Scenario to generate: regular, nocturnal, sparse")
	outDir := flag.String("out", "./.data", "Output directory for dataset files")
	users := flag.Int("users", 1, "Number of users to generate")
	count := flag.Int("count", 600, "Number of records per user")
	days := flag.Int("days", 90, "Observation span in days")
	seed := flag.Int64("seed", 42, "Random seed")
	flag.Parse()

	fmt.Printf("Generating scenario '%s' (%d users, %d records over %d days) to %s...\n",
		*scenario, *users, *count, *days, *outDir)

	store := dataset.NewStore(*outDir)
	for i := 0; i < *users; i++ {
		cfg := engine.GeneratorConfig{
			Scenario: *scenario,
			Count:    *count,
			Days:     *days,
			Now:      time.Now(),
			Seed:     *seed + int64(i),
		}
		records, antennas := engine.Generate(cfg)

		id := fmt.Sprintf("user_%03d", i+1)
		u := record.NewUser(id, records)
		u.Antennas = antennas

		store.Put(u)
		if err := store.Save(id); err != nil {
			fmt.Printf("Failed to save dataset for %s: %v\n", id, err)
			os.Exit(1)
		}
	}

	fmt.Println("Done.")
}
