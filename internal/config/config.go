package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"cdr-mcp/internal/record"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DataPath     string
	LogDir       string
	Night        record.NightWindow
	WeekendDays  map[time.Weekday]bool
	BatchWorkers int
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for MCP servers)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve data path
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	night, err := parseNightWindow(getEnv("NIGHT_WINDOW_START", "19:00"), getEnv("NIGHT_WINDOW_END", "07:00"))
	if err != nil {
		return nil, err
	}

	weekend, err := parseWeekendDays(getEnv("WEEKEND_DAYS", "Sat,Sun"))
	if err != nil {
		return nil, err
	}

	workers, _ := strconv.Atoi(getEnv("BATCH_WORKERS", "4"))

	cfg := &AppConfig{
		DataPath:     dataPath,
		LogDir:       logDir,
		Night:        night,
		WeekendDays:  weekend,
		BatchWorkers: workers,
	}

	return cfg, nil
}

// ApplyTo stamps the configured night window and weekend days onto a user.
func (c *AppConfig) ApplyTo(u *record.User) {
	u.Night = c.Night
	u.WeekendDays = c.WeekendDays
}

func parseNightWindow(start, end string) (record.NightWindow, error) {
	s, err := parseClock(start)
	if err != nil {
		return record.NightWindow{}, fmt.Errorf("NIGHT_WINDOW_START: %w", err)
	}
	e, err := parseClock(end)
	if err != nil {
		return record.NightWindow{}, fmt.Errorf("NIGHT_WINDOW_END: %w", err)
	}
	return record.NightWindow{Start: s, End: e}, nil
}

func parseClock(v string) (time.Duration, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q (want HH:MM)", v)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
	"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday,
}

func parseWeekendDays(v string) (map[time.Weekday]bool, error) {
	days := make(map[time.Weekday]bool)
	for _, part := range strings.Split(v, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if len(part) > 3 {
			part = part[:3]
		}
		day, ok := weekdayNames[part]
		if !ok {
			return nil, fmt.Errorf("invalid WEEKEND_DAYS entry %q", part)
		}
		days[day] = true
	}
	return days, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
