package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration from environment variables.
type Config struct {
	Port           int
	TransitBaseURL string // base URL of the transport.rest upstream
	RouteName      string // line code of the monitored route, e.g. "M41"
	ProbeQuery     string // well-known place name used for the availability probe
	LookaheadMin   int    // departure lookahead window in minutes
	MaxDepartures  int    // upstream departures requested per stop
	ForceSimulate  bool   // skip the probe and always serve synthetic data
	CORSOrigins    string // comma-separated allowed origins, "*" for any
}

// Load reads configuration from a local .env file (if present) and the
// environment, with defaults suitable for the VBB transport.rest API.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:           envInt("BUSWATCH_PORT", 8080),
		TransitBaseURL: envStr("BUSWATCH_TRANSIT_URL", "https://v6.vbb.transport.rest"),
		RouteName:      envStr("BUSWATCH_ROUTE", "M41"),
		ProbeQuery:     envStr("BUSWATCH_PROBE_QUERY", "Alexanderplatz"),
		LookaheadMin:   envInt("BUSWATCH_LOOKAHEAD_MIN", 120),
		MaxDepartures:  envInt("BUSWATCH_MAX_DEPARTURES", 50),
		ForceSimulate:  envBool("BUSWATCH_FORCE_SIMULATE", false),
		CORSOrigins:    envStr("BUSWATCH_CORS_ORIGINS", "*"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
