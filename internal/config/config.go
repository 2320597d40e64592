package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ServerPort string
	APIKey     string

	YahooBaseURL string

	FetchConcurrency int
	FetchTimeoutSecs int
	MostActiveCount  int

	HistoryStart time.Time
	SnapshotPath string
}

func Load() *Config {
	cfg := &Config{
		APIKey: os.Getenv("API_KEY"),
	}

	if cfg.APIKey == "" {
		log.Println("Warning: API_KEY not set, API authentication disabled")
	}

	cfg.ServerPort = strings.TrimSpace(os.Getenv("SERVER_PORT"))
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}

	cfg.YahooBaseURL = strings.TrimSpace(os.Getenv("YAHOO_BASE_URL"))
	if cfg.YahooBaseURL == "" {
		cfg.YahooBaseURL = "https://query1.finance.yahoo.com"
	}

	cfg.FetchConcurrency = 10
	if v := strings.TrimSpace(os.Getenv("FETCH_CONCURRENCY")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FetchConcurrency = n
		}
	}

	cfg.FetchTimeoutSecs = 15
	if v := strings.TrimSpace(os.Getenv("FETCH_TIMEOUT_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FetchTimeoutSecs = n
		}
	}

	cfg.MostActiveCount = 50
	if v := strings.TrimSpace(os.Getenv("MOST_ACTIVE_COUNT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MostActiveCount = n
		}
	}

	cfg.HistoryStart = time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC)
	if v := strings.TrimSpace(os.Getenv("HISTORY_START")); v != "" {
		if d, err := time.Parse("2006-01-02", v); err == nil {
			cfg.HistoryStart = d
		} else {
			log.Printf("Warning: invalid HISTORY_START=%q, defaulting to 2010-01-01", v)
		}
	}

	cfg.SnapshotPath = strings.TrimSpace(os.Getenv("SNAPSHOT_PATH"))
	if cfg.SnapshotPath == "" {
		cfg.SnapshotPath = "market_data_summary.csv"
	}

	return cfg
}
