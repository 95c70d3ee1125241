package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
)

// DefaultBannerURL is the bike-sharing illustration shown in the sidebar.
const DefaultBannerURL = "https://media.istockphoto.com/id/1329906434/vector/city-bicycle-sharing-system-isolated-on-white.jpg?s=612x612&w=0&k=20&c=weiMZhJoWWzNGtx7khfXPbE3s2Lpw5n6M7iWoxCsBPU="

type AppConfig struct {
	// Locations of the two cleaned tables: a file path or an http(s) URL.
	DayDataPath  string
	HourDataPath string

	// ReloadInterval controls how often both tables are re-read (0 = load once).
	ReloadInterval time.Duration

	// HTTPTimeout bounds each outbound request of an URL source.
	HTTPTimeout time.Duration

	RFMPreviewRows int
	HistogramBins  int

	// BannerURL is the sidebar image above the date picker; empty hides it.
	BannerURL string

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Infof("No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.DayDataPath = getenvDefault("DAY_DATA_PATH", "Dashboard/clean_day.csv")
	cfg.HourDataPath = getenvDefault("HOUR_DATA_PATH", "Dashboard/clean_hour.csv")

	interval, err := time.ParseDuration(getenvDefault("DATA_RELOAD_INTERVAL", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid DATA_RELOAD_INTERVAL: %w", err)
	}
	if interval < 0 {
		return nil, fmt.Errorf("invalid DATA_RELOAD_INTERVAL: must not be negative")
	}
	cfg.ReloadInterval = interval

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.RFMPreviewRows = getenvInt("RFM_PREVIEW_ROWS", 5)
	cfg.HistogramBins = getenvInt("HISTOGRAM_BINS", 30)
	if cfg.HistogramBins <= 0 {
		return nil, fmt.Errorf("invalid HISTOGRAM_BINS: must be positive")
	}
	cfg.BannerURL = DefaultBannerURL
	if v, ok := os.LookupEnv("BANNER_URL"); ok {
		cfg.BannerURL = v
	}
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
