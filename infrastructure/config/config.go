package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL        = "http://localhost:8000"
	DefaultScreenshotPath = "jules-scratch/verification/verification.png"
)

// Config holds the settings shared by every scenario run
type Config struct {
	BaseURL         string
	ScreenshotPath  string
	ReportPath      string
	Headless        bool
	Preflight       bool
	InstallBrowsers bool
	LogLevel        logrus.Level
}

// Load reads .env when present, then the process environment.
// Variables already set in the environment win over .env entries.
func Load(logger *logrus.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env file is optional
		logger.Debug(".env file not found, using environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		BaseURL:         strings.TrimRight(valueOr(getenv("VERIFY_BASE_URL"), DefaultBaseURL), "/"),
		ScreenshotPath:  valueOr(getenv("VERIFY_SCREENSHOT_PATH"), DefaultScreenshotPath),
		ReportPath:      getenv("VERIFY_REPORT_PATH"),
		Headless:        getenv("HEADLESS") != "false",
		Preflight:       getenv("VERIFY_PREFLIGHT") != "false",
		InstallBrowsers: getenv("PLAYWRIGHT_PREINSTALLED") != "1",
		LogLevel:        logrus.InfoLevel,
	}

	if lvl := getenv("VERIFY_LOG_LEVEL"); lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			return nil, fmt.Errorf("invalid VERIFY_LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = level
	}

	if !strings.HasPrefix(cfg.BaseURL, "http://") && !strings.HasPrefix(cfg.BaseURL, "https://") {
		return nil, fmt.Errorf("invalid VERIFY_BASE_URL %q: must start with http:// or https://", cfg.BaseURL)
	}

	return cfg, nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
