package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the dashboard server
type Config struct {
	// Server configuration
	Host            string        `json:"host"`
	Port            int           `json:"port" validate:"min=1,max=65535"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" validate:"gt=0"`

	// Dashboard build output
	DashboardDir string `json:"dashboard_dir" validate:"required"`
	IndexFile    string `json:"index_file" validate:"required,excludesall=/\\"`

	// AI analysis artifact
	AnalysisPath  string `json:"analysis_path" validate:"required"`
	AnalysisRoute string `json:"analysis_route" validate:"required,startswith=/"`

	// Startup behaviour
	OpenBrowser bool `json:"open_browser"`
	WatchFiles  bool `json:"watch_files"`

	// Logging
	LogLevel  string `json:"log_level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	LogFile   string `json:"log_file"`
	LogPretty bool   `json:"log_pretty"`
}

// Load loads configuration from environment variables and validates it
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := &Config{
		Host:            getEnv("HOST", ""),
		Port:            getEnvAsInt("PORT", 3000),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		DashboardDir: getEnv("DASHBOARD_DIR", "dashboard/dist"),
		IndexFile:    getEnv("DASHBOARD_INDEX", "index.html"),

		AnalysisPath:  getEnv("AI_ANALYSIS_PATH", "results/ai_analysis.json"),
		AnalysisRoute: getEnv("AI_ANALYSIS_ROUTE", "/data/ai_analysis.json"),

		OpenBrowser: getEnvAsBool("OPEN_BROWSER", true),
		WatchFiles:  getEnvAsBool("WATCH_FILES", true),

		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFile:   getEnv("LOG_FILE", ""),
		LogPretty: getEnvAsBool("LOG_PRETTY", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, ", "))
}

// Addr returns the listen address in host:port form
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// URL returns the dashboard URL opened in the browser
func (c *Config) URL() string {
	return fmt.Sprintf("http://localhost:%d", c.Port)
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %t", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}
