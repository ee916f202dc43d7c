package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"reglookup/internal/errors"
)

// Source kinds accepted in TABLE_SOURCE
const (
	SourceSheets   = "sheets"
	SourceExcel    = "excel"
	SourcePostgres = "postgres"
)

// Config represents the complete application configuration
type Config struct {
	Source    SourceConfig
	Sheets    SheetsConfig
	Excel     ExcelConfig
	Database  DatabaseConfig
	Server    ServerConfig
	Profiling ProfilingConfig
}

// SourceConfig selects the table source
type SourceConfig struct {
	Kind         string
	FetchTimeout time.Duration
}

// SheetsConfig holds Google Sheets access settings
type SheetsConfig struct {
	SpreadsheetID       string
	Range               string
	ServiceAccountEmail string
	PrivateKey          string
}

// ExcelConfig holds local spreadsheet file settings
type ExcelConfig struct {
	FilePath string
	Sheet    string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string
	Table   string
	OrderBy string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	source, err := loadSourceConfig()
	if err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	config := &Config{
		Source:    *source,
		Sheets:    *loadSheetsConfig(),
		Excel:     *loadExcelConfig(),
		Database:  *loadDatabaseConfig(),
		Server:    *loadServerConfig(),
		Profiling: *loadProfilingConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadSourceConfig() (*SourceConfig, error) {
	timeout, err := getEnvDurationOrDefault("FETCH_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	return &SourceConfig{
		Kind:         strings.ToLower(getEnvOrDefault("TABLE_SOURCE", SourceSheets)),
		FetchTimeout: timeout,
	}, nil
}

func loadSheetsConfig() *SheetsConfig {
	return &SheetsConfig{
		SpreadsheetID:       getEnvOrDefault("GOOGLE_SHEET_ID", ""),
		Range:               getEnvOrDefault("GOOGLE_SHEET_RANGE", "Sheet1"),
		ServiceAccountEmail: getEnvOrDefault("GOOGLE_SERVICE_ACCOUNT_EMAIL", ""),
		PrivateKey:          getEnvOrDefault("GOOGLE_PRIVATE_KEY", ""),
	}
}

func loadExcelConfig() *ExcelConfig {
	return &ExcelConfig{
		FilePath: getEnvOrDefault("EXCEL_FILE", ""),
		Sheet:    getEnvOrDefault("EXCEL_SHEET", "Sheet1"),
	}
}

func loadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		URL:     getEnvOrDefault("DATABASE_URL", ""),
		Table:   getEnvOrDefault("DB_TABLE", ""),
		OrderBy: getEnvOrDefault("DB_ORDER_BY", ""),
	}
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadProfilingConfig() *ProfilingConfig {
	return &ProfilingConfig{
		Port:    getEnvOrDefault("PPROF_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
	}
}

func validateConfig(config *Config) error {
	if config.Source.FetchTimeout <= 0 {
		return errors.ConfigInvalid("FETCH_TIMEOUT must be positive")
	}

	switch config.Source.Kind {
	case SourceSheets:
		if config.Sheets.SpreadsheetID == "" {
			return errors.ConfigInvalid("GOOGLE_SHEET_ID is required")
		}
		if config.Sheets.ServiceAccountEmail == "" {
			return errors.ConfigInvalid("GOOGLE_SERVICE_ACCOUNT_EMAIL is required")
		}
		if config.Sheets.PrivateKey == "" {
			return errors.ConfigInvalid("GOOGLE_PRIVATE_KEY is required")
		}
	case SourceExcel:
		if config.Excel.FilePath == "" {
			return errors.ConfigInvalid("EXCEL_FILE is required")
		}
	case SourcePostgres:
		if config.Database.URL == "" {
			return errors.ConfigInvalid("DATABASE_URL is required")
		}
		if config.Database.Table == "" {
			return errors.ConfigInvalid("DB_TABLE is required")
		}
	default:
		return errors.ConfigInvalid("unknown TABLE_SOURCE " + strconv.Quote(config.Source.Kind))
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDurationOrDefault rejects values time.ParseDuration cannot read
func getEnvDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s must be a duration such as 10s, got %q", key, value))
	}
	return duration, nil
}
