package main

import (
	"fmt"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Host        string
	Port        int
	Environment string
	LogLevel    string

	// Snapshot storage settings
	StorageProvider  string // "local", "s3" or "postgres"
	StorageLocalPath string
	StorageS3Bucket  string
	StorageS3Region  string
	StorageS3Prefix  string

	// Database settings (used when StorageProvider is "postgres")
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// Email settings
	EmailProvider        string
	EmailPostmarkToken   string
	EmailPostmarkAccount string
	EmailFromAddress     string
	EmailFromName        string

	// Autosave settings
	AutosaveEnabled  bool
	AutosaveSchedule string

	// Restore the latest snapshot on startup
	RestoreOnStart bool
}

// LoadConfig loads configuration from environment variables.
func LoadConfig(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Host:        envString(getenv, "SERVER_HOST", "localhost"),
		Port:        envInt(getenv, "SERVER_PORT", 8080),
		Environment: envString(getenv, "ENVIRONMENT", "dev"),
		LogLevel:    envString(getenv, "LOG_LEVEL", "info"),

		StorageProvider:  envString(getenv, "STORAGE_PROVIDER", "local"),
		StorageLocalPath: envString(getenv, "STORAGE_LOCAL_PATH", "./snapshots"),
		StorageS3Bucket:  envString(getenv, "STORAGE_S3_BUCKET", ""),
		StorageS3Region:  envString(getenv, "STORAGE_S3_REGION", "us-east-1"),
		StorageS3Prefix:  envString(getenv, "STORAGE_S3_PREFIX", "snapshots"),

		DBUser:     envString(getenv, "DB_USER", "postgres"),
		DBPassword: envString(getenv, "DB_PASSWORD", ""),
		DBHost:     envString(getenv, "DB_HOSTNAME", "localhost"),
		DBPort:     envString(getenv, "DB_PORT", "5432"),
		DBName:     envString(getenv, "DB_NAME", "postgres"),

		EmailProvider:        envString(getenv, "EMAIL_PROVIDER", "mock"),
		EmailPostmarkToken:   envString(getenv, "POSTMARK_SERVER_TOKEN", ""),
		EmailPostmarkAccount: envString(getenv, "POSTMARK_ACCOUNT_TOKEN", ""),
		EmailFromAddress:     envString(getenv, "EMAIL_FROM_ADDRESS", "reports@example.com"),
		EmailFromName:        envString(getenv, "EMAIL_FROM_NAME", "Autoscope"),

		AutosaveEnabled:  envBool(getenv, "AUTOSAVE_ENABLED", true),
		AutosaveSchedule: envString(getenv, "AUTOSAVE_SCHEDULE", "*/5 * * * *"),

		RestoreOnStart: envBool(getenv, "RESTORE_ON_START", true),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DatabaseURL returns the PostgreSQL connection string.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func (c *Config) validate() error {
	switch c.StorageProvider {
	case "local", "s3", "postgres":
	default:
		return fmt.Errorf("unknown STORAGE_PROVIDER %q", c.StorageProvider)
	}
	if c.StorageProvider == "s3" && c.StorageS3Bucket == "" {
		return fmt.Errorf("STORAGE_S3_BUCKET must be set when STORAGE_PROVIDER is s3")
	}
	if c.EmailProvider == "postmark" && c.EmailPostmarkToken == "" {
		return fmt.Errorf("POSTMARK_SERVER_TOKEN must be set when EMAIL_PROVIDER is postmark")
	}
	return nil
}

// Helper functions for loading environment variables with defaults.

func envString(getenv func(string) string, key, defaultValue string) string {
	if value := getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func envInt(getenv func(string) string, key string, defaultValue int) int {
	if value := getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func envBool(getenv func(string) string, key string, defaultValue bool) bool {
	if value := getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
