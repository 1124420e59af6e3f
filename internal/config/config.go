package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/iso6709/internal/formatter"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Run modes.
const (
	ModeCLI       = "cli"
	ModeServe     = "serve"
	ModeNormalize = "normalize"
)

// Config holds the configuration settings of the converter.
//
// Fields:
// - Env: The current environment (local, development, production).
// - Mode: What the binary does: read loop (cli), HTTP API (serve) or batch normalization (normalize).
// - Port: The port of the HTTP server in the serve and normalize modes.
// - Input: A file read by the cli mode instead of the standard input.
// - Formats: The representations printed by the cli mode.
// - AllowedOrigins: The origins accepted by the HTTP API CORS policy.
// - Workers: The number of concurrent normalization workers.
// - Interval: The duration between normalization batches.
// - BatchSize: The maximum number of records fetched per batch.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env            string
	Mode           string
	Port           int
	Input          string
	Formats        []formatter.FormatType
	AllowedOrigins []string
	Workers        int
	Interval       time.Duration
	BatchSize      int
	Database       PostgresConfig
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// Configured reports whether enough settings are present to open a connection.
func (p PostgresConfig) Configured() bool {
	return p.Host != "" && p.Name != ""
}

// MustLoad reads the configuration from the environment and an optional .env file.
// It panics when a value cannot be interpreted.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("ISO6709_ENV", "production")
	v.SetDefault("ISO6709_MODE", ModeCLI)
	v.SetDefault("ISO6709_PORT", "8080")
	v.SetDefault("ISO6709_FORMATS", "human_long,long")
	v.SetDefault("ISO6709_ALLOWED_ORIGINS", "*")
	v.SetDefault("ISO6709_WORKERS", "4")
	v.SetDefault("ISO6709_INTERVAL", "1m")
	v.SetDefault("ISO6709_BATCH_SIZE", "100")
	v.SetDefault("DB_PORT", "5432")

	mode := strings.ToLower(v.GetString("ISO6709_MODE"))
	if mode != ModeCLI && mode != ModeServe && mode != ModeNormalize {
		panic("failed to parse mode from configuration, must be one of cli, serve, normalize")
	}

	port, err := strconv.Atoi(v.GetString("ISO6709_PORT"))
	if err != nil {
		panic("failed to parse port for http server from configuration")
	}

	formats, err := formatter.ParseFormatTypes(v.GetString("ISO6709_FORMATS"))
	if err != nil {
		panic("failed to parse output formats from configuration")
	}

	workers, err := strconv.Atoi(v.GetString("ISO6709_WORKERS"))
	if err != nil || workers < 1 {
		panic("failed to parse workers from configuration, must be a positive integer")
	}

	interval, err := time.ParseDuration(v.GetString("ISO6709_INTERVAL"))
	if err != nil {
		panic("failed to parse interval from configuration")
	}

	batchSize, err := strconv.Atoi(v.GetString("ISO6709_BATCH_SIZE"))
	if err != nil || batchSize < 1 {
		panic("failed to parse batch size from configuration, must be a positive integer")
	}

	return &Config{
		Env:            v.GetString("ISO6709_ENV"),
		Mode:           mode,
		Port:           port,
		Input:          v.GetString("ISO6709_INPUT"),
		Formats:        formats,
		AllowedOrigins: splitList(v.GetString("ISO6709_ALLOWED_ORIGINS")),
		Workers:        workers,
		Interval:       interval,
		BatchSize:      batchSize,
		Database: PostgresConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USERNAME"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
	}
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimRight(strings.TrimSpace(item), "/"); item != "" {
			items = append(items, item)
		}
	}

	return items
}
