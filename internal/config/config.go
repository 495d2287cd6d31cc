package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server      ServerConfig
	RecordStore RecordStoreConfig
	Store       StoreConfig
	Ledger      LedgerConfig
	Reporting   ReportingConfig
	WhatsApp    WhatsAppConfig
	Sheets      SheetsConfig
	MongoDB     MongoDBConfig
	AMQP        AMQPConfig
	Metrics     MetricsConfig
	Log         LogConfig
}

// ServerConfig holds HTTP listen ports of both binaries.
type ServerConfig struct {
	Port      string
	StorePort string
}

// RecordStoreConfig points the ledger at the record store REST API.
type RecordStoreConfig struct {
	BaseURL string
	Timeout time.Duration
}

// StoreConfig selects the persistence backend of the record store.
type StoreConfig struct {
	Backend    string
	SQLitePath string
}

// LedgerConfig holds the business settings of the ledger.
type LedgerConfig struct {
	Timezone         string
	FoodIncomePolicy string
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule string
}

// WhatsAppConfig contains credentials and options for the Meta WhatsApp Cloud API.
type WhatsAppConfig struct {
	AccessToken   string
	PhoneNumberID string
	BaseURL       string
	APIVersion    string
	ManagerID     string
	VerifyToken   string
}

// Enabled reports whether daily summaries can be delivered over WhatsApp.
func (w WhatsAppConfig) Enabled() bool {
	return w.AccessToken != "" && w.PhoneNumberID != "" && w.ManagerID != ""
}

// WebhookEnabled reports whether the manager may query the ledger over WhatsApp.
func (w WhatsAppConfig) WebhookEnabled() bool {
	return w.Enabled() && w.VerifyToken != ""
}

// SheetsConfig contains configuration required to interact with Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether the daily export to Sheets is configured.
func (s SheetsConfig) Enabled() bool {
	return s.CredentialsPath != "" && s.SpreadsheetID != ""
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Enabled reports whether daily snapshots are stored in MongoDB.
func (m MongoDBConfig) Enabled() bool {
	return m.URI != ""
}

// AMQPConfig holds the broker settings for mutation events.
type AMQPConfig struct {
	URL      string
	Exchange string
}

// Enabled reports whether mutation events are published.
func (a AMQPConfig) Enabled() bool {
	return a.URL != ""
}

// MetricsConfig toggles the /metrics endpoint.
type MetricsConfig struct {
	Enabled bool
}

// LogConfig selects the log level and encoding.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are fine when configuration comes from the environment.
		_ = godotenv.Load()
	}

	timeout, err := time.ParseDuration(getenvWithDefault("RECORD_STORE_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECORD_STORE_TIMEOUT: %w", err)
	}

	metricsEnabled, err := strconv.ParseBool(getenvWithDefault("METRICS_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid METRICS_ENABLED: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:      getenvWithDefault("APP_PORT", "8080"),
			StorePort: getenvWithDefault("STORE_PORT", "8090"),
		},
		RecordStore: RecordStoreConfig{
			BaseURL: getenvWithDefault("RECORD_STORE_URL", "http://localhost:8090"),
			Timeout: timeout,
		},
		Store: StoreConfig{
			Backend:    strings.ToLower(getenvWithDefault("STORE_BACKEND", "memory")),
			SQLitePath: getenvWithDefault("SQLITE_DB_PATH", "./data/hotel.db"),
		},
		Ledger: LedgerConfig{
			Timezone:         getenvWithDefault("TIMEZONE", "Africa/Nairobi"),
			FoodIncomePolicy: getenvWithDefault("FOOD_INCOME_POLICY", "beverage_quantity"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 23 * * *"),
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:   os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			BaseURL:       getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
			ManagerID:     os.Getenv("WHATSAPP_MANAGER_ID"),
			VerifyToken:   os.Getenv("WHATSAPP_VERIFY_TOKEN"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "hotel"),
		},
		AMQP: AMQPConfig{
			URL:      os.Getenv("AMQP_URL"),
			Exchange: getenvWithDefault("AMQP_EXCHANGE", "hotel.ledger"),
		},
		Metrics: MetricsConfig{
			Enabled: metricsEnabled,
		},
		Log: LogConfig{
			Level:  strings.ToLower(getenvWithDefault("LOG_LEVEL", "info")),
			Format: strings.ToLower(getenvWithDefault("LOG_FORMAT", "json")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
// Optional integrations are only checked when enabled.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if err := validatePort("APP_PORT", c.Server.Port); err != nil {
		return err
	}
	if err := validatePort("STORE_PORT", c.Server.StorePort); err != nil {
		return err
	}

	if c.RecordStore.BaseURL == "" {
		return errors.New("RECORD_STORE_URL must be provided")
	}
	if c.RecordStore.Timeout <= 0 {
		return errors.New("RECORD_STORE_TIMEOUT must be positive")
	}

	switch c.Store.Backend {
	case "memory":
	case "sqlite":
		if c.Store.SQLitePath == "" {
			return errors.New("SQLITE_DB_PATH must be provided for the sqlite backend")
		}
	default:
		return fmt.Errorf("unsupported STORE_BACKEND %q: use memory or sqlite", c.Store.Backend)
	}

	if c.Ledger.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}
	if _, err := time.LoadLocation(c.Ledger.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Ledger.Timezone, err)
	}

	switch c.Ledger.FoodIncomePolicy {
	case "beverage_quantity", "line_total":
	default:
		return fmt.Errorf("unsupported FOOD_INCOME_POLICY %q", c.Ledger.FoodIncomePolicy)
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	if c.WhatsApp.Enabled() {
		if c.WhatsApp.BaseURL == "" {
			return errors.New("WHATSAPP_BASE_URL must not be empty")
		}
		if c.WhatsApp.APIVersion == "" {
			return errors.New("WHATSAPP_API_VERSION must not be empty")
		}
	}

	if c.MongoDB.Enabled() && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided when MONGODB_URI is set")
	}

	if c.AMQP.Enabled() && c.AMQP.Exchange == "" {
		return errors.New("AMQP_EXCHANGE must be provided when AMQP_URL is set")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported LOG_LEVEL %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unsupported LOG_FORMAT %q: use json or console", c.Log.Format)
	}

	return nil
}

// Location resolves the ledger timezone. Validate has already checked it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Ledger.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func validatePort(key, value string) error {
	if value == "" {
		return fmt.Errorf("%s must be provided", key)
	}
	port, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: must be a number", key, value)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid %s %d: must be between 1 and 65535", key, port)
	}
	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
