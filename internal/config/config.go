package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Catalog source kinds.
const (
	CatalogStatic  = "static"
	CatalogFile    = "file"
	CatalogHTTP    = "http"
	CatalogMongoDB = "mongodb"
	CatalogSheets  = "sheets"
)

// Config represents the full application configuration surface.
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Catalog  CatalogConfig
	Export   ExportConfig
	WhatsApp WhatsAppConfig
	Sheets   SheetsConfig
	MongoDB  MongoDBConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port        string
	DefaultLang string
}

// LogConfig holds logger options.
type LogConfig struct {
	Level string
}

// CatalogConfig selects where reagent reference data comes from.
type CatalogConfig struct {
	Source      string
	File        string
	URL         string
	RefreshCron string
	StockRange  string
	SolidRange  string
}

// ExportConfig holds worksheet export options.
type ExportConfig struct {
	TemplatePath string
	SheetTab     string
}

// WhatsAppConfig contains credentials and options for the Meta WhatsApp Cloud API.
type WhatsAppConfig struct {
	AccessToken   string
	PhoneNumberID string
	VerifyToken   string
	BaseURL       string
	APIVersion    string
}

// Enabled reports whether the chat front-end is configured.
func (c WhatsAppConfig) Enabled() bool {
	return c.AccessToken != ""
}

// SheetsConfig contains configuration required to interact with Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether Google Sheets credentials are configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
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

	cfg := &Config{
		Server: ServerConfig{
			Port:        getenvWithDefault("APP_PORT", "8080"),
			DefaultLang: getenvWithDefault("DEFAULT_LANG", "en"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Catalog: CatalogConfig{
			Source:      strings.ToLower(getenvWithDefault("CATALOG_SOURCE", CatalogStatic)),
			File:        os.Getenv("CATALOG_FILE"),
			URL:         os.Getenv("CATALOG_URL"),
			RefreshCron: os.Getenv("CATALOG_REFRESH_CRON"),
			StockRange:  getenvWithDefault("SHEETS_STOCK_RANGE", "Stocks!A:D"),
			SolidRange:  getenvWithDefault("SHEETS_SOLID_RANGE", "Solids!A:B"),
		},
		Export: ExportConfig{
			TemplatePath: getenvWithDefault("EXPORT_TEMPLATE_PATH", "template.xlsx"),
			SheetTab:     getenvWithDefault("SHEETS_EXPORT_TAB", "Worksheet"),
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:   os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			VerifyToken:   os.Getenv("META_VERIFY_TOKEN"),
			BaseURL:       getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_ID"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "buffercalc"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Server.DefaultLang {
	case "en", "zh":
	default:
		return fmt.Errorf("DEFAULT_LANG %q not supported, use en or zh", c.Server.DefaultLang)
	}

	switch c.Catalog.Source {
	case CatalogStatic:
	case CatalogFile:
		if c.Catalog.File == "" {
			return errors.New("CATALOG_FILE must be provided when CATALOG_SOURCE=file")
		}
	case CatalogHTTP:
		if c.Catalog.URL == "" {
			return errors.New("CATALOG_URL must be provided when CATALOG_SOURCE=http")
		}
	case CatalogMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided when CATALOG_SOURCE=mongodb")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("MONGODB_DB_NAME must not be empty")
		}
	case CatalogSheets:
		if !c.Sheets.Enabled() {
			return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_ID must be provided when CATALOG_SOURCE=sheets")
		}
	default:
		return fmt.Errorf("CATALOG_SOURCE %q not supported", c.Catalog.Source)
	}

	if c.WhatsApp.Enabled() {
		switch {
		case c.WhatsApp.PhoneNumberID == "":
			return errors.New("WHATSAPP_PHONE_NUMBER_ID must be provided")
		case c.WhatsApp.VerifyToken == "":
			return errors.New("META_VERIFY_TOKEN must be provided")
		case c.WhatsApp.BaseURL == "":
			return errors.New("WHATSAPP_BASE_URL must not be empty")
		case c.WhatsApp.APIVersion == "":
			return errors.New("WHATSAPP_API_VERSION must not be empty")
		}
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
