package common

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. APS_SERVER_ADDR.
const EnvPrefix = "APS"

// Config holds all application configuration
type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	Extract    ExtractConfig    `mapstructure:"extract"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Conference ConferenceConfig `mapstructure:"conference"`
	Server     ServerConfig     `mapstructure:"server"`
	Export     ExportConfig     `mapstructure:"export"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// ExtractConfig holds PDF extraction heuristics
type ExtractConfig struct {
	DescriptionWindow float64 `mapstructure:"description_window"` // vertical units below a code line
	WordGap           float64 `mapstructure:"word_gap"`           // horizontal gap that splits glyphs into words
	LineJitter        float64 `mapstructure:"line_jitter"`        // baseline drift tolerated inside a word
}

// CatalogConfig names the price-table columns
type CatalogConfig struct {
	Sheet          string `mapstructure:"sheet"` // "" -> first sheet
	KeyColumn      string `mapstructure:"key_column"`
	PriceColumn    string `mapstructure:"price_column"`
	CategoryColumn string `mapstructure:"category_column"`
}

// ConferenceConfig describes the conference spreadsheet layout
type ConferenceConfig struct {
	Sheet                string `mapstructure:"sheet"`
	HeaderOffset         int    `mapstructure:"header_offset"` // leading rows skipped before the header row
	MaterialColumn       string `mapstructure:"material_column"`
	DescriptionColumn    string `mapstructure:"description_column"`
	QuantityColumn       string `mapstructure:"quantity_column"`
	UnitColumn           string `mapstructure:"unit_column"`
	SellerDiscountColumn string `mapstructure:"seller_discount_column"`
	TotalColumn          string `mapstructure:"total_column"`
	RecomputeTotal       bool   `mapstructure:"recompute_total"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr          string  `mapstructure:"addr"`
	Environment   string  `mapstructure:"environment"`
	MaxUploadMB   int64   `mapstructure:"max_upload_mb"`
	RatePerSecond float64 `mapstructure:"rate_per_second"`
	Burst         int     `mapstructure:"burst"`
}

// ExportConfig holds spreadsheet export configuration
type ExportConfig struct {
	Sheet string `mapstructure:"sheet"`
}

// LoadConfig loads configuration from an optional .env file, an optional
// config.yaml and APS_* environment variables, in increasing precedence.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// defaults are static; decoding cannot fail
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")

	v.SetDefault("extract.description_window", 15.0)
	v.SetDefault("extract.word_gap", 1.5)
	v.SetDefault("extract.line_jitter", 1.0)

	v.SetDefault("catalog.sheet", "")
	v.SetDefault("catalog.key_column", "Cod Sap")
	v.SetDefault("catalog.price_column", "Price")
	v.SetDefault("catalog.category_column", "Categoria")

	v.SetDefault("conference.sheet", "Conferencia")
	v.SetDefault("conference.header_offset", 2)
	v.SetDefault("conference.material_column", "Material")
	v.SetDefault("conference.description_column", "Descrição")
	v.SetDefault("conference.quantity_column", "Qtd")
	v.SetDefault("conference.unit_column", "Valor Unit")
	v.SetDefault("conference.seller_discount_column", "Desc Vendedor")
	v.SetDefault("conference.total_column", "Valor Total")
	v.SetDefault("conference.recompute_total", true)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.max_upload_mb", 20)
	v.SetDefault("server.rate_per_second", 5.0)
	v.SetDefault("server.burst", 10)

	v.SetDefault("export.sheet", "Analise")
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	validator := NewValidator().
		Field("log.level", c.Log.Level, OneOf("debug", "info", "warn", "error")).
		Field("extract.description_window", c.Extract.DescriptionWindow, Positive).
		Field("extract.word_gap", c.Extract.WordGap, Positive).
		Field("extract.line_jitter", c.Extract.LineJitter, Positive).
		Field("catalog.key_column", c.Catalog.KeyColumn, Required).
		Field("catalog.price_column", c.Catalog.PriceColumn, Required).
		Field("conference.sheet", c.Conference.Sheet, Required).
		Field("conference.header_offset", c.Conference.HeaderOffset, NonNegative).
		Field("conference.material_column", c.Conference.MaterialColumn, Required).
		Field("conference.quantity_column", c.Conference.QuantityColumn, Required).
		Field("conference.unit_column", c.Conference.UnitColumn, Required).
		Field("server.environment", c.Server.Environment, OneOf("development", "production")).
		Field("server.max_upload_mb", c.Server.MaxUploadMB, Positive).
		Field("export.sheet", c.Export.Sheet, Required)
	if validator.HasErrors() {
		return NewAppError(CodeConfig, validator.ErrorMessage(), ErrInvalidInput, nil)
	}
	return nil
}

// SlogLevel maps the configured level name to a slog.Level.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
