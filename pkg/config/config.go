// pkg/config/config.go

package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the server and the CLI.
type Config struct {
	Addr      string `yaml:"addr"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Store selects the profile store: file, memory, sqlite or postgres.
	Store    string `yaml:"store"`
	StoreDSN string `yaml:"store_dsn"`
	DataDir  string `yaml:"data_dir"`

	PDFFont string `yaml:"pdf_font"`
	OutDir  string `yaml:"out_dir"`

	S3Bucket string `yaml:"s3_bucket"`
	S3Region string `yaml:"s3_region"`
	S3Prefix string `yaml:"s3_prefix"`
}

// Default returns the built in settings.
func Default() Config {
	return Config{
		Addr:      ":8080",
		LogLevel:  "info",
		LogFormat: "text",
		Store:     "file",
		DataDir:   defaultDataDir(),
		OutDir:    ".",
		S3Region:  "us-east-1",
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "invoice-studio")
	}
	return ".invoice-studio"
}

// Load applies, in order, the defaults, the YAML file at path (when not
// empty), a .env file in the working directory and INVOICE_* variables.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrap(err, "reading config file")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "parsing %s", path)
		}
	}

	// a missing .env is fine
	_ = godotenv.Load()

	override := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	override(&cfg.Addr, "INVOICE_ADDR")
	override(&cfg.LogLevel, "INVOICE_LOG_LEVEL")
	override(&cfg.LogFormat, "INVOICE_LOG_FORMAT")
	override(&cfg.Store, "INVOICE_STORE")
	override(&cfg.StoreDSN, "INVOICE_STORE_DSN")
	override(&cfg.DataDir, "INVOICE_DATA_DIR")
	override(&cfg.PDFFont, "INVOICE_PDF_FONT")
	override(&cfg.OutDir, "INVOICE_OUT_DIR")
	override(&cfg.S3Bucket, "INVOICE_S3_BUCKET")
	override(&cfg.S3Region, "INVOICE_S3_REGION")
	override(&cfg.S3Prefix, "INVOICE_S3_PREFIX")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("INVOICE_ADDR") == "" {
		cfg.Addr = ":" + port
	}
	return cfg, cfg.Validate()
}

// Validate checks the store selection.
func (c Config) Validate() error {
	switch c.Store {
	case "file", "memory":
	case "sqlite", "postgres":
		if c.StoreDSN == "" {
			return errors.Errorf("store %s requires a DSN", c.Store)
		}
	default:
		return errors.Errorf("unknown store %q", c.Store)
	}
	return nil
}
