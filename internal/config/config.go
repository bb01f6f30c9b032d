// Package config loads binary configuration from LESSONPLAN_* environment
// variables and lets command-line flags override them.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/goliatone/go-lessonplan/internal/logger"
	"github.com/goliatone/go-lessonplan/pkg/catalog"
)

// Config holds the settings shared by the web and terminal binaries.
type Config struct {
	HTTPAddr     string `env:"LESSONPLAN_HTTP_ADDR" envDefault:"localhost:8080"`
	CatalogDir   string `env:"LESSONPLAN_CATALOG_DIR"`
	Catalog      string `env:"LESSONPLAN_CATALOG" envDefault:"en"`
	WatchCatalog bool   `env:"LESSONPLAN_WATCH_CATALOG" envDefault:"false"`
	LogLevel     string `env:"LESSONPLAN_LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"LESSONPLAN_LOG_FORMAT" envDefault:"text"`
	OutputDir    string `env:"LESSONPLAN_OUTPUT_DIR" envDefault:"."`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the environment into a Config, registers the shared flags on fs
// and parses args. Flags win over environment values.
func Load(fs *flag.FlagSet, args []string) (Config, error) {
	if fs == nil {
		return Config{}, errors.New("flag parser is required")
	}
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.CatalogDir, "catalog-dir", cfg.CatalogDir, "directory of catalog files (embedded catalogs when empty)")
	fs.StringVar(&cfg.Catalog, "catalog", cfg.Catalog, "catalog name")
	fs.BoolVar(&cfg.WatchCatalog, "watch-catalog", cfg.WatchCatalog, "reload catalogs when files in -catalog-dir change")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (text, json)")
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "directory for exported documents")

	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the flag and env parsers cannot.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Catalog) == "" {
		return errors.New("config: catalog name is required")
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.LogFormat {
	case logger.FormatText, logger.FormatJSON:
	default:
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}
	if c.WatchCatalog && strings.TrimSpace(c.CatalogDir) == "" {
		return errors.New("config: -watch-catalog needs -catalog-dir")
	}
	return nil
}

// Logger converts the log settings into a logger config writing to out.
func (c Config) Logger(out io.Writer) logger.Config {
	level, _ := logger.ParseLevel(c.LogLevel)
	cfg := logger.DefaultConfig()
	cfg.Level = level
	cfg.Format = c.LogFormat
	if out != nil {
		cfg.Output = out
	}
	return cfg
}

// UsesEmbeddedCatalogs reports whether catalogs come from the binary.
func (c Config) UsesEmbeddedCatalogs() bool {
	return strings.TrimSpace(c.CatalogDir) == ""
}

// CatalogName returns the configured catalog name, defaulting to the
// bundled one.
func (c Config) CatalogName() string {
	if name := strings.TrimSpace(c.Catalog); name != "" {
		return name
	}
	return catalog.DefaultName
}
