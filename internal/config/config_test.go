package config

import (
	"flag"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Config{
		HTTPAddr:  "localhost:8080",
		Catalog:   "en",
		LogLevel:  "info",
		LogFormat: "text",
		OutputDir: ".",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if !cfg.UsesEmbeddedCatalogs() {
		t.Fatalf("expected embedded catalogs by default")
	}
}

func TestLoadEnvThenFlags(t *testing.T) {
	t.Setenv("LESSONPLAN_HTTP_ADDR", "env:9000")
	t.Setenv("LESSONPLAN_CATALOG", "ko")
	t.Setenv("LESSONPLAN_CATALOG_DIR", "/etc/lessonplan")
	t.Setenv("LESSONPLAN_WATCH_CATALOG", "true")
	t.Setenv("LESSONPLAN_LOG_FORMAT", "json")

	cfg, err := Load(newFlagSet(), []string{"-http-addr", "flag:9001", "-log-level", "debug"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != "flag:9001" {
		t.Fatalf("flag should win, got %q", cfg.HTTPAddr)
	}
	if cfg.CatalogName() != "ko" || !cfg.WatchCatalog || cfg.CatalogDir != "/etc/lessonplan" {
		t.Fatalf("env values not applied: %+v", cfg)
	}

	logCfg := cfg.Logger(io.Discard)
	if logCfg.Level != slog.LevelDebug || logCfg.Format != "json" {
		t.Fatalf("unexpected logger config %+v", logCfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string][]string{
		"log format":      {"-log-format", "xml"},
		"log level":       {"-log-level", "loud"},
		"watch needs dir": {"-watch-catalog"},
		"empty catalog":   {"-catalog", " "},
	}
	for name, args := range cases {
		if _, err := Load(newFlagSet(), args); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadEnvError(t *testing.T) {
	t.Setenv("LESSONPLAN_WATCH_CATALOG", "not-a-bool")
	_, err := Load(newFlagSet(), nil)
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env error, got %v", err)
	}
}

func TestLoadRequiresFlagSet(t *testing.T) {
	if _, err := Load(nil, nil); err == nil {
		t.Fatalf("expected error for nil flag set")
	}
}
