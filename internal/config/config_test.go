package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "8080" || cfg.Server.MaxConcurrentRequests != 64 {
		t.Fatalf("server defaults wrong: %+v", cfg.Server)
	}
	if cfg.Yahoo.BaseURL != "https://query2.finance.yahoo.com" || cfg.Yahoo.TimeoutSec != 15 {
		t.Fatalf("yahoo defaults wrong: %+v", cfg.Yahoo)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("logging default wrong: %+v", cfg.Logging)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"server":{"port":"9090"},"yahoo":{"base_url":"http://localhost:1234"},"logging":{"level":"debug"}}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("port not overridden: %q", cfg.Server.Port)
	}
	if cfg.Yahoo.BaseURL != "http://localhost:1234" {
		t.Fatalf("base url not overridden: %q", cfg.Yahoo.BaseURL)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level not overridden: %q", cfg.Logging.Level)
	}
	// Fields the file does not mention keep their defaults... except those
	// inside a mentioned section, which decode to zero values.
	if cfg.Yahoo.UserAgent != "" {
		t.Fatalf("partial section should zero unmention fields, got %q", cfg.Yahoo.UserAgent)
	}
}

func TestLoad_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{nope"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("want parse error")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("YAHOO_BASE_URL", "http://stub:9999")
	t.Setenv("YAHOO_TIMEOUT_SEC", "3")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Fatalf("PORT not applied: %q", cfg.Server.Port)
	}
	if cfg.Yahoo.BaseURL != "http://stub:9999" || cfg.Yahoo.TimeoutSec != 3 {
		t.Fatalf("yahoo env not applied: %+v", cfg.Yahoo)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("LOG_LEVEL not applied: %q", cfg.Logging.Level)
	}
}

func TestLoad_EnvIgnoresNonPositiveNumbers(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT_SEC", "-5")
	t.Setenv("MAX_CONCURRENT_REQUESTS", "abc")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.RequestTimeoutSec != 30 || cfg.Server.MaxConcurrentRequests != 64 {
		t.Fatalf("invalid env values must keep defaults: %+v", cfg.Server)
	}
}
