package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

type Server struct {
	Port              string `json:"port"`
	RequestTimeoutSec int    `json:"request_timeout_sec"`
	// MaxConcurrentRequests bounds in-flight requests; pool size is a
	// deployment parameter, not service logic.
	MaxConcurrentRequests int `json:"max_concurrent_requests"`
}

type Yahoo struct {
	BaseURL    string `json:"base_url"`
	UserAgent  string `json:"user_agent"`
	TimeoutSec int    `json:"timeout_sec"`
}

type Logging struct {
	Level string `json:"level"`
}

type Config struct {
	Server  Server  `json:"server"`
	Yahoo   Yahoo   `json:"yahoo"`
	Logging Logging `json:"logging"`
}

func Default() Config {
	return Config{
		Server: Server{
			Port:                  "8080",
			RequestTimeoutSec:     30,
			MaxConcurrentRequests: 64,
		},
		Yahoo: Yahoo{
			BaseURL:    "https://query2.finance.yahoo.com",
			UserAgent:  "tickerprovider/1.0",
			TimeoutSec: 15,
		},
		Logging: Logging{Level: "info"},
	}
}

// Load reads JSON config from path. If path is empty or file does not exist,
// it returns defaults. Environment variables override select fields.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Server.RequestTimeoutSec = x
		}
	}
	if v := os.Getenv("MAX_CONCURRENT_REQUESTS"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Server.MaxConcurrentRequests = x
		}
	}
	if v := os.Getenv("YAHOO_BASE_URL"); v != "" {
		cfg.Yahoo.BaseURL = v
	}
	if v := os.Getenv("YAHOO_USER_AGENT"); v != "" {
		cfg.Yahoo.UserAgent = v
	}
	if v := os.Getenv("YAHOO_TIMEOUT_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Yahoo.TimeoutSec = x
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
