package config

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORAGE_DRIVER", "SQLITE_PATH", "SESSION_KEY", "BASE_URL", "DEAL_TTL_HOURS", "UPLOAD_DIR"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "8080" || cfg.StorageDriver != DriverMemory || cfg.DealTTL != 24*time.Hour {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if len(cfg.SessionKey) != 32 {
		t.Errorf("generated session key has %d bytes", len(cfg.SessionKey))
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	key := strings.Repeat("k", 40)
	t.Setenv("PORT", ":9090")
	t.Setenv("STORAGE_DRIVER", "SQLite")
	t.Setenv("SESSION_KEY", base64.StdEncoding.EncodeToString([]byte(key)))
	t.Setenv("BASE_URL", "https://shop.example.com/")
	t.Setenv("DEAL_TTL_HOURS", "48")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "9090" || cfg.StorageDriver != DriverSQLite {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.BaseURL != "https://shop.example.com" || cfg.DealTTL != 48*time.Hour {
		t.Errorf("BaseURL=%q DealTTL=%s", cfg.BaseURL, cfg.DealTTL)
	}
	if string(cfg.SessionKey) != key {
		t.Error("SESSION_KEY not decoded")
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("PORT", "http")
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("DEAL_TTL_HOURS", "-3")
	t.Setenv("SESSION_KEY", "short")
	t.Setenv("BASE_URL", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "8080" || cfg.StorageDriver != DriverMemory || cfg.DealTTL != 24*time.Hour || len(cfg.SessionKey) != 32 {
		t.Errorf("cfg = %+v", cfg)
	}
}
