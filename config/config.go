package config

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the settings read from the environment
type Config struct {
	Port            string
	StorageDriver   string
	SQLitePath      string
	SessionKey      []byte
	CookieSecure    bool
	BaseURL         string
	CredentialsPath string // Google service account JSON; Drive sync is disabled when empty
	VariantFolderID string
	DealTTL         time.Duration
	UploadDir       string
}

// LoadConfig reads the environment, falling back to development defaults
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:            strings.TrimPrefix(getEnv("PORT", "8080"), ":"),
		StorageDriver:   strings.ToLower(getEnv("STORAGE_DRIVER", DriverMemory)),
		SQLitePath:      getEnv("SQLITE_PATH", "./luxemarket.db"),
		CookieSecure:    getEnv("COOKIE_SECURE", "false") == "true",
		CredentialsPath: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		VariantFolderID: os.Getenv("VARIANT_FOLDER_ID"),
		UploadDir:       getEnv("UPLOAD_DIR", "static/uploads"),
		DealTTL:         24 * time.Hour,
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		log.Printf("⚠️  Invalid PORT %q, falling back to 8080", cfg.Port)
		cfg.Port = "8080"
	}
	cfg.BaseURL = strings.TrimRight(getEnv("BASE_URL", "http://localhost:"+cfg.Port), "/")

	switch cfg.StorageDriver {
	case DriverMemory, DriverSQLite, DriverPostgres:
	default:
		log.Printf("⚠️  Unknown STORAGE_DRIVER %q, using %s", cfg.StorageDriver, DriverMemory)
		cfg.StorageDriver = DriverMemory
	}

	if raw := os.Getenv("DEAL_TTL_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			log.Printf("⚠️  Invalid DEAL_TTL_HOURS %q, keeping 24", raw)
		} else {
			cfg.DealTTL = time.Duration(hours) * time.Hour
		}
	}

	sessionKey := os.Getenv("SESSION_KEY")
	decoded, err := base64.StdEncoding.DecodeString(sessionKey)
	switch {
	case sessionKey == "":
		log.Printf("⚠️  SESSION_KEY not set, generating a random key. Sessions will not survive a restart")
		cfg.SessionKey = randomKey(32)
	case err != nil || len(decoded) < 32:
		log.Printf("⚠️  SESSION_KEY must be base64 of at least 32 bytes, generating a random key")
		cfg.SessionKey = randomKey(32)
	default:
		cfg.SessionKey = decoded
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func randomKey(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("❌ Failed to generate session key: %v", err)
	}
	return b
}
