package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	Port           string
	APIBaseURL     string
	FileBaseURL    string
	SessionSecret  []byte
	CSRFKey        []byte
	CookieSecure   bool
	RequestTimeout time.Duration
	PageSize       int
	LogLevel       string
	LogFormat      string
	MongoURI       string
	MongoDB        string
}

// Load reads .env (if any) and the process environment into AppEnv.
func Load() error {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	cfg, err := FromEnv()
	if err != nil {
		return err
	}
	AppEnv = cfg
	return nil
}

func FromEnv() (Config, error) {
	cfg := Config{
		Port:           getEnvOrDefault("PORT", "8080"),
		APIBaseURL:     strings.TrimSuffix(getEnvOrDefault("API_BASE_URL", ""), "/"),
		CookieSecure:   getBoolEnv("COOKIE_SECURE", false),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", 15, time.Second),
		PageSize:       getIntEnv("PAGE_SIZE", 10),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:      getEnvOrDefault("LOG_FORMAT", "console"),
		MongoURI:       getEnvOrDefault("MONGO_URI", ""),
		MongoDB:        getEnvOrDefault("MONGO_DB", "lenzoo_admin"),
	}
	if cfg.APIBaseURL == "" {
		return Config{}, fmt.Errorf("API_BASE_URL is required")
	}
	cfg.FileBaseURL = strings.TrimSuffix(getEnvOrDefault("FILE_BASE_URL", cfg.APIBaseURL), "/")

	cfg.SessionSecret = secretOrRandom("SESSION_SECRET", false)
	cfg.CSRFKey = secretOrRandom("CSRF_KEY", true)

	return cfg, nil
}

// AuditEnabled reports whether mutations should be recorded in MongoDB.
func (c Config) AuditEnabled() bool {
	return c.MongoURI != ""
}

// secretOrRandom returns the configured secret or a random 32 byte key.
// base64 keys must decode to at least 32 bytes.
func secretOrRandom(key string, base64Encoded bool) []byte {
	raw := getEnvOrDefault(key, "")
	if raw == "" {
		log.Printf("%s not set, generating a random key; sessions will not survive a restart", key)
		return randomBytes(32)
	}
	if !base64Encoded {
		return []byte(raw)
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(decoded) < 32 {
		log.Printf("%s is invalid or shorter than 32 bytes, generating a random key", key)
		return randomBytes(32)
	}
	return decoded
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return b
}
