// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
}

// MongoConfig provides document store connection settings.
type MongoConfig interface {
	GetMongoURI() string
	GetMongoDatabase() string
	GetDoctorsCollection() string
	GetUsersCollection() string
	GetCropsCollection() string
}

// DirectoryConfig provides the doctor directory failure policy.
type DirectoryConfig interface {
	IsDirectoryStrict() bool
}

// GeminiConfig provides settings for the generative diagnosis client.
type GeminiConfig interface {
	GetGeminiAPIKey() string
	GetGeminiModel() string
	GetGeminiBaseURL() string
	GetGeminiTimeout() time.Duration
}

// SpeechConfig provides settings for the text-to-speech client.
type SpeechConfig interface {
	GetTTSCredentialsFile() string
	GetTTSLanguageCode() string
	GetTTSVoiceName() string
	GetTTSAudioEncoding() string
	GetTTSTimeout() time.Duration
}

// MandiConfig provides settings for the market price scraper.
type MandiConfig interface {
	GetMandiBaseURL() string
	GetMandiUserAgent() string
	GetMandiFetchTimeout() time.Duration
	GetMandiLookbackDays() int
	GetMandiLayoutFile() string
}

// CacheConfig provides settings for the identifier cache.
type CacheConfig interface {
	GetIdentifierCacheTTL() time.Duration
	GetRedisURL() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env               string
	HTTPAddr          string
	CORSAllowAll      bool
	CORSOrigins       []string
	MongoURI          string
	MongoDatabase     string
	DoctorsCollection string
	UsersCollection   string
	CropsCollection   string
	DirectoryStrict   bool
	GeminiAPIKey      string
	GeminiModel       string
	GeminiBaseURL     string
	GeminiTimeout     time.Duration
	TTSCredentials    string
	TTSLanguageCode   string
	TTSVoiceName      string
	TTSAudioEncoding  string
	TTSTimeout        time.Duration
	MandiBaseURL      string
	MandiUserAgent    string
	MandiFetchTimeout time.Duration
	MandiLookbackDays int
	MandiLayoutFile   string
	IdentifierTTL     time.Duration
	RedisURL          string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

// MongoConfig implementation
func (c *Config) GetMongoURI() string          { return c.MongoURI }
func (c *Config) GetMongoDatabase() string     { return c.MongoDatabase }
func (c *Config) GetDoctorsCollection() string { return c.DoctorsCollection }
func (c *Config) GetUsersCollection() string   { return c.UsersCollection }
func (c *Config) GetCropsCollection() string   { return c.CropsCollection }

// DirectoryConfig implementation
func (c *Config) IsDirectoryStrict() bool { return c.DirectoryStrict }

// GeminiConfig implementation
func (c *Config) GetGeminiAPIKey() string          { return c.GeminiAPIKey }
func (c *Config) GetGeminiModel() string           { return c.GeminiModel }
func (c *Config) GetGeminiBaseURL() string         { return c.GeminiBaseURL }
func (c *Config) GetGeminiTimeout() time.Duration { return c.GeminiTimeout }

// SpeechConfig implementation
func (c *Config) GetTTSCredentialsFile() string { return c.TTSCredentials }
func (c *Config) GetTTSLanguageCode() string     { return c.TTSLanguageCode }
func (c *Config) GetTTSVoiceName() string        { return c.TTSVoiceName }
func (c *Config) GetTTSAudioEncoding() string    { return c.TTSAudioEncoding }
func (c *Config) GetTTSTimeout() time.Duration   { return c.TTSTimeout }

// MandiConfig implementation
func (c *Config) GetMandiBaseURL() string              { return c.MandiBaseURL }
func (c *Config) GetMandiUserAgent() string            { return c.MandiUserAgent }
func (c *Config) GetMandiFetchTimeout() time.Duration { return c.MandiFetchTimeout }
func (c *Config) GetMandiLookbackDays() int            { return c.MandiLookbackDays }
func (c *Config) GetMandiLayoutFile() string           { return c.MandiLayoutFile }

// CacheConfig implementation
func (c *Config) GetIdentifierCacheTTL() time.Duration { return c.IdentifierTTL }
func (c *Config) GetRedisURL() string                  { return c.RedisURL }

// Load reads configuration from environment variables, after loading an
// optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads configuration from the process environment only.
func FromEnv() (*Config, error) {
	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "*"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:               getEnv("APP_ENV", "development"),
		HTTPAddr:          getEnv("HTTP_ADDR", ":5000"),
		CORSAllowAll:      corsAllowAll,
		CORSOrigins:       corsOrigins,
		MongoURI:          getEnv("MONGO_URI", ""),
		MongoDatabase:     getEnv("MONGO_DATABASE", "kisan"),
		DoctorsCollection: getEnv("MONGO_DOCTORS_COLLECTION", "doctors"),
		UsersCollection:   getEnv("MONGO_USERS_COLLECTION", "users"),
		CropsCollection:   getEnv("MONGO_CROPS_COLLECTION", "crops"),
		DirectoryStrict:   strings.EqualFold(getEnv("DIRECTORY_STRICT", "false"), "true"),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiBaseURL:     getEnv("GEMINI_BASE_URL", ""),
		GeminiTimeout:     mustDuration(getEnv("GEMINI_TIMEOUT", "60s")),
		TTSCredentials:    getEnv("TTS_CREDENTIALS_FILE", getEnv("GOOGLE_APPLICATION_CREDENTIALS", "")),
		TTSLanguageCode:   getEnv("TTS_LANGUAGE_CODE", "en-US"),
		TTSVoiceName:      getEnv("TTS_VOICE_NAME", "en-US-Wavenet-D"),
		TTSAudioEncoding:  strings.ToUpper(getEnv("TTS_AUDIO_ENCODING", "MP3")),
		TTSTimeout:        mustDuration(getEnv("TTS_TIMEOUT", "30s")),
		MandiBaseURL:      getEnv("MANDI_BASE_URL", "https://agmarknet.gov.in/SearchCmmMkt.aspx"),
		MandiUserAgent:    getEnv("MANDI_USER_AGENT", "Mozilla/5.0"),
		MandiFetchTimeout: mustDuration(getEnv("MANDI_FETCH_TIMEOUT", "15s")),
		MandiLookbackDays: mustInt(getEnv("MANDI_LOOKBACK_DAYS", "15")),
		MandiLayoutFile:   getEnv("MANDI_LAYOUT_FILE", ""),
		IdentifierTTL:     mustDuration(getEnv("IDENTIFIER_CACHE_TTL", "1h")),
		RedisURL:          getEnv("REDIS_URL", ""),
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}
	if cfg.MandiLookbackDays < 0 {
		return nil, fmt.Errorf("MANDI_LOOKBACK_DAYS must not be negative")
	}

	return cfg, nil
}

// ValidateDiagnosis checks the settings only the diagnosis service needs.
func (c *Config) ValidateDiagnosis() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.GeminiTimeout <= 0 {
		return fmt.Errorf("GEMINI_TIMEOUT must be a positive duration")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
