package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.GetHTTPAddr())
	assert.True(t, cfg.GetCORSAllowAll())
	assert.Equal(t, "kisan", cfg.GetMongoDatabase())
	assert.Equal(t, "doctors", cfg.GetDoctorsCollection())
	assert.Equal(t, "users", cfg.GetUsersCollection())
	assert.Equal(t, "crops", cfg.GetCropsCollection())
	assert.False(t, cfg.IsDirectoryStrict())
	assert.Equal(t, "gemini-1.5-flash", cfg.GetGeminiModel())
	assert.Equal(t, 60*time.Second, cfg.GetGeminiTimeout())
	assert.Equal(t, "en-US-Wavenet-D", cfg.GetTTSVoiceName())
	assert.Equal(t, "MP3", cfg.GetTTSAudioEncoding())
	assert.Equal(t, "https://agmarknet.gov.in/SearchCmmMkt.aspx", cfg.GetMandiBaseURL())
	assert.Equal(t, 15*time.Second, cfg.GetMandiFetchTimeout())
	assert.Equal(t, 15, cfg.GetMandiLookbackDays())
	assert.Equal(t, time.Hour, cfg.GetIdentifierCacheTTL())
	assert.Empty(t, cfg.GetRedisURL())
}

func TestFromEnvRequiresMongoURI(t *testing.T) {
	t.Setenv("MONGO_URI", "")

	_, err := FromEnv()
	assert.EqualError(t, err, "MONGO_URI is required")
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("DIRECTORY_STRICT", "TRUE")
	t.Setenv("IDENTIFIER_CACHE_TTL", "0")
	t.Setenv("TTS_AUDIO_ENCODING", "ogg_opus")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.False(t, cfg.GetCORSAllowAll())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.GetCORSOrigins())
	assert.True(t, cfg.IsDirectoryStrict())
	assert.Zero(t, cfg.GetIdentifierCacheTTL())
	assert.Equal(t, "OGG_OPUS", cfg.GetTTSAudioEncoding())
}

func TestValidateDiagnosisRequiresKey(t *testing.T) {
	cfg := &Config{GeminiTimeout: time.Second}
	assert.EqualError(t, cfg.ValidateDiagnosis(), "GEMINI_API_KEY is required")

	cfg.GeminiAPIKey = "k"
	assert.NoError(t, cfg.ValidateDiagnosis())
}
