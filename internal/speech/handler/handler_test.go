package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kisan_backend/internal/speech/service"
	"kisan_backend/platform/logger"
	"kisan_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSynth struct {
	err error
}

func (s stubSynth) Configure(context.Context) error { return nil }

func (s stubSynth) Synthesize(context.Context, string) ([]byte, error) {
	return []byte("audio"), s.err
}

func serve(t *testing.T, synth stubSynth, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/tts", New(service.New(synth, 0, logger.Discard()), validator.New()).Synthesize)

	req := httptest.NewRequest(http.MethodPost, "/tts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return rec, decoded
}

func TestSynthesizeReturnsAudio(t *testing.T) {
	rec, body := serve(t, stubSynth{}, `{"text":"Namaste"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "YXVkaW8=", body["audio_base64"])
	assert.Len(t, body["progress"], 4)
}

func TestSynthesizeRejectsMissingText(t *testing.T) {
	for _, payload := range []string{`{}`, `{"text":""}`, `{"text":"   "}`} {
		rec, body := serve(t, stubSynth{}, payload)

		assert.Equal(t, http.StatusBadRequest, rec.Code, payload)
		assert.Equal(t, "Invalid TTS input", body["error"], payload)
		assert.Equal(t, "Text not provided", body["details"], payload)
		assert.Equal(t, []interface{}{}, body["progress"], payload)
	}
}

func TestSynthesizeRejectsMalformedJSON(t *testing.T) {
	rec, body := serve(t, stubSynth{}, `{"text":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid TTS input", body["error"])
}

func TestSynthesizeUpstreamFailure(t *testing.T) {
	rec, body := serve(t, stubSynth{err: errors.New("deadline exceeded")}, `{"text":"hi"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "TTS synthesis failed", body["error"])
	assert.Len(t, body["progress"], 2)
}
