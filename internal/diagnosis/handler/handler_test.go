package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"kisan_backend/internal/diagnosis/client"
	"kisan_backend/internal/diagnosis/service"
	"kisan_backend/internal/directory/repository"
	"kisan_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDoctors struct{}

func (stubDoctors) ListDoctors(context.Context) ([]repository.Doctor, error) {
	return []repository.Doctor{{Name: "Jane Doe", Specialty: "Fungal", Mobile: "9876543210"}}, nil
}

type stubGenerator struct {
	req client.GenerateRequest
	err error
}

func (s *stubGenerator) Generate(_ context.Context, req client.GenerateRequest) (client.GenerateResult, error) {
	s.req = req
	if s.err != nil {
		return client.GenerateResult{}, s.err
	}
	return client.GenerateResult{Text: "Early blight. Contact **Dr. Jane Doe** Mobile: 9876543210"}, nil
}

func newEngine(gen *stubGenerator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.New(stubDoctors{}, gen, nil, service.Options{}, logger.Discard())
	engine := gin.New()
	engine.POST("/diagnose", New(svc).Diagnose)
	return engine
}

type part struct {
	field       string
	filename    string
	contentType string
	body        string
}

func multipartRequest(t *testing.T, parts ...part) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		disposition := `form-data; name="` + p.field + `"`
		if p.filename != "" {
			disposition += `; filename="` + p.filename + `"`
		}
		h.Set("Content-Disposition", disposition)
		if p.contentType != "" {
			h.Set("Content-Type", p.contentType)
		}
		pw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = pw.Write([]byte(p.body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/diagnose", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestDiagnoseSuccess(t *testing.T) {
	gen := &stubGenerator{}
	engine := newEngine(gen)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, multipartRequest(t,
		part{field: "image", filename: "leaf.png", contentType: "image/png", body: "png-bytes"},
		part{field: "description", body: "Yellow patches"},
	))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Jane Doe", body["doctorName"])
	assert.Equal(t, "9876543210", body["doctorMobile"])
	assert.Equal(t, "+919876543210", body["doctorMobileE164"])
	assert.Len(t, body["progress"], 5)
	assert.Equal(t, "image/png", gen.req.MIMEType)
	assert.Equal(t, []byte("png-bytes"), gen.req.Image)
	assert.Contains(t, gen.req.Prompt, "Yellow patches")
}

func TestDiagnoseDefaultsMIMEType(t *testing.T) {
	gen := &stubGenerator{}
	engine := newEngine(gen)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, multipartRequest(t,
		part{field: "image", filename: "leaf.bin", contentType: "application/octet-stream", body: "raw"},
	))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", gen.req.MIMEType)
}

func TestDiagnoseMissingImage(t *testing.T) {
	engine := newEngine(&stubGenerator{})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, multipartRequest(t, part{field: "description", body: "no photo"}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "No image received", body["error"])
	assert.Equal(t, "Form must include 'image' file.", body["details"])
	assert.Equal(t, []interface{}{}, body["progress"])
}

func TestDiagnoseNotMultipart(t *testing.T) {
	engine := newEngine(&stubGenerator{})

	req := httptest.NewRequest(http.MethodPost, "/diagnose", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No image received", decode(t, rec)["error"])
}

func TestDiagnoseEmptyFilename(t *testing.T) {
	engine := newEngine(&stubGenerator{})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, multipartRequest(t, part{field: "image", body: ""}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Empty image file", decode(t, rec)["error"])
}

func TestDiagnoseUpstreamFailureKeepsProgress(t *testing.T) {
	engine := newEngine(&stubGenerator{err: &client.ShapeError{Reason: "'candidates' not found in response", Raw: "{}"}})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, multipartRequest(t,
		part{field: "image", filename: "leaf.jpg", contentType: "image/jpeg", body: "jpg"},
	))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Failed to parse Gemini response", body["error"])
	assert.Equal(t, "{}", body["raw_response"])
	assert.Len(t, body["progress"], 3)
}
