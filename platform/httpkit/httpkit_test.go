package httpkit

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"kisan_backend/platform/apperr"
	"kisan_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleErrorMapsKinds(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	handled := HandleError(c, apperr.NotFound("User not found"))

	require.True(t, handled)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "User not found", body["error"])
	assert.NotContains(t, body, "progress")
}

func TestHandleErrorAttachesRawAndProgress(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	err := apperr.UpstreamShape("Failed to parse Gemini response", errors.New("'candidates' not found"), `{"promptFeedback":{}}`)
	HandleErrorWithProgress(c, err, []string{})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "'candidates' not found", body["details"])
	assert.Equal(t, `{"promptFeedback":{}}`, body["raw_response"])
	assert.Equal(t, []interface{}{}, body["progress"])
}

func TestHandleErrorUntypedIsInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	HandleError(c, errors.New("socket closed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", decode(t, rec)["error"])
}

func TestHandleErrorNil(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	assert.False(t, HandleError(c, nil))
}

func TestRequestIDReusesHeader(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID(), RequestLogger(logger.Discard()))
	engine.GET("/ping", func(c *gin.Context) {
		id, _ := c.Get(ContextRequestIDKey)
		c.String(http.StatusOK, id.(string))
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Body.String())
	assert.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Len(t, rec.Body.String(), 36)
}
