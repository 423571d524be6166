package handler

import (
	"net/http"

	"kisan_backend/internal/speech/service"
	"kisan_backend/internal/speech/transport"
	"kisan_backend/platform/httpkit"
	"kisan_backend/platform/progress"
	"kisan_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidInput = "Invalid TTS input"
	detailsNoText   = "Text not provided"
)

// Handler handles HTTP requests for speech synthesis.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new speech handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Synthesize converts the posted text to base64 audio.
// POST /tts
func (h *Handler) Synthesize(c *gin.Context) {
	trace := progress.New()

	var req transport.TTSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpkit.ErrorResponse{Error: msgInvalidInput, Details: err.Error(), Progress: trace.Events()})
		return
	}
	if err := h.val.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, httpkit.ErrorResponse{Error: msgInvalidInput, Details: detailsNoText, Progress: trace.Events()})
		return
	}
	trace.Mark("Text received for TTS.")

	audio, err := h.svc.Synthesize(c.Request.Context(), req.Text, trace)
	if httpkit.HandleErrorWithProgress(c, err, trace.Events()) {
		return
	}

	trace.Mark("Audio sent to frontend.")
	httpkit.OK(c, transport.TTSResponse{AudioBase64: audio, Progress: trace.Events()})
}
