package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"kisan_backend/internal/diagnosis/service"
	"kisan_backend/platform/httpkit"
	"kisan_backend/platform/progress"
	"kisan_backend/platform/sanitize"

	"github.com/gin-gonic/gin"
)

const (
	imageField       = "image"
	descriptionField = "description"

	msgNoImage     = "No image received"
	msgEmptyImage  = "Empty image file"
	msgReadFailed  = "Failed to read image or description"
	detailsNoImage = "Form must include 'image' file."
)

// Handler handles HTTP requests for crop diagnosis.
type Handler struct {
	svc *service.Service
}

// New creates a new diagnosis handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Diagnose accepts a multipart crop photo with an optional description.
// POST /diagnose
func (h *Handler) Diagnose(c *gin.Context) {
	trace := progress.New()

	input, status, msg, details := readInput(c)
	if status != 0 {
		c.JSON(status, httpkit.ErrorResponse{Error: msg, Details: details, Progress: trace.Events()})
		return
	}
	trace.Mark("Image and description received.")

	resp, err := h.svc.Diagnose(c.Request.Context(), input, trace)
	if httpkit.HandleErrorWithProgress(c, err, trace.Events()) {
		return
	}

	trace.Mark("Diagnosis sent to frontend.")
	resp.Progress = trace.Events()
	httpkit.OK(c, resp)
}

func readInput(c *gin.Context) (service.Input, int, string, interface{}) {
	header, err := c.FormFile(imageField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			if _, present := c.GetPostForm(imageField); present {
				return service.Input{}, http.StatusBadRequest, msgEmptyImage, nil
			}
			return service.Input{}, http.StatusBadRequest, msgNoImage, detailsNoImage
		}
		return service.Input{}, http.StatusBadRequest, msgReadFailed, err.Error()
	}
	if header.Filename == "" {
		return service.Input{}, http.StatusBadRequest, msgEmptyImage, nil
	}

	file, err := header.Open()
	if err != nil {
		return service.Input{}, http.StatusBadRequest, msgReadFailed, err.Error()
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return service.Input{}, http.StatusBadRequest, msgReadFailed, err.Error()
	}
	if len(data) == 0 {
		return service.Input{}, http.StatusBadRequest, msgEmptyImage, nil
	}

	return service.Input{
		Image:       data,
		MIMEType:    imageMIMEType(header.Header.Get("Content-Type")),
		Description: sanitize.Text(c.PostForm(descriptionField)),
	}, 0, "", nil
}

// imageMIMEType keeps a declared image/* type and otherwise returns "" so the
// service default applies.
func imageMIMEType(declared string) string {
	declared = strings.ToLower(strings.TrimSpace(declared))
	if strings.HasPrefix(declared, "image/") {
		return declared
	}
	return ""
}
