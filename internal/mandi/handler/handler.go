package handler

import (
	"net/http"
	"strings"

	"kisan_backend/internal/mandi/service"
	"kisan_backend/internal/mandi/transport"
	"kisan_backend/platform/httpkit"
	"kisan_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgMissingParams = "Missing required parameters"
	msgMissingUserID = "Missing user id"
)

// Handler handles HTTP requests for market prices.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new prices handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// UserCropPrices summarizes prices for every crop of a user.
// GET /user-crop-prices/:userId
func (h *Handler) UserCropPrices(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("userId"))
	if userID == "" {
		httpkit.Error(c, http.StatusBadRequest, msgMissingUserID, nil)
		return
	}

	result, err := h.svc.UserCropPrices(c.Request.Context(), userID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// MandiPrices returns the price table for one crop, state and date range.
// GET /mandi-prices?crop=&state=&from_date=&to_date=
func (h *Handler) MandiPrices(c *gin.Context) {
	var req transport.MandiPricesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgMissingParams, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgMissingParams, nil)
		return
	}

	result, err := h.svc.MandiPrices(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
