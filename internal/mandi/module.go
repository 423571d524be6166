// Package mandi provides the market price bounded context module.
// Prices are scraped from the public Agmarknet search page.
package mandi

import (
	"kisan_backend/internal/directory/repository"
	apphttp "kisan_backend/internal/http"
	"kisan_backend/internal/mandi/handler"
	"kisan_backend/internal/mandi/service"
	"kisan_backend/platform/logger"
	"kisan_backend/platform/validator"
)

// Module is the mandi bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the mandi module.
func NewModule(users repository.UserReader, ids service.IdentifierSource, prices service.PriceScraper, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(users, ids, prices, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "mandi"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts price routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Root.GET("/user-crop-prices/:userId", m.handler.UserCropPrices)
	ctx.Root.GET("/mandi-prices", m.handler.MandiPrices)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
