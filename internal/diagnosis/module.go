// Package diagnosis provides the crop diagnosis bounded context module.
// It cross-references a crop photo with the doctor directory through a
// generative model.
package diagnosis

import (
	"kisan_backend/internal/diagnosis/handler"
	"kisan_backend/internal/diagnosis/service"
	"kisan_backend/internal/directory/repository"
	apphttp "kisan_backend/internal/http"
	"kisan_backend/platform/config"
	"kisan_backend/platform/logger"
)

// Module is the diagnosis bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// Config is the configuration the diagnosis module reads.
type Config interface {
	config.DirectoryConfig
	config.GeminiConfig
}

// NewModule creates the diagnosis module around a doctor reader and a generator.
func NewModule(doctors repository.DoctorReader, generator service.Generator, cfg Config, log *logger.Logger) *Module {
	svc := service.New(doctors, generator, service.PatternExtractor{}, service.Options{
		Strict:  cfg.IsDirectoryStrict(),
		Timeout: cfg.GetGeminiTimeout(),
	}, log)

	return &Module{
		handler: handler.New(svc),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "diagnosis"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts diagnosis routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Root.POST("/diagnose", m.handler.Diagnose)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
