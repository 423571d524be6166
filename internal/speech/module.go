// Package speech provides the text-to-speech bounded context module.
package speech

import (
	apphttp "kisan_backend/internal/http"
	"kisan_backend/internal/speech/handler"
	"kisan_backend/internal/speech/service"
	"kisan_backend/platform/config"
	"kisan_backend/platform/logger"
	"kisan_backend/platform/validator"
)

// Module is the speech bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the speech module around a synthesizer.
func NewModule(synth service.Synthesizer, cfg config.SpeechConfig, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(synth, cfg.GetTTSTimeout(), log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "speech"
}

// RegisterRoutes mounts speech routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Root.POST("/tts", m.handler.Synthesize)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
