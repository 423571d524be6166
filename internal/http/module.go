package http

import (
	"github.com/gin-gonic/gin"
)

// Module is an HTTP-facing bounded context. The router calls RegisterRoutes
// once per module at startup and knows nothing about individual endpoints.
type Module interface {
	// Name identifies the module in startup logs.
	Name() string
	// RegisterRoutes mounts the module's endpoints.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext is what a module receives when mounting routes.
type RouterContext struct {
	// Engine gives access to engine-level settings.
	Engine *gin.Engine
	// Root is the unauthenticated group every endpoint is mounted on.
	Root *gin.RouterGroup
}
