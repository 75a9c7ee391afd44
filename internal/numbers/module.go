// Package numbers provides the HTTP surface over the phone number facade:
// parsing, validation, formatting and comparison.
package numbers

import (
	apphttp "phonenumber_backend/internal/http"
	"phonenumber_backend/internal/numbers/handler"
	"phonenumber_backend/internal/numbers/service"
	"phonenumber_backend/platform/config"
	"phonenumber_backend/platform/logger"
	"phonenumber_backend/platform/validator"
)

// Module is the numbers module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the numbers module.
func NewModule(cfg config.PhoneConfig, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(cfg, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "numbers"
}

// Service returns the service layer for other modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the numbers routes under /api/v1/numbers.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/numbers")
	group.POST("/parse", m.handler.Parse)
	group.POST("/validate", m.handler.Validate)
	group.POST("/format", m.handler.Format)
	group.POST("/compare", m.handler.Compare)
	group.GET("/formats", m.handler.Formats)
	group.GET("/regions", m.handler.Regions)
}

var _ apphttp.Module = (*Module)(nil)
