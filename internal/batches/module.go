// Package batches accepts lists of phone numbers over HTTP, stores them in
// redis and hands them to the scheduler worker for normalization.
package batches

import (
	"phonenumber_backend/internal/batches/handler"
	"phonenumber_backend/internal/batches/repository"
	"phonenumber_backend/internal/batches/service"
	"phonenumber_backend/internal/events"
	apphttp "phonenumber_backend/internal/http"
	"phonenumber_backend/platform/config"
	"phonenumber_backend/platform/logger"
	"phonenumber_backend/platform/validator"

	"github.com/redis/go-redis/v9"
)

// Module is the batches module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repository
}

// NewModule creates the batches module backed by client.
func NewModule(client redis.UniversalClient, enqueuer service.Enqueuer, bus events.Bus, cfg config.BatchConfig, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(client, cfg.GetBatchResultTTL())
	svc := service.New(repo, enqueuer, bus, cfg, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
		repo:    repo,
	}
}

// NewDisabledModule mounts the batch routes without a backing store; every
// route answers 503 batches_unavailable.
func NewDisabledModule(val *validator.Validator) *Module {
	return &Module{handler: handler.New(nil, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "batches"
}

// Service returns the service layer, nil when the module is disabled.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the batch store, nil when the module is disabled.
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// RegisterRoutes mounts the batch routes on the protected group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/batches")
	group.POST("", m.handler.Submit)
	group.GET("", m.handler.List)
	group.GET("/:id", m.handler.Get)
}

var _ apphttp.Module = (*Module)(nil)
