// Package certificates provides certificate generation: issuance
// validation, PDF rendering, storage upload, and the completed-status
// transition.
package certificates

import (
	"gascert_backend/internal/certificates/handler"
	"gascert_backend/internal/certificates/repository"
	"gascert_backend/internal/certificates/service"
	apphttp "gascert_backend/internal/http"
	"gascert_backend/platform/logger"
	"gascert_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the certificates domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a certificates module. The job gateway, renderer,
// and object store are adapters owned by the composition root.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, jobs service.JobGateway, renderer service.Renderer, store service.ObjectStore, bucket string, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, jobs, renderer, store, bucket, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "certificates"
}

// Service returns the service layer for cross-module wiring.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/certificates"))
}

var _ apphttp.Module = (*Module)(nil)
