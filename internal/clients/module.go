// Package clients provides the customer registry domain module.
package clients

import (
	"gascert_backend/internal/clients/handler"
	"gascert_backend/internal/clients/repository"
	"gascert_backend/internal/clients/service"
	apphttp "gascert_backend/internal/http"
	"gascert_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the clients domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a clients module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "clients"
}

// Service returns the service layer for cross-module use (the job
// context resolver goes through the registry for linked clients).
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/clients"))
}

var _ apphttp.Module = (*Module)(nil)
