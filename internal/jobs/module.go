// Package jobs provides the certificate job domain module: the job
// lifecycle, the wizard field store, CP12 appliances, and photo and
// signature attachments.
package jobs

import (
	apphttp "gascert_backend/internal/http"
	"gascert_backend/internal/jobs/handler"
	"gascert_backend/internal/jobs/repository"
	"gascert_backend/internal/jobs/service"
	"gascert_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the jobs domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a jobs module with all dependencies wired. Cross
// module collaborators (client resolver, event bus, object store,
// reminder scheduler) are injected afterwards via the service setters.
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "jobs"
}

// Service returns the service layer for cross-module wiring.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/jobs"))
}

var _ apphttp.Module = (*Module)(nil)
