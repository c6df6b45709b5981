package handler

import (
	"net/http"

	"gascert_backend/internal/clients/service"
	"gascert_backend/internal/clients/transport"
	"gascert_backend/platform/httpkit"
	"gascert_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const msgInvalidRequest = "invalid request"

// Handler handles HTTP requests for clients.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a clients handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the client routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.GetByID)
}

// List returns the caller's clients as merged views.
func (h *Handler) List(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	merged, err := h.svc.List(c.Request.Context(), id.UserID())
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.ClientResponse, 0, len(merged))
	for _, m := range merged {
		out = append(out, toResponse(m))
	}
	httpkit.OK(c, gin.H{"clients": out})
}

// Create creates a client or merges into an existing one with the same
// identity key.
func (h *Handler) Create(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req transport.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	clientID, created, err := h.svc.CreateOrMerge(c.Request.Context(), id.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.CreateClientResponse{ID: clientID, Created: created}
	if created {
		httpkit.Created(c, resp)
		return
	}
	httpkit.OK(c, resp)
}

// GetByID returns the merged view containing the given row id.
func (h *Handler) GetByID(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	merged, err := h.svc.Get(c.Request.Context(), id.UserID(), clientID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toResponse(*merged))
}

func toResponse(m service.MergedClient) transport.ClientResponse {
	return transport.ClientResponse{
		ID:              m.ID,
		ClientIDs:       m.ClientIDs,
		Name:            m.Name,
		Organization:    m.Organization,
		Email:           m.Email,
		Phone:           m.Phone,
		Address:         m.Address,
		Postcode:        m.Postcode,
		LandlordName:    m.LandlordName,
		LandlordAddress: m.LandlordAddress,
		UpdatedAt:       m.UpdatedAt,
	}
}
