package handler

import (
	"net/http"

	"gascert_backend/internal/certificates/service"
	"gascert_backend/internal/certificates/transport"
	"gascert_backend/platform/httpkit"
	"gascert_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for certificate generation.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a certificates handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the certificate routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate", h.Generate)
	rg.GET("/:jobId/download", h.Download)
}

// Generate renders a certificate PDF, as a preview or a final issuance.
func (h *Handler) Generate(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req transport.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.Generate(c.Request.Context(), id.UserID(), req.JobID, req.PreviewOnly)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.GenerateResponse{
		JobID:   result.JobID,
		PDFURL:  result.PDFURL,
		Preview: result.Preview,
	})
}

// Download returns a short-lived URL for a job's issued certificate.
func (h *Handler) Download(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	jobID, err := uuid.Parse(c.Param("jobId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid job id")
		return
	}

	url, err := h.svc.Download(c.Request.Context(), id.UserID(), jobID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.DownloadResponse{JobID: jobID, PDFURL: url})
}
