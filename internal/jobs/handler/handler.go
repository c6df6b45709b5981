package handler

import (
	"context"
	"net/http"

	"gascert_backend/internal/jobs/service"
	"gascert_backend/internal/jobs/transport"
	"gascert_backend/platform/httpkit"
	"gascert_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const msgInvalidRequest = "invalid request"

// Handler handles HTTP requests for jobs and the certificate wizard.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a jobs handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the job routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id/status", h.UpdateStatus)
	rg.DELETE("/:id", h.Delete)

	rg.PUT("/:id/fields", h.SaveFields)
	rg.GET("/:id/wizard-state", h.WizardState)
	rg.PUT("/:id/appliances", h.SaveAppliances)

	rg.POST("/:id/photos/presign", h.PresignPhoto)
	rg.POST("/:id/photos", h.RecordPhoto)
	rg.POST("/:id/signatures/presign", h.PresignSignature)
	rg.POST("/:id/signatures", h.RecordSignature)
}

func (h *Handler) jobID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid job id")
		return uuid.Nil, false
	}
	return id, true
}

// List returns the caller's jobs.
func (h *Handler) List(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	jobs, err := h.svc.List(c.Request.Context(), id.UserID())
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.JobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, service.ToJobResponse(&jobs[i]))
	}
	httpkit.OK(c, gin.H{"jobs": out})
}

// Create starts a new certificate job.
func (h *Handler) Create(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req transport.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	job, err := h.svc.Create(c.Request.Context(), id.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, service.ToJobResponse(job))
}

// GetByID returns one job.
func (h *Handler) GetByID(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}
	jobID, ok := h.jobID(c)
	if !ok {
		return
	}

	job, err := h.svc.Get(c.Request.Context(), id.UserID(), jobID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, service.ToJobResponse(job))
}

// UpdateStatus moves a job between lifecycle states.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}
	jobID, ok := h.jobID(c)
	if !ok {
		return
	}

	var req transport.UpdateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.UpdateStatus(c.Request.Context(), id.UserID(), jobID, req.Status); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"status": req.Status})
}

// Delete removes a job.
func (h *Handler) Delete(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}
	jobID, ok := h.jobID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id.UserID(), jobID); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

// SaveFields persists wizard field values.
func (h *Handler) SaveFields(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}
	jobID, ok := h.jobID(c)
	if !ok {
		return
	}

	var req transport.SaveFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.SaveFields(c.Request.Context(), id.UserID(), jobID, req.Fields); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"saved": len(req.Fields)})
}

// WizardState returns the merged resume view for a job.
func (h *Handler) WizardState(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}
	jobID, ok := h.jobID(c)
	if !ok {
		return
	}

	state, err := h.svc.WizardState(c.Request.Context(), id.UserID(), jobID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, state)
}

// SaveAppliances replaces the appliance set for a CP12 job.
func (h *Handler) SaveAppliances(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}
	jobID, ok := h.jobID(c)
	if !ok {
		return
	}

	var req transport.SaveAppliancesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	appliances, err := h.svc.SaveAppliances(c.Request.Context(), id.UserID(), jobID, req)
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.ApplianceResponse, 0, len(appliances))
	for _, a := range appliances {
		out = append(out, service.ToApplianceResponse(a))
	}
	httpkit.OK(c, gin.H{"appliances": out})
}

// PresignPhoto returns a presigned upload URL for a job photo.
func (h *Handler) PresignPhoto(c *gin.Context) {
	h.presign(c, h.svc.PresignPhotoUpload)
}

// PresignSignature returns a presigned upload URL for a signature image.
func (h *Handler) PresignSignature(c *gin.Context) {
	h.presign(c, h.svc.PresignSignatureUpload)
}

func (h *Handler) presign(c *gin.Context, fn func(ctx context.Context, userID, jobID uuid.UUID, req transport.PresignUploadRequest) (*service.PresignedFile, error)) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}
	jobID, ok := h.jobID(c)
	if !ok {
		return
	}

	var req transport.PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	presigned, err := fn(c.Request.Context(), id.UserID(), jobID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.PresignResponse{
		URL:       presigned.URL,
		FileKey:   presigned.FileKey,
		ExpiresAt: presigned.ExpiresAt,
	})
}

// RecordPhoto stores an uploaded photo's file key against the job.
func (h *Handler) RecordPhoto(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}
	jobID, ok := h.jobID(c)
	if !ok {
		return
	}

	var req transport.RecordPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.RecordPhoto(c.Request.Context(), id.UserID(), jobID, req.Kind, req.FileKey); httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, gin.H{"fileKey": req.FileKey})
}

// RecordSignature stores an uploaded signature's file key against the job.
func (h *Handler) RecordSignature(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}
	jobID, ok := h.jobID(c)
	if !ok {
		return
	}

	var req transport.RecordSignatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.RecordSignature(c.Request.Context(), id.UserID(), jobID, req.Role, req.FileKey); httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, gin.H{"fileKey": req.FileKey})
}
