package handler

import (
	"net/http"

	"phonenumber_backend/internal/batches/service"
	"phonenumber_backend/internal/batches/transport"
	"phonenumber_backend/platform/apperr"
	"phonenumber_backend/platform/httpkit"
	"phonenumber_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidBatchID   = "invalid batch id"
)

// errUnavailable is returned by every route when no redis is configured.
var errUnavailable = apperr.Unavailable("batch processing is not configured").WithCode("batches_unavailable")

// Handler handles HTTP requests for batch normalization.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a batches handler. A nil svc makes every route answer 503.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Submit handles POST /api/v1/batches
func (h *Handler) Submit(c *gin.Context) {
	if h.unavailable(c) {
		return
	}

	var req transport.SubmitRequest
	if c.ShouldBindJSON(&req) != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	var submittedBy *uuid.UUID
	if identity := httpkit.GetIdentity(c); identity.IsAuthenticated() {
		id := identity.UserID()
		submittedBy = &id
	}

	result, err := h.svc.Submit(c.Request.Context(), req, submittedBy)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Accepted(c, result)
}

// Get handles GET /api/v1/batches/:id
func (h *Handler) Get(c *gin.Context) {
	if h.unavailable(c) {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidBatchID, nil)
		return
	}

	result, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// List handles GET /api/v1/batches
func (h *Handler) List(c *gin.Context) {
	if h.unavailable(c) {
		return
	}

	var req transport.ListRequest
	if c.ShouldBindQuery(&req) != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) unavailable(c *gin.Context) bool {
	if h.svc != nil {
		return false
	}
	return httpkit.HandleError(c, errUnavailable)
}
