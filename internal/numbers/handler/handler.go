package handler

import (
	"net/http"

	"phonenumber_backend/internal/numbers/service"
	"phonenumber_backend/internal/numbers/transport"
	"phonenumber_backend/platform/httpkit"
	"phonenumber_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for phone number operations.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new numbers handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Parse handles POST /api/v1/numbers/parse
func (h *Handler) Parse(c *gin.Context) {
	var req transport.NumberRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.svc.Describe(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Validate handles POST /api/v1/numbers/validate
func (h *Handler) Validate(c *gin.Context) {
	var req transport.NumberRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.svc.Validate(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Format handles POST /api/v1/numbers/format
func (h *Handler) Format(c *gin.Context) {
	var req transport.FormatRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.svc.Format(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Compare handles POST /api/v1/numbers/compare
func (h *Handler) Compare(c *gin.Context) {
	var req transport.CompareRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.svc.Compare(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Formats handles GET /api/v1/numbers/formats
func (h *Handler) Formats(c *gin.Context) {
	httpkit.OK(c, h.svc.Formats())
}

// Regions handles GET /api/v1/numbers/regions
func (h *Handler) Regions(c *gin.Context) {
	httpkit.OK(c, h.svc.Regions())
}

func (h *Handler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return false
	}
	return true
}
