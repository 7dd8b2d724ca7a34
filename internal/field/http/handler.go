// Package http provides HTTP handlers for field encryption, decryption and document hashing.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	fieldDomain "github.com/allisson/fieldcrypt/internal/field/domain"
	"github.com/allisson/fieldcrypt/internal/field/http/dto"
	fieldUseCase "github.com/allisson/fieldcrypt/internal/field/usecase"
	"github.com/allisson/fieldcrypt/internal/httputil"
	customValidation "github.com/allisson/fieldcrypt/internal/validation"
)

// FieldHandler handles HTTP requests for field protection.
type FieldHandler struct {
	fieldUseCase fieldUseCase.FieldUseCase
	logger       *slog.Logger
}

// NewFieldHandler creates a new field handler.
func NewFieldHandler(fieldUseCase fieldUseCase.FieldUseCase, logger *slog.Logger) *FieldHandler {
	return &FieldHandler{
		fieldUseCase: fieldUseCase,
		logger:       logger,
	}
}

// bindFieldsRequest extracts the entity type and record. It writes the error response
// and returns false when the request is unusable.
func (h *FieldHandler) bindFieldsRequest(c *gin.Context) (string, fieldDomain.Record, bool) {
	entityType := c.Param("entity")
	if err := dto.ValidateEntityType(entityType); err != nil {
		httputil.HandleValidationErrorGin(
			c,
			customValidation.WrapValidationError(fmt.Errorf("entity: %w", err)),
			h.logger,
		)
		return "", nil, false
	}

	var req dto.FieldsRequest
	if err := httputil.ShouldBindJSON(c, &req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return "", nil, false
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return "", nil, false
	}

	return entityType, fieldDomain.Record(req.Record), true
}

// EncryptHandler protects the policy fields of a record.
// POST /v1/fields/:entity/encrypt
func (h *FieldHandler) EncryptHandler(c *gin.Context) {
	entityType, record, ok := h.bindFieldsRequest(c)
	if !ok {
		return
	}

	out, err := h.fieldUseCase.EncryptFields(c.Request.Context(), record, entityType)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.FieldsResponse{Record: out})
}

// DecryptHandler restores the policy fields of a record. Fields that fail to decrypt
// are absent from the response.
// POST /v1/fields/:entity/decrypt
func (h *FieldHandler) DecryptHandler(c *gin.Context) {
	entityType, record, ok := h.bindFieldsRequest(c)
	if !ok {
		return
	}

	out, err := h.fieldUseCase.DecryptFields(c.Request.Context(), record, entityType)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.FieldsResponse{Record: out})
}

// HashDocumentHandler returns the lookup hash of a document number.
// POST /v1/documents/hash
func (h *FieldHandler) HashDocumentHandler(c *gin.Context) {
	var req dto.HashDocumentRequest
	if err := httputil.ShouldBindJSON(c, &req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.HashDocumentResponse{
		Hash: h.fieldUseCase.HashDocument(c.Request.Context(), req.Document),
	})
}

// PolicyHandler returns the active entity policy.
// GET /v1/policy
func (h *FieldHandler) PolicyHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MapPolicyToResponse(h.fieldUseCase.Policy()))
}
