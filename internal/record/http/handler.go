// Package http provides HTTP handlers for storing, reading and searching protected records.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	fieldDomain "github.com/allisson/fieldcrypt/internal/field/domain"
	fieldDTO "github.com/allisson/fieldcrypt/internal/field/http/dto"
	"github.com/allisson/fieldcrypt/internal/httputil"
	"github.com/allisson/fieldcrypt/internal/record/http/dto"
	recordUseCase "github.com/allisson/fieldcrypt/internal/record/usecase"
	customValidation "github.com/allisson/fieldcrypt/internal/validation"
)

// RecordHandler handles HTTP requests for protected records.
type RecordHandler struct {
	recordUseCase recordUseCase.RecordUseCase
	logger        *slog.Logger
}

// NewRecordHandler creates a new record handler.
func NewRecordHandler(recordUseCase recordUseCase.RecordUseCase, logger *slog.Logger) *RecordHandler {
	return &RecordHandler{
		recordUseCase: recordUseCase,
		logger:        logger,
	}
}

func (h *RecordHandler) entityType(c *gin.Context) (string, bool) {
	entityType := c.Param("entity")
	if err := fieldDTO.ValidateEntityType(entityType); err != nil {
		httputil.HandleValidationErrorGin(
			c,
			customValidation.WrapValidationError(fmt.Errorf("entity: %w", err)),
			h.logger,
		)
		return "", false
	}
	return entityType, true
}

// StoreHandler encrypts and persists a record.
// POST /v1/records/:entity - Returns 201 Created with the protected form.
func (h *RecordHandler) StoreHandler(c *gin.Context) {
	entityType, ok := h.entityType(c)
	if !ok {
		return
	}

	var req dto.StoreRecordRequest
	if err := httputil.ShouldBindJSON(c, &req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	protected, err := h.recordUseCase.Store(c.Request.Context(), entityType, fieldDomain.Record(req.Record))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapProtectedRecordToResponse(protected))
}

// GetHandler returns a decrypted record.
// GET /v1/records/id/:id
func (h *RecordHandler) GetHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid record id: %w", err), h.logger)
		return
	}

	record, err := h.recordUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPlainRecordToResponse(record))
}

// SearchHandler finds records by document number.
// POST /v1/records/:entity/search?offset=0&limit=50
func (h *RecordHandler) SearchHandler(c *gin.Context) {
	entityType, ok := h.entityType(c)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.SearchRecordsRequest
	if err := httputil.ShouldBindJSON(c, &req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	records, err := h.recordUseCase.SearchByDocument(c.Request.Context(), entityType, req.Document, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPlainRecordsToListResponse(records))
}
