package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	fieldDomain "github.com/allisson/fieldcrypt/internal/field/domain"
	"github.com/allisson/fieldcrypt/internal/metrics"
	recordDomain "github.com/allisson/fieldcrypt/internal/record/domain"
)

// recordUseCaseWithMetrics decorates RecordUseCase with metrics instrumentation.
type recordUseCaseWithMetrics struct {
	next    RecordUseCase
	metrics metrics.BusinessMetrics
}

// NewRecordUseCaseWithMetrics wraps a RecordUseCase with metrics recording.
func NewRecordUseCaseWithMetrics(useCase RecordUseCase, m metrics.BusinessMetrics) RecordUseCase {
	return &recordUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Store records metrics for record storage.
func (r *recordUseCaseWithMetrics) Store(
	ctx context.Context,
	entityType string,
	record fieldDomain.Record,
) (*recordDomain.ProtectedRecord, error) {
	start := time.Now()
	protected, err := r.next.Store(ctx, entityType, record)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "record", "record_store", status)
	r.metrics.RecordDuration(ctx, "record", "record_store", time.Since(start), status)

	return protected, err
}

// Get records metrics for record retrieval.
func (r *recordUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*recordDomain.PlainRecord, error) {
	start := time.Now()
	record, err := r.next.Get(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "record", "record_get", status)
	r.metrics.RecordDuration(ctx, "record", "record_get", time.Since(start), status)

	return record, err
}

// SearchByDocument records metrics for document searches.
func (r *recordUseCaseWithMetrics) SearchByDocument(
	ctx context.Context,
	entityType, document string,
	offset, limit int,
) ([]*recordDomain.PlainRecord, error) {
	start := time.Now()
	records, err := r.next.SearchByDocument(ctx, entityType, document, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "record", "record_search", status)
	r.metrics.RecordDuration(ctx, "record", "record_search", time.Since(start), status)

	return records, err
}
