package usecase

import (
	"context"
	"time"

	fieldDomain "github.com/allisson/fieldcrypt/internal/field/domain"
	"github.com/allisson/fieldcrypt/internal/metrics"
)

// fieldUseCaseWithMetrics decorates FieldUseCase with metrics instrumentation.
type fieldUseCaseWithMetrics struct {
	next    FieldUseCase
	metrics metrics.BusinessMetrics
}

// NewFieldUseCaseWithMetrics wraps a FieldUseCase with metrics recording.
func NewFieldUseCaseWithMetrics(useCase FieldUseCase, m metrics.BusinessMetrics) FieldUseCase {
	return &fieldUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (f *fieldUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	f.metrics.RecordOperation(ctx, "field", operation, status)
	f.metrics.RecordDuration(ctx, "field", operation, time.Since(start), status)
}

// EncryptFields records metrics for field encryption.
func (f *fieldUseCaseWithMetrics) EncryptFields(
	ctx context.Context,
	record fieldDomain.Record,
	entityType string,
) (fieldDomain.Record, error) {
	start := time.Now()
	out, err := f.next.EncryptFields(ctx, record, entityType)
	f.record(ctx, "field_encrypt", start, err)
	return out, err
}

// DecryptFields records metrics for field decryption.
func (f *fieldUseCaseWithMetrics) DecryptFields(
	ctx context.Context,
	record fieldDomain.Record,
	entityType string,
) (fieldDomain.Record, error) {
	start := time.Now()
	out, err := f.next.DecryptFields(ctx, record, entityType)
	f.record(ctx, "field_decrypt", start, err)
	return out, err
}

// HashDocument records metrics for document hashing.
func (f *fieldUseCaseWithMetrics) HashDocument(ctx context.Context, document string) string {
	start := time.Now()
	hash := f.next.HashDocument(ctx, document)
	f.record(ctx, "document_hash", start, nil)
	return hash
}

// Policy delegates to the wrapped use case.
func (f *fieldUseCaseWithMetrics) Policy() *fieldDomain.Policy {
	return f.next.Policy()
}
