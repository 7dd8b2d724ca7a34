// Package usecase stores records in protected form and finds them again by document
// number without decrypting anything.
package usecase

import (
	"context"

	"github.com/google/uuid"

	fieldDomain "github.com/allisson/fieldcrypt/internal/field/domain"
	recordDomain "github.com/allisson/fieldcrypt/internal/record/domain"
)

// RecordRepository defines the interface for protected record persistence.
type RecordRepository interface {
	Create(ctx context.Context, record *recordDomain.ProtectedRecord) error
	CreateLookupHashes(ctx context.Context, record *recordDomain.ProtectedRecord) error
	Get(ctx context.Context, id uuid.UUID) (*recordDomain.ProtectedRecord, error)
	SearchByLookupHash(
		ctx context.Context,
		entityType, hash string,
		offset, limit int,
	) ([]*recordDomain.ProtectedRecord, error)
}

// RecordUseCase defines the protected record operations.
type RecordUseCase interface {
	// Store encrypts record under the policy of entityType and persists it together with
	// the lookup hashes of its document fields, in one transaction.
	Store(ctx context.Context, entityType string, record fieldDomain.Record) (*recordDomain.ProtectedRecord, error)

	// Get loads a record and decrypts its fields.
	Get(ctx context.Context, id uuid.UUID) (*recordDomain.PlainRecord, error)

	// SearchByDocument finds records of entityType with any document field equal to
	// document after normalization.
	SearchByDocument(
		ctx context.Context,
		entityType, document string,
		offset, limit int,
	) ([]*recordDomain.PlainRecord, error)
}
