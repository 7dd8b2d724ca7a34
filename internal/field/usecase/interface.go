// Package usecase applies the entity field policy to records: it replaces sensitive
// fields with their encrypted and salt companions, adds lookup hashes for document
// fields and reverses the process on the way out.
package usecase

import (
	"context"

	fieldDomain "github.com/allisson/fieldcrypt/internal/field/domain"
)

// FieldUseCase protects and restores the sensitive fields of records.
type FieldUseCase interface {
	// EncryptFields returns a copy of record with every non-empty policy field of
	// entityType replaced by its X_encrypted and X_salt companions, plus X_hash for
	// document fields. The input record is never mutated.
	EncryptFields(ctx context.Context, record fieldDomain.Record, entityType string) (fieldDomain.Record, error)

	// DecryptFields restores policy fields from their companions. The companions are
	// always removed; a field that fails to decrypt is simply absent from the result.
	DecryptFields(ctx context.Context, record fieldDomain.Record, entityType string) (fieldDomain.Record, error)

	// HashDocument returns the lookup hash of a document number.
	HashDocument(ctx context.Context, document string) string

	// Policy returns the active entity policy.
	Policy() *fieldDomain.Policy
}
