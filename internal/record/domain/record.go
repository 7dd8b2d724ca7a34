// Package domain defines protected records: encrypted payloads persisted together
// with the lookup hashes of their document fields.
package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"

	fieldDomain "github.com/allisson/fieldcrypt/internal/field/domain"
)

// ProtectedRecord is a record stored in encrypted form.
//
// Payload holds the output of field encryption, so it never contains plaintext policy
// fields. LookupHashes maps each document field to its hash and is what searches match.
type ProtectedRecord struct {
	ID           uuid.UUID
	EntityType   string
	Payload      fieldDomain.Record
	LookupHashes map[string]string
	CreatedAt    time.Time
}

// LookupFields returns the names of the hashed fields in lexical order.
func (r *ProtectedRecord) LookupFields() []string {
	fields := make([]string, 0, len(r.LookupHashes))
	for field := range r.LookupHashes {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	return fields
}

// PlainRecord is a protected record after field decryption.
type PlainRecord struct {
	ID         uuid.UUID
	EntityType string
	Fields     fieldDomain.Record
	CreatedAt  time.Time
}
