// Package domain defines the field protection model: records, per-entity policies and
// the key naming scheme used for encrypted, salt and hash companions.
package domain

import (
	"github.com/allisson/fieldcrypt/internal/errors"
)

// Field protection error definitions.
var (
	// ErrUnknownEntityType indicates the entity type has no policy and strict mode is on.
	ErrUnknownEntityType = errors.Wrap(errors.ErrInvalidInput, "unknown entity type")

	// ErrInvalidPolicy indicates a policy table or policy file failed validation.
	ErrInvalidPolicy = errors.Wrap(errors.ErrMisconfigured, "invalid field policy")

	// ErrInvalidRecord indicates a record could not be decoded.
	ErrInvalidRecord = errors.Wrap(errors.ErrInvalidInput, "invalid record")
)
