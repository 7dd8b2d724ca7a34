package domain

import (
	"github.com/allisson/fieldcrypt/internal/errors"
)

// Protected record error definitions.
var (
	// ErrRecordNotFound indicates the record was not found.
	ErrRecordNotFound = errors.Wrap(errors.ErrNotFound, "record not found")

	// ErrRecordAlreadyExists indicates a record with the same ID already exists.
	ErrRecordAlreadyExists = errors.Wrap(errors.ErrConflict, "record already exists")

	// ErrEmptyDocument indicates a search document has no digits left after normalization.
	ErrEmptyDocument = errors.Wrap(errors.ErrInvalidInput, "document has no digits")
)
