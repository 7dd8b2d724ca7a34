// Package dto provides data transfer objects for the field protection endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/fieldcrypt/internal/validation"
)

// FieldsRequest carries a record to encrypt or decrypt. Binary companions travel as
// standard base64 strings.
type FieldsRequest struct {
	Record map[string]any `json:"record"`
}

// Validate checks if the fields request is valid.
func (r *FieldsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Record, validation.NotNil),
	)
}

// HashDocumentRequest carries a document number to hash.
type HashDocumentRequest struct {
	Document string `json:"document"`
}

// Validate checks if the hash document request is valid.
func (r *HashDocumentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Document,
			validation.Required,
			customValidation.NotBlank,
			customValidation.HasDigits,
			validation.Length(1, 64),
		),
	)
}

// ValidateEntityType checks an entity type taken from the URL.
func ValidateEntityType(entityType string) error {
	return validation.Validate(entityType,
		validation.Required,
		customValidation.EntityType,
		validation.Length(1, 64),
	)
}
