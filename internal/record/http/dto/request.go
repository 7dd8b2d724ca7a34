// Package dto provides data transfer objects for the protected record endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/fieldcrypt/internal/validation"
)

// StoreRecordRequest carries a plaintext record to store in protected form.
type StoreRecordRequest struct {
	Record map[string]any `json:"record"`
}

// Validate checks if the store request is valid.
func (r *StoreRecordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Record, validation.Required),
	)
}

// SearchRecordsRequest carries the document to search for.
type SearchRecordsRequest struct {
	Document string `json:"document"`
}

// Validate checks if the search request is valid.
func (r *SearchRecordsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Document,
			validation.Required,
			customValidation.NotBlank,
			customValidation.HasDigits,
			validation.Length(1, 64),
		),
	)
}
