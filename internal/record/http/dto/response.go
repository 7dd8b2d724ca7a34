package dto

import (
	"time"

	recordDomain "github.com/allisson/fieldcrypt/internal/record/domain"
)

// ProtectedRecordResponse describes a stored record in its encrypted form.
type ProtectedRecordResponse struct {
	ID           string         `json:"id"`
	EntityType   string         `json:"entity_type"`
	Record       map[string]any `json:"record"`
	LookupFields []string       `json:"lookup_fields"`
	CreatedAt    time.Time      `json:"created_at"`
}

// MapProtectedRecordToResponse converts a protected record into its response form.
func MapProtectedRecordToResponse(record *recordDomain.ProtectedRecord) ProtectedRecordResponse {
	return ProtectedRecordResponse{
		ID:           record.ID.String(),
		EntityType:   record.EntityType,
		Record:       record.Payload,
		LookupFields: record.LookupFields(),
		CreatedAt:    record.CreatedAt,
	}
}

// RecordResponse describes a decrypted record.
type RecordResponse struct {
	ID         string         `json:"id"`
	EntityType string         `json:"entity_type"`
	Record     map[string]any `json:"record"`
	CreatedAt  time.Time      `json:"created_at"`
}

// MapPlainRecordToResponse converts a decrypted record into its response form.
func MapPlainRecordToResponse(record *recordDomain.PlainRecord) RecordResponse {
	return RecordResponse{
		ID:         record.ID.String(),
		EntityType: record.EntityType,
		Record:     record.Fields,
		CreatedAt:  record.CreatedAt,
	}
}

// ListRecordsResponse wraps a page of decrypted records.
type ListRecordsResponse struct {
	Data []RecordResponse `json:"data"`
}

// MapPlainRecordsToListResponse converts decrypted records into a list response.
func MapPlainRecordsToListResponse(records []*recordDomain.PlainRecord) ListRecordsResponse {
	data := make([]RecordResponse, 0, len(records))
	for _, record := range records {
		data = append(data, MapPlainRecordToResponse(record))
	}
	return ListRecordsResponse{Data: data}
}
