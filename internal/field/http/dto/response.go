package dto

import (
	fieldDomain "github.com/allisson/fieldcrypt/internal/field/domain"
)

// FieldsResponse carries a processed record. []byte values marshal as base64.
type FieldsResponse struct {
	Record map[string]any `json:"record"`
}

// HashDocumentResponse carries a document lookup hash.
type HashDocumentResponse struct {
	Hash string `json:"hash"`
}

// PolicyResponse describes the active entity policy.
type PolicyResponse struct {
	Entities map[string][]string `json:"entities"`
	Strict   bool                `json:"strict"`
}

// MapPolicyToResponse converts a policy into its response form.
func MapPolicyToResponse(policy *fieldDomain.Policy) PolicyResponse {
	entities := make(map[string][]string, len(policy.Entities))
	for _, entityType := range policy.EntityTypes() {
		fields, _ := policy.FieldsFor(entityType)
		entities[entityType] = fields
	}
	return PolicyResponse{Entities: entities, Strict: policy.Strict}
}
