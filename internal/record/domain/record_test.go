package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProtectedRecord_LookupFields(t *testing.T) {
	record := &ProtectedRecord{
		LookupHashes: map[string]string{
			"documento_pagador": "b",
			"cnpj":              "a",
		},
	}
	assert.Equal(t, []string{"cnpj", "documento_pagador"}, record.LookupFields())
	assert.Empty(t, (&ProtectedRecord{}).LookupFields())
}
