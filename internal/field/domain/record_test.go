package domain

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_Clone(t *testing.T) {
	original := Record{"cpf": "12345678900", "nome": "Maria"}
	clone := original.Clone()
	clone["cpf"] = "changed"

	assert.Equal(t, "12345678900", original["cpf"])
	assert.NotNil(t, Record(nil).Clone())
}

func TestCompanionKeys(t *testing.T) {
	assert.Equal(t, "cpf_encrypted", EncryptedKey("cpf"))
	assert.Equal(t, "cpf_salt", SaltKey("cpf"))
	assert.Equal(t, "cpf_hash", HashKey("cpf"))
}

func TestIsDocumentField(t *testing.T) {
	tests := []struct {
		field string
		want  bool
	}{
		{field: "cpf", want: true},
		{field: "cnpj", want: true},
		{field: "documento_pagador", want: true},
		{field: "numero_documento", want: true},
		{field: "rg", want: false},
		{field: "email", want: false},
		{field: "cpf_conjuge", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDocumentField(tt.field))
		})
	}
}

func TestStringValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
		ok    bool
	}{
		{name: "string", value: "abc", want: "abc", ok: true},
		{name: "empty string", value: "", want: "", ok: true},
		{name: "nil", value: nil, want: "", ok: false},
		{name: "bytes", value: []byte("abc"), want: "abc", ok: true},
		{name: "int", value: 1234, want: "1234", ok: true},
		{name: "float", value: 12.5, want: "12.5", ok: true},
		{name: "bool", value: true, want: "true", ok: true},
		{name: "json number", value: json.Number("12345678900"), want: "12345678900", ok: true},
		{name: "large integral float", value: float64(12345678900), want: "12345678900", ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := StringValue(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBytesValue(t *testing.T) {
	raw := []byte{0x00, 0x01, 0xff}

	got, ok := BytesValue(raw)
	assert.True(t, ok)
	assert.Equal(t, raw, got)

	got, ok = BytesValue(base64.StdEncoding.EncodeToString(raw))
	assert.True(t, ok)
	assert.Equal(t, raw, got)

	_, ok = BytesValue("not base64!")
	assert.False(t, ok)

	_, ok = BytesValue(42)
	assert.False(t, ok)

	_, ok = BytesValue(nil)
	assert.False(t, ok)
}
