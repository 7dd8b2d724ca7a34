package domain

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// Companion key suffixes written next to a protected field.
const (
	EncryptedSuffix = "_encrypted"
	SaltSuffix      = "_salt"
	HashSuffix      = "_hash"
)

// Record is a plain mapping of field name to value, the shape callers hand in and get back.
type Record map[string]any

// Clone returns a shallow copy of r. A nil record clones to an empty one.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	maps.Copy(out, r)
	return out
}

// EncryptedKey returns the name of the ciphertext companion of field.
func EncryptedKey(field string) string {
	return field + EncryptedSuffix
}

// SaltKey returns the name of the salt companion of field.
func SaltKey(field string) string {
	return field + SaltSuffix
}

// HashKey returns the name of the lookup hash companion of field.
func HashKey(field string) string {
	return field + HashSuffix
}

// IsDocumentField reports whether field carries a document number and therefore gets a
// lookup hash: any name containing "documento", plus cpf and cnpj.
func IsDocumentField(field string) bool {
	return strings.Contains(field, "documento") || field == "cpf" || field == "cnpj"
}

// StringValue converts a record value to the plaintext that gets encrypted.
// Strings are used as is and nil is absent. Numbers keep their full decimal form, so a
// document number sent as a JSON integer hashes the same as its string form. Everything
// else goes through fmt.Sprint.
func StringValue(v any) (string, bool) {
	switch value := v.(type) {
	case nil:
		return "", false
	case string:
		return value, true
	case []byte:
		return string(value), true
	case json.Number:
		return value.String(), true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), true
	default:
		return fmt.Sprint(value), true
	}
}

// BytesValue extracts binary companion values. Records that went through JSON carry them
// as standard base64 strings.
func BytesValue(v any) ([]byte, bool) {
	switch value := v.(type) {
	case []byte:
		return value, true
	case string:
		decoded, err := base64.StdEncoding.DecodeString(value)
		if err != nil {
			return nil, false
		}
		return decoded, true
	default:
		return nil, false
	}
}
