// Package service implements field-level encryption: PBKDF2 key derivation, AEAD
// ciphers (AES-256-GCM, ChaCha20-Poly1305), the field cipher built on top of them and
// the keyed document hasher used for equality lookups.
package service

import (
	cryptoDomain "github.com/allisson/fieldcrypt/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)

	// NonceSize returns the nonce length expected by Decrypt.
	NonceSize() int
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// KeyDeriver turns a per-value salt into a field key under the master key it was built with.
type KeyDeriver interface {
	// Derive returns a KeySize-byte key. The caller owns the returned slice and may zero it.
	Derive(salt []byte) ([]byte, error)
}

// FieldCipher encrypts and decrypts single field values.
type FieldCipher interface {
	// Encrypt seals plaintext under a freshly salted key. Empty plaintext yields the
	// empty sentinel and no error.
	Encrypt(plaintext string) (cryptoDomain.EncryptedField, error)

	// Decrypt opens a field. It never returns an error; failures are reported in the result.
	Decrypt(field cryptoDomain.EncryptedField) cryptoDomain.DecryptResult
}

// DocumentHasher computes deterministic lookup hashes of document numbers.
type DocumentHasher interface {
	// Hash returns the hex digest of the digits of document.
	Hash(document string) string
}
