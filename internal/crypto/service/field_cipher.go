package service

import (
	"crypto/rand"
	"fmt"
	"unicode/utf8"

	cryptoDomain "github.com/allisson/fieldcrypt/internal/crypto/domain"
)

// Ciphertext algorithm tags. The tag is the first byte of every sealed field and is
// bound as AAD, so it cannot be swapped without failing authentication.
const (
	tagAESGCM   byte = 0x01
	tagChaCha20 byte = 0x02
)

var algorithmTags = map[cryptoDomain.Algorithm]byte{
	cryptoDomain.AESGCM:   tagAESGCM,
	cryptoDomain.ChaCha20: tagChaCha20,
}

var tagAlgorithms = map[byte]cryptoDomain.Algorithm{
	tagAESGCM:   cryptoDomain.AESGCM,
	tagChaCha20: cryptoDomain.ChaCha20,
}

// fieldCipher implements FieldCipher on top of a KeyDeriver and an AEADManager.
type fieldCipher struct {
	deriver     KeyDeriver
	aeadManager AEADManager
	algorithm   cryptoDomain.Algorithm
}

// NewFieldCipher creates a FieldCipher that seals new values with alg.
func NewFieldCipher(deriver KeyDeriver, aeadManager AEADManager, alg cryptoDomain.Algorithm) (FieldCipher, error) {
	if _, ok := algorithmTags[alg]; !ok {
		return nil, cryptoDomain.ErrUnsupportedAlgorithm
	}
	return &fieldCipher{
		deriver:     deriver,
		aeadManager: aeadManager,
		algorithm:   alg,
	}, nil
}

// Encrypt seals plaintext as: tag || nonce || ciphertext-with-tag.
func (f *fieldCipher) Encrypt(plaintext string) (cryptoDomain.EncryptedField, error) {
	if plaintext == "" {
		return cryptoDomain.EncryptedField{}, nil
	}

	salt := make([]byte, cryptoDomain.SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return cryptoDomain.EncryptedField{}, fmt.Errorf("failed to generate salt: %w", err)
	}

	key, err := f.deriver.Derive(salt)
	if err != nil {
		return cryptoDomain.EncryptedField{}, fmt.Errorf("failed to derive field key: %w", err)
	}
	defer cryptoDomain.Zero(key)

	aead, err := f.aeadManager.CreateCipher(key, f.algorithm)
	if err != nil {
		return cryptoDomain.EncryptedField{}, err
	}

	tag := algorithmTags[f.algorithm]
	sealed, nonce, err := aead.Encrypt([]byte(plaintext), []byte{tag})
	if err != nil {
		return cryptoDomain.EncryptedField{}, fmt.Errorf("failed to encrypt field: %w", err)
	}

	ciphertext := make([]byte, 0, 1+len(nonce)+len(sealed))
	ciphertext = append(ciphertext, tag)
	ciphertext = append(ciphertext, nonce...)
	ciphertext = append(ciphertext, sealed...)

	return cryptoDomain.EncryptedField{Ciphertext: ciphertext, Salt: salt}, nil
}

// Decrypt opens a field produced by Encrypt. Any problem yields a failed result and
// never an error or a panic.
func (f *fieldCipher) Decrypt(field cryptoDomain.EncryptedField) cryptoDomain.DecryptResult {
	if field.IsEmpty() {
		return cryptoDomain.DecryptFailed(cryptoDomain.FailureEmptyInput)
	}
	if len(field.Salt) != cryptoDomain.SaltSize {
		return cryptoDomain.DecryptFailed(cryptoDomain.FailureMalformed)
	}

	tag := field.Ciphertext[0]
	alg, ok := tagAlgorithms[tag]
	if !ok {
		return cryptoDomain.DecryptFailed(cryptoDomain.FailureMalformed)
	}

	key, err := f.deriver.Derive(field.Salt)
	if err != nil {
		return cryptoDomain.DecryptFailed(cryptoDomain.FailureMalformed)
	}
	defer cryptoDomain.Zero(key)

	aead, err := f.aeadManager.CreateCipher(key, alg)
	if err != nil {
		return cryptoDomain.DecryptFailed(cryptoDomain.FailureMalformed)
	}

	body := field.Ciphertext[1:]
	nonceSize := aead.NonceSize()
	if len(body) <= nonceSize {
		return cryptoDomain.DecryptFailed(cryptoDomain.FailureMalformed)
	}

	plaintext, err := aead.Decrypt(body[nonceSize:], body[:nonceSize], []byte{tag})
	if err != nil {
		return cryptoDomain.DecryptFailed(cryptoDomain.FailureAuthentication)
	}
	defer cryptoDomain.Zero(plaintext)

	if !utf8.Valid(plaintext) {
		return cryptoDomain.DecryptFailed(cryptoDomain.FailureMalformed)
	}

	return cryptoDomain.DecryptOk(string(plaintext))
}
