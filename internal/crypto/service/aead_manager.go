package service

import (
	"fmt"

	cryptoDomain "github.com/allisson/fieldcrypt/internal/crypto/domain"
)

// aeadConstructors lists the ciphers a field can be sealed with.
var aeadConstructors = map[cryptoDomain.Algorithm]func(key []byte) (AEAD, error){
	cryptoDomain.AESGCM:   func(key []byte) (AEAD, error) { return NewAESGCM(key) },
	cryptoDomain.ChaCha20: func(key []byte) (AEAD, error) { return NewChaCha20Poly1305(key) },
}

// AEADManagerService builds a fresh AEAD for every derived field key.
type AEADManagerService struct{}

// NewAEADManager creates a new AEADManagerService.
func NewAEADManager() *AEADManagerService {
	return &AEADManagerService{}
}

// CreateCipher returns the AEAD for alg keyed with key. Field keys are always KeySize
// bytes, so any other length is rejected before the cipher is built.
func (am *AEADManagerService) CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, fmt.Errorf("%w: field key must be %d bytes, got %d",
			cryptoDomain.ErrInvalidKeySize, cryptoDomain.KeySize, len(key))
	}

	newAEAD, ok := aeadConstructors[alg]
	if !ok {
		return nil, fmt.Errorf("%w: %q", cryptoDomain.ErrUnsupportedAlgorithm, alg)
	}
	return newAEAD(key)
}
