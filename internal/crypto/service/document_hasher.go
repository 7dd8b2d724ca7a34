package service

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	cryptoDomain "github.com/allisson/fieldcrypt/internal/crypto/domain"
)

// sha256DocumentHasher hashes normalized document numbers under a salt derived from the
// master key.
//
// The salt is the same for every call in a process (and across restarts with the same
// master key), so equal documents hash equally and can be matched in storage. This is a
// lookup aid: it links records sharing a document and must not be used where
// unlinkability is required.
type sha256DocumentHasher struct {
	salt [cryptoDomain.HashSaltSize]byte
}

// NewDocumentHasher creates a DocumentHasher keyed by masterKey.
func NewDocumentHasher(masterKey []byte) (DocumentHasher, error) {
	if len(masterKey) == 0 {
		return nil, cryptoDomain.ErrInvalidMasterKey
	}

	h := &sha256DocumentHasher{}
	sum := sha256.Sum256(masterKey)
	copy(h.salt[:], sum[:cryptoDomain.HashSaltSize])
	return h, nil
}

// Hash returns hex(SHA-256(salt || digits(document))).
func (s *sha256DocumentHasher) Hash(document string) string {
	h := sha256.New()
	h.Write(s.salt[:])
	h.Write([]byte(NormalizeDocument(document)))
	return hex.EncodeToString(h.Sum(nil))
}

// NormalizeDocument keeps only the ASCII digits of document, so "123.456.789-00" and
// "12345678900" normalize to the same value.
func NormalizeDocument(document string) string {
	var b strings.Builder
	b.Grow(len(document))
	for _, r := range document {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
