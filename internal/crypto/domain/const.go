package domain

// Algorithm represents the authenticated cipher used to seal field values.
//
// Both algorithms are AEAD constructions with 256-bit keys and 12-byte nonces, so a
// field encrypted with either one has the same layout:
// algorithm byte || nonce || sealed, where sealed is the ciphertext followed by the
// AEAD authentication tag.
type Algorithm string

const (
	// AESGCM represents AES-256-GCM. Preferred on CPUs with AES-NI.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents ChaCha20-Poly1305. Preferred where AES hardware support is missing.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

const (
	// KeySize is the size in bytes of master keys and derived field keys.
	KeySize = 32

	// SaltSize is the size in bytes of the random salt generated for every encryption.
	SaltSize = 16

	// HashSaltSize is the size in bytes of the deterministic document hash salt.
	HashSaltSize = 16

	// DefaultKDFIterations is the PBKDF2-HMAC-SHA256 iteration count used to derive field keys.
	DefaultKDFIterations = 100000
)

// ParseAlgorithm converts a configuration string into an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case AESGCM:
		return AESGCM, nil
	case ChaCha20:
		return ChaCha20, nil
	default:
		return "", ErrUnsupportedAlgorithm
	}
}
