package domain

import (
	"github.com/allisson/fieldcrypt/internal/errors"
)

// Cryptographic configuration and input errors.
//
// Decryption failures are deliberately absent: they never surface as errors and are
// reported through DecryptResult instead.
var (
	// ErrUnsupportedAlgorithm indicates the configured field algorithm is unknown.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates a master or derived key is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrInvalidSaltSize indicates a salt is not exactly 16 bytes.
	ErrInvalidSaltSize = errors.Wrap(errors.ErrInvalidInput, "invalid salt size")

	// ErrInvalidMasterKey indicates an empty master key was handed to key derivation.
	ErrInvalidMasterKey = errors.Wrap(errors.ErrInvalidInput, "invalid master key")

	// ErrMasterKeyNotSet indicates FIELD_ENCRYPTION_MASTER_KEY is missing while
	// REQUIRE_MASTER_KEY is enabled.
	ErrMasterKeyNotSet = errors.Wrap(errors.ErrMisconfigured, "FIELD_ENCRYPTION_MASTER_KEY is not set")

	// ErrInvalidMasterKeyBase64 indicates the configured master key is not valid base64.
	ErrInvalidMasterKeyBase64 = errors.Wrap(errors.ErrMisconfigured, "invalid master key base64")

	// ErrMasterKeyUnwrapFailed indicates the KMS could not decrypt the configured master key.
	ErrMasterKeyUnwrapFailed = errors.Wrap(errors.ErrMisconfigured, "failed to unwrap master key with KMS")
)
