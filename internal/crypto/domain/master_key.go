// Package domain defines the core models of field-level encryption: the process-wide
// master key, encrypted field values, decrypt results and the algorithms that seal them.
//
// Every field key is derived from the master key and a per-value salt, so the master key
// is the only secret that has to survive restarts. Losing it makes every stored
// ciphertext permanently unrecoverable.
package domain

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
)

// MasterKeySource tells where the process master key came from.
type MasterKeySource string

const (
	// MasterKeySourceEnv means the key was read in plaintext from the environment.
	MasterKeySourceEnv MasterKeySource = "env"

	// MasterKeySourceKMS means the key was read from the environment and unwrapped by a KMS.
	MasterKeySourceKMS MasterKeySource = "kms"

	// MasterKeySourceEphemeral means no key was configured and a random one was generated.
	// Data encrypted under an ephemeral key cannot be decrypted after a restart.
	MasterKeySourceEphemeral MasterKeySource = "ephemeral"
)

// MasterKey is the single long-lived secret every field key is derived from.
type MasterKey struct {
	Key    []byte
	Source MasterKeySource
}

// IsEphemeral reports whether the key was generated at startup.
func (m *MasterKey) IsEphemeral() bool {
	return m.Source == MasterKeySourceEphemeral
}

// Close zeroes the key material.
func (m *MasterKey) Close() {
	Zero(m.Key)
}

// KMSKeeper is the subset of *secrets.Keeper used to unwrap the master key.
type KMSKeeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KeeperOpener opens a KMSKeeper for a key URI.
type KeeperOpener interface {
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)
}

// MasterKeyOptions configures LoadMasterKey.
type MasterKeyOptions struct {
	// EncodedKey is the base64 value of FIELD_ENCRYPTION_MASTER_KEY. When KMSKeyURI is set
	// it holds the KMS ciphertext instead of the raw key.
	EncodedKey string
	// KMSKeyURI selects KMS mode (e.g. "base64key://...", "awskms:///alias/...").
	KMSKeyURI string
	// Require turns a missing key into ErrMasterKeyNotSet instead of generating one.
	Require bool
}

// LoadMasterKey resolves the process master key.
//
// Resolution order:
//   - EncodedKey set and KMSKeyURI set: base64-decode, unwrap through the KMS
//   - EncodedKey set: base64-decode and use directly
//   - EncodedKey empty and Require set: ErrMasterKeyNotSet
//   - EncodedKey empty: generate an ephemeral key and log a warning
//
// The resulting key must be exactly KeySize bytes.
func LoadMasterKey(
	ctx context.Context,
	opts MasterKeyOptions,
	opener KeeperOpener,
	logger *slog.Logger,
) (*MasterKey, error) {
	if opts.EncodedKey == "" {
		if opts.Require {
			return nil, ErrMasterKeyNotSet
		}
		return generateEphemeralMasterKey(logger)
	}

	raw, err := base64.StdEncoding.DecodeString(opts.EncodedKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMasterKeyBase64, err)
	}

	source := MasterKeySourceEnv
	if opts.KMSKeyURI != "" {
		unwrapped, err := unwrapMasterKey(ctx, opener, opts.KMSKeyURI, raw)
		Zero(raw)
		if err != nil {
			return nil, err
		}
		raw = unwrapped
		source = MasterKeySourceKMS
	}

	if len(raw) != KeySize {
		size := len(raw)
		Zero(raw)
		return nil, fmt.Errorf("%w: master key must be %d bytes, got %d", ErrInvalidKeySize, KeySize, size)
	}

	logger.Info("master key loaded", slog.String("source", string(source)))
	return &MasterKey{Key: raw, Source: source}, nil
}

// NewMasterKey wraps raw key material after validating its size.
func NewMasterKey(key []byte, source MasterKeySource) (*MasterKey, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: master key must be %d bytes, got %d", ErrInvalidKeySize, KeySize, len(key))
	}
	return &MasterKey{Key: key, Source: source}, nil
}

// GenerateMasterKeyMaterial returns KeySize bytes from crypto/rand.
func GenerateMasterKeyMaterial() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate master key: %w", err)
	}
	return key, nil
}

func unwrapMasterKey(ctx context.Context, opener KeeperOpener, keyURI string, ciphertext []byte) ([]byte, error) {
	if opener == nil {
		return nil, fmt.Errorf("%w: no KMS service available", ErrMasterKeyUnwrapFailed)
	}

	keeper, err := opener.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMasterKeyUnwrapFailed, err)
	}
	defer func() {
		_ = keeper.Close()
	}()

	plaintext, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMasterKeyUnwrapFailed, err)
	}
	return plaintext, nil
}

func generateEphemeralMasterKey(logger *slog.Logger) (*MasterKey, error) {
	key, err := GenerateMasterKeyMaterial()
	if err != nil {
		return nil, err
	}

	// Loud on purpose: anything persisted under this key is lost on restart.
	logger.Warn(
		"FIELD_ENCRYPTION_MASTER_KEY not set, generated an ephemeral master key; "+
			"data encrypted now cannot be decrypted after a restart",
		slog.String("source", string(MasterKeySourceEphemeral)),
	)

	return &MasterKey{Key: key, Source: MasterKeySourceEphemeral}, nil
}

// Zero overwrites a byte slice with zeros.
func Zero(b []byte) {
	clear(b)
}
