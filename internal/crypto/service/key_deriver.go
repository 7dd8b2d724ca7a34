package service

import (
	"crypto/sha256"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/crypto/pbkdf2"

	cryptoDomain "github.com/allisson/fieldcrypt/internal/crypto/domain"
)

// DeriveKey stretches masterKey with salt using PBKDF2-HMAC-SHA256.
//
// Identical inputs always give the same key, which is what lets a stored salt plus the
// process master key rebuild the key of any record without persisting it.
func DeriveKey(masterKey, salt []byte, iterations int) ([]byte, error) {
	if len(masterKey) == 0 {
		return nil, cryptoDomain.ErrInvalidMasterKey
	}
	if len(salt) != cryptoDomain.SaltSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", cryptoDomain.ErrInvalidSaltSize, cryptoDomain.SaltSize, len(salt))
	}
	if iterations <= 0 {
		iterations = cryptoDomain.DefaultKDFIterations
	}
	return pbkdf2.Key(masterKey, salt, iterations, cryptoDomain.KeySize, sha256.New), nil
}

// PBKDF2KeyDeriver derives field keys under a fixed master key and memoizes them by salt.
//
// The cache is a bounded LRU, so memory stays flat no matter how many records are read.
// Entries never change once written: a racing miss only recomputes the same key.
type PBKDF2KeyDeriver struct {
	masterKey  []byte
	iterations int
	cache      *lru.Cache[string, []byte]
}

// NewPBKDF2KeyDeriver creates a deriver. cacheSize <= 0 disables caching.
func NewPBKDF2KeyDeriver(masterKey []byte, iterations, cacheSize int) (*PBKDF2KeyDeriver, error) {
	if len(masterKey) == 0 {
		return nil, cryptoDomain.ErrInvalidMasterKey
	}
	if iterations <= 0 {
		iterations = cryptoDomain.DefaultKDFIterations
	}

	d := &PBKDF2KeyDeriver{
		masterKey:  masterKey,
		iterations: iterations,
	}

	if cacheSize > 0 {
		cache, err := lru.New[string, []byte](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create derived key cache: %w", err)
		}
		d.cache = cache
	}

	return d, nil
}

// Derive returns the field key for salt, from the cache when possible.
func (d *PBKDF2KeyDeriver) Derive(salt []byte) ([]byte, error) {
	if d.cache != nil {
		if key, ok := d.cache.Get(string(salt)); ok {
			return cloneBytes(key), nil
		}
	}

	key, err := DeriveKey(d.masterKey, salt, d.iterations)
	if err != nil {
		return nil, err
	}

	if d.cache != nil {
		d.cache.Add(string(salt), cloneBytes(key))
	}
	return key, nil
}

// Purge drops every cached key and zeroes it.
func (d *PBKDF2KeyDeriver) Purge() {
	if d.cache == nil {
		return
	}
	for _, salt := range d.cache.Keys() {
		if key, ok := d.cache.Peek(salt); ok {
			cryptoDomain.Zero(key)
		}
	}
	d.cache.Purge()
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
