package app

import (
	"context"
	"fmt"

	cryptoDomain "github.com/allisson/fieldcrypt/internal/crypto/domain"
	cryptoService "github.com/allisson/fieldcrypt/internal/crypto/service"
)

// KMSService returns the KMS service used to unwrap the master key.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// MasterKey returns the process master key, loading it on first access.
func (c *Container) MasterKey() (*cryptoDomain.MasterKey, error) {
	var err error
	c.masterKeyInit.Do(func() {
		c.masterKey, err = c.initMasterKey()
		if err != nil {
			c.initErrors["masterKey"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["masterKey"]; exists {
		return nil, storedErr
	}
	return c.masterKey, nil
}

// AEADManager returns the AEAD manager service.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = cryptoService.NewAEADManager()
	})
	return c.aeadManager
}

// KeyDeriver returns the PBKDF2 key deriver bound to the master key.
func (c *Container) KeyDeriver() (*cryptoService.PBKDF2KeyDeriver, error) {
	var err error
	c.keyDeriverInit.Do(func() {
		c.keyDeriver, err = c.initKeyDeriver()
		if err != nil {
			c.initErrors["keyDeriver"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyDeriver"]; exists {
		return nil, storedErr
	}
	return c.keyDeriver, nil
}

// FieldCipher returns the field cipher configured with FIELD_ALGORITHM.
func (c *Container) FieldCipher() (cryptoService.FieldCipher, error) {
	var err error
	c.fieldCipherInit.Do(func() {
		c.fieldCipher, err = c.initFieldCipher()
		if err != nil {
			c.initErrors["fieldCipher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fieldCipher"]; exists {
		return nil, storedErr
	}
	return c.fieldCipher, nil
}

// DocumentHasher returns the document hasher bound to the master key.
func (c *Container) DocumentHasher() (cryptoService.DocumentHasher, error) {
	var err error
	c.documentHasherInit.Do(func() {
		c.documentHasher, err = c.initDocumentHasher()
		if err != nil {
			c.initErrors["documentHasher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["documentHasher"]; exists {
		return nil, storedErr
	}
	return c.documentHasher, nil
}

// initMasterKey resolves the master key from the environment, the KMS or an ephemeral
// fallback.
func (c *Container) initMasterKey() (*cryptoDomain.MasterKey, error) {
	masterKey, err := cryptoDomain.LoadMasterKey(
		context.Background(),
		cryptoDomain.MasterKeyOptions{
			EncodedKey: c.config.MasterKey,
			KMSKeyURI:  c.config.KMSKeyURI,
			Require:    c.config.RequireMasterKey,
		},
		c.KMSService(),
		c.Logger(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load master key: %w", err)
	}
	return masterKey, nil
}

func (c *Container) initKeyDeriver() (*cryptoService.PBKDF2KeyDeriver, error) {
	masterKey, err := c.MasterKey()
	if err != nil {
		return nil, err
	}

	deriver, err := cryptoService.NewPBKDF2KeyDeriver(masterKey.Key, c.config.KDFIterations, c.config.KeyCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create key deriver: %w", err)
	}
	return deriver, nil
}

func (c *Container) initFieldCipher() (cryptoService.FieldCipher, error) {
	alg, err := cryptoDomain.ParseAlgorithm(c.config.FieldAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("invalid FIELD_ALGORITHM %q: %w", c.config.FieldAlgorithm, err)
	}

	deriver, err := c.KeyDeriver()
	if err != nil {
		return nil, fmt.Errorf("failed to get key deriver for field cipher: %w", err)
	}

	return cryptoService.NewFieldCipher(deriver, c.AEADManager(), alg)
}

func (c *Container) initDocumentHasher() (cryptoService.DocumentHasher, error) {
	masterKey, err := c.MasterKey()
	if err != nil {
		return nil, err
	}

	hasher, err := cryptoService.NewDocumentHasher(masterKey.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to create document hasher: %w", err)
	}
	return hasher, nil
}
