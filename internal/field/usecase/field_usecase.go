package usecase

import (
	"context"
	"fmt"
	"log/slog"

	cryptoDomain "github.com/allisson/fieldcrypt/internal/crypto/domain"
	cryptoService "github.com/allisson/fieldcrypt/internal/crypto/service"
	apperrors "github.com/allisson/fieldcrypt/internal/errors"
	fieldDomain "github.com/allisson/fieldcrypt/internal/field/domain"
	"github.com/allisson/fieldcrypt/internal/metrics"
)

// fieldUseCase implements FieldUseCase.
type fieldUseCase struct {
	cipher          cryptoService.FieldCipher
	hasher          cryptoService.DocumentHasher
	policy          *fieldDomain.Policy
	businessMetrics metrics.BusinessMetrics
	logger          *slog.Logger
}

// NewFieldUseCase creates a FieldUseCase. Decrypt failures are counted on businessMetrics
// by entity type and reason.
func NewFieldUseCase(
	cipher cryptoService.FieldCipher,
	hasher cryptoService.DocumentHasher,
	policy *fieldDomain.Policy,
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
) FieldUseCase {
	return &fieldUseCase{
		cipher:          cipher,
		hasher:          hasher,
		policy:          policy,
		businessMetrics: businessMetrics,
		logger:          logger,
	}
}

// fieldsFor resolves the policy fields of entityType. Unknown types return no fields,
// or ErrUnknownEntityType in strict mode.
func (f *fieldUseCase) fieldsFor(ctx context.Context, entityType string) ([]string, error) {
	fields, ok := f.policy.FieldsFor(entityType)
	if ok {
		return fields, nil
	}
	if f.policy.Strict {
		return nil, fmt.Errorf("%w: %q", fieldDomain.ErrUnknownEntityType, entityType)
	}

	f.logger.WarnContext(ctx, "unknown entity type, record left unprotected",
		slog.String("entity_type", entityType),
	)
	return nil, nil
}

// EncryptFields protects the policy fields of record.
func (f *fieldUseCase) EncryptFields(
	ctx context.Context,
	record fieldDomain.Record,
	entityType string,
) (fieldDomain.Record, error) {
	fields, err := f.fieldsFor(ctx, entityType)
	if err != nil {
		return nil, err
	}

	out := record.Clone()
	for _, name := range fields {
		plaintext, ok := fieldDomain.StringValue(record[name])
		if !ok || plaintext == "" {
			continue
		}

		encrypted, err := f.cipher.Encrypt(plaintext)
		if err != nil {
			return nil, apperrors.Wrap(err, fmt.Sprintf("failed to encrypt field %s", name))
		}

		delete(out, name)
		out[fieldDomain.EncryptedKey(name)] = encrypted.Ciphertext
		out[fieldDomain.SaltKey(name)] = encrypted.Salt
		if fieldDomain.IsDocumentField(name) {
			out[fieldDomain.HashKey(name)] = f.hasher.Hash(plaintext)
		}
	}

	return out, nil
}

// DecryptFields restores the policy fields of record.
func (f *fieldUseCase) DecryptFields(
	ctx context.Context,
	record fieldDomain.Record,
	entityType string,
) (fieldDomain.Record, error) {
	fields, err := f.fieldsFor(ctx, entityType)
	if err != nil {
		return nil, err
	}

	out := record.Clone()
	for _, name := range fields {
		encryptedKey := fieldDomain.EncryptedKey(name)
		saltKey := fieldDomain.SaltKey(name)

		rawCiphertext, hasCiphertext := record[encryptedKey]
		rawSalt, hasSalt := record[saltKey]
		if !hasCiphertext || !hasSalt {
			continue
		}

		delete(out, encryptedKey)
		delete(out, saltKey)
		delete(out, name)

		result := f.decryptValue(rawCiphertext, rawSalt)
		plaintext, ok := result.Plaintext()
		if !ok {
			f.logger.DebugContext(ctx, "field decryption failed",
				slog.String("entity_type", entityType),
				slog.String("field", name),
				slog.String("reason", string(result.Reason())),
			)
			f.businessMetrics.RecordDecryptFailure(ctx, entityType, string(result.Reason()))
			continue
		}
		out[name] = plaintext
	}

	return out, nil
}

func (f *fieldUseCase) decryptValue(rawCiphertext, rawSalt any) cryptoDomain.DecryptResult {
	ciphertext, ok := fieldDomain.BytesValue(rawCiphertext)
	if !ok {
		return cryptoDomain.DecryptFailed(cryptoDomain.FailureMalformed)
	}
	salt, ok := fieldDomain.BytesValue(rawSalt)
	if !ok {
		return cryptoDomain.DecryptFailed(cryptoDomain.FailureMalformed)
	}
	return f.cipher.Decrypt(cryptoDomain.EncryptedField{Ciphertext: ciphertext, Salt: salt})
}

// HashDocument hashes a document number with the process hasher.
func (f *fieldUseCase) HashDocument(ctx context.Context, document string) string {
	return f.hasher.Hash(document)
}

// Policy returns the active policy.
func (f *fieldUseCase) Policy() *fieldDomain.Policy {
	return f.policy
}
