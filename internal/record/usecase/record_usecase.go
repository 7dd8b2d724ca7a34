package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	cryptoService "github.com/allisson/fieldcrypt/internal/crypto/service"
	"github.com/allisson/fieldcrypt/internal/database"
	apperrors "github.com/allisson/fieldcrypt/internal/errors"
	fieldDomain "github.com/allisson/fieldcrypt/internal/field/domain"
	fieldUseCase "github.com/allisson/fieldcrypt/internal/field/usecase"
	recordDomain "github.com/allisson/fieldcrypt/internal/record/domain"
)

// recordUseCase implements RecordUseCase.
type recordUseCase struct {
	txManager    database.TxManager
	recordRepo   RecordRepository
	fieldUseCase fieldUseCase.FieldUseCase
}

// NewRecordUseCase creates a RecordUseCase.
func NewRecordUseCase(
	txManager database.TxManager,
	recordRepo RecordRepository,
	fieldUseCase fieldUseCase.FieldUseCase,
) RecordUseCase {
	return &recordUseCase{
		txManager:    txManager,
		recordRepo:   recordRepo,
		fieldUseCase: fieldUseCase,
	}
}

// Store encrypts and persists a record. Entity types without a policy are always
// rejected here, even in permissive mode, so plaintext never reaches storage.
func (r *recordUseCase) Store(
	ctx context.Context,
	entityType string,
	record fieldDomain.Record,
) (*recordDomain.ProtectedRecord, error) {
	fields, ok := r.fieldUseCase.Policy().FieldsFor(entityType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", fieldDomain.ErrUnknownEntityType, entityType)
	}

	payload, err := r.fieldUseCase.EncryptFields(ctx, record, entityType)
	if err != nil {
		return nil, err
	}

	lookupHashes := make(map[string]string)
	for _, field := range fields {
		if !fieldDomain.IsDocumentField(field) {
			continue
		}
		if _, encrypted := payload[fieldDomain.EncryptedKey(field)]; !encrypted {
			continue
		}
		if hash, ok := payload[fieldDomain.HashKey(field)].(string); ok {
			lookupHashes[field] = hash
		}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate record id")
	}

	protected := &recordDomain.ProtectedRecord{
		ID:           id,
		EntityType:   entityType,
		Payload:      payload,
		LookupHashes: lookupHashes,
		CreatedAt:    time.Now().UTC(),
	}

	err = r.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := r.recordRepo.Create(ctx, protected); err != nil {
			return err
		}
		return r.recordRepo.CreateLookupHashes(ctx, protected)
	})
	if err != nil {
		return nil, err
	}

	return protected, nil
}

func (r *recordUseCase) decrypt(
	ctx context.Context,
	protected *recordDomain.ProtectedRecord,
) (*recordDomain.PlainRecord, error) {
	fields, err := r.fieldUseCase.DecryptFields(ctx, protected.Payload, protected.EntityType)
	if err != nil {
		return nil, err
	}

	return &recordDomain.PlainRecord{
		ID:         protected.ID,
		EntityType: protected.EntityType,
		Fields:     fields,
		CreatedAt:  protected.CreatedAt,
	}, nil
}

// Get loads and decrypts a record.
func (r *recordUseCase) Get(ctx context.Context, id uuid.UUID) (*recordDomain.PlainRecord, error) {
	protected, err := r.recordRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.decrypt(ctx, protected)
}

// SearchByDocument hashes document and returns the decrypted matches.
func (r *recordUseCase) SearchByDocument(
	ctx context.Context,
	entityType, document string,
	offset, limit int,
) ([]*recordDomain.PlainRecord, error) {
	if cryptoService.NormalizeDocument(document) == "" {
		return nil, recordDomain.ErrEmptyDocument
	}

	hash := r.fieldUseCase.HashDocument(ctx, document)
	matches, err := r.recordRepo.SearchByLookupHash(ctx, entityType, hash, offset, limit)
	if err != nil {
		return nil, err
	}

	records := make([]*recordDomain.PlainRecord, 0, len(matches))
	for _, match := range matches {
		record, err := r.decrypt(ctx, match)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
