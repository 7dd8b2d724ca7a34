// Package repository implements protected record persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/allisson/fieldcrypt/internal/database"
	apperrors "github.com/allisson/fieldcrypt/internal/errors"
	recordDomain "github.com/allisson/fieldcrypt/internal/record/domain"
)

// pgUniqueViolation is the SQLSTATE for unique constraint violations.
const pgUniqueViolation = "23505"

// PostgreSQLRecordRepository implements protected record persistence for PostgreSQL.
// Payloads are stored as JSONB; binary companions are base64 strings inside it.
type PostgreSQLRecordRepository struct {
	db *sql.DB
}

// Create inserts a protected record without its lookup hashes.
func (p *PostgreSQLRecordRepository) Create(ctx context.Context, record *recordDomain.ProtectedRecord) error {
	querier := database.GetTx(ctx, p.db)

	payload, err := json.Marshal(record.Payload)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal record payload")
	}

	query := `INSERT INTO protected_records (id, entity_type, payload, created_at) 
			  VALUES ($1, $2, $3, $4)`

	_, err = querier.ExecContext(ctx, query, record.ID, record.EntityType, payload, record.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return recordDomain.ErrRecordAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create record")
	}
	return nil
}

// CreateLookupHashes inserts the lookup hashes of a record, one row per field.
func (p *PostgreSQLRecordRepository) CreateLookupHashes(
	ctx context.Context,
	record *recordDomain.ProtectedRecord,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO record_lookup_hashes (record_id, entity_type, field_name, hash) 
			  VALUES ($1, $2, $3, $4)`

	for _, field := range record.LookupFields() {
		_, err := querier.ExecContext(ctx, query, record.ID, record.EntityType, field, record.LookupHashes[field])
		if err != nil {
			return apperrors.Wrap(err, "failed to create record lookup hash")
		}
	}
	return nil
}

// Get retrieves a protected record by its ID.
func (p *PostgreSQLRecordRepository) Get(ctx context.Context, id uuid.UUID) (*recordDomain.ProtectedRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, entity_type, payload, created_at 
			  FROM protected_records 
			  WHERE id = $1`

	var record recordDomain.ProtectedRecord
	var payload []byte

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&record.ID,
		&record.EntityType,
		&payload,
		&record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, recordDomain.ErrRecordNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get record")
	}

	if err := json.Unmarshal(payload, &record.Payload); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal record payload")
	}

	return &record, nil
}

// SearchByLookupHash lists the records of entityType having any document field with hash,
// ordered by ID (creation order for UUIDv7).
func (p *PostgreSQLRecordRepository) SearchByLookupHash(
	ctx context.Context,
	entityType, hash string,
	offset, limit int,
) ([]*recordDomain.ProtectedRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, entity_type, payload, created_at 
			  FROM protected_records 
			  WHERE id IN (
			  	SELECT record_id FROM record_lookup_hashes WHERE entity_type = $1 AND hash = $2
			  ) 
			  ORDER BY id ASC 
			  LIMIT $3 OFFSET $4`

	rows, err := querier.QueryContext(ctx, query, entityType, hash, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to search records")
	}
	defer func() {
		_ = rows.Close()
	}()

	records := make([]*recordDomain.ProtectedRecord, 0)
	for rows.Next() {
		var record recordDomain.ProtectedRecord
		var payload []byte

		if err := rows.Scan(&record.ID, &record.EntityType, &payload, &record.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan record")
		}
		if err := json.Unmarshal(payload, &record.Payload); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal record payload")
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating records")
	}

	return records, nil
}

// NewPostgreSQLRecordRepository creates a new PostgreSQL record repository.
func NewPostgreSQLRecordRepository(db *sql.DB) *PostgreSQLRecordRepository {
	return &PostgreSQLRecordRepository{db: db}
}
