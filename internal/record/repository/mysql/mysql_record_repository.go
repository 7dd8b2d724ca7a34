// Package mysql implements protected record persistence for MySQL.
package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/allisson/fieldcrypt/internal/database"
	apperrors "github.com/allisson/fieldcrypt/internal/errors"
	recordDomain "github.com/allisson/fieldcrypt/internal/record/domain"
)

// mysqlDuplicateEntry is the MySQL error number for duplicate keys.
const mysqlDuplicateEntry = 1062

// MySQLRecordRepository implements protected record persistence for MySQL.
// IDs are stored as BINARY(16) and payloads as JSON.
type MySQLRecordRepository struct {
	db *sql.DB
}

// Create inserts a protected record without its lookup hashes.
func (m *MySQLRecordRepository) Create(ctx context.Context, record *recordDomain.ProtectedRecord) error {
	querier := database.GetTx(ctx, m.db)

	id, err := record.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal record id")
	}

	payload, err := json.Marshal(record.Payload)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal record payload")
	}

	query := `INSERT INTO protected_records (id, entity_type, payload, created_at) 
			  VALUES (?, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, query, id, record.EntityType, payload, record.CreatedAt)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return recordDomain.ErrRecordAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create record")
	}
	return nil
}

// CreateLookupHashes inserts the lookup hashes of a record, one row per field.
func (m *MySQLRecordRepository) CreateLookupHashes(ctx context.Context, record *recordDomain.ProtectedRecord) error {
	querier := database.GetTx(ctx, m.db)

	id, err := record.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal record id")
	}

	query := `INSERT INTO record_lookup_hashes (record_id, entity_type, field_name, hash) 
			  VALUES (?, ?, ?, ?)`

	for _, field := range record.LookupFields() {
		_, err := querier.ExecContext(ctx, query, id, record.EntityType, field, record.LookupHashes[field])
		if err != nil {
			return apperrors.Wrap(err, "failed to create record lookup hash")
		}
	}
	return nil
}

// scanRecord reads one protected_records row.
func scanRecord(scan func(dest ...any) error) (*recordDomain.ProtectedRecord, error) {
	var record recordDomain.ProtectedRecord
	var id, payload []byte

	if err := scan(&id, &record.EntityType, &payload, &record.CreatedAt); err != nil {
		return nil, err
	}

	if err := record.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal record id")
	}

	if err := json.Unmarshal(payload, &record.Payload); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal record payload")
	}

	return &record, nil
}

// Get retrieves a protected record by its ID.
func (m *MySQLRecordRepository) Get(ctx context.Context, recordID uuid.UUID) (*recordDomain.ProtectedRecord, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := recordID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal record id")
	}

	query := `SELECT id, entity_type, payload, created_at 
			  FROM protected_records 
			  WHERE id = ?`

	record, err := scanRecord(querier.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, recordDomain.ErrRecordNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get record")
	}

	return record, nil
}

// SearchByLookupHash lists the records of entityType having any document field with hash,
// ordered by ID.
func (m *MySQLRecordRepository) SearchByLookupHash(
	ctx context.Context,
	entityType, hash string,
	offset, limit int,
) ([]*recordDomain.ProtectedRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, entity_type, payload, created_at 
			  FROM protected_records 
			  WHERE id IN (
			  	SELECT record_id FROM record_lookup_hashes WHERE entity_type = ? AND hash = ?
			  ) 
			  ORDER BY id ASC 
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, entityType, hash, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to search records")
	}
	defer func() {
		_ = rows.Close()
	}()

	records := make([]*recordDomain.ProtectedRecord, 0)
	for rows.Next() {
		record, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan record")
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating records")
	}

	return records, nil
}

// NewMySQLRecordRepository creates a new MySQL record repository.
func NewMySQLRecordRepository(db *sql.DB) *MySQLRecordRepository {
	return &MySQLRecordRepository{db: db}
}
