// Package mocks provides mock implementations of the record use case and repository for testing.
package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	fieldDomain "github.com/allisson/fieldcrypt/internal/field/domain"
	recordDomain "github.com/allisson/fieldcrypt/internal/record/domain"
)

// MockRecordRepository is a mock implementation of RecordRepository.
type MockRecordRepository struct {
	mock.Mock
}

// NewMockRecordRepository creates a MockRecordRepository whose expectations are asserted on cleanup.
func NewMockRecordRepository(t *testing.T) *MockRecordRepository {
	m := &MockRecordRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method of RecordRepository.
func (m *MockRecordRepository) Create(ctx context.Context, record *recordDomain.ProtectedRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// CreateLookupHashes mocks the CreateLookupHashes method of RecordRepository.
func (m *MockRecordRepository) CreateLookupHashes(ctx context.Context, record *recordDomain.ProtectedRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// Get mocks the Get method of RecordRepository.
func (m *MockRecordRepository) Get(ctx context.Context, id uuid.UUID) (*recordDomain.ProtectedRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recordDomain.ProtectedRecord), args.Error(1)
}

// SearchByLookupHash mocks the SearchByLookupHash method of RecordRepository.
func (m *MockRecordRepository) SearchByLookupHash(
	ctx context.Context,
	entityType, hash string,
	offset, limit int,
) ([]*recordDomain.ProtectedRecord, error) {
	args := m.Called(ctx, entityType, hash, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recordDomain.ProtectedRecord), args.Error(1)
}

// MockRecordUseCase is a mock implementation of RecordUseCase.
type MockRecordUseCase struct {
	mock.Mock
}

// NewMockRecordUseCase creates a MockRecordUseCase whose expectations are asserted on cleanup.
func NewMockRecordUseCase(t *testing.T) *MockRecordUseCase {
	m := &MockRecordUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Store mocks the Store method of RecordUseCase.
func (m *MockRecordUseCase) Store(
	ctx context.Context,
	entityType string,
	record fieldDomain.Record,
) (*recordDomain.ProtectedRecord, error) {
	args := m.Called(ctx, entityType, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recordDomain.ProtectedRecord), args.Error(1)
}

// Get mocks the Get method of RecordUseCase.
func (m *MockRecordUseCase) Get(ctx context.Context, id uuid.UUID) (*recordDomain.PlainRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recordDomain.PlainRecord), args.Error(1)
}

// SearchByDocument mocks the SearchByDocument method of RecordUseCase.
func (m *MockRecordUseCase) SearchByDocument(
	ctx context.Context,
	entityType, document string,
	offset, limit int,
) ([]*recordDomain.PlainRecord, error) {
	args := m.Called(ctx, entityType, document, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recordDomain.PlainRecord), args.Error(1)
}
