// Package mocks provides mock implementations of the field use cases for testing.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	fieldDomain "github.com/allisson/fieldcrypt/internal/field/domain"
)

// MockFieldUseCase is a mock implementation of FieldUseCase.
type MockFieldUseCase struct {
	mock.Mock
}

// NewMockFieldUseCase creates a MockFieldUseCase whose expectations are asserted on cleanup.
func NewMockFieldUseCase(t *testing.T) *MockFieldUseCase {
	m := &MockFieldUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// EncryptFields mocks the EncryptFields method of FieldUseCase.
func (m *MockFieldUseCase) EncryptFields(
	ctx context.Context,
	record fieldDomain.Record,
	entityType string,
) (fieldDomain.Record, error) {
	args := m.Called(ctx, record, entityType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(fieldDomain.Record), args.Error(1)
}

// DecryptFields mocks the DecryptFields method of FieldUseCase.
func (m *MockFieldUseCase) DecryptFields(
	ctx context.Context,
	record fieldDomain.Record,
	entityType string,
) (fieldDomain.Record, error) {
	args := m.Called(ctx, record, entityType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(fieldDomain.Record), args.Error(1)
}

// HashDocument mocks the HashDocument method of FieldUseCase.
func (m *MockFieldUseCase) HashDocument(ctx context.Context, document string) string {
	args := m.Called(ctx, document)
	return args.String(0)
}

// Policy mocks the Policy method of FieldUseCase.
func (m *MockFieldUseCase) Policy() *fieldDomain.Policy {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*fieldDomain.Policy)
}
