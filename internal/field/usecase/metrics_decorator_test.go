package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	fieldDomain "github.com/allisson/fieldcrypt/internal/field/domain"
	"github.com/allisson/fieldcrypt/internal/field/usecase"
	usecaseMocks "github.com/allisson/fieldcrypt/internal/field/usecase/mocks"
)

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func (m *mockBusinessMetrics) RecordDecryptFailure(ctx context.Context, entityType, reason string) {
	m.Called(ctx, entityType, reason)
}

func expectMetrics(m *mockBusinessMetrics, ctx context.Context, operation, status string) {
	m.On("RecordOperation", ctx, "field", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "field", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestFieldUseCaseWithMetrics_EncryptFields(t *testing.T) {
	ctx := context.Background()
	record := fieldDomain.Record{"cpf": "12345678900"}

	t.Run("success", func(t *testing.T) {
		mockNext := usecaseMocks.NewMockFieldUseCase(t)
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewFieldUseCaseWithMetrics(mockNext, mockMetrics)

		expected := fieldDomain.Record{"cpf_encrypted": []byte("c"), "cpf_salt": []byte("s")}
		mockNext.On("EncryptFields", ctx, record, "morador").Return(expected, nil).Once()
		expectMetrics(mockMetrics, ctx, "field_encrypt", "success")

		out, err := uc.EncryptFields(ctx, record, "morador")
		assert.NoError(t, err)
		assert.Equal(t, expected, out)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("error", func(t *testing.T) {
		mockNext := usecaseMocks.NewMockFieldUseCase(t)
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewFieldUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("EncryptFields", ctx, record, "nope").Return(nil, fieldDomain.ErrUnknownEntityType).Once()
		expectMetrics(mockMetrics, ctx, "field_encrypt", "error")

		out, err := uc.EncryptFields(ctx, record, "nope")
		assert.True(t, errors.Is(err, fieldDomain.ErrUnknownEntityType))
		assert.Nil(t, out)
		mockMetrics.AssertExpectations(t)
	})
}

func TestFieldUseCaseWithMetrics_DecryptFields(t *testing.T) {
	ctx := context.Background()
	mockNext := usecaseMocks.NewMockFieldUseCase(t)
	mockMetrics := &mockBusinessMetrics{}
	uc := usecase.NewFieldUseCaseWithMetrics(mockNext, mockMetrics)

	record := fieldDomain.Record{"cpf_encrypted": []byte("c"), "cpf_salt": []byte("s")}
	expected := fieldDomain.Record{"cpf": "12345678900"}
	mockNext.On("DecryptFields", ctx, record, "morador").Return(expected, nil).Once()
	expectMetrics(mockMetrics, ctx, "field_decrypt", "success")

	out, err := uc.DecryptFields(ctx, record, "morador")
	assert.NoError(t, err)
	assert.Equal(t, expected, out)
	mockMetrics.AssertExpectations(t)
}

func TestFieldUseCaseWithMetrics_HashDocument(t *testing.T) {
	ctx := context.Background()
	mockNext := usecaseMocks.NewMockFieldUseCase(t)
	mockMetrics := &mockBusinessMetrics{}
	uc := usecase.NewFieldUseCaseWithMetrics(mockNext, mockMetrics)

	mockNext.On("HashDocument", ctx, "12345678900").Return("abc").Once()
	expectMetrics(mockMetrics, ctx, "document_hash", "success")

	assert.Equal(t, "abc", uc.HashDocument(ctx, "12345678900"))
	mockMetrics.AssertExpectations(t)
}

func TestFieldUseCaseWithMetrics_Policy(t *testing.T) {
	mockNext := usecaseMocks.NewMockFieldUseCase(t)
	uc := usecase.NewFieldUseCaseWithMetrics(mockNext, &mockBusinessMetrics{})

	policy := fieldDomain.DefaultPolicy()
	mockNext.On("Policy").Return(policy).Once()

	assert.Same(t, policy, uc.Policy())
}
