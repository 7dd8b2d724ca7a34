package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	fieldDomain "github.com/allisson/fieldcrypt/internal/field/domain"
	recordDomain "github.com/allisson/fieldcrypt/internal/record/domain"
	"github.com/allisson/fieldcrypt/internal/record/usecase"
	usecaseMocks "github.com/allisson/fieldcrypt/internal/record/usecase/mocks"
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

func (m *mockBusinessMetrics) expect(ctx context.Context, operation, status string) {
	m.On("RecordOperation", ctx, "record", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "record", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestRecordUseCaseWithMetrics_Store(t *testing.T) {
	ctx := context.Background()
	record := fieldDomain.Record{"cnpj": "12345678000195"}

	t.Run("Success", func(t *testing.T) {
		mockNext := usecaseMocks.NewMockRecordUseCase(t)
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewRecordUseCaseWithMetrics(mockNext, mockMetrics)

		expected := &recordDomain.ProtectedRecord{ID: uuid.Must(uuid.NewV7()), EntityType: "condominio"}
		mockNext.On("Store", ctx, "condominio", record).Return(expected, nil).Once()
		mockMetrics.expect(ctx, "record_store", "success")

		got, err := uc.Store(ctx, "condominio", record)
		assert.NoError(t, err)
		assert.Equal(t, expected, got)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error", func(t *testing.T) {
		mockNext := usecaseMocks.NewMockRecordUseCase(t)
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewRecordUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Store", ctx, "condominio", record).Return(nil, errors.New("boom")).Once()
		mockMetrics.expect(ctx, "record_store", "error")

		_, err := uc.Store(ctx, "condominio", record)
		assert.Error(t, err)
		mockMetrics.AssertExpectations(t)
	})
}

func TestRecordUseCaseWithMetrics_Get(t *testing.T) {
	ctx := context.Background()
	mockNext := usecaseMocks.NewMockRecordUseCase(t)
	mockMetrics := &mockBusinessMetrics{}
	uc := usecase.NewRecordUseCaseWithMetrics(mockNext, mockMetrics)

	id := uuid.Must(uuid.NewV7())
	mockNext.On("Get", ctx, id).Return(nil, recordDomain.ErrRecordNotFound).Once()
	mockMetrics.expect(ctx, "record_get", "error")

	_, err := uc.Get(ctx, id)
	assert.ErrorIs(t, err, recordDomain.ErrRecordNotFound)
	mockMetrics.AssertExpectations(t)
}

func TestRecordUseCaseWithMetrics_SearchByDocument(t *testing.T) {
	ctx := context.Background()
	mockNext := usecaseMocks.NewMockRecordUseCase(t)
	mockMetrics := &mockBusinessMetrics{}
	uc := usecase.NewRecordUseCaseWithMetrics(mockNext, mockMetrics)

	expected := []*recordDomain.PlainRecord{{ID: uuid.Must(uuid.NewV7()), EntityType: "morador"}}
	mockNext.On("SearchByDocument", ctx, "morador", "12345678900", 0, 50).Return(expected, nil).Once()
	mockMetrics.expect(ctx, "record_search", "success")

	got, err := uc.SearchByDocument(ctx, "morador", "12345678900", 0, 50)
	assert.NoError(t, err)
	assert.Equal(t, expected, got)
	mockMetrics.AssertExpectations(t)
}
