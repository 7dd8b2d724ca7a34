package http

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/fieldcrypt/internal/crypto/domain"
	cryptoService "github.com/allisson/fieldcrypt/internal/crypto/service"
	apperrors "github.com/allisson/fieldcrypt/internal/errors"
	fieldDomain "github.com/allisson/fieldcrypt/internal/field/domain"
	"github.com/allisson/fieldcrypt/internal/field/http/dto"
	fieldUseCase "github.com/allisson/fieldcrypt/internal/field/usecase"
	"github.com/allisson/fieldcrypt/internal/field/usecase/mocks"
	"github.com/allisson/fieldcrypt/internal/metrics"
)

func setupTestFieldHandler(t *testing.T) (*FieldHandler, *mocks.MockFieldUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := mocks.NewMockFieldUseCase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewFieldHandler(mockUseCase, logger), mockUseCase
}

func TestFieldHandler_EncryptHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestFieldHandler(t)

		ciphertext := []byte{0x01, 0x02, 0x03}
		salt := []byte{0x04, 0x05}
		mockUseCase.On("EncryptFields", mock.Anything, fieldDomain.Record{"cpf": "12345678900", "apto": json.Number("101")}, "morador").
			Return(fieldDomain.Record{
				"apto":          float64(101),
				"cpf_encrypted": ciphertext,
				"cpf_salt":      salt,
				"cpf_hash":      "abc",
			}, nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/fields/morador/encrypt",
			`{"record":{"cpf":"12345678900","apto":101}}`)
		c.Params = gin.Params{gin.Param{Key: "entity", Value: "morador"}}

		handler.EncryptHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.FieldsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, base64.StdEncoding.EncodeToString(ciphertext), response.Record["cpf_encrypted"])
		assert.Equal(t, base64.StdEncoding.EncodeToString(salt), response.Record["cpf_salt"])
		assert.Equal(t, "abc", response.Record["cpf_hash"])
		assert.Equal(t, float64(101), response.Record["apto"])
	})

	t.Run("Error_InvalidEntity", func(t *testing.T) {
		handler, _ := setupTestFieldHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/fields/Morador/encrypt", dto.FieldsRequest{
			Record: map[string]any{"cpf": "1"},
		})
		c.Params = gin.Params{gin.Param{Key: "entity", Value: "Morador"}}

		handler.EncryptHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "validation_error")
	})

	t.Run("Error_InvalidJSON", func(t *testing.T) {
		handler, _ := setupTestFieldHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/fields/morador/encrypt", `{"record":`)
		c.Params = gin.Params{gin.Param{Key: "entity", Value: "morador"}}

		handler.EncryptHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_MissingRecord", func(t *testing.T) {
		handler, _ := setupTestFieldHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/fields/morador/encrypt", `{}`)
		c.Params = gin.Params{gin.Param{Key: "entity", Value: "morador"}}

		handler.EncryptHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_StrictUnknownEntity", func(t *testing.T) {
		handler, mockUseCase := setupTestFieldHandler(t)

		mockUseCase.On("EncryptFields", mock.Anything, fieldDomain.Record{"cpf": "1"}, "fornecedor").
			Return(nil, fieldDomain.ErrUnknownEntityType).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/fields/fornecedor/encrypt", dto.FieldsRequest{
			Record: map[string]any{"cpf": "1"},
		})
		c.Params = gin.Params{gin.Param{Key: "entity", Value: "fornecedor"}}

		handler.EncryptHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_input")
	})

	t.Run("Error_Internal", func(t *testing.T) {
		handler, mockUseCase := setupTestFieldHandler(t)

		mockUseCase.On("EncryptFields", mock.Anything, mock.Anything, "morador").
			Return(nil, apperrors.New("entropy exhausted")).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/fields/morador/encrypt", dto.FieldsRequest{
			Record: map[string]any{"cpf": "1"},
		})
		c.Params = gin.Params{gin.Param{Key: "entity", Value: "morador"}}

		handler.EncryptHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "entropy")
	})
}

func TestFieldHandler_DecryptHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestFieldHandler(t)

		input := fieldDomain.Record{"cpf_encrypted": "AQID", "cpf_salt": "BAU=", "cpf_hash": "abc"}
		mockUseCase.On("DecryptFields", mock.Anything, input, "morador").
			Return(fieldDomain.Record{"cpf": "12345678900", "cpf_hash": "abc"}, nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/fields/morador/decrypt", dto.FieldsRequest{Record: input})
		c.Params = gin.Params{gin.Param{Key: "entity", Value: "morador"}}

		handler.DecryptHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"record":{"cpf":"12345678900","cpf_hash":"abc"}}`, w.Body.String())
	})

	t.Run("Error_EmptyEntity", func(t *testing.T) {
		handler, _ := setupTestFieldHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/fields//decrypt", dto.FieldsRequest{
			Record: map[string]any{},
		})
		c.Params = gin.Params{gin.Param{Key: "entity", Value: ""}}

		handler.DecryptHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestFieldHandler_HashDocumentHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestFieldHandler(t)

		mockUseCase.On("HashDocument", mock.Anything, "123.456.789-00").Return("deadbeef").Once()

		c, w := createTestContext(http.MethodPost, "/v1/documents/hash", dto.HashDocumentRequest{
			Document: "123.456.789-00",
		})

		handler.HashDocumentHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"hash":"deadbeef"}`, w.Body.String())
	})

	t.Run("Error_NoDigits", func(t *testing.T) {
		handler, _ := setupTestFieldHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/documents/hash", dto.HashDocumentRequest{
			Document: "abc",
		})

		handler.HashDocumentHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_InvalidJSON", func(t *testing.T) {
		handler, _ := setupTestFieldHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/documents/hash", `not json`)

		handler.HashDocumentHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestFieldHandler_PolicyHandler(t *testing.T) {
	handler, mockUseCase := setupTestFieldHandler(t)

	mockUseCase.On("Policy").Return(&fieldDomain.Policy{
		Entities: map[string][]string{"condominio": {"cnpj"}},
	}).Once()

	c, w := createTestContext(http.MethodGet, "/v1/policy", nil)

	handler.PolicyHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"entities":{"condominio":["cnpj"]},"strict":false}`, w.Body.String())
}

func TestFieldHandler_NumericDocumentRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)

	masterKey, err := cryptoDomain.GenerateMasterKeyMaterial()
	require.NoError(t, err)
	deriver, err := cryptoService.NewPBKDF2KeyDeriver(masterKey, 1000, 16)
	require.NoError(t, err)
	cipher, err := cryptoService.NewFieldCipher(deriver, cryptoService.NewAEADManager(), cryptoDomain.AESGCM)
	require.NoError(t, err)
	hasher, err := cryptoService.NewDocumentHasher(masterKey)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	useCase := fieldUseCase.NewFieldUseCase(
		cipher,
		hasher,
		fieldDomain.DefaultPolicy(),
		metrics.NewNoOpBusinessMetrics(),
		logger,
	)
	handler := NewFieldHandler(useCase, logger)

	c, w := createTestContext(http.MethodPost, "/v1/fields/morador/encrypt",
		`{"record":{"cpf":12345678900,"apto":101}}`)
	c.Params = gin.Params{gin.Param{Key: "entity", Value: "morador"}}
	handler.EncryptHandler(c)
	require.Equal(t, http.StatusOK, w.Code)

	var encrypted dto.FieldsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &encrypted))
	assert.Equal(t, hasher.Hash("12345678900"), encrypted.Record["cpf_hash"])
	assert.NotContains(t, encrypted.Record, "cpf")

	c, w = createTestContext(http.MethodPost, "/v1/fields/morador/decrypt", dto.FieldsRequest{
		Record: encrypted.Record,
	})
	c.Params = gin.Params{gin.Param{Key: "entity", Value: "morador"}}
	handler.DecryptHandler(c)
	require.Equal(t, http.StatusOK, w.Code)

	var decrypted dto.FieldsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decrypted))
	assert.Equal(t, "12345678900", decrypted.Record["cpf"])
	assert.Equal(t, float64(101), decrypted.Record["apto"])
}
