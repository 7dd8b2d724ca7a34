// Package integration runs end-to-end tests of the HTTP API against PostgreSQL and MySQL.
package integration

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/fieldcrypt/internal/app"
	"github.com/allisson/fieldcrypt/internal/config"
	cryptoDomain "github.com/allisson/fieldcrypt/internal/crypto/domain"
	"github.com/allisson/fieldcrypt/internal/testutil"
)

// integrationTestContext holds the dependencies of one integration run.
type integrationTestContext struct {
	container *app.Container
	server    *httptest.Server
	dbDriver  string
}

// makeRequest performs an HTTP request and returns the response and body.
func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body any,
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: 10 * time.Second}
	//nolint:gosec // controlled test environment with localhost URLs
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	return resp, respBody
}

func decode(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out), "body: %s", body)
	return out
}

// setupIntegrationTest migrates a clean database and serves the full router over httptest.
func setupIntegrationTest(t *testing.T, dbDriver string) *integrationTestContext {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db := testutil.SetupDB(t, dbDriver)
	testutil.TeardownDB(t, db)

	key, err := cryptoDomain.GenerateMasterKeyMaterial()
	require.NoError(t, err)

	cfg := &config.Config{
		DBDriver:             dbDriver,
		DBConnectionString:   testutil.TestDSN(dbDriver),
		DBMaxOpenConnections: 10,
		DBMaxIdleConnections: 5,
		DBConnMaxLifetime:    time.Hour,
		ServerHost:           "localhost",
		ServerPort:           8080,
		LogLevel:             "error",
		MasterKey:            base64.StdEncoding.EncodeToString(key),
		FieldAlgorithm:       "aes-gcm",
		KDFIterations:        1000,
		KeyCacheSize:         64,
	}

	container := app.NewContainer(cfg)

	httpSrv, err := container.HTTPServer()
	require.NoError(t, err, "failed to get HTTP server")

	handler := httpSrv.GetHandler()
	require.NotNil(t, handler, "handler should not be nil after SetupRouter")

	return &integrationTestContext{
		container: container,
		server:    httptest.NewServer(handler),
		dbDriver:  dbDriver,
	}
}

// teardownIntegrationTest releases every resource of the run.
func teardownIntegrationTest(t *testing.T, ctx *integrationTestContext) {
	t.Helper()

	if ctx.server != nil {
		ctx.server.Close()
	}

	if ctx.container != nil {
		if db, err := ctx.container.DB(); err == nil {
			testutil.CleanupDB(t, db)
		}
		if err := ctx.container.Shutdown(context.Background()); err != nil {
			t.Logf("Warning: container shutdown error: %v", err)
		}
	}
}

var databases = []struct {
	name     string
	dbDriver string
}{
	{"PostgreSQL", "postgres"},
	{"MySQL", "mysql"},
}

func TestIntegration_Health_BasicChecks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range databases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			resp, body := ctx.makeRequest(t, http.MethodGet, "/health", nil)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "healthy", decode(t, body)["status"])

			resp, body = ctx.makeRequest(t, http.MethodGet, "/ready", nil)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "ready", decode(t, body)["status"])
		})
	}
}

func TestIntegration_Fields_CompleteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range databases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			plain := map[string]any{
				"nome":     "Maria",
				"cpf":      "123.456.789-09",
				"telefone": "11999990000",
			}

			var protected map[string]any
			t.Run("01_Encrypt", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/fields/morador/encrypt",
					map[string]any{"record": plain})
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				protected = decode(t, body)["record"].(map[string]any)
				assert.Equal(t, "Maria", protected["nome"])
				assert.NotContains(t, protected, "cpf")
				assert.Contains(t, protected, "cpf_encrypted")
				assert.Contains(t, protected, "cpf_salt")
				assert.Len(t, protected["cpf_hash"], 64)
				assert.NotContains(t, protected, "telefone_hash")
			})

			t.Run("02_Decrypt", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/fields/morador/decrypt",
					map[string]any{"record": protected})
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				record := decode(t, body)["record"].(map[string]any)
				assert.Equal(t, "123.456.789-09", record["cpf"])
				assert.Equal(t, "11999990000", record["telefone"])
				assert.NotContains(t, record, "cpf_encrypted")
			})

			t.Run("03_HashDocumentMatchesEncrypt", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/documents/hash",
					map[string]any{"document": "12345678909"})
				require.Equal(t, http.StatusOK, resp.StatusCode)
				assert.Equal(t, protected["cpf_hash"], decode(t, body)["hash"])
			})

			t.Run("04_Policy", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/policy", nil)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				response := decode(t, body)
				assert.Equal(t, false, response["strict"])
				assert.Contains(t, response["entities"], "morador")
			})
		})
	}
}

func TestIntegration_Records_CompleteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range databases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			var recordID string
			t.Run("01_Store", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/records/morador",
					map[string]any{"record": map[string]any{"nome": "Joao", "cpf": "98765432100"}})
				require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

				response := decode(t, body)
				recordID = response["id"].(string)
				assert.Equal(t, "morador", response["entity_type"])
				assert.Equal(t, []any{"cpf"}, response["lookup_fields"])
				assert.NotContains(t, response["record"], "cpf")
			})

			t.Run("02_Get", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/records/id/"+recordID, nil)
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				record := decode(t, body)["record"].(map[string]any)
				assert.Equal(t, "98765432100", record["cpf"])
				assert.Equal(t, "Joao", record["nome"])
			})

			t.Run("03_SearchFormattedDocument", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/records/morador/search",
					map[string]any{"document": "987.654.321-00"})
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				data := decode(t, body)["data"].([]any)
				require.Len(t, data, 1)
				assert.Equal(t, recordID, data[0].(map[string]any)["id"])
			})

			t.Run("04_SearchOtherEntityType", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/records/banco/search",
					map[string]any{"document": "98765432100"})
				require.Equal(t, http.StatusOK, resp.StatusCode)
				assert.Empty(t, decode(t, body)["data"])
			})

			t.Run("05_GetNotFound", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodGet,
					"/v1/records/id/0190a4a0-0000-7000-8000-000000000000", nil)
				assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			})

			t.Run("06_StoreUnknownEntity", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/records/fornecedor",
					map[string]any{"record": map[string]any{"cnpj": "1"}})
				assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			})
		})
	}
}
