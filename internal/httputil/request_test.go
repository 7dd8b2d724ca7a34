package httputil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBindContext(body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestShouldBindJSON(t *testing.T) {
	t.Run("keeps numbers as json.Number", func(t *testing.T) {
		c := newBindContext(`{"record":{"cpf":12345678900,"apto":101}}`)

		var req struct {
			Record map[string]any `json:"record"`
		}
		require.NoError(t, ShouldBindJSON(c, &req))

		assert.Equal(t, json.Number("12345678900"), req.Record["cpf"])
		assert.Equal(t, json.Number("101"), req.Record["apto"])
	})

	t.Run("typed fields decode normally", func(t *testing.T) {
		c := newBindContext(`{"document":"123.456.789-00"}`)

		var req struct {
			Document string `json:"document"`
		}
		require.NoError(t, ShouldBindJSON(c, &req))
		assert.Equal(t, "123.456.789-00", req.Document)
	})

	t.Run("invalid json", func(t *testing.T) {
		c := newBindContext(`{invalid`)

		var req map[string]any
		assert.Error(t, ShouldBindJSON(c, &req))
	})

	t.Run("empty body", func(t *testing.T) {
		c := newBindContext("")

		var req map[string]any
		assert.Error(t, ShouldBindJSON(c, &req))
	})

	t.Run("nil body", func(t *testing.T) {
		c := newBindContext("")
		c.Request.Body = nil

		var req map[string]any
		assert.ErrorIs(t, ShouldBindJSON(c, &req), ErrEmptyBody)
	})
}
