package httputil

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
)

// ErrEmptyBody is returned when a request has no body to bind.
var ErrEmptyBody = errors.New("invalid request: empty body")

// ShouldBindJSON decodes the request body into obj like gin's JSON binding, except that
// numbers inside untyped values are kept as json.Number. Document numbers sent as JSON
// integers keep every digit instead of becoming a float64.
func ShouldBindJSON(c *gin.Context, obj any) error {
	if c.Request == nil || c.Request.Body == nil {
		return ErrEmptyBody
	}

	decoder := json.NewDecoder(c.Request.Body)
	decoder.UseNumber()
	if err := decoder.Decode(obj); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
