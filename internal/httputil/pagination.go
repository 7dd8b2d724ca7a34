package httputil

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Page bounds for list endpoints.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

var (
	// ErrInvalidOffset is returned for a negative or non-numeric offset.
	ErrInvalidOffset = errors.New("invalid offset parameter: must be a non-negative integer")

	// ErrInvalidLimit is returned for a limit outside 1..MaxLimit.
	ErrInvalidLimit = errors.New("invalid limit parameter: must be between 1 and 100")
)

// ParsePagination reads the offset and limit query parameters. Missing values default
// to 0 and DefaultLimit.
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	offset, ok := queryInt(c, "offset", 0)
	if !ok || offset < 0 {
		return 0, 0, ErrInvalidOffset
	}

	limit, ok = queryInt(c, "limit", DefaultLimit)
	if !ok || limit < 1 || limit > MaxLimit {
		return 0, 0, ErrInvalidLimit
	}

	return offset, limit, nil
}

func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw, present := c.GetQuery(name)
	if !present {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	return value, err == nil
}
