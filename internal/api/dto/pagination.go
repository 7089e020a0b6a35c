package dto

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageParams holds limit/offset pagination extracted from the query string.
type PageParams struct {
	Limit  int
	Offset int
}

// PageParamsFromQuery reads limit/offset with clamped defaults. Bad values
// fall back to the defaults rather than erroring.
func PageParamsFromQuery(c *gin.Context) PageParams {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return PageParams{Limit: limit, Offset: offset}
}

// Page is a limit/offset page of results.
type Page[T any] struct {
	Count   int64 `json:"count"`
	Results []T   `json:"results"`
}

func NewPage[T any](results []T, count int64) *Page[T] {
	if results == nil {
		results = []T{}
	}
	return &Page[T]{Count: count, Results: results}
}
