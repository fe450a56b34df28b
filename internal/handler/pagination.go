package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"forum/backend/internal/service"
)

// PaginationMeta defines the structure for pagination metadata.
type PaginationMeta struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
}

// PaginatedResponse defines the structure for a paginated list of any type.
type PaginatedResponse[T any] struct {
	Data []T            `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// NewPaginatedResponse creates a new PaginatedResponse.
func NewPaginatedResponse[T any](data []T, totalItems int64, page, limit int) PaginatedResponse[T] {
	if limit <= 0 {
		limit = 1
	}
	if data == nil {
		data = []T{}
	}
	return PaginatedResponse[T]{
		Data: data,
		Meta: PaginationMeta{
			TotalItems:  totalItems,
			TotalPages:  (int(totalItems) + limit - 1) / limit,
			CurrentPage: page,
			PageSize:    limit,
		},
	}
}

// listOptions reads page, limit and q from the query string.
func listOptions(c *gin.Context) service.ListOptions {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.DefaultPageSize)))
	if err != nil {
		limit = service.DefaultPageSize
	}
	return service.ListOptions{Page: page, Limit: limit, Query: c.Query("q")}.Normalize()
}

// paginated writes a page of results.
func paginated[T any](c *gin.Context, opts service.ListOptions, data []T, total int64) {
	c.JSON(http.StatusOK, NewPaginatedResponse(data, total, opts.Page, opts.Limit))
}
