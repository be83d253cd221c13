package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination describes one page of a listing
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPagination computes the page block for total items
func NewPagination(page, size, total int) Pagination {
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	return Pagination{Page: page, PageSize: size, Total: total, TotalPages: pages}
}

// Offset returns the index of the first item on the page
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ParsePagination parses standard pagination query params from the request.
// It enforces bounds and applies defaults when values are missing or invalid.
func ParsePagination(c *gin.Context, defaultPage, defaultSize, maxSize int) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if err != nil || page < 1 {
		page = defaultPage
	}

	size, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultSize)))
	if err != nil || size < 1 {
		size = defaultSize
	}
	if size > maxSize {
		size = maxSize
	}

	return page, size
}

// WritePaginated writes items under itemsKey next to the pagination block and any extras
func WritePaginated(c *gin.Context, itemsKey string, items any, pagination Pagination, extra gin.H) {
	response := gin.H{
		itemsKey:     items,
		"pagination": pagination,
	}
	for k, v := range extra {
		response[k] = v
	}
	c.JSON(http.StatusOK, response)
}
