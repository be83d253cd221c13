package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParsePagination_DefaultsAndBounds(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var gotPage, gotSize int

	r.GET("/test", func(c *gin.Context) {
		gotPage, gotSize = ParsePagination(c, 1, 20, 100)
		c.Status(http.StatusOK)
	})

	cases := []struct {
		query          string
		page, pageSize int
	}{
		{"", 1, 20},
		{"?page=abc&page_size=-5", 1, 20},
		{"?page=3&page_size=50", 3, 50},
		{"?page=2&page_size=5000", 2, 100},
	}
	for _, tc := range cases {
		req, _ := http.NewRequest("GET", "/test"+tc.query, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, tc.page, gotPage, tc.query)
		assert.Equal(t, tc.pageSize, gotSize, tc.query)
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(3, 20, 95)
	assert.Equal(t, 5, p.TotalPages)
	assert.Equal(t, 40, p.Offset())

	assert.Equal(t, 0, NewPagination(1, 20, 0).TotalPages)
	assert.Equal(t, 0, NewPagination(1, 0, 10).TotalPages)
}
