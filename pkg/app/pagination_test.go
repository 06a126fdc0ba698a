package app

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestContext(t *testing.T, url string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", url, nil)
	return c
}

func TestNewPager(t *testing.T) {
	c := newTestContext(t, "/api/notes?page=3&pageSize=20")

	pager := NewPager(c, 55)
	assert.Equal(t, 3, pager.Page)
	assert.Equal(t, 20, pager.PageSize)
	assert.Equal(t, 55, pager.TotalRows)
}

func TestNewPager_Defaults(t *testing.T) {
	c := newTestContext(t, "/api/notes")

	pager := NewPager(c, 0)
	assert.Equal(t, 1, pager.Page)
	assert.Equal(t, DefaultPaginationConfig.DefaultPageSize, pager.PageSize)
	assert.Equal(t, 0, pager.TotalRows)
}

func TestGetPageSizeWithConfig_Capped(t *testing.T) {
	c := newTestContext(t, "/api/notes?pageSize=9999")

	size := GetPageSizeWithConfig(c, PaginationConfig{DefaultPageSize: 10, MaxPageSize: 100})
	assert.Equal(t, 100, size)
}
