package utils

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestErrorHandler(t *testing.T) {
	router := NewTestRouter()
	router.GET("/conflict", func(c *gin.Context) {
		_ = c.Error(ConflictError("Email already registered", nil).WithDetails("email"))
	})
	router.GET("/plain", func(c *gin.Context) {
		_ = c.Error(errors.New("db exploded"))
	})
	router.GET("/written", func(c *gin.Context) {
		_ = c.Error(InternalError("ignored", nil))
		Success(c, "ok", nil)
	})

	resp := MakeTestRequest(t, router, TestRequest{Method: http.MethodGet, Path: "/conflict"})
	AssertStatus(t, resp, http.StatusConflict)
	assert.Equal(t, "error", resp.Body["status"])
	assert.Equal(t, "Email already registered", resp.Body["message"])
	assert.Equal(t, "email", resp.Data()["error"])

	resp = MakeTestRequest(t, router, TestRequest{Method: http.MethodGet, Path: "/plain"})
	AssertStatus(t, resp, http.StatusInternalServerError)
	assert.Equal(t, "Internal server error", resp.Body["message"])

	resp = MakeTestRequest(t, router, TestRequest{Method: http.MethodGet, Path: "/written"})
	AssertStatus(t, resp, http.StatusOK)
}

func TestRecoveryAndRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware(), RecoveryMiddleware())
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	resp := MakeTestRequest(t, router, TestRequest{Method: http.MethodGet, Path: "/panic"})
	AssertStatus(t, resp, http.StatusInternalServerError)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp = MakeTestRequest(t, router, TestRequest{
		Method:  http.MethodGet,
		Path:    "/panic",
		Headers: map[string]string{"X-Request-ID": "req-123"},
	})
	assert.Equal(t, "req-123", resp.Header.Get("X-Request-ID"))
}

func TestSuccessWithPagination(t *testing.T) {
	router := NewTestRouter()
	router.GET("/items", func(c *gin.Context) {
		page, limit := GetPaginationParams(c)
		SuccessWithPagination(c, "ok", []int{1, 2}, 21, page, limit)
	})

	resp := MakeTestRequest(t, router, TestRequest{Method: http.MethodGet, Path: "/items?page=2&limit=500"})
	AssertStatus(t, resp, http.StatusOK)
	pagination := resp.Body["pagination"].(map[string]interface{})
	assert.EqualValues(t, 2, pagination["page"])
	assert.EqualValues(t, 10, pagination["per_page"])
	assert.EqualValues(t, 3, pagination["total_pages"])
	assert.Equal(t, 20, Offset(3, 10))
}
