package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Envelope 统一响应结构
// success 与真实 HTTP 状态码保持一致，不使用业务状态码。
type Envelope struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Meta      *Meta       `json:"meta,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// Meta 分页信息
type Meta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

func write(c *gin.Context, status int, success bool, message string, data interface{}, meta *Meta) {
	c.JSON(status, Envelope{
		Success:   success,
		Message:   message,
		Data:      data,
		Meta:      meta,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// OK 200 成功响应
func OK(c *gin.Context, message string, data interface{}) {
	write(c, http.StatusOK, true, message, data, nil)
}

// OKWithMeta 200 分页成功响应
func OKWithMeta(c *gin.Context, message string, data interface{}, meta Meta) {
	write(c, http.StatusOK, true, message, data, &meta)
}

// Created 201 成功响应
func Created(c *gin.Context, message string, data interface{}) {
	write(c, http.StatusCreated, true, message, data, nil)
}

// Error 错误响应（真实 HTTP 状态码）
func Error(c *gin.Context, status int, message string) {
	write(c, status, false, message, nil, nil)
}

// BadRequest 400 响应
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401 响应
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// Forbidden 403 响应
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

// NotFound 404 响应
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Conflict 409 响应
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

// Internal 500 响应
func Internal(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}
