package utils

import (
	"github.com/gin-gonic/gin"
)

// Error 返回错误响应，消息放在 error 字段
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// NotFound 返回 404 错误
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Not found"
	}
	Error(c, 404, message)
}

// BadRequest 返回 400 错误
func BadRequest(c *gin.Context, message string) {
	Error(c, 400, message)
}

// InternalServerError 返回 500 错误
func InternalServerError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	Error(c, 500, message)
}
