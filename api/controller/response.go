package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SuccessResponse 成功响应：数据挂在key下，附带数量
func SuccessResponse(ctx *gin.Context, key string, data interface{}, count int) {
	ctx.JSON(http.StatusOK, gin.H{
		"status": "success",
		key:      data,
		"count":  count,
	})
}

// ErrorResponse 错误响应：机器可读code加人类可读message
func ErrorResponse(ctx *gin.Context, status int, code string, message string) {
	ctx.JSON(status, gin.H{
		"status": "error",
		"code":   code,
		"error":  message,
	})
}
