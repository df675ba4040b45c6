package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestIDMiddleware 为每个请求生成或透传请求ID，便于日志追踪
func RequestIDMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx.Set("x-request-id", requestID)
		ctx.Header(requestIDHeader, requestID)
		ctx.Next()
	}
}
