package middleware

import (
	"net/http"
	"strings"

	"github.com/cinematch/cinematch-server/api/controller"
	"github.com/cinematch/cinematch-server/internal/tokenutil"
	"github.com/gin-gonic/gin"
)

// JwtAuthMiddleware 校验Bearer令牌，通过后把用户ID写入x-user-id
func JwtAuthMiddleware(secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			controller.ErrorResponse(ctx, http.StatusUnauthorized, "UNAUTHORIZED", "缺少或格式错误的Authorization头")
			ctx.Abort()
			return
		}

		token := parts[1]
		authorized, err := tokenutil.IsAuthorized(token, secret)
		if err != nil || !authorized {
			controller.ErrorResponse(ctx, http.StatusUnauthorized, "UNAUTHORIZED", "令牌无效或已过期")
			ctx.Abort()
			return
		}

		userID, err := tokenutil.ExtractIDFromToken(token, secret)
		if err != nil {
			controller.ErrorResponse(ctx, http.StatusUnauthorized, "UNAUTHORIZED", "令牌无效或已过期")
			ctx.Abort()
			return
		}

		ctx.Set("x-user-id", userID)
		ctx.Next()
	}
}
