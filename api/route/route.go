package route

import (
	"time"

	"github.com/cinematch/cinematch-server/api/middleware"
	"github.com/cinematch/cinematch-server/api/route/route_auth"
	"github.com/cinematch/cinematch-server/api/route/route_chat"
	"github.com/cinematch/cinematch-server/api/route/route_movie"
	"github.com/cinematch/cinematch-server/bootstrap"
	"github.com/cinematch/cinematch-server/gemini"
	"github.com/cinematch/cinematch-server/mongo"
	"github.com/cinematch/cinematch-server/tmdb"
	"github.com/gin-gonic/gin"
)

func Setup(env *bootstrap.Env, timeout time.Duration, db mongo.Database, engine *gin.Engine) {
	engine.Use(middleware.RequestIDMiddleware())

	// 外部客户端全局共享，类型表等缓存只建一份
	tmdbClient := tmdb.NewClient(env.TMDBAPIKey)
	geminiClient := gemini.NewClient(env.GeminiAPIKey)

	// 公开路由
	publicRouter := engine.Group("/api/auth")
	route_auth.NewAuthRouter(env, timeout, db, publicRouter)

	// 受保护路由
	protectedRouter := engine.Group("/api")
	protectedRouter.Use(middleware.JwtAuthMiddleware(env.AccessTokenSecret))

	route_auth.NewProfileRouter(env, timeout, db, protectedRouter)
	route_movie.NewCollectionRouter(timeout, db, tmdbClient, protectedRouter)
	route_movie.NewRecommendRouter(timeout, db, tmdbClient, protectedRouter)
	route_chat.NewChatRouter(timeout, db, geminiClient, tmdbClient, protectedRouter)
}
