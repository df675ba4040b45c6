package route_auth

import (
	"time"

	"github.com/cinematch/cinematch-server/api/controller/controller_auth"
	"github.com/cinematch/cinematch-server/bootstrap"
	"github.com/cinematch/cinematch-server/mongo"
	"github.com/cinematch/cinematch-server/repository/repository_auth"
	"github.com/cinematch/cinematch-server/repository/repository_movie"
	"github.com/cinematch/cinematch-server/usecase/usecase_auth"
	"github.com/gin-gonic/gin"
)

func newAuthController(env *bootstrap.Env, timeout time.Duration, db mongo.Database) *controller_auth.AuthController {
	// 初始化repository
	userRepo := repository_auth.NewUserRepository(db)
	ratingRepo := repository_movie.NewRatingRepository(db)
	similarityRepo := repository_movie.NewUserSimilarityRepository(db)

	// 初始化usecase
	authUsecase := usecase_auth.NewAuthUsecase(userRepo, ratingRepo, similarityRepo, timeout, env.AccessTokenSecret, env.AccessTokenExpiryHour)

	// 初始化controller
	return controller_auth.NewAuthController(authUsecase)
}

// NewAuthRouter 注册公开的注册/登录路由
func NewAuthRouter(
	env *bootstrap.Env,
	timeout time.Duration,
	db mongo.Database,
	group *gin.RouterGroup,
) {
	authCtrl := newAuthController(env, timeout, db)

	// 注册路由
	group.POST("/signup", authCtrl.Signup)
	group.POST("/login", authCtrl.Login)
}

// NewProfileRouter 注册需要鉴权的账号路由
func NewProfileRouter(
	env *bootstrap.Env,
	timeout time.Duration,
	db mongo.Database,
	group *gin.RouterGroup,
) {
	authCtrl := newAuthController(env, timeout, db)

	group.GET("/profile", authCtrl.Profile)
	group.POST("/auth/logout", authCtrl.Logout)
	group.DELETE("/profile", authCtrl.DeleteAccount)
}
