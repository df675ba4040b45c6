package route_movie

import (
	"time"

	"github.com/cinematch/cinematch-server/api/controller/controller_movie"
	"github.com/cinematch/cinematch-server/mongo"
	"github.com/cinematch/cinematch-server/repository/repository_auth"
	"github.com/cinematch/cinematch-server/repository/repository_movie"
	"github.com/cinematch/cinematch-server/tmdb"
	"github.com/cinematch/cinematch-server/usecase/usecase_movie"
	"github.com/gin-gonic/gin"
)

// NewRecommendRouter 注册混合推荐路由
func NewRecommendRouter(
	timeout time.Duration,
	db mongo.Database,
	tmdbClient *tmdb.Client,
	group *gin.RouterGroup,
) {
	// 初始化repository
	userRepo := repository_auth.NewUserRepository(db)
	ratingRepo := repository_movie.NewRatingRepository(db)
	similarityRepo := repository_movie.NewUserSimilarityRepository(db)

	// 初始化usecase
	selector := usecase_movie.NewNeighborSelector(userRepo, ratingRepo, similarityRepo, usecase_movie.DefaultNeighborCount)
	collaborative := usecase_movie.NewCollaborativeUsecase(selector, ratingRepo, tmdbClient)
	content := tmdb.NewContentEngine(tmdbClient)
	recommendUsecase := usecase_movie.NewRecommendUsecase(ratingRepo, similarityRepo, collaborative, content, timeout)

	// 初始化controller
	recommendCtrl := controller_movie.NewRecommendController(recommendUsecase)

	// 注册路由
	recommendGroup := group.Group("/recommendations")
	{
		recommendGroup.GET("", recommendCtrl.GetRecommendations)

		// 清理过期相似度缓存
		recommendGroup.POST("/invalidate", recommendCtrl.InvalidateCache)
	}
}
