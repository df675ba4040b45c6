package route_movie

import (
	"time"

	"github.com/cinematch/cinematch-server/api/controller/controller_movie"
	"github.com/cinematch/cinematch-server/mongo"
	"github.com/cinematch/cinematch-server/repository/repository_movie"
	"github.com/cinematch/cinematch-server/tmdb"
	"github.com/cinematch/cinematch-server/usecase/usecase_movie"
	"github.com/gin-gonic/gin"
)

// NewCollectionRouter 注册收藏管理与CSV导入路由
func NewCollectionRouter(
	timeout time.Duration,
	db mongo.Database,
	tmdbClient *tmdb.Client,
	group *gin.RouterGroup,
) {
	// 初始化repository
	ratingRepo := repository_movie.NewRatingRepository(db)

	// 初始化usecase
	collectionUsecase := usecase_movie.NewCollectionUsecase(ratingRepo, tmdbClient, timeout)
	importUsecase := usecase_movie.NewCSVImportUsecase(ratingRepo, tmdbClient, timeout)

	// 初始化controller
	collectionCtrl := controller_movie.NewCollectionController(collectionUsecase, importUsecase)

	// 注册路由
	movieGroup := group.Group("/movies")
	{
		// 收藏列表与收藏内检索
		movieGroup.GET("", collectionCtrl.List)
		movieGroup.GET("/search", collectionCtrl.Search)

		// 外部元数据检索（添加收藏前选择）
		// GET /movies/lookup?title=xxx[&year=2020]
		movieGroup.GET("/lookup", collectionCtrl.Lookup)

		movieGroup.POST("", collectionCtrl.Add)
		movieGroup.DELETE("/:tmdb_id", collectionCtrl.Delete)

		// CSV批量导入，multipart字段名file
		movieGroup.POST("/import", collectionCtrl.ImportCSV)
	}

	// 详情代理单独挂单数路径，不要求影片在收藏中
	// GET /movie/:tmdb_id
	group.GET("/movie/:tmdb_id", collectionCtrl.Detail)
}
