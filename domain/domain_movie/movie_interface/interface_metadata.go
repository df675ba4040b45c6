package movie_interface

import (
	"context"

	"github.com/cinematch/cinematch-server/domain/domain_movie/movie_models"
)

// MetadataResolver 外部影片元数据服务（TMDb）
type MetadataResolver interface {
	// Details 查询影片详情，未找到时返回 domain.ErrMovieNotFound
	Details(ctx context.Context, tmdbID int) (*movie_models.MovieDetails, error)

	// Search 按标题（可选年份，0表示不限）检索影片
	Search(ctx context.Context, title string, year int) ([]movie_models.MovieDetails, error)
}
