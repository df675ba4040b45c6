package movie_interface

import (
	"context"

	"github.com/cinematch/cinematch-server/domain/domain_movie/movie_models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RatingRepository interface {
	// GetByUser 返回用户全部评分记录，一次请求内只读取一次（读取即快照）
	GetByUser(ctx context.Context, userID primitive.ObjectID) ([]*movie_models.MovieRating, error)

	// GetOne 查询单条记录，不存在时返回 (nil, nil)
	GetOne(ctx context.Context, userID primitive.ObjectID, tmdbID int) (*movie_models.MovieRating, error)

	// Upsert 以 (user_id, tmdb_id) 为键插入或更新
	Upsert(ctx context.Context, rating *movie_models.MovieRating) error

	Delete(ctx context.Context, userID primitive.ObjectID, tmdbID int) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)

	// Search 按标题或标题拼音模糊检索用户收藏
	Search(ctx context.Context, userID primitive.ObjectID, keyword string) ([]*movie_models.MovieRating, error)
}
