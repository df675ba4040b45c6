package movie_interface

import (
	"context"

	"github.com/cinematch/cinematch-server/domain/domain_movie/movie_models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecommendUsecase 混合推荐编排入口，服务层唯一调用面
type RecommendUsecase interface {
	// Recommend 评分不足3条时返回 *domain.InsufficientDataError
	Recommend(ctx context.Context, userID primitive.ObjectID) ([]movie_models.Candidate, error)

	// InvalidateSimilarityCache 清除该用户的过期相似度缓存
	InvalidateSimilarityCache(ctx context.Context, userID primitive.ObjectID) error
}

// CollaborativeFilter 协同过滤阶段（邻居选择 + 加权聚合）
type CollaborativeFilter interface {
	Recommend(ctx context.Context, userID primitive.ObjectID, ratings []*movie_models.MovieRating, count int) ([]movie_models.Candidate, error)
}
