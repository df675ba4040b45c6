package movie_interface

import (
	"context"
	"time"

	"github.com/cinematch/cinematch-server/domain/domain_movie/movie_models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserSimilarityRepository interface {
	// GetPair 查询用户对缓存，入参顺序无关，不存在时返回 (nil, nil)
	GetPair(ctx context.Context, a, b primitive.ObjectID) (*movie_models.UserSimilarity, error)

	// UpsertPair 写入用户对相似度，内部按规范顺序存储
	UpsertPair(ctx context.Context, a, b primitive.ObjectID, score float64) error

	// DeleteStaleForUser 删除涉及该用户且更新时间早于 cutoff 的条目
	DeleteStaleForUser(ctx context.Context, userID primitive.ObjectID, cutoff time.Time) (int64, error)

	DeleteForUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
}
