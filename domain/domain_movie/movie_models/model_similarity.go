package movie_models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SimilarityTTL 相似度缓存有效期，超过视为过期，必须重新计算
const SimilarityTTL = 7 * 24 * time.Hour

// UserSimilarity 用户对相似度缓存，UserID1/UserID2 按十六进制序规范化存储
// 可随时由评分数据重建，不承载独立事实
type UserSimilarity struct {
	ID      primitive.ObjectID `bson:"_id"`
	UserID1 primitive.ObjectID `bson:"user_id_1"`
	UserID2 primitive.ObjectID `bson:"user_id_2"`
	Score   float64            `bson:"similarity_score"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Fresh 判断缓存条目是否仍在有效期内
func (s *UserSimilarity) Fresh(now time.Time) bool {
	return now.Sub(s.UpdatedAt) <= SimilarityTTL
}

// CanonicalPair 规范化用户对顺序，保证同一用户对只存一条
func CanonicalPair(a, b primitive.ObjectID) (primitive.ObjectID, primitive.ObjectID) {
	if a.Hex() > b.Hex() {
		return b, a
	}
	return a, b
}
