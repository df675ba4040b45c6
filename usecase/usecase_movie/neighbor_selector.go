package usecase_movie

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/cinematch/cinematch-server/domain/domain_auth/auth_interface"
	"github.com/cinematch/cinematch-server/domain/domain_movie/movie_interface"
	"github.com/cinematch/cinematch-server/domain/domain_movie/movie_models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultNeighborCount 邻居数上限
const DefaultNeighborCount = 5

// NeighborSelector 遍历全部其他用户，挑选品味最相近的前K个邻居
// 单个用户的计算失败只跳过该用户，不影响整体选择
type NeighborSelector struct {
	userRepo       auth_interface.UserRepository
	ratingRepo     movie_interface.RatingRepository
	similarityRepo movie_interface.UserSimilarityRepository
	topN           int
}

func NewNeighborSelector(
	userRepo auth_interface.UserRepository,
	ratingRepo movie_interface.RatingRepository,
	similarityRepo movie_interface.UserSimilarityRepository,
	topN int,
) *NeighborSelector {
	if topN <= 0 {
		topN = DefaultNeighborCount
	}
	return &NeighborSelector{
		userRepo:       userRepo,
		ratingRepo:     ratingRepo,
		similarityRepo: similarityRepo,
		topN:           topN,
	}
}

// Select 返回按相似度降序的至多topN个邻居，相似度恒为正
// ratings 为本次请求已读取的目标用户评分快照
func (s *NeighborSelector) Select(ctx context.Context, userID primitive.ObjectID, ratings []*movie_models.MovieRating) ([]movie_models.Neighbor, error) {
	targetVector := ratingVector(ratings)
	if len(targetVector) == 0 {
		return nil, nil
	}

	otherIDs, err := s.userRepo.GetAllIDsExcept(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var neighbors []movie_models.Neighbor

	for _, otherID := range otherIDs {
		// 请求级超时：无法完成时降级为"未找到相似用户"
		if ctx.Err() != nil {
			log.Printf("邻居扫描超时，已比较 %d/%d 个用户", len(neighbors), len(otherIDs))
			break
		}

		score, ok, err := s.similarityTo(ctx, userID, otherID, targetVector, now)
		if err != nil {
			log.Printf("跳过用户 %s: %v", otherID.Hex(), err)
			continue
		}
		if !ok {
			continue
		}

		// 只有正相关的用户才能作为邻居
		if score > 0 {
			neighbors = append(neighbors, movie_models.Neighbor{UserID: otherID, Score: score})
		}
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Score > neighbors[j].Score
	})
	if len(neighbors) > s.topN {
		neighbors = neighbors[:s.topN]
	}

	return neighbors, nil
}

// similarityTo 优先读取7天内的缓存，过期或缺失时重新计算并回写
func (s *NeighborSelector) similarityTo(
	ctx context.Context,
	userID, otherID primitive.ObjectID,
	targetVector map[int]float64,
	now time.Time,
) (float64, bool, error) {
	cached, err := s.similarityRepo.GetPair(ctx, userID, otherID)
	if err == nil && cached != nil && cached.Fresh(now) {
		return cached.Score, true, nil
	}

	otherRatings, err := s.ratingRepo.GetByUser(ctx, otherID)
	if err != nil {
		return 0, false, err
	}

	otherVector := ratingVector(otherRatings)
	if len(otherVector) == 0 {
		return 0, false, nil
	}

	score, ok := EstimateSimilarity(targetVector, otherVector)
	if !ok {
		return 0, false, nil
	}

	// 回写失败不阻断本次选择
	if err := s.similarityRepo.UpsertPair(ctx, userID, otherID, score); err != nil {
		log.Printf("相似度缓存回写失败 %s-%s: %v", userID.Hex(), otherID.Hex(), err)
	}

	return score, true, nil
}

// ratingVector 提取持有有效评分的影片向量，未评分条目不参与相似度计算
func ratingVector(ratings []*movie_models.MovieRating) map[int]float64 {
	vector := make(map[int]float64, len(ratings))
	for _, r := range ratings {
		if r.Rated() {
			vector[r.TmdbID] = *r.Rating
		}
	}
	return vector
}
