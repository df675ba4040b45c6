package usecase_movie

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/cinematch/cinematch-server/domain"
	"github.com/cinematch/cinematch-server/domain/domain_movie/movie_interface"
	"github.com/cinematch/cinematch-server/domain/domain_movie/movie_models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// 收藏少于3条时直接拒绝，任何阶段都不执行
	minRatingsCollaborative = 3
	// 内容推荐独立门槛：3或4条评分的用户只拿协同过滤结果
	minRatingsContent = 5

	phaseCandidateCount = 15
	maxRecommendations  = 20
)

// RecommendUsecase 混合推荐编排：协同过滤 + 内容推荐，合并去重排序
type RecommendUsecase struct {
	ratingRepo     movie_interface.RatingRepository
	similarityRepo movie_interface.UserSimilarityRepository
	collaborative  movie_interface.CollaborativeFilter
	content        movie_interface.ContentEngine
	timeout        time.Duration
}

func NewRecommendUsecase(
	ratingRepo movie_interface.RatingRepository,
	similarityRepo movie_interface.UserSimilarityRepository,
	collaborative movie_interface.CollaborativeFilter,
	content movie_interface.ContentEngine,
	timeout time.Duration,
) movie_interface.RecommendUsecase {
	return &RecommendUsecase{
		ratingRepo:     ratingRepo,
		similarityRepo: similarityRepo,
		collaborative:  collaborative,
		content:        content,
		timeout:        timeout,
	}
}

func (uc *RecommendUsecase) Recommend(ctx context.Context, userID primitive.ObjectID) ([]movie_models.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	// 读取即快照：两个阶段共用同一份评分数据
	ratings, err := uc.ratingRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(ratings) < minRatingsCollaborative {
		return nil, &domain.InsufficientDataError{Count: len(ratings)}
	}

	var merged []movie_models.Candidate

	// 协同过滤阶段：内部失败只记录，按零候选处理
	collabCandidates, err := uc.collaborative.Recommend(ctx, userID, ratings, phaseCandidateCount)
	if err != nil {
		log.Printf("用户 %s 协同过滤失败: %v", userID.Hex(), err)
		collabCandidates = nil
	}
	merged = append(merged, collabCandidates...)

	// 内容推荐阶段：失败同样不致命
	if len(ratings) >= minRatingsContent {
		contentCandidates, err := uc.content.Recommend(ctx, contentInput(ratings), phaseCandidateCount)
		if err != nil {
			log.Printf("用户 %s 内容推荐失败: %v", userID.Hex(), err)
			contentCandidates = nil
		}

		// 先到先得去重：冲突时协同过滤结果优先
		existing := make(map[int]bool, len(merged))
		for _, c := range merged {
			existing[c.TmdbID] = true
		}
		for _, c := range contentCandidates {
			if existing[c.TmdbID] {
				continue
			}
			existing[c.TmdbID] = true
			merged = append(merged, c)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].MatchScore > merged[j].MatchScore
	})
	if len(merged) > maxRecommendations {
		merged = merged[:maxRecommendations]
	}

	return merged, nil
}

// InvalidateSimilarityCache 清除该用户的过期相似度缓存（仅驱逐，不主动填充）
func (uc *RecommendUsecase) InvalidateSimilarityCache(ctx context.Context, userID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	cutoff := time.Now().Add(-movie_models.SimilarityTTL)
	deleted, err := uc.similarityRepo.DeleteStaleForUser(ctx, userID, cutoff)
	if err != nil {
		return err
	}

	log.Printf("已清理用户 %s 的 %d 条过期相似度缓存", userID.Hex(), deleted)
	return nil
}

// contentInput 转换为内容引擎的输入格式，未评分条目补缺省5分
func contentInput(ratings []*movie_models.MovieRating) []movie_models.RatedMovie {
	rated := make([]movie_models.RatedMovie, 0, len(ratings))
	for _, r := range ratings {
		rated = append(rated, movie_models.RatedMovie{
			TmdbID: r.TmdbID,
			Title:  r.Title,
			Rating: r.RatingOrDefault(),
			Genres: r.Genres,
			Year:   r.Year,
		})
	}
	return rated
}
