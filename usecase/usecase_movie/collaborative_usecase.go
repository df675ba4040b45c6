package usecase_movie

import (
	"context"
	"log"
	"math"
	"sort"

	"github.com/cinematch/cinematch-server/domain/domain_movie/movie_interface"
	"github.com/cinematch/cinematch-server/domain/domain_movie/movie_models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const collaborativeReasoning = "Recommended by users with similar taste"

// CollaborativeUsecase 协同过滤：聚合邻居对目标用户未看影片的加权评分
type CollaborativeUsecase struct {
	selector   *NeighborSelector
	ratingRepo movie_interface.RatingRepository
	metadata   movie_interface.MetadataResolver
}

func NewCollaborativeUsecase(
	selector *NeighborSelector,
	ratingRepo movie_interface.RatingRepository,
	metadata movie_interface.MetadataResolver,
) movie_interface.CollaborativeFilter {
	return &CollaborativeUsecase{
		selector:   selector,
		ratingRepo: ratingRepo,
		metadata:   metadata,
	}
}

type movieScore struct {
	total float64
	count int
	// 邻居评分行携带的基础元数据，详情获取失败时兜底
	title      string
	year       int
	genres     []string
	posterPath string
}

func (uc *CollaborativeUsecase) Recommend(
	ctx context.Context,
	userID primitive.ObjectID,
	ratings []*movie_models.MovieRating,
	count int,
) ([]movie_models.Candidate, error) {
	neighbors, err := uc.selector.Select(ctx, userID, ratings)
	if err != nil {
		return nil, err
	}
	if len(neighbors) == 0 {
		log.Printf("用户 %s 没有相似用户", userID.Hex())
		return nil, nil
	}

	// 未评分条目同样算作"已在收藏中"，不再推荐
	seen := make(map[int]bool, len(ratings))
	for _, r := range ratings {
		seen[r.TmdbID] = true
	}

	// 聚合顺序无关：加权和与计数均可交换
	scores := make(map[int]*movieScore)
	for _, neighbor := range neighbors {
		neighborRatings, err := uc.ratingRepo.GetByUser(ctx, neighbor.UserID)
		if err != nil {
			log.Printf("读取邻居 %s 评分失败: %v", neighbor.UserID.Hex(), err)
			continue
		}

		for _, r := range neighborRatings {
			if seen[r.TmdbID] || !r.Rated() {
				continue
			}

			entry, ok := scores[r.TmdbID]
			if !ok {
				entry = &movieScore{
					title:      r.Title,
					year:       r.Year,
					genres:     r.Genres,
					posterPath: r.PosterPath,
				}
				scores[r.TmdbID] = entry
			}
			entry.total += *r.Rating * neighbor.Score
			entry.count++
		}
	}

	// 分母取邻居计数而非相似度之和：少数高相似邻居推荐的影片
	// 不会仅因计数少而被惩罚，该公式沿用已有排序语义，勿随意更改
	candidates := make([]movie_models.Candidate, 0, len(scores))
	for tmdbID, entry := range scores {
		candidates = append(candidates, movie_models.Candidate{
			TmdbID:     tmdbID,
			MatchScore: roundScore(entry.total / float64(entry.count)),
			Title:      entry.title,
			Year:       entry.year,
			Genres:     entry.genres,
			PosterPath: entry.posterPath,
			Reasoning:  collaborativeReasoning,
			Source:     movie_models.SourceCollaborative,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MatchScore > candidates[j].MatchScore
	})
	if count > 0 && len(candidates) > count {
		candidates = candidates[:count]
	}

	// 只为最终入选的候选拉取完整详情，失败时保留基础字段而不丢弃候选
	for i := range candidates {
		details, err := uc.metadata.Details(ctx, candidates[i].TmdbID)
		if err != nil {
			log.Printf("获取影片 %d 详情失败: %v", candidates[i].TmdbID, err)
			continue
		}
		candidates[i].Title = details.Title
		candidates[i].Year = details.Year
		candidates[i].Genres = details.Genres
		candidates[i].PosterPath = details.PosterPath
		candidates[i].Overview = details.Overview
	}

	return candidates, nil
}

// roundScore 匹配分保留一位小数
func roundScore(score float64) float64 {
	return math.Round(score*10) / 10
}
