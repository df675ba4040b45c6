package usecase_movie

import (
	"context"
	"testing"
	"time"

	"github.com/cinematch/cinematch-server/domain/domain_movie/movie_models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCollaborativeUsecase_WeightedScoring(t *testing.T) {
	target := primitive.NewObjectID()
	n1 := primitive.NewObjectID()
	n2 := primitive.NewObjectID()

	userRepo := &fakeUserRepo{ids: []primitive.ObjectID{target, n1, n2}}
	ratingRepo := newFakeRatingRepo()
	simRepo := newFakeSimilarityRepo()

	targetRatings := []*movie_models.MovieRating{
		ratedMovie(target, 1, 9),
		ratedMovie(target, 2, 8),
		ratedMovie(target, 3, 2),
		unratedMovie(target, 7), // 未评分但已在收藏中
	}
	ratingRepo.ratings[target] = targetRatings

	ratingRepo.ratings[n1] = []*movie_models.MovieRating{
		ratedMovie(n1, 1, 9), // 目标已看，排除
		ratedMovie(n1, 4, 10),
		unratedMovie(n1, 8), // 邻居未评分，不参与聚合
	}
	ratingRepo.ratings[n2] = []*movie_models.MovieRating{
		ratedMovie(n2, 4, 6),
		ratedMovie(n2, 5, 9),
		ratedMovie(n2, 7, 9), // 目标收藏中的未评分影片，排除
	}

	now := time.Now()
	simRepo.seed(target, n1, 0.8, now)
	simRepo.seed(target, n2, 0.6, now)

	metadata := &fakeMetadata{details: map[int]*movie_models.MovieDetails{
		4: {TmdbID: 4, Title: "Enriched Four", Year: 2001, Overview: "plot"},
	}}

	selector := NewNeighborSelector(userRepo, ratingRepo, simRepo, DefaultNeighborCount)
	uc := NewCollaborativeUsecase(selector, ratingRepo, metadata)

	candidates, err := uc.Recommend(context.Background(), target, targetRatings, 15)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	// item4: (10*0.8 + 6*0.6) / 2 = 5.8，item5: 9*0.6 / 1 = 5.4
	// 分母为邻居计数而非相似度之和
	assert.Equal(t, 4, candidates[0].TmdbID)
	assert.Equal(t, 5.8, candidates[0].MatchScore)
	assert.Equal(t, 5, candidates[1].TmdbID)
	assert.Equal(t, 5.4, candidates[1].MatchScore)

	for _, c := range candidates {
		assert.Equal(t, movie_models.SourceCollaborative, c.Source)
		assert.NotEmpty(t, c.Reasoning)
	}

	// 详情获取成功的候选被补全，失败的保留基础字段
	assert.Equal(t, "Enriched Four", candidates[0].Title)
	assert.Equal(t, "plot", candidates[0].Overview)
	assert.Equal(t, "movie", candidates[1].Title)
}

func TestCollaborativeUsecase_NoNeighbors(t *testing.T) {
	target := primitive.NewObjectID()

	userRepo := &fakeUserRepo{ids: []primitive.ObjectID{target}}
	ratingRepo := newFakeRatingRepo()
	targetRatings := []*movie_models.MovieRating{
		ratedMovie(target, 1, 8),
		ratedMovie(target, 2, 6),
	}

	selector := NewNeighborSelector(userRepo, ratingRepo, newFakeSimilarityRepo(), DefaultNeighborCount)
	uc := NewCollaborativeUsecase(selector, ratingRepo, &fakeMetadata{})

	candidates, err := uc.Recommend(context.Background(), target, targetRatings, 15)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestCollaborativeUsecase_CountCap(t *testing.T) {
	target := primitive.NewObjectID()
	neighbor := primitive.NewObjectID()

	userRepo := &fakeUserRepo{ids: []primitive.ObjectID{target, neighbor}}
	ratingRepo := newFakeRatingRepo()
	simRepo := newFakeSimilarityRepo()

	targetRatings := []*movie_models.MovieRating{ratedMovie(target, 1, 8), ratedMovie(target, 2, 6)}
	ratingRepo.ratings[target] = targetRatings

	for tmdbID := 100; tmdbID < 110; tmdbID++ {
		ratingRepo.ratings[neighbor] = append(ratingRepo.ratings[neighbor], ratedMovie(neighbor, tmdbID, 7))
	}
	simRepo.seed(target, neighbor, 0.9, time.Now())

	selector := NewNeighborSelector(userRepo, ratingRepo, simRepo, DefaultNeighborCount)
	uc := NewCollaborativeUsecase(selector, ratingRepo, &fakeMetadata{})

	candidates, err := uc.Recommend(context.Background(), target, targetRatings, 3)
	require.NoError(t, err)
	assert.Len(t, candidates, 3)
}
