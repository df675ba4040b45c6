package tmdb

import (
	"context"
	"math"
	"sort"

	"github.com/cinematch/cinematch-server/domain/domain_movie/movie_interface"
	"github.com/cinematch/cinematch-server/domain/domain_movie/movie_models"
)

const (
	contentReasoning = "Matches your favorite genres"
	topGenreCount    = 3
	minGenreWeight   = 3.0 // 低于3分的评分不计入类型偏好
)

// ContentEngine 基于类型偏好的内容推荐：统计高分影片的类型权重，
// 取前三类型走discover接口拉取候选
type ContentEngine struct {
	client *Client
}

func NewContentEngine(client *Client) *ContentEngine {
	return &ContentEngine{client: client}
}

var _ movie_interface.ContentEngine = (*ContentEngine)(nil)

func (e *ContentEngine) Recommend(ctx context.Context, rated []movie_models.RatedMovie, count int) ([]movie_models.Candidate, error) {
	genres := topGenres(rated, topGenreCount)
	if len(genres) == 0 {
		return nil, nil
	}

	seen := make(map[int]bool, len(rated))
	for _, r := range rated {
		seen[r.TmdbID] = true
	}

	genreIDs := e.client.GenreIDs(ctx, genres)
	movies, err := e.client.Discover(ctx, genreIDs, 1)
	if err != nil {
		return nil, err
	}

	candidates := make([]movie_models.Candidate, 0, count)
	for _, m := range movies {
		if seen[m.TmdbID] {
			continue
		}
		candidates = append(candidates, movie_models.Candidate{
			TmdbID:     m.TmdbID,
			MatchScore: matchScore(m.Genres, genres),
			Title:      m.Title,
			Year:       m.Year,
			Genres:     m.Genres,
			PosterPath: m.PosterPath,
			Overview:   m.Overview,
			Reasoning:  contentReasoning,
			Source:     movie_models.SourceContent,
		})
		if len(candidates) >= count {
			break
		}
	}

	return candidates, nil
}

// topGenres 按评分加权统计类型偏好，返回权重最高的前n个类型名
func topGenres(rated []movie_models.RatedMovie, n int) []string {
	weights := make(map[string]float64)
	for _, r := range rated {
		if r.Rating < minGenreWeight {
			continue
		}
		for _, g := range r.Genres {
			weights[g] += r.Rating
		}
	}
	if len(weights) == 0 {
		return nil
	}

	names := make([]string, 0, len(weights))
	for g := range weights {
		names = append(names, g)
	}
	sort.Slice(names, func(i, j int) bool {
		if weights[names[i]] != weights[names[j]] {
			return weights[names[i]] > weights[names[j]]
		}
		return names[i] < names[j]
	})

	if len(names) > n {
		names = names[:n]
	}
	return names
}

// matchScore 候选与偏好类型的重合度，映射到0-10分一位小数
func matchScore(movieGenres, preferred []string) float64 {
	if len(preferred) == 0 {
		return 0
	}
	hits := 0
	for _, g := range movieGenres {
		for _, p := range preferred {
			if g == p {
				hits++
				break
			}
		}
	}
	score := 10 * float64(hits) / float64(len(preferred))
	return math.Round(score*10) / 10
}
