package tmdb

import (
	"testing"

	"github.com/cinematch/cinematch-server/domain/domain_movie/movie_models"
	"github.com/stretchr/testify/assert"
)

func TestTopGenres_WeightedByRating(t *testing.T) {
	rated := []movie_models.RatedMovie{
		{TmdbID: 1, Rating: 9, Genres: []string{"Crime", "Thriller"}},
		{TmdbID: 2, Rating: 8, Genres: []string{"Crime"}},
		{TmdbID: 3, Rating: 7, Genres: []string{"Horror"}},
		{TmdbID: 4, Rating: 6, Genres: []string{"Comedy"}},
		{TmdbID: 5, Rating: 2, Genres: []string{"Romance"}}, // 低分不计入偏好
	}

	genres := topGenres(rated, 3)
	assert.Equal(t, []string{"Crime", "Thriller", "Horror"}, genres)
}

func TestTopGenres_Empty(t *testing.T) {
	assert.Nil(t, topGenres(nil, 3))
	assert.Nil(t, topGenres([]movie_models.RatedMovie{
		{TmdbID: 1, Rating: 2, Genres: []string{"Drama"}},
	}, 3))
}

func TestMatchScore(t *testing.T) {
	preferred := []string{"Crime", "Thriller", "Drama"}

	assert.Equal(t, 10.0, matchScore([]string{"Crime", "Thriller", "Drama"}, preferred))
	assert.Equal(t, 3.3, matchScore([]string{"Crime", "Comedy"}, preferred))
	assert.Equal(t, 0.0, matchScore([]string{"Comedy"}, preferred))
	assert.Equal(t, 0.0, matchScore([]string{"Crime"}, nil))
}

func TestYearOf(t *testing.T) {
	assert.Equal(t, 1999, yearOf("1999-03-31"))
	assert.Equal(t, 0, yearOf(""))
	assert.Equal(t, 0, yearOf("n/a"))
}
