package usecase_movie

import (
	"context"
	"errors"
	"time"

	"github.com/cinematch/cinematch-server/domain/domain_auth/auth_models"
	"github.com/cinematch/cinematch-server/domain/domain_movie/movie_models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errDetailsUnavailable = errors.New("details unavailable")

func ratingPtr(v float64) *float64 {
	return &v
}

func ratedMovie(userID primitive.ObjectID, tmdbID int, rating float64) *movie_models.MovieRating {
	return &movie_models.MovieRating{
		UserID: userID,
		TmdbID: tmdbID,
		Title:  "movie",
		Rating: ratingPtr(rating),
	}
}

func unratedMovie(userID primitive.ObjectID, tmdbID int) *movie_models.MovieRating {
	return &movie_models.MovieRating{
		UserID: userID,
		TmdbID: tmdbID,
		Title:  "movie",
	}
}

// ---- 评分仓库 ----

type fakeRatingRepo struct {
	ratings map[primitive.ObjectID][]*movie_models.MovieRating
	getErr  map[primitive.ObjectID]error
	upserts []*movie_models.MovieRating
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{
		ratings: make(map[primitive.ObjectID][]*movie_models.MovieRating),
		getErr:  make(map[primitive.ObjectID]error),
	}
}

func (f *fakeRatingRepo) GetByUser(_ context.Context, userID primitive.ObjectID) ([]*movie_models.MovieRating, error) {
	if err := f.getErr[userID]; err != nil {
		return nil, err
	}
	return f.ratings[userID], nil
}

func (f *fakeRatingRepo) GetOne(_ context.Context, userID primitive.ObjectID, tmdbID int) (*movie_models.MovieRating, error) {
	for _, r := range f.ratings[userID] {
		if r.TmdbID == tmdbID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRatingRepo) Upsert(_ context.Context, rating *movie_models.MovieRating) error {
	f.upserts = append(f.upserts, rating)
	f.ratings[rating.UserID] = append(f.ratings[rating.UserID], rating)
	return nil
}

func (f *fakeRatingRepo) Delete(_ context.Context, userID primitive.ObjectID, tmdbID int) error {
	kept := f.ratings[userID][:0]
	for _, r := range f.ratings[userID] {
		if r.TmdbID != tmdbID {
			kept = append(kept, r)
		}
	}
	f.ratings[userID] = kept
	return nil
}

func (f *fakeRatingRepo) DeleteByUser(_ context.Context, userID primitive.ObjectID) (int64, error) {
	n := int64(len(f.ratings[userID]))
	delete(f.ratings, userID)
	return n, nil
}

func (f *fakeRatingRepo) Search(_ context.Context, userID primitive.ObjectID, _ string) ([]*movie_models.MovieRating, error) {
	return f.ratings[userID], nil
}

// ---- 相似度缓存仓库 ----

type fakeSimilarityRepo struct {
	entries    map[string]*movie_models.UserSimilarity
	upserts    int
	staleCalls []time.Time
}

func newFakeSimilarityRepo() *fakeSimilarityRepo {
	return &fakeSimilarityRepo{entries: make(map[string]*movie_models.UserSimilarity)}
}

func pairKey(a, b primitive.ObjectID) string {
	first, second := movie_models.CanonicalPair(a, b)
	return first.Hex() + ":" + second.Hex()
}

func (f *fakeSimilarityRepo) seed(a, b primitive.ObjectID, score float64, updatedAt time.Time) {
	first, second := movie_models.CanonicalPair(a, b)
	f.entries[pairKey(a, b)] = &movie_models.UserSimilarity{
		UserID1:   first,
		UserID2:   second,
		Score:     score,
		UpdatedAt: updatedAt,
	}
}

func (f *fakeSimilarityRepo) GetPair(_ context.Context, a, b primitive.ObjectID) (*movie_models.UserSimilarity, error) {
	return f.entries[pairKey(a, b)], nil
}

func (f *fakeSimilarityRepo) UpsertPair(_ context.Context, a, b primitive.ObjectID, score float64) error {
	f.upserts++
	f.seed(a, b, score, time.Now())
	return nil
}

func (f *fakeSimilarityRepo) DeleteStaleForUser(_ context.Context, userID primitive.ObjectID, cutoff time.Time) (int64, error) {
	f.staleCalls = append(f.staleCalls, cutoff)
	var deleted int64
	for key, entry := range f.entries {
		involved := entry.UserID1 == userID || entry.UserID2 == userID
		if involved && entry.UpdatedAt.Before(cutoff) {
			delete(f.entries, key)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeSimilarityRepo) DeleteForUser(_ context.Context, userID primitive.ObjectID) (int64, error) {
	var deleted int64
	for key, entry := range f.entries {
		if entry.UserID1 == userID || entry.UserID2 == userID {
			delete(f.entries, key)
			deleted++
		}
	}
	return deleted, nil
}

// ---- 用户仓库 ----

type fakeUserRepo struct {
	ids []primitive.ObjectID
}

func (f *fakeUserRepo) Create(_ context.Context, _ *auth_models.User) error { return nil }

func (f *fakeUserRepo) GetByID(_ context.Context, _ primitive.ObjectID) (*auth_models.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, _ string) (*auth_models.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, _ string) (*auth_models.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) GetAllIDsExcept(_ context.Context, id primitive.ObjectID) ([]primitive.ObjectID, error) {
	others := make([]primitive.ObjectID, 0, len(f.ids))
	for _, candidate := range f.ids {
		if candidate != id {
			others = append(others, candidate)
		}
	}
	return others, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, _ primitive.ObjectID) error { return nil }

// ---- 元数据服务 ----

type fakeMetadata struct {
	details map[int]*movie_models.MovieDetails
	results []movie_models.MovieDetails
	err     error
}

func (f *fakeMetadata) Details(_ context.Context, tmdbID int) (*movie_models.MovieDetails, error) {
	if f.err != nil {
		return nil, f.err
	}
	if d, ok := f.details[tmdbID]; ok {
		return d, nil
	}
	return nil, errDetailsUnavailable
}

func (f *fakeMetadata) Search(_ context.Context, _ string, _ int) ([]movie_models.MovieDetails, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

// ---- 推荐阶段 ----

type fakeCollaborative struct {
	candidates []movie_models.Candidate
	err        error
	calls      int
}

func (f *fakeCollaborative) Recommend(_ context.Context, _ primitive.ObjectID, _ []*movie_models.MovieRating, _ int) ([]movie_models.Candidate, error) {
	f.calls++
	return f.candidates, f.err
}

type fakeContent struct {
	candidates []movie_models.Candidate
	err        error
	calls      int
	lastInput  []movie_models.RatedMovie
}

func (f *fakeContent) Recommend(_ context.Context, rated []movie_models.RatedMovie, _ int) ([]movie_models.Candidate, error) {
	f.calls++
	f.lastInput = rated
	return f.candidates, f.err
}
