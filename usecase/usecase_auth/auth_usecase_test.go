package usecase_auth

import (
	"context"
	"testing"
	"time"

	"github.com/cinematch/cinematch-server/domain"
	"github.com/cinematch/cinematch-server/domain/domain_auth/auth_interface"
	"github.com/cinematch/cinematch-server/domain/domain_auth/auth_models"
	"github.com/cinematch/cinematch-server/domain/domain_movie/movie_models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testTimeout = 5 * time.Second

type fakeUserRepo struct {
	users map[primitive.ObjectID]*auth_models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*auth_models.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *auth_models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*auth_models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*auth_models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*auth_models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetAllIDsExcept(_ context.Context, id primitive.ObjectID) ([]primitive.ObjectID, error) {
	var ids []primitive.ObjectID
	for uid := range f.users {
		if uid != id {
			ids = append(ids, uid)
		}
	}
	return ids, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeRatingRepo struct {
	ratings map[primitive.ObjectID][]*movie_models.MovieRating
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{ratings: make(map[primitive.ObjectID][]*movie_models.MovieRating)}
}

func (f *fakeRatingRepo) GetByUser(_ context.Context, userID primitive.ObjectID) ([]*movie_models.MovieRating, error) {
	return f.ratings[userID], nil
}

func (f *fakeRatingRepo) GetOne(_ context.Context, _ primitive.ObjectID, _ int) (*movie_models.MovieRating, error) {
	return nil, nil
}

func (f *fakeRatingRepo) Upsert(_ context.Context, rating *movie_models.MovieRating) error {
	f.ratings[rating.UserID] = append(f.ratings[rating.UserID], rating)
	return nil
}

func (f *fakeRatingRepo) Delete(_ context.Context, _ primitive.ObjectID, _ int) error { return nil }

func (f *fakeRatingRepo) DeleteByUser(_ context.Context, userID primitive.ObjectID) (int64, error) {
	n := int64(len(f.ratings[userID]))
	delete(f.ratings, userID)
	return n, nil
}

func (f *fakeRatingRepo) Search(_ context.Context, userID primitive.ObjectID, _ string) ([]*movie_models.MovieRating, error) {
	return f.ratings[userID], nil
}

type fakeSimilarityRepo struct {
	entries []*movie_models.UserSimilarity
}

func (f *fakeSimilarityRepo) GetPair(_ context.Context, a, b primitive.ObjectID) (*movie_models.UserSimilarity, error) {
	first, second := movie_models.CanonicalPair(a, b)
	for _, e := range f.entries {
		if e.UserID1 == first && e.UserID2 == second {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeSimilarityRepo) UpsertPair(_ context.Context, a, b primitive.ObjectID, score float64) error {
	first, second := movie_models.CanonicalPair(a, b)
	f.entries = append(f.entries, &movie_models.UserSimilarity{
		UserID1: first, UserID2: second, Score: score, UpdatedAt: time.Now(),
	})
	return nil
}

func (f *fakeSimilarityRepo) DeleteStaleForUser(_ context.Context, _ primitive.ObjectID, _ time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeSimilarityRepo) DeleteForUser(_ context.Context, userID primitive.ObjectID) (int64, error) {
	var kept []*movie_models.UserSimilarity
	var removed int64
	for _, e := range f.entries {
		if e.UserID1 == userID || e.UserID2 == userID {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	f.entries = kept
	return removed, nil
}

func newTestUsecase(users *fakeUserRepo, ratings *fakeRatingRepo, similarities *fakeSimilarityRepo) auth_interface.AuthUsecase {
	return NewAuthUsecase(users, ratings, similarities, testTimeout, "secret", 1)
}

func TestSignupAndLogin(t *testing.T) {
	uc := newTestUsecase(newFakeUserRepo(), newFakeRatingRepo(), &fakeSimilarityRepo{})

	token, user, err := uc.Signup(context.Background(), "moviefan", "fan@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	require.NotNil(t, user)
	assert.NotEqual(t, "password123", user.PasswordHash, "密码必须散列存储")

	token, loggedIn, err := uc.Login(context.Background(), "moviefan", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestSignup_DuplicateUsername(t *testing.T) {
	uc := newTestUsecase(newFakeUserRepo(), newFakeRatingRepo(), &fakeSimilarityRepo{})

	_, _, err := uc.Signup(context.Background(), "moviefan", "a@example.com", "password123")
	require.NoError(t, err)

	_, _, err = uc.Signup(context.Background(), "moviefan", "b@example.com", "password123")
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	uc := newTestUsecase(newFakeUserRepo(), newFakeRatingRepo(), &fakeSimilarityRepo{})

	_, _, err := uc.Signup(context.Background(), "first", "same@example.com", "password123")
	require.NoError(t, err)

	_, _, err = uc.Signup(context.Background(), "second", "same@example.com", "password123")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLogin_BadCredentials(t *testing.T) {
	uc := newTestUsecase(newFakeUserRepo(), newFakeRatingRepo(), &fakeSimilarityRepo{})

	_, _, err := uc.Signup(context.Background(), "moviefan", "fan@example.com", "password123")
	require.NoError(t, err)

	_, _, err = uc.Login(context.Background(), "moviefan", "wrongpass")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// 不存在的用户返回同样的错误，不泄露注册信息
	_, _, err = uc.Login(context.Background(), "nobody", "password123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestProfile(t *testing.T) {
	uc := newTestUsecase(newFakeUserRepo(), newFakeRatingRepo(), &fakeSimilarityRepo{})

	_, user, err := uc.Signup(context.Background(), "moviefan", "fan@example.com", "password123")
	require.NoError(t, err)

	fetched, err := uc.Profile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "moviefan", fetched.Username)

	_, err = uc.Profile(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestDeleteAccount_Cascades(t *testing.T) {
	users := newFakeUserRepo()
	ratings := newFakeRatingRepo()
	similarities := &fakeSimilarityRepo{}
	uc := newTestUsecase(users, ratings, similarities)

	_, user, err := uc.Signup(context.Background(), "moviefan", "fan@example.com", "password123")
	require.NoError(t, err)
	other := primitive.NewObjectID()

	require.NoError(t, ratings.Upsert(context.Background(), &movie_models.MovieRating{UserID: user.ID, TmdbID: 603, Title: "The Matrix"}))
	require.NoError(t, ratings.Upsert(context.Background(), &movie_models.MovieRating{UserID: other, TmdbID: 603, Title: "The Matrix"}))
	require.NoError(t, similarities.UpsertPair(context.Background(), user.ID, other, 0.8))

	require.NoError(t, uc.DeleteAccount(context.Background(), user.ID))

	// 用户文档、评分、相似度缓存全部清除
	_, err = uc.Profile(context.Background(), user.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Empty(t, ratings.ratings[user.ID])
	assert.Empty(t, similarities.entries)

	// 其他用户的评分不受影响
	assert.Len(t, ratings.ratings[other], 1)
}

func TestDeleteAccount_UnknownUser(t *testing.T) {
	uc := newTestUsecase(newFakeUserRepo(), newFakeRatingRepo(), &fakeSimilarityRepo{})

	err := uc.DeleteAccount(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
