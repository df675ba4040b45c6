package usecase_chat

import (
	"context"
	"testing"
	"time"

	"github.com/cinematch/cinematch-server/domain/domain_chat/chat_models"
	"github.com/cinematch/cinematch-server/domain/domain_movie/movie_models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testTimeout = 5 * time.Second

type fakeModel struct {
	reply   string
	history []chat_models.ChatMessage
}

func (f *fakeModel) Generate(_ context.Context, history []chat_models.ChatMessage) (string, error) {
	f.history = history
	return f.reply, nil
}

type fakeRatingRepo struct {
	ratings []*movie_models.MovieRating
}

func (f *fakeRatingRepo) GetByUser(_ context.Context, _ primitive.ObjectID) ([]*movie_models.MovieRating, error) {
	return f.ratings, nil
}

func (f *fakeRatingRepo) GetOne(_ context.Context, _ primitive.ObjectID, _ int) (*movie_models.MovieRating, error) {
	return nil, nil
}

func (f *fakeRatingRepo) Upsert(_ context.Context, _ *movie_models.MovieRating) error { return nil }

func (f *fakeRatingRepo) Delete(_ context.Context, _ primitive.ObjectID, _ int) error { return nil }

func (f *fakeRatingRepo) DeleteByUser(_ context.Context, _ primitive.ObjectID) (int64, error) {
	return 0, nil
}

func (f *fakeRatingRepo) Search(_ context.Context, _ primitive.ObjectID, _ string) ([]*movie_models.MovieRating, error) {
	return f.ratings, nil
}

type fakeMetadata struct {
	byTitle map[string]movie_models.MovieDetails
	queries []string
}

func (f *fakeMetadata) Details(_ context.Context, _ int) (*movie_models.MovieDetails, error) {
	return nil, nil
}

func (f *fakeMetadata) Search(_ context.Context, title string, _ int) ([]movie_models.MovieDetails, error) {
	f.queries = append(f.queries, title)
	if d, ok := f.byTitle[title]; ok {
		return []movie_models.MovieDetails{d}, nil
	}
	return nil, nil
}

func ratingPtr(v float64) *float64 { return &v }

func TestChat_InjectsCollectionPreamble(t *testing.T) {
	model := &fakeModel{reply: "Sure, what mood are you in?"}
	ratingRepo := &fakeRatingRepo{ratings: []*movie_models.MovieRating{
		{TmdbID: 1, Title: "Heat", Year: 1995, Rating: ratingPtr(9), Genres: []string{"Crime", "Thriller"}},
		{TmdbID: 2, Title: "Alien", Year: 1979, Rating: ratingPtr(8), Genres: []string{"Horror"}},
	}}

	uc := NewChatUsecase(model, ratingRepo, &fakeMetadata{}, testTimeout)

	reply, err := uc.Chat(context.Background(), primitive.NewObjectID(), "recommend something", nil)
	require.NoError(t, err)

	// 模型收到：上下文两条 + 用户消息
	require.Len(t, model.history, 3)
	assert.Contains(t, model.history[0].Text, "Heat")
	assert.Contains(t, model.history[0].Text, "Crime")
	assert.Equal(t, chat_models.RoleUser, model.history[0].Role)
	assert.Equal(t, "recommend something", model.history[2].Text)

	// 返回的历史追加了模型回复
	require.Len(t, reply.History, 4)
	assert.Equal(t, chat_models.RoleModel, reply.History[3].Role)
	assert.Equal(t, model.reply, reply.Message)
}

func TestChat_ReusesProvidedHistory(t *testing.T) {
	model := &fakeModel{reply: "ok"}
	uc := NewChatUsecase(model, &fakeRatingRepo{}, &fakeMetadata{}, testTimeout)

	history := []chat_models.ChatMessage{
		{Role: chat_models.RoleUser, Text: "context"},
		{Role: chat_models.RoleModel, Text: "noted"},
	}

	reply, err := uc.Chat(context.Background(), primitive.NewObjectID(), "next question", history)
	require.NoError(t, err)

	// 已有历史不再注入上下文
	require.Len(t, model.history, 3)
	assert.Equal(t, "context", model.history[0].Text)
	assert.Len(t, reply.History, 4)
}

func TestChat_ExtractsSuggestionsFromList(t *testing.T) {
	model := &fakeModel{reply: "Try these:\n1. Heat - a crime classic\n2. Alien (1979): sci-fi horror\nEnjoy!"}
	metadata := &fakeMetadata{byTitle: map[string]movie_models.MovieDetails{
		"Heat":  {TmdbID: 949, Title: "Heat"},
		"Alien": {TmdbID: 348, Title: "Alien"},
	}}

	uc := NewChatUsecase(model, &fakeRatingRepo{}, metadata, testTimeout)

	reply, err := uc.Chat(context.Background(), primitive.NewObjectID(), "recommend", nil)
	require.NoError(t, err)

	require.Len(t, reply.Suggestions, 2)
	assert.Equal(t, 949, reply.Suggestions[0].TmdbID)
	assert.Equal(t, 348, reply.Suggestions[1].TmdbID)
}

func TestChat_SkipsUnknownTitles(t *testing.T) {
	model := &fakeModel{reply: "1. Nonexistent Movie - you won't find it"}
	uc := NewChatUsecase(model, &fakeRatingRepo{}, &fakeMetadata{}, testTimeout)

	reply, err := uc.Chat(context.Background(), primitive.NewObjectID(), "recommend", nil)
	require.NoError(t, err)
	assert.Empty(t, reply.Suggestions)
}

func TestTitleOf(t *testing.T) {
	assert.Equal(t, "Heat", titleOf("Heat - a crime classic"))
	assert.Equal(t, "Alien", titleOf("Alien (1979): sci-fi horror"))
	assert.Equal(t, "The Thing", titleOf("**The Thing**"))
	assert.Equal(t, "Blade Runner", titleOf("\"Blade Runner\" (1982)"))
}
