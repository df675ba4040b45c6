package repository_movie

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cinematch/cinematch-server/domain"
	"github.com/cinematch/cinematch-server/domain/domain_movie/movie_interface"
	"github.com/cinematch/cinematch-server/domain/domain_movie/movie_models"
	"github.com/cinematch/cinematch-server/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	driver "go.mongodb.org/mongo-driver/mongo"
)

type ratingRepository struct {
	db         mongo.Database
	collection string
}

func NewRatingRepository(db mongo.Database) movie_interface.RatingRepository {
	return &ratingRepository{
		db:         db,
		collection: domain.CollectionMovieRating,
	}
}

func (r *ratingRepository) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]*movie_models.MovieRating, error) {
	coll := r.db.Collection(r.collection)

	cursor, err := coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to find ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var ratings []*movie_models.MovieRating
	for cursor.Next(ctx) {
		var rating movie_models.MovieRating
		if err := cursor.Decode(&rating); err != nil {
			return nil, fmt.Errorf("failed to decode rating: %w", err)
		}
		ratings = append(ratings, &rating)
	}

	return ratings, nil
}

func (r *ratingRepository) GetOne(ctx context.Context, userID primitive.ObjectID, tmdbID int) (*movie_models.MovieRating, error) {
	coll := r.db.Collection(r.collection)

	var rating movie_models.MovieRating
	err := coll.FindOne(ctx, bson.M{"user_id": userID, "tmdb_id": tmdbID}).Decode(&rating)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, nil // 没找到返回nil，不是错误
		}
		return nil, fmt.Errorf("failed to find rating: %w", err)
	}

	return &rating, nil
}

// Upsert 以 (user_id, tmdb_id) 为键写入，重复添加即更新
func (r *ratingRepository) Upsert(ctx context.Context, rating *movie_models.MovieRating) error {
	if rating == nil {
		return errors.New("rating cannot be nil")
	}

	now := time.Now()
	filter := bson.M{"user_id": rating.UserID, "tmdb_id": rating.TmdbID}

	set := bson.M{
		"title":             rating.Title,
		"genres":            rating.Genres,
		"year":              rating.Year,
		"poster_path":       rating.PosterPath,
		"title_pinyin_full": rating.TitlePinyinFull,
		"updated_at":        now,
	}
	// 局部更新：未携带的评分/观影日期不覆盖既有值
	if rating.Rating != nil {
		set["rating"] = *rating.Rating
	}
	if rating.WatchedDate != nil {
		set["watched_date"] = *rating.WatchedDate
	}

	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"user_id":    rating.UserID,
			"tmdb_id":    rating.TmdbID,
			"created_at": now,
		},
	}

	coll := r.db.Collection(r.collection)
	opts := options.Update().SetUpsert(true)
	if _, err := coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert rating: %w", err)
	}

	return nil
}

func (r *ratingRepository) Delete(ctx context.Context, userID primitive.ObjectID, tmdbID int) error {
	coll := r.db.Collection(r.collection)

	deletedCount, err := coll.DeleteOne(ctx, bson.M{"user_id": userID, "tmdb_id": tmdbID})
	if err != nil {
		return fmt.Errorf("failed to delete rating: %w", err)
	}
	if deletedCount == 0 {
		return domain.ErrMovieNotFound
	}

	return nil
}

func (r *ratingRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	coll := r.db.Collection(r.collection)

	deletedCount, err := coll.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete ratings: %w", err)
	}

	return deletedCount, nil
}

// Search 标题或标题拼音模糊匹配
func (r *ratingRepository) Search(ctx context.Context, userID primitive.ObjectID, keyword string) ([]*movie_models.MovieRating, error) {
	coll := r.db.Collection(r.collection)

	filter := bson.M{
		"user_id": userID,
		"$or": bson.A{
			bson.M{"title": bson.M{"$regex": keyword, "$options": "i"}},
			bson.M{"title_pinyin_full": bson.M{"$regex": keyword, "$options": "i"}},
		},
	}

	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var ratings []*movie_models.MovieRating
	for cursor.Next(ctx) {
		var rating movie_models.MovieRating
		if err := cursor.Decode(&rating); err != nil {
			return nil, fmt.Errorf("failed to decode rating: %w", err)
		}
		ratings = append(ratings, &rating)
	}

	return ratings, nil
}
