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

type similarityRepository struct {
	db         mongo.Database
	collection string
}

func NewUserSimilarityRepository(db mongo.Database) movie_interface.UserSimilarityRepository {
	return &similarityRepository{
		db:         db,
		collection: domain.CollectionUserSimilarity,
	}
}

func (r *similarityRepository) GetPair(ctx context.Context, a, b primitive.ObjectID) (*movie_models.UserSimilarity, error) {
	u1, u2 := movie_models.CanonicalPair(a, b)
	coll := r.db.Collection(r.collection)

	var entry movie_models.UserSimilarity
	err := coll.FindOne(ctx, bson.M{"user_id_1": u1, "user_id_2": u2}).Decode(&entry)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find similarity: %w", err)
	}

	return &entry, nil
}

func (r *similarityRepository) UpsertPair(ctx context.Context, a, b primitive.ObjectID, score float64) error {
	u1, u2 := movie_models.CanonicalPair(a, b)
	now := time.Now()

	filter := bson.M{"user_id_1": u1, "user_id_2": u2}
	update := bson.M{
		"$set": bson.M{
			"similarity_score": score,
			"updated_at":       now,
		},
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"user_id_1":  u1,
			"user_id_2":  u2,
			"created_at": now,
		},
	}

	coll := r.db.Collection(r.collection)
	opts := options.Update().SetUpsert(true)
	if _, err := coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert similarity: %w", err)
	}

	return nil
}

// DeleteStaleForUser 只清除过期条目，新鲜条目与无关用户不受影响
func (r *similarityRepository) DeleteStaleForUser(ctx context.Context, userID primitive.ObjectID, cutoff time.Time) (int64, error) {
	coll := r.db.Collection(r.collection)

	filter := bson.M{
		"$or": bson.A{
			bson.M{"user_id_1": userID},
			bson.M{"user_id_2": userID},
		},
		"updated_at": bson.M{"$lt": cutoff},
	}

	deletedCount, err := coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale similarities: %w", err)
	}

	return deletedCount, nil
}

func (r *similarityRepository) DeleteForUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	coll := r.db.Collection(r.collection)

	filter := bson.M{
		"$or": bson.A{
			bson.M{"user_id_1": userID},
			bson.M{"user_id_2": userID},
		},
	}

	deletedCount, err := coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete similarities: %w", err)
	}

	return deletedCount, nil
}
