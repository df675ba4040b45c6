package repository_auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cinematch/cinematch-server/domain"
	"github.com/cinematch/cinematch-server/domain/domain_auth/auth_interface"
	"github.com/cinematch/cinematch-server/domain/domain_auth/auth_models"
	"github.com/cinematch/cinematch-server/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	driver "go.mongodb.org/mongo-driver/mongo"
)

type userRepository struct {
	db         mongo.Database
	collection string
}

func NewUserRepository(db mongo.Database) auth_interface.UserRepository {
	return &userRepository{
		db:         db,
		collection: domain.CollectionUser,
	}
}

func (r *userRepository) Create(ctx context.Context, user *auth_models.User) error {
	if user == nil {
		return errors.New("user cannot be nil")
	}

	now := time.Now()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	coll := r.db.Collection(r.collection)
	if _, err := coll.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*auth_models.User, error) {
	return r.getOne(ctx, bson.M{"_id": id})
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*auth_models.User, error) {
	return r.getOne(ctx, bson.M{"username": username})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*auth_models.User, error) {
	return r.getOne(ctx, bson.M{"email": email})
}

func (r *userRepository) getOne(ctx context.Context, filter bson.M) (*auth_models.User, error) {
	coll := r.db.Collection(r.collection)

	var user auth_models.User
	err := coll.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetAllIDsExcept(ctx context.Context, id primitive.ObjectID) ([]primitive.ObjectID, error) {
	coll := r.db.Collection(r.collection)

	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := coll.Find(ctx, bson.M{"_id": bson.M{"$ne": id}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []primitive.ObjectID
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode user id: %w", err)
		}
		ids = append(ids, doc.ID)
	}

	return ids, nil
}

// Delete 只删除用户文档，级联清理由用例层编排
func (r *userRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	coll := r.db.Collection(r.collection)
	deletedCount, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if deletedCount == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}
