package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/cinematch/cinematch-server/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func CreateIndexes(db Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// User Collection
	userCollection := db.Collection(domain.CollectionUser)
	createUniqueIndex(ctx, userCollection, bson.D{{Key: "username", Value: 1}}, "username_unique")
	createUniqueIndex(ctx, userCollection, bson.D{{Key: "email", Value: 1}}, "email_unique")

	// MovieRating Collection
	ratingCollection := db.Collection(domain.CollectionMovieRating)
	// 唯一约束：同一用户同一影片至多一条评分
	createUniqueIndex(ctx, ratingCollection, bson.D{
		{Key: "user_id", Value: 1},
		{Key: "tmdb_id", Value: 1}}, "user_movie_unique")
	createIndex(ctx, ratingCollection, bson.D{{Key: "user_id", Value: 1}}, "user_id")
	createIndex(ctx, ratingCollection, bson.D{{Key: "tmdb_id", Value: 1}}, "tmdb_id")
	// 拼音检索键
	createIndex(ctx, ratingCollection, bson.D{{Key: "title_pinyin_full", Value: 1}}, "title_pinyin_full")

	// UserSimilarity Collection
	similarityCollection := db.Collection(domain.CollectionUserSimilarity)
	// 唯一约束：规范顺序下的用户对至多一条缓存
	createUniqueIndex(ctx, similarityCollection, bson.D{
		{Key: "user_id_1", Value: 1},
		{Key: "user_id_2", Value: 1}}, "user_pair_unique")
	createIndex(ctx, similarityCollection, bson.D{{Key: "user_id_1", Value: 1}}, "user_id_1")
	createIndex(ctx, similarityCollection, bson.D{{Key: "user_id_2", Value: 1}}, "user_id_2")
	// 过期扫描用
	createIndex(ctx, similarityCollection, bson.D{{Key: "updated_at", Value: -1}}, "updated_at")
}

func createIndex(ctx context.Context, collection Collection, keys bson.D, name string) {
	indexModel := mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetName(name),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		fmt.Printf("创建索引 '%s' 失败: %v\n", name, err)
	}
}

func createUniqueIndex(ctx context.Context, collection Collection, keys bson.D, name string) {
	indexModel := mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetName(name).SetUnique(true),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		fmt.Printf("创建唯一索引 '%s' 失败: %v\n", name, err)
	}
}

func DropAllIndexes(db Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collections := []string{
		domain.CollectionUser,
		domain.CollectionMovieRating,
		domain.CollectionUserSimilarity,
	}

	for _, collName := range collections {
		collection := db.Collection(collName)
		if _, err := collection.Indexes().DropAll(ctx); err != nil {
			fmt.Printf("删除 '%s' 索引失败: %v\n", collName, err)
		}
	}
}
