package movie_models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MovieRating 用户影片评分记录
// Rating 为 nil 表示影片在收藏中但未评分：参与收藏统计，不参与相似度与加权计算
type MovieRating struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"-"`
	TmdbID int                `bson:"tmdb_id" json:"tmdb_id"`

	Title       string     `bson:"title" json:"title"`
	Rating      *float64   `bson:"rating,omitempty" json:"rating,omitempty"`
	WatchedDate *time.Time `bson:"watched_date,omitempty" json:"watched_date,omitempty"`
	Genres      []string   `bson:"genres" json:"genres"`
	Year        int        `bson:"year" json:"year"`
	PosterPath  string     `bson:"poster_path" json:"poster_path"`

	// 标题拼音检索键，写入时生成
	TitlePinyinFull string `bson:"title_pinyin_full" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Rated 是否持有有效评分
func (r *MovieRating) Rated() bool {
	return r.Rating != nil
}

// RatingOrDefault 缺省评分规则：未评分按5分计（内容引擎契约要求）
func (r *MovieRating) RatingOrDefault() float64 {
	if r.Rating != nil {
		return *r.Rating
	}
	return 5
}
