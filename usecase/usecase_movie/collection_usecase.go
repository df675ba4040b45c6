package usecase_movie

import (
	"context"
	"strings"
	"time"

	"github.com/cinematch/cinematch-server/domain"
	"github.com/cinematch/cinematch-server/domain/domain_movie/movie_interface"
	"github.com/cinematch/cinematch-server/domain/domain_movie/movie_models"
	"github.com/mozillazg/go-pinyin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CollectionUsecase 用户影片收藏管理
type CollectionUsecase struct {
	ratingRepo movie_interface.RatingRepository
	metadata   movie_interface.MetadataResolver
	timeout    time.Duration
}

func NewCollectionUsecase(
	ratingRepo movie_interface.RatingRepository,
	metadata movie_interface.MetadataResolver,
	timeout time.Duration,
) *CollectionUsecase {
	return &CollectionUsecase{
		ratingRepo: ratingRepo,
		metadata:   metadata,
		timeout:    timeout,
	}
}

func (uc *CollectionUsecase) List(ctx context.Context, userID primitive.ObjectID) ([]*movie_models.MovieRating, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	return uc.ratingRepo.GetByUser(ctx, userID)
}

func (uc *CollectionUsecase) Search(ctx context.Context, userID primitive.ObjectID, keyword string) ([]*movie_models.MovieRating, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	return uc.ratingRepo.Search(ctx, userID, keyword)
}

// AddByTmdbID 解析完整详情后入库，重复添加即更新
func (uc *CollectionUsecase) AddByTmdbID(
	ctx context.Context,
	userID primitive.ObjectID,
	tmdbID int,
	rating *float64,
	watchedDate *time.Time,
) (*movie_models.MovieDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	details, err := uc.metadata.Details(ctx, tmdbID)
	if err != nil {
		return nil, err
	}

	entry := &movie_models.MovieRating{
		UserID:          userID,
		TmdbID:          tmdbID,
		Title:           details.Title,
		Rating:          rating,
		WatchedDate:     watchedDate,
		Genres:          details.Genres,
		Year:            details.Year,
		PosterPath:      details.PosterPath,
		TitlePinyinFull: TitlePinyinFull(details.Title),
	}

	if err := uc.ratingRepo.Upsert(ctx, entry); err != nil {
		return nil, err
	}

	return details, nil
}

// Detail 影片详情代理，未找到时返回 domain.ErrMovieNotFound
func (uc *CollectionUsecase) Detail(ctx context.Context, tmdbID int) (*movie_models.MovieDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	return uc.metadata.Details(ctx, tmdbID)
}

// SearchMetadata 按标题检索外部元数据，供添加前选择
func (uc *CollectionUsecase) SearchMetadata(ctx context.Context, title string, year int) ([]movie_models.MovieDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	return uc.metadata.Search(ctx, title, year)
}

// Delete 从收藏移除影片，返回标题用于提示
func (uc *CollectionUsecase) Delete(ctx context.Context, userID primitive.ObjectID, tmdbID int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	existing, err := uc.ratingRepo.GetOne(ctx, userID, tmdbID)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return "", domain.ErrMovieNotFound
	}

	if err := uc.ratingRepo.Delete(ctx, userID, tmdbID); err != nil {
		return "", err
	}

	return existing.Title, nil
}

// TitlePinyinFull 生成标题拼音检索键，非汉字标题得到空串
func TitlePinyinFull(title string) string {
	return strings.Join(pinyin.LazyConvert(title, nil), "")
}
