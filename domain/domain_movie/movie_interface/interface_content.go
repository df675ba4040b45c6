package movie_interface

import (
	"context"

	"github.com/cinematch/cinematch-server/domain/domain_movie/movie_models"
)

// ContentEngine 基于内容的推荐引擎，算法外置，仅约定输入输出
// 契约：调用方负责为未评分条目补缺省评分（5分），引擎不接受缺失评分
type ContentEngine interface {
	Recommend(ctx context.Context, rated []movie_models.RatedMovie, count int) ([]movie_models.Candidate, error)
}
