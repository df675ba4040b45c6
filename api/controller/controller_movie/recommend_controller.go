package controller_movie

import (
	"errors"
	"net/http"

	"github.com/cinematch/cinematch-server/api/controller"
	"github.com/cinematch/cinematch-server/domain"
	"github.com/cinematch/cinematch-server/domain/domain_movie/movie_interface"
	"github.com/gin-gonic/gin"
)

type RecommendController struct {
	RecommendUsecase movie_interface.RecommendUsecase
}

func NewRecommendController(usecase movie_interface.RecommendUsecase) *RecommendController {
	return &RecommendController{
		RecommendUsecase: usecase,
	}
}

func (c *RecommendController) GetRecommendations(ctx *gin.Context) {
	userID, ok := userIDFromCtx(ctx)
	if !ok {
		return
	}

	recommendations, err := c.RecommendUsecase.Recommend(ctx.Request.Context(), userID)
	if err != nil {
		var insufficient *domain.InsufficientDataError
		if errors.As(err, &insufficient) {
			controller.ErrorResponse(ctx, http.StatusBadRequest, "INSUFFICIENT_DATA", insufficient.Error())
			return
		}
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}

	controller.SuccessResponse(ctx, "recommendations", recommendations, len(recommendations))
}

// InvalidateCache 清理过期相似度缓存，下次推荐时重新计算
func (c *RecommendController) InvalidateCache(ctx *gin.Context) {
	userID, ok := userIDFromCtx(ctx)
	if !ok {
		return
	}

	if err := c.RecommendUsecase.InvalidateSimilarityCache(ctx.Request.Context(), userID); err != nil {
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}

	controller.SuccessResponse(ctx, "invalidated", true, 1)
}
