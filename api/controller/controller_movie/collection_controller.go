package controller_movie

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cinematch/cinematch-server/api/controller"
	"github.com/cinematch/cinematch-server/domain"
	"github.com/cinematch/cinematch-server/usecase/usecase_movie"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 单次CSV上传上限
const maxCSVSize = 5 << 20

type CollectionController struct {
	CollectionUsecase *usecase_movie.CollectionUsecase
	ImportUsecase     *usecase_movie.CSVImportUsecase
}

func NewCollectionController(
	collectionUsecase *usecase_movie.CollectionUsecase,
	importUsecase *usecase_movie.CSVImportUsecase,
) *CollectionController {
	return &CollectionController{
		CollectionUsecase: collectionUsecase,
		ImportUsecase:     importUsecase,
	}
}

type addMovieRequest struct {
	TmdbID      int      `json:"tmdb_id" binding:"required"`
	Rating      *float64 `json:"rating" binding:"omitempty,gte=0,lte=10"`
	WatchedDate string   `json:"watched_date"`
}

func userIDFromCtx(ctx *gin.Context) (primitive.ObjectID, bool) {
	userID, err := primitive.ObjectIDFromHex(ctx.GetString("x-user-id"))
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusUnauthorized, "UNAUTHORIZED", "invalid user id")
		return primitive.NilObjectID, false
	}
	return userID, true
}

func (c *CollectionController) List(ctx *gin.Context) {
	userID, ok := userIDFromCtx(ctx)
	if !ok {
		return
	}

	movies, err := c.CollectionUsecase.List(ctx.Request.Context(), userID)
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}

	controller.SuccessResponse(ctx, "movies", movies, len(movies))
}

// Search 收藏内检索，支持标题或拼音前缀
func (c *CollectionController) Search(ctx *gin.Context) {
	userID, ok := userIDFromCtx(ctx)
	if !ok {
		return
	}

	keyword := ctx.Query("q")
	if keyword == "" {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_QUERY", "q参数不能为空")
		return
	}

	movies, err := c.CollectionUsecase.Search(ctx.Request.Context(), userID, keyword)
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}

	controller.SuccessResponse(ctx, "movies", movies, len(movies))
}

// Lookup 外部元数据检索，供添加收藏前选择
func (c *CollectionController) Lookup(ctx *gin.Context) {
	title := ctx.Query("title")
	if title == "" {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_QUERY", "title参数不能为空")
		return
	}

	year := 0
	if v := ctx.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_YEAR", "year参数必须是数字")
			return
		}
		year = parsed
	}

	results, err := c.CollectionUsecase.SearchMetadata(ctx.Request.Context(), title, year)
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}

	controller.SuccessResponse(ctx, "results", results, len(results))
}

func (c *CollectionController) Add(ctx *gin.Context) {
	userID, ok := userIDFromCtx(ctx)
	if !ok {
		return
	}

	var req addMovieRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	var watchedDate *time.Time
	if req.WatchedDate != "" {
		parsed, err := time.Parse("2006-01-02", req.WatchedDate)
		if err != nil {
			controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_DATE", "watched_date格式应为YYYY-MM-DD")
			return
		}
		watchedDate = &parsed
	}

	details, err := c.CollectionUsecase.AddByTmdbID(ctx.Request.Context(), userID, req.TmdbID, req.Rating, watchedDate)
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			controller.ErrorResponse(ctx, http.StatusNotFound, "MOVIE_NOT_FOUND", err.Error())
			return
		}
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}

	controller.SuccessResponse(ctx, "movie", details, 1)
}

// Detail 影片详情代理，不要求影片在收藏中
func (c *CollectionController) Detail(ctx *gin.Context) {
	tmdbID, err := strconv.Atoi(ctx.Param("tmdb_id"))
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_ID", "tmdb_id必须是数字")
		return
	}

	details, err := c.CollectionUsecase.Detail(ctx.Request.Context(), tmdbID)
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			controller.ErrorResponse(ctx, http.StatusNotFound, "MOVIE_NOT_FOUND", err.Error())
			return
		}
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}

	controller.SuccessResponse(ctx, "movie", details, 1)
}

func (c *CollectionController) Delete(ctx *gin.Context) {
	userID, ok := userIDFromCtx(ctx)
	if !ok {
		return
	}

	tmdbID, err := strconv.Atoi(ctx.Param("tmdb_id"))
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_ID", "tmdb_id必须是数字")
		return
	}

	title, err := c.CollectionUsecase.Delete(ctx.Request.Context(), userID, tmdbID)
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			controller.ErrorResponse(ctx, http.StatusNotFound, "MOVIE_NOT_FOUND", err.Error())
			return
		}
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}

	controller.SuccessResponse(ctx, "deleted", title, 1)
}

// ImportCSV 批量导入观影记录，multipart字段名为file
func (c *CollectionController) ImportCSV(ctx *gin.Context) {
	userID, ok := userIDFromCtx(ctx)
	if !ok {
		return
	}

	file, _, err := ctx.Request.FormFile("file")
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_FILE", "缺少file字段")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxCSVSize+1))
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_FILE", err.Error())
		return
	}
	if len(data) > maxCSVSize {
		controller.ErrorResponse(ctx, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "CSV文件不能超过5MB")
		return
	}

	result, err := c.ImportUsecase.Import(ctx.Request.Context(), userID, data)
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "IMPORT_FAILED", err.Error())
		return
	}

	controller.SuccessResponse(ctx, "result", result, result.Count)
}
