package usecase_movie

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cinematch/cinematch-server/domain/domain_movie/movie_interface"
	"github.com/cinematch/cinematch-server/domain/domain_movie/movie_models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/text/encoding/charmap"
)

// ImportResult CSV导入结果，行级错误收集后返回，不中断整体导入
type ImportResult struct {
	Count  int      `json:"count"`
	Errors []string `json:"errors"`
}

// CSVImportUsecase 观影记录CSV批量导入（Title,Year,Rating,WatchDate）
type CSVImportUsecase struct {
	ratingRepo movie_interface.RatingRepository
	metadata   movie_interface.MetadataResolver
	timeout    time.Duration
}

func NewCSVImportUsecase(
	ratingRepo movie_interface.RatingRepository,
	metadata movie_interface.MetadataResolver,
	timeout time.Duration,
) *CSVImportUsecase {
	return &CSVImportUsecase{
		ratingRepo: ratingRepo,
		metadata:   metadata,
		timeout:    timeout,
	}
}

func (uc *CSVImportUsecase) Import(ctx context.Context, userID primitive.ObjectID, data []byte) (*ImportResult, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	// 部分导出工具生成Windows-1252编码的CSV
	if !utf8.Valid(data) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode csv: %w", err)
		}
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	columns := columnIndexes(header)
	if _, ok := columns["title"]; !ok {
		return nil, fmt.Errorf("csv is missing required column: title")
	}

	result := &ImportResult{}
	line := 1

	for {
		line++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		if err := uc.importRow(ctx, userID, columns, record); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		result.Count++
	}

	return result, nil
}

func (uc *CSVImportUsecase) importRow(ctx context.Context, userID primitive.ObjectID, columns map[string]int, record []string) error {
	title := field(record, columns, "title")
	if title == "" {
		return fmt.Errorf("title is empty")
	}

	year := 0
	if v := field(record, columns, "year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid year %q", v)
		}
		year = parsed
	}

	var rating *float64
	if v := field(record, columns, "rating"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid rating %q", v)
		}
		rating = &parsed
	}

	var watchedDate *time.Time
	if v := field(record, columns, "watchdate"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return fmt.Errorf("invalid watch date %q", v)
		}
		watchedDate = &parsed
	}

	matches, err := uc.metadata.Search(ctx, title, year)
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no match found for %q", title)
	}

	details := matches[0]
	entry := &movie_models.MovieRating{
		UserID:          userID,
		TmdbID:          details.TmdbID,
		Title:           details.Title,
		Rating:          rating,
		WatchedDate:     watchedDate,
		Genres:          details.Genres,
		Year:            details.Year,
		PosterPath:      details.PosterPath,
		TitlePinyinFull: TitlePinyinFull(details.Title),
	}

	return uc.ratingRepo.Upsert(ctx, entry)
}

// columnIndexes 列名归一化：小写并去掉空格、下划线
func columnIndexes(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		key = strings.ReplaceAll(key, " ", "")
		key = strings.ReplaceAll(key, "_", "")
		columns[key] = i
	}
	return columns
}

func field(record []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
