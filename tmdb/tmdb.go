package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/cinematch/cinematch-server/domain"
	"github.com/cinematch/cinematch-server/domain/domain_movie/movie_interface"
	"github.com/cinematch/cinematch-server/domain/domain_movie/movie_models"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"
	requestTimeout = 10 * time.Second
)

// Client TMDb影片元数据客户端
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client

	// 类型表懒加载，id与名称双向映射
	genreMu     sync.Mutex
	genreLoaded bool
	genreByID   map[int]string
	genreByName map[string]int
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// NewClientWithBaseURL 测试注入用
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

var _ movie_interface.MetadataResolver = (*Client)(nil)

type movieDetailsResponse struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Genres      []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
	PosterPath string `json:"poster_path"`
	Overview   string `json:"overview"`
}

type searchResponse struct {
	Results []struct {
		ID          int    `json:"id"`
		Title       string `json:"title"`
		ReleaseDate string `json:"release_date"`
		GenreIDs    []int  `json:"genre_ids"`
		PosterPath  string `json:"poster_path"`
		Overview    string `json:"overview"`
	} `json:"results"`
}

func (c *Client) Details(ctx context.Context, tmdbID int) (*movie_models.MovieDetails, error) {
	var resp movieDetailsResponse
	err := c.get(ctx, fmt.Sprintf("/movie/%d", tmdbID), nil, &resp)
	if err != nil {
		return nil, err
	}

	genres := make([]string, 0, len(resp.Genres))
	for _, g := range resp.Genres {
		genres = append(genres, g.Name)
	}

	return &movie_models.MovieDetails{
		TmdbID:     resp.ID,
		Title:      resp.Title,
		Year:       yearOf(resp.ReleaseDate),
		Genres:     genres,
		PosterPath: resp.PosterPath,
		Overview:   resp.Overview,
	}, nil
}

func (c *Client) Search(ctx context.Context, title string, year int) ([]movie_models.MovieDetails, error) {
	params := url.Values{}
	params.Set("query", title)
	if year > 0 {
		params.Set("year", strconv.Itoa(year))
	}

	var resp searchResponse
	if err := c.get(ctx, "/search/movie", params, &resp); err != nil {
		return nil, err
	}

	genreByID := c.genreTable(ctx)

	results := make([]movie_models.MovieDetails, 0, len(resp.Results))
	for _, r := range resp.Results {
		genres := make([]string, 0, len(r.GenreIDs))
		for _, id := range r.GenreIDs {
			if name, ok := genreByID[id]; ok {
				genres = append(genres, name)
			}
		}
		results = append(results, movie_models.MovieDetails{
			TmdbID:     r.ID,
			Title:      r.Title,
			Year:       yearOf(r.ReleaseDate),
			Genres:     genres,
			PosterPath: r.PosterPath,
			Overview:   r.Overview,
		})
	}

	return results, nil
}

// Discover 按类型发现高分影片（内容推荐引擎的数据来源）
func (c *Client) Discover(ctx context.Context, genreIDs []int, page int) ([]movie_models.MovieDetails, error) {
	params := url.Values{}
	params.Set("sort_by", "vote_average.desc")
	params.Set("vote_count.gte", "200")
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if len(genreIDs) > 0 {
		ids := make([]string, 0, len(genreIDs))
		for _, id := range genreIDs {
			ids = append(ids, strconv.Itoa(id))
		}
		params.Set("with_genres", joinComma(ids))
	}

	var resp searchResponse
	if err := c.get(ctx, "/discover/movie", params, &resp); err != nil {
		return nil, err
	}

	genreByID := c.genreTable(ctx)

	results := make([]movie_models.MovieDetails, 0, len(resp.Results))
	for _, r := range resp.Results {
		genres := make([]string, 0, len(r.GenreIDs))
		for _, id := range r.GenreIDs {
			if name, ok := genreByID[id]; ok {
				genres = append(genres, name)
			}
		}
		results = append(results, movie_models.MovieDetails{
			TmdbID:     r.ID,
			Title:      r.Title,
			Year:       yearOf(r.ReleaseDate),
			Genres:     genres,
			PosterPath: r.PosterPath,
			Overview:   r.Overview,
		})
	}

	return results, nil
}

// GenreIDs 类型名转TMDb类型ID，未知类型忽略
func (c *Client) GenreIDs(ctx context.Context, names []string) []int {
	_, genreByName := c.genreTables(ctx)

	ids := make([]int, 0, len(names))
	for _, name := range names {
		if id, ok := genreByName[name]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func (c *Client) genreTable(ctx context.Context) map[int]string {
	genreByID, _ := c.genreTables(ctx)
	return genreByID
}

// genreTables 拉取失败不记忆，下次调用重试
func (c *Client) genreTables(ctx context.Context) (map[int]string, map[string]int) {
	c.genreMu.Lock()
	defer c.genreMu.Unlock()

	if c.genreLoaded {
		return c.genreByID, c.genreByName
	}

	var resp struct {
		Genres []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"genres"`
	}
	if err := c.get(ctx, "/genre/movie/list", nil, &resp); err != nil {
		return nil, nil
	}

	c.genreByID = make(map[int]string, len(resp.Genres))
	c.genreByName = make(map[string]int, len(resp.Genres))
	for _, g := range resp.Genres {
		c.genreByID[g.ID] = g.Name
		c.genreByName[g.Name] = g.ID
	}
	c.genreLoaded = true

	return c.genreByID, c.genreByName
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrMovieNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode tmdb response: %w", err)
	}

	return nil
}

func yearOf(releaseDate string) int {
	if len(releaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(releaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ","
		}
		out += p
	}
	return out
}
