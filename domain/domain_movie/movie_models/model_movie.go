package movie_models

// MovieDetails 元数据服务返回的影片详情
type MovieDetails struct {
	TmdbID     int      `json:"tmdb_id"`
	Title      string   `json:"title"`
	Year       int      `json:"year"`
	Genres     []string `json:"genres"`
	PosterPath string   `json:"poster_path"`
	Overview   string   `json:"overview"`
}

// RatedMovie 内容引擎的输入条目，调用前已补齐缺省评分
type RatedMovie struct {
	TmdbID int      `json:"tmdb_id"`
	Title  string   `json:"title"`
	Rating float64  `json:"rating"`
	Genres []string `json:"genres"`
	Year   int      `json:"year"`
}
