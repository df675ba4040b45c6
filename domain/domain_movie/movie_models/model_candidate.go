package movie_models

// 候选来源标签
const (
	SourceCollaborative = "collaborative"
	SourceContent       = "content"
)

// Candidate 单次推荐请求内的瞬态候选，不落库
type Candidate struct {
	TmdbID     int      `json:"tmdb_id"`
	MatchScore float64  `json:"match_score"`
	Title      string   `json:"title"`
	Year       int      `json:"year,omitempty"`
	Genres     []string `json:"genres"`
	PosterPath string   `json:"poster_path,omitempty"`
	Overview   string   `json:"overview,omitempty"`
	Reasoning  string   `json:"reasoning"`
	Source     string   `json:"source"`
}
