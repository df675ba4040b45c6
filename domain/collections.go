package domain

const (
	CollectionUser = "users"
)
const (
	CollectionMovieRating = "movie_ratings"
)
const (
	CollectionUserSimilarity = "user_similarities"
)
