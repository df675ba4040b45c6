package domain

import (
	"errors"
	"fmt"
)

// 推荐数据不足：评分数少于3条时返回，附带实际数量
type InsufficientDataError struct {
	Count int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("you need at least 3 rated movies to get recommendations, you have %d", e.Count)
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrMovieNotFound      = errors.New("movie not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
