package chat_models

import "github.com/cinematch/cinematch-server/domain/domain_movie/movie_models"

// 会话角色
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage 会话消息
type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ChatReply 助手回复，History 为追加后的完整会话，由调用方持有
// 进程内不保存任何会话状态
type ChatReply struct {
	Message     string                      `json:"message"`
	Suggestions []movie_models.MovieDetails `json:"suggestions"`
	History     []ChatMessage               `json:"history"`
}
