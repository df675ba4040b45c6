package chat_interface

import (
	"context"

	"github.com/cinematch/cinematch-server/domain/domain_chat/chat_models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatModel 对话模型客户端（Gemini）
type ChatModel interface {
	Generate(ctx context.Context, history []chat_models.ChatMessage) (string, error)
}

// ChatUsecase 影片对话助手
// 会话历史由调用方逐请求传入并取回，进程内不保存全局会话状态
type ChatUsecase interface {
	Chat(ctx context.Context, userID primitive.ObjectID, message string, history []chat_models.ChatMessage) (*chat_models.ChatReply, error)
}
