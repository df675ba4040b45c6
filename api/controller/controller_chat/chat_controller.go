package controller_chat

import (
	"net/http"

	"github.com/cinematch/cinematch-server/api/controller"
	"github.com/cinematch/cinematch-server/domain/domain_chat/chat_interface"
	"github.com/cinematch/cinematch-server/domain/domain_chat/chat_models"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ChatController struct {
	ChatUsecase chat_interface.ChatUsecase
}

func NewChatController(usecase chat_interface.ChatUsecase) *ChatController {
	return &ChatController{
		ChatUsecase: usecase,
	}
}

type chatRequest struct {
	Message string                    `json:"message" binding:"required"`
	History []chat_models.ChatMessage `json:"history"`
}

// Chat 会话历史由客户端随请求携带并取回
func (c *ChatController) Chat(ctx *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(ctx.GetString("x-user-id"))
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusUnauthorized, "UNAUTHORIZED", "invalid user id")
		return
	}

	var req chatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	reply, err := c.ChatUsecase.Chat(ctx.Request.Context(), userID, req.Message, req.History)
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusBadGateway, "CHAT_FAILED", err.Error())
		return
	}

	controller.SuccessResponse(ctx, "reply", reply, len(reply.Suggestions))
}
