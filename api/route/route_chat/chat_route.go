package route_chat

import (
	"time"

	"github.com/cinematch/cinematch-server/api/controller/controller_chat"
	"github.com/cinematch/cinematch-server/domain/domain_chat/chat_interface"
	"github.com/cinematch/cinematch-server/mongo"
	"github.com/cinematch/cinematch-server/repository/repository_movie"
	"github.com/cinematch/cinematch-server/tmdb"
	"github.com/cinematch/cinematch-server/usecase/usecase_chat"
	"github.com/gin-gonic/gin"
)

// NewChatRouter 注册影片对话助手路由
func NewChatRouter(
	timeout time.Duration,
	db mongo.Database,
	model chat_interface.ChatModel,
	tmdbClient *tmdb.Client,
	group *gin.RouterGroup,
) {
	ratingRepo := repository_movie.NewRatingRepository(db)
	chatUsecase := usecase_chat.NewChatUsecase(model, ratingRepo, tmdbClient, timeout)
	chatCtrl := controller_chat.NewChatController(chatUsecase)

	group.POST("/chat", chatCtrl.Chat)
}
