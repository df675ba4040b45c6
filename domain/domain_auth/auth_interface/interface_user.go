package auth_interface

import (
	"context"

	"github.com/cinematch/cinematch-server/domain/domain_auth/auth_models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	Create(ctx context.Context, user *auth_models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*auth_models.User, error)
	GetByUsername(ctx context.Context, username string) (*auth_models.User, error)
	GetByEmail(ctx context.Context, email string) (*auth_models.User, error)

	// GetAllIDsExcept 返回除指定用户外的全部用户ID（邻居扫描用）
	GetAllIDsExcept(ctx context.Context, id primitive.ObjectID) ([]primitive.ObjectID, error)

	// Delete 删除用户文档本身，评分与相似度缓存的级联清理由用例层编排
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type AuthUsecase interface {
	Signup(ctx context.Context, username, email, password string) (string, *auth_models.User, error)
	Login(ctx context.Context, username, password string) (string, *auth_models.User, error)
	Profile(ctx context.Context, userID primitive.ObjectID) (*auth_models.User, error)

	// DeleteAccount 删除账号并级联清除其评分与相似度缓存
	DeleteAccount(ctx context.Context, userID primitive.ObjectID) error
}
