package controller_auth

import (
	"errors"
	"log"
	"net/http"
	"regexp"

	"github.com/cinematch/cinematch-server/api/controller"
	"github.com/cinematch/cinematch-server/domain"
	"github.com/cinematch/cinematch-server/domain/domain_auth/auth_interface"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 用户名3-20位，字母数字下划线
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

type AuthController struct {
	AuthUsecase auth_interface.AuthUsecase
}

func NewAuthController(usecase auth_interface.AuthUsecase) *AuthController {
	return &AuthController{
		AuthUsecase: usecase,
	}
}

type signupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (c *AuthController) Signup(ctx *gin.Context) {
	var req signupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	if !usernamePattern.MatchString(req.Username) {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_USERNAME", "用户名须为3-20位字母、数字或下划线")
		return
	}

	token, user, err := c.AuthUsecase.Signup(ctx.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUsernameTaken):
			controller.ErrorResponse(ctx, http.StatusConflict, "USERNAME_TAKEN", err.Error())
		case errors.Is(err, domain.ErrEmailTaken):
			controller.ErrorResponse(ctx, http.StatusConflict, "EMAIL_TAKEN", err.Error())
		default:
			controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		}
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"token":  token,
		"user":   user.Profile(),
	})
}

func (c *AuthController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	token, user, err := c.AuthUsecase.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			controller.ErrorResponse(ctx, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())
			return
		}
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "success",
		"token":  token,
		"user":   user.Profile(),
	})
}

func (c *AuthController) Profile(ctx *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(ctx.GetString("x-user-id"))
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusUnauthorized, "UNAUTHORIZED", "invalid user id")
		return
	}

	user, err := c.AuthUsecase.Profile(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			controller.ErrorResponse(ctx, http.StatusNotFound, "USER_NOT_FOUND", err.Error())
			return
		}
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}

	controller.SuccessResponse(ctx, "user", user.Profile(), 1)
}

// Logout 无服务端会话，令牌由前端丢弃，这里只记录日志
func (c *AuthController) Logout(ctx *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(ctx.GetString("x-user-id"))
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusUnauthorized, "UNAUTHORIZED", "invalid user id")
		return
	}

	log.Printf("用户登出: %s", userID.Hex())

	controller.SuccessResponse(ctx, "message", "Logged out successfully", 1)
}

func (c *AuthController) DeleteAccount(ctx *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(ctx.GetString("x-user-id"))
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusUnauthorized, "UNAUTHORIZED", "invalid user id")
		return
	}

	if err := c.AuthUsecase.DeleteAccount(ctx.Request.Context(), userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			controller.ErrorResponse(ctx, http.StatusNotFound, "USER_NOT_FOUND", err.Error())
			return
		}
		controller.ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
		return
	}

	controller.SuccessResponse(ctx, "deleted", true, 1)
}
