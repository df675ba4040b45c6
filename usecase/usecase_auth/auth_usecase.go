package usecase_auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/cinematch/cinematch-server/domain"
	"github.com/cinematch/cinematch-server/domain/domain_auth/auth_interface"
	"github.com/cinematch/cinematch-server/domain/domain_auth/auth_models"
	"github.com/cinematch/cinematch-server/domain/domain_movie/movie_interface"
	"github.com/cinematch/cinematch-server/internal/tokenutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type authUsecase struct {
	userRepo       auth_interface.UserRepository
	ratingRepo     movie_interface.RatingRepository
	similarityRepo movie_interface.UserSimilarityRepository
	timeout        time.Duration
	secret         string
	expiryHours    int
}

func NewAuthUsecase(
	userRepo auth_interface.UserRepository,
	ratingRepo movie_interface.RatingRepository,
	similarityRepo movie_interface.UserSimilarityRepository,
	timeout time.Duration,
	secret string,
	expiryHours int,
) auth_interface.AuthUsecase {
	return &authUsecase{
		userRepo:       userRepo,
		ratingRepo:     ratingRepo,
		similarityRepo: similarityRepo,
		timeout:        timeout,
		secret:         secret,
		expiryHours:    expiryHours,
	}
}

func (uc *authUsecase) Signup(ctx context.Context, username, email, password string) (string, *auth_models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if _, err := uc.userRepo.GetByUsername(ctx, username); err == nil {
		return "", nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, err
	}

	if _, err := uc.userRepo.GetByEmail(ctx, email); err == nil {
		return "", nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &auth_models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return "", nil, err
	}

	log.Printf("新用户注册: %s", username)

	token, err := tokenutil.CreateAccessToken(user, uc.secret, uc.expiryHours)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (uc *authUsecase) Login(ctx context.Context, username, password string) (string, *auth_models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := tokenutil.CreateAccessToken(user, uc.secret, uc.expiryHours)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (uc *authUsecase) Profile(ctx context.Context, userID primitive.ObjectID) (*auth_models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	return uc.userRepo.GetByID(ctx, userID)
}

// DeleteAccount 先清评分与相似度缓存，最后删除用户文档
func (uc *authUsecase) DeleteAccount(ctx context.Context, userID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	ratings, err := uc.ratingRepo.DeleteByUser(ctx, userID)
	if err != nil {
		return err
	}

	similarities, err := uc.similarityRepo.DeleteForUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := uc.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	log.Printf("账号注销: %s，清除评分%d条、相似度缓存%d条", userID.Hex(), ratings, similarities)
	return nil
}
