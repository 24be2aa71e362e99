package services

import (
	"context"
	"errors"
	"time"

	"github.com/SriramAtmakuri/QueryCraft/internal/models"
	"github.com/SriramAtmakuri/QueryCraft/internal/repositories"
	"github.com/SriramAtmakuri/QueryCraft/internal/utils"
)

const (
	AccessTokenDuration  = 15 * time.Minute
	RefreshTokenDuration = 30 * 24 * time.Hour
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRefresh     = errors.New("invalid or expired refresh token")
)

// AuthService issues JWT pairs and tracks refresh sessions in Redis so a
// logout actually revokes the refresh token.
type AuthService struct {
	userRepo  *repositories.UserRepository
	redisRepo *repositories.RedisRepository
}

func NewAuthService(userRepo *repositories.UserRepository, redisRepo *repositories.RedisRepository) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		redisRepo: redisRepo,
	}
}

func (s *AuthService) Register(ctx context.Context, user *models.User) (string, string, error) {
	existing, _ := s.userRepo.FindByEmail(user.Email)
	if existing != nil {
		return "", "", ErrUserExists
	}

	hashed, err := utils.Hash(user.Password)
	if err != nil {
		return "", "", err
	}
	user.PasswordHash = string(hashed)
	user.Password = ""

	if err := s.userRepo.Create(user); err != nil {
		return "", "", err
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, string, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil || user == nil {
		return "", "", ErrInvalidCredentials
	}

	if err := utils.VerifyPassword(user.PasswordHash, password); err != nil {
		return "", "", ErrInvalidCredentials
	}

	if err := s.userRepo.TouchLastLogin(user.ID); err != nil {
		return "", "", err
	}

	return s.issueTokens(ctx, user)
}

// Refresh rotates the token pair. The old refresh session is removed from
// Redis so a stolen token cannot be replayed after a legitimate refresh.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := utils.VerifyJWT(refreshToken, utils.RefreshTokenSecret)
	if err != nil {
		return "", "", ErrInvalidRefresh
	}

	active, err := s.redisRepo.SessionExists(ctx, claims.ID)
	if err != nil {
		return "", "", err
	}
	if !active {
		return "", "", ErrInvalidRefresh
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil || user == nil {
		return "", "", ErrInvalidRefresh
	}

	if err := s.redisRepo.DeleteSession(ctx, claims.ID); err != nil {
		return "", "", err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the refresh session and blacklists the current access
// token for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if claims, err := utils.VerifyJWT(refreshToken, utils.RefreshTokenSecret); err == nil {
		if err := s.redisRepo.DeleteSession(ctx, claims.ID); err != nil {
			return err
		}
	}

	if claims, err := utils.VerifyJWT(accessToken, utils.AccessTokenSecret); err == nil {
		remaining := time.Until(claims.ExpiresAt.Time)
		if remaining > 0 {
			return s.redisRepo.Blacklist(ctx, claims.ID, remaining)
		}
	}
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (string, string, error) {
	accessToken, _, err := utils.GenerateJWT(user.ID, AccessTokenDuration, utils.AccessTokenSecret)
	if err != nil {
		return "", "", err
	}

	refreshToken, jti, err := utils.GenerateJWT(user.ID, RefreshTokenDuration, utils.RefreshTokenSecret)
	if err != nil {
		return "", "", err
	}

	if err := s.redisRepo.StoreSession(ctx, jti, user.ID.String()); err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}
