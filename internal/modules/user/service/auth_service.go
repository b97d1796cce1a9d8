package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/alumninet/alumninet/internal/entity"
	"github.com/alumninet/alumninet/internal/modules/user/dto"
	"github.com/alumninet/alumninet/internal/modules/user/repository"
	"github.com/alumninet/alumninet/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
}

type authService struct {
	repo     repository.UserRepository
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(repo repository.UserRepository, secret string, tokenTTL time.Duration) AuthService {
	return &authService{
		repo:     repo,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

// Login rejects with Unauthorized when the credential is invalid, the
// account is inactive, or (for non-superadmins) the owning university is
// disabled. All three rejections share one message so callers cannot probe
// which accounts exist.
func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusUnauthorized, "invalid credentials", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperror.New(http.StatusUnauthorized, "invalid credentials", apperror.ErrUnauthorized)
	}

	if !user.IsActive() {
		return nil, apperror.New(http.StatusUnauthorized, "account is deactivated", apperror.ErrUnauthorized)
	}

	if user.Role != entity.RoleSuperadmin {
		if user.University == nil || !user.University.IsEnabled() {
			return nil, apperror.New(http.StatusUnauthorized, "university access is disabled", apperror.ErrUnauthorized)
		}
	}

	return s.buildAuthResponse(user)
}

func (s *authService) buildAuthResponse(user *entity.User) (*dto.AuthResponse, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
		User:        user,
	}, nil
}
