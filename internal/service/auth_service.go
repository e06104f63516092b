package service

import (
	"context"
	"log/slog"

	"github.com/company-directory-api/internal/auth"
	"github.com/company-directory-api/internal/domain"
	"github.com/company-directory-api/internal/dto"
)

// AuthService выдаёт токены по логину и паролю
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*domain.User, error)
}

type authService struct {
	newFactory FactoryFunc
	issuer     *auth.Issuer
	logger     *slog.Logger
}

// NewAuthService создаёт новый экземпляр сервиса
func NewAuthService(newFactory FactoryFunc, issuer *auth.Issuer, logger *slog.Logger) AuthService {
	return &authService{
		newFactory: newFactory,
		issuer:     issuer,
		logger:     logger,
	}
}

// Login проверяет пароль и возвращает пользователя с выпущенным токеном
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*domain.User, error) {
	user, err := s.newFactory().Users().GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	var hash string
	if user != nil {
		hash = user.Password
	}
	if !auth.VerifyPassword(hash, req.Password) {
		s.logger.Warn("login rejected", slog.String("username", req.Username))
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issuer.EncodeToken(user.Username)
	if err != nil {
		return nil, err
	}
	user.Token = token
	return user, nil
}
