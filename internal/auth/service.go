// Package auth contains the identity core: password hashing, token
// issuance/validation and the registration/login/refresh flows.
// All operations are synchronous and keep no mutable state between calls.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/apistarter/internal/models"
	"github.com/iudanet/apistarter/internal/policy"
	"github.com/iudanet/apistarter/internal/server/storage"
	"github.com/iudanet/apistarter/internal/validation"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Service provides authentication-related operations:
// - Register: domain policy check, password hashing, user creation
// - Login: verify credentials and mint tokens
// - Refresh: exchange a valid refresh token for a new access token
type Service struct {
	users     storage.UserStorage
	tokens    *TokenService
	blocklist *policy.Blocklist
}

// NewService constructs an auth Service over the given collaborators.
func NewService(users storage.UserStorage, tokens *TokenService, blocklist *policy.Blocklist) *Service {
	return &Service{
		users:     users,
		tokens:    tokens,
		blocklist: blocklist,
	}
}

// Register создает нового пользователя с ролью "user"
// Username и email нормализуются к lowercase, email проверяется по
// blocklist доменов. Дубликат username/email приходит от хранилища
// как storage.ErrUserAlreadyExists
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username = validation.NormalizeIdentifier(username)
	email = validation.NormalizeIdentifier(email)

	if !s.blocklist.Allowed(email) {
		return nil, ErrBlockedDomain
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login проверяет учетные данные и выпускает пару токенов
// Неизвестный username и неверный пароль неразличимы для вызывающей
// стороны: оба дают ErrInvalidCredentials
func (s *Service) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	username = validation.NormalizeIdentifier(username)

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.IssueAccess(user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, err := s.tokens.IssueRefresh(user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh обменивает валидный refresh token на новый access token
// Refresh token не содержит роли, поэтому актуальная роль берется из
// хранилища на момент обмена: admin после refresh остается admin.
// Новый refresh token не выпускается, старый действует до истечения
// своего срока (rotation нет)
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.Decode(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidRefreshToken
	}

	user, err := s.users.GetUserByUsername(ctx, claims.Subject)
	if err != nil {
		// Пользователь мог быть удален после выпуска токена
		return "", ErrInvalidRefreshToken
	}

	accessToken, err := s.tokens.IssueAccess(user.Username, user.Role)
	if err != nil {
		return "", fmt.Errorf("failed to issue access token: %w", err)
	}

	return accessToken, nil
}
