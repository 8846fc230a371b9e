package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/apistarter/internal/auth"
	"github.com/iudanet/apistarter/internal/server/storage"
	"github.com/iudanet/apistarter/internal/validation"
	"github.com/iudanet/apistarter/pkg/api"
)

// AuthHandler обрабатывает запросы регистрации и аутентификации
type AuthHandler struct {
	logger *slog.Logger
	auth   *auth.Service
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		logger: logger,
		auth:   authService,
	}
}

// Register обрабатывает POST /api/register
// Регистрация нового пользователя: проверка формы полей, blocklist
// доменов, уникальность username/email
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Парсим request body
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode register request", slog.Any("error", err))
		WriteError(w, h.logger, "Invalid request body.", nil, http.StatusBadRequest)
		return
	}

	// Валидация полей, ошибки собираем по-полевно в конверт
	var fieldErrs []api.FieldError
	if err := validation.ValidateUsername(validation.NormalizeIdentifier(req.Username)); err != nil {
		fieldErrs = append(fieldErrs, api.FieldError{Field: "username", Issue: err.Error()})
	}
	if err := validation.ValidateEmail(validation.NormalizeIdentifier(req.Email)); err != nil {
		fieldErrs = append(fieldErrs, api.FieldError{Field: "email", Issue: err.Error()})
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		fieldErrs = append(fieldErrs, api.FieldError{Field: "password", Issue: err.Error()})
	}
	if len(fieldErrs) > 0 {
		WriteError(w, h.logger, "Validation failed.", fieldErrs, http.StatusBadRequest)
		return
	}

	user, err := h.auth.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrBlockedDomain):
			h.logger.WarnContext(ctx, "registration rejected by domain policy")
			WriteError(w, h.logger, "Invalid email address.",
				[]api.FieldError{{Field: "email", Issue: "Blocked domain"}},
				http.StatusForbidden)
		case errors.Is(err, storage.ErrUserAlreadyExists):
			h.logger.WarnContext(ctx, "registration rejected: duplicate user")
			WriteError(w, h.logger, "Email or username already in use.", nil, http.StatusBadRequest)
		default:
			h.logger.ErrorContext(ctx, "failed to register user", slog.Any("error", err))
			WriteError(w, h.logger, "Database error.", nil, http.StatusInternalServerError)
		}
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully",
		slog.String("username", user.Username),
		slog.Int64("user_id", user.ID))

	WriteSuccess(w, h.logger, "Registration successful.", api.RegisteredUser{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, http.StatusOK)
}

// Login обрабатывает POST /api/login
// Аутентификация по username и паролю, возвращает access и refresh токены
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		WriteError(w, h.logger, "Invalid request body.", nil, http.StatusBadRequest)
		return
	}

	pair, err := h.auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			// Неизвестный username и неверный пароль дают один и тот же ответ
			h.logger.WarnContext(ctx, "login failed")
			WriteError(w, h.logger, "Invalid credentials.", nil, http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to login user", slog.Any("error", err))
		WriteError(w, h.logger, "Internal server error.", nil, http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user logged in successfully")

	WriteSuccess(w, h.logger, "Login successful.", api.TokenData{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
	}, http.StatusOK)
}

// Refresh обрабатывает POST /api/refresh-token
// Обмен refresh токена на новый access token. Новый refresh token
// не выпускается
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Refresh token передается как bearer в Authorization header
	refreshToken, err := ExtractBearerToken(r)
	if err != nil {
		h.logger.WarnContext(ctx, "refresh request without bearer token")
		WriteError(w, h.logger, "Invalid refresh token.", nil, http.StatusUnauthorized)
		return
	}

	accessToken, err := h.auth.Refresh(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidRefreshToken) {
			h.logger.WarnContext(ctx, "refresh token rejected")
			WriteError(w, h.logger, "Invalid refresh token.", nil, http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to refresh token", slog.Any("error", err))
		WriteError(w, h.logger, "Internal server error.", nil, http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, h.logger, "Token refreshed successfully.", api.TokenData{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}, http.StatusOK)
}
