package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/iudanet/apistarter/internal/server/storage"
	"github.com/iudanet/apistarter/pkg/api"
)

// UsersHandler обрабатывает админские запросы по пользователям
type UsersHandler struct {
	logger *slog.Logger
	users  storage.UserStorage
}

// NewUsersHandler создает новый handler для пользователей
func NewUsersHandler(logger *slog.Logger, users storage.UserStorage) *UsersHandler {
	return &UsersHandler{
		logger: logger,
		users:  users,
	}
}

// List обрабатывает GET /api/users (admin only)
// Возвращает всех пользователей без хешей паролей
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.users.ListUsers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list users", slog.Any("error", err))
		WriteError(w, h.logger, "Database error.", nil, http.StatusInternalServerError)
		return
	}

	list := make([]api.UserData, 0, len(users))
	for _, u := range users {
		list = append(list, api.UserData{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
			Role:     u.Role,
		})
	}

	WriteSuccess(w, h.logger, "Users retrieved successfully.", list, http.StatusOK)
}

// Get обрабатывает GET /api/user/{id} (admin only)
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		WriteError(w, h.logger, "Invalid user id.", nil, http.StatusBadRequest)
		return
	}

	user, err := h.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			WriteError(w, h.logger, "User not found.", nil, http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		WriteError(w, h.logger, "Database error.", nil, http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, h.logger, "User retrieved successfully.", api.UserData{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}, http.StatusOK)
}
