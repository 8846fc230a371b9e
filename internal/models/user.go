package models

// Роли пользователей. Других ролей в системе нет: любое другое значение
// в токене или в БД трактуется как невалидное, а не как default.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole проверяет, что role входит в фиксированный набор ролей
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// User представляет пользователя в системе
type User struct {
	ID           int64  `json:"id"`       // автоинкрементный id
	Username     string `json:"username"` // уникальный username (lowercase)
	Email        string `json:"email"`    // уникальный email (lowercase)
	PasswordHash string `json:"-"`        // bcrypt хеш пароля, наружу не отдается
	Role         string `json:"role"`     // "user" или "admin"
}
