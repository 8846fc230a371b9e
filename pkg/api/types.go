// Package api defines the wire types shared between the server and its
// HTTP clients: request bodies and the uniform response envelope.
package api

// Статусы ответа в поле Response.Status
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// FieldError описывает ошибку конкретного поля запроса
type FieldError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// Response — единый конверт для всех ответов API, успешных и ошибочных
// Клиент ветвится только по полю Status
type Response struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Data    any          `json:"data"`
	Errors  []FieldError `json:"errors"`
	Code    int          `json:"code"`
}

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisteredUser — данные нового пользователя в ответе на регистрацию
// Хеш пароля наружу не отдается
type RegisteredUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenData — данные выпущенных токенов в ответе на login/refresh
// RefreshToken присутствует только в ответе на login
type TokenData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

// UserData — представление пользователя в админских ответах
type UserData struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// ProductList — страница каталога с общим количеством для пагинации
type ProductList struct {
	Products   any   `json:"products"`
	TotalCount int64 `json:"total_count"`
}
