package handlers

import (
	"errors"
	"net/http"
	"strings"
)

// ErrNoBearerToken indicates that the request carries no usable
// "Authorization: Bearer <token>" header.
var ErrNoBearerToken = errors.New("missing bearer token")

// ExtractBearerToken достает raw token из заголовка Authorization
// Ожидаемый формат: "Bearer <token>", схема сравнивается case-insensitive
func ExtractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrNoBearerToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrNoBearerToken
	}

	return parts[1], nil
}
