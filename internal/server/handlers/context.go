package handlers

import (
	"context"

	"github.com/iudanet/apistarter/internal/auth"
)

// contextKey — отдельный тип для ключей контекста, чтобы не пересекаться
// с ключами других пакетов
type contextKey string

// ClaimsKey — ключ, под которым guard middleware кладет проверенные
// claims токена в контекст запроса
const ClaimsKey contextKey = "claims"

// ClaimsFromContext извлекает claims, положенные guard middleware
// Возвращает nil, если запрос не проходил через guard
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(ClaimsKey).(*auth.Claims)
	return claims
}

// ContextWithClaims возвращает контекст с добавленными claims
func ContextWithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}
