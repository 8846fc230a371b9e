package middleware

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/apistarter/internal/auth"
	"github.com/iudanet/apistarter/internal/models"
	"github.com/iudanet/apistarter/internal/server/handlers"
)

// RequireUser создает guard middleware для защищенных эндпоинтов
// Последовательность проверок на каждый запрос, без какого-либо
// session state:
//   - нет/битый bearer токен или отсутствует role claim -> 401
//   - role вне набора {user, admin} -> 403
//   - иначе claims кладутся в контекст запроса
func RequireUser(logger *slog.Logger, tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := authenticate(w, r, logger, tokens)
			if !ok {
				return
			}

			next.ServeHTTP(w, r.WithContext(handlers.ContextWithClaims(r.Context(), claims)))
		})
	}
}

// RequireAdmin создает guard middleware для админских эндпоинтов
// Прогоняет те же проверки, что и RequireUser, и дополнительно требует
// role == admin
func RequireAdmin(logger *slog.Logger, tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := authenticate(w, r, logger, tokens)
			if !ok {
				return
			}

			if claims.Role != models.RoleAdmin {
				logger.Warn("admin access denied", "role", claims.Role)
				handlers.WriteError(w, logger, "Access denied.", nil, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(handlers.ContextWithClaims(r.Context(), claims)))
		})
	}
}

// authenticate выполняет user gate и пишет ответ при отказе
// Возвращает claims и ok=true, если запрос можно пропускать дальше
func authenticate(w http.ResponseWriter, r *http.Request, logger *slog.Logger, tokens *auth.TokenService) (*auth.Claims, bool) {
	tokenString, err := handlers.ExtractBearerToken(r)
	if err != nil {
		logger.Warn("missing or malformed Authorization header")
		handlers.WriteError(w, logger, "Invalid token or missing role.", nil, http.StatusUnauthorized)
		return nil, false
	}

	claims, err := tokens.Decode(tokenString)
	if err != nil || claims.Role == "" {
		// Битый, чужой, истекший токен и токен без роли (например refresh)
		// неразличимы для клиента
		logger.Warn("invalid access token")
		handlers.WriteError(w, logger, "Invalid token or missing role.", nil, http.StatusUnauthorized)
		return nil, false
	}

	if !models.ValidRole(claims.Role) {
		logger.Warn("token with unknown role", "role", claims.Role)
		handlers.WriteError(w, logger, "Insufficient permissions.", nil, http.StatusForbidden)
		return nil, false
	}

	return claims, true
}
