package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims представляет JWT claims для нашего приложения
// Subject (sub) — username, Role — роль из фиксированного набора.
// У refresh токенов Role пустая: сам по себе refresh токен не дает
// доступа к ресурсам, только к переобмену.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenService выпускает и проверяет подписанные токены
// Создается один раз при старте процесса и дальше только читается,
// поэтому безопасен для конкурентного использования
type TokenService struct {
	secret     []byte
	method     *jwt.SigningMethodHMAC
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// hmacMethods — допустимые алгоритмы подписи (symmetric MAC family)
var hmacMethods = map[string]*jwt.SigningMethodHMAC{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
}

// NewTokenService создает новый TokenService
// Отсутствие секрета и неизвестный алгоритм — ошибки конструктора:
// вызывающая сторона обязана завершить запуск процесса
func NewTokenService(secret, algorithm string, accessTTL, refreshTTL time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	method, ok := hmacMethods[algorithm]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}

	return &TokenService{
		secret:     []byte(secret),
		method:     method,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// IssueAccess создает новый access token для subject с ролью role
// Срок действия всегда считается от текущего времени
func (s *TokenService) IssueAccess(subject, role string) (string, error) {
	return s.issue(subject, role, s.accessTTL)
}

// IssueRefresh создает новый refresh token для subject
// Роль намеренно не включается в claims: refresh токен нельзя
// предъявить защищенному эндпоинту
func (s *TokenService) IssueRefresh(subject string) (string, error) {
	return s.issue(subject, "", s.refreshTTL)
}

func (s *TokenService) issue(subject, role string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(s.method, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Decode проверяет подпись и срок действия токена и возвращает claims
// Любая причина отказа (битый формат, чужая подпись, истекший срок)
// схлопывается в ErrInvalidToken, чтобы не раскрывать детали проверки
func (s *TokenService) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			// Проверяем что используется правильный алгоритм подписи
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
