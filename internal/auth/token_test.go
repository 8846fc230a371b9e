package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/apistarter/internal/models"
)

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	svc, err := NewTokenService("test-secret-key", "HS256", 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)
	return svc
}

func TestNewTokenService_Validation(t *testing.T) {
	_, err := NewTokenService("", "HS256", time.Minute, time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)

	_, err = NewTokenService("secret", "RS256", time.Minute, time.Hour)
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)

	_, err = NewTokenService("secret", "none", time.Minute, time.Hour)
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)

	for _, alg := range []string{"HS256", "HS384", "HS512"} {
		_, err = NewTokenService("secret", alg, time.Minute, time.Hour)
		assert.NoError(t, err, alg)
	}
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.IssueAccess("alice", models.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestTokenService_RefreshCarriesNoRole(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.IssueRefresh("alice")
	require.NoError(t, err)

	claims, err := svc.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	// Refresh токен намеренно без роли: им нельзя пройти guard
	assert.Empty(t, claims.Role)
}

func TestTokenService_Expired(t *testing.T) {
	// Access TTL в прошлом: токен истекает в момент выпуска
	svc, err := NewTokenService("test-secret-key", "HS256", -time.Minute, time.Hour)
	require.NoError(t, err)

	token, err := svc.IssueAccess("alice", models.RoleUser)
	require.NoError(t, err)

	_, err = svc.Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_TamperedSignature(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.IssueAccess("alice", models.RoleUser)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Меняем по одному символу подписи: любой флип делает токен невалидным
	sig := parts[2]
	for i := 0; i < len(sig); i += 7 {
		flipped := []byte(sig)
		if flipped[i] == 'A' {
			flipped[i] = 'B'
		} else {
			flipped[i] = 'A'
		}
		tampered := parts[0] + "." + parts[1] + "." + string(flipped)

		_, err := svc.Decode(tampered)
		assert.ErrorIs(t, err, ErrInvalidToken, "flipped signature byte %d", i)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	svc := newTestTokenService(t)

	other, err := NewTokenService("another-secret", "HS256", 15*time.Minute, time.Hour)
	require.NoError(t, err)

	token, err := svc.IssueAccess("alice", models.RoleUser)
	require.NoError(t, err)

	_, err = other.Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Decode_Garbage(t *testing.T) {
	svc := newTestTokenService(t)

	tests := []string{
		"",
		"not-a-token",
		"a.b",
		"a.b.c",
		"eyJhbGciOiJub25lIn0.eyJzdWIiOiJhbGljZSJ9.",
	}

	for _, token := range tests {
		_, err := svc.Decode(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestTokenService_AlgorithmMismatch(t *testing.T) {
	// Токен, подписанный HS512, не принимается сервисом с HS256
	issuer, err := NewTokenService("test-secret-key", "HS512", 15*time.Minute, time.Hour)
	require.NoError(t, err)

	verifier := newTestTokenService(t)

	token, err := issuer.IssueAccess("alice", models.RoleUser)
	require.NoError(t, err)

	_, err = verifier.Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
