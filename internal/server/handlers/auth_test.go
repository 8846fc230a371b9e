package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/apistarter/pkg/api"
)

func postJSON(t *testing.T, handler http.HandlerFunc, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) api.Response {
	t.Helper()
	var resp api.Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestAuthHandler_Register_Success(t *testing.T) {
	store := newMockUserStorage()
	h := NewAuthHandler(setupTestLogger(), setupAuthService(t, store))

	w := postJSON(t, h.Register, "/api/register", api.RegisterRequest{
		Username: "Alice",
		Email:    "Alice@Real.com",
		Password: "secret1",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	assert.Equal(t, api.StatusSuccess, resp.Status)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Registration successful.", resp.Message)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), data["id"])
	assert.Equal(t, "alice", data["username"])
	assert.Equal(t, "alice@real.com", data["email"])

	// В ответе нет ни пароля, ни хеша
	assert.NotContains(t, data, "password")
	assert.NotContains(t, data, "password_hash")
	assert.NotContains(t, w.Body.String(), "secret1")
}

func TestAuthHandler_Register_BlockedDomain(t *testing.T) {
	store := newMockUserStorage()
	h := NewAuthHandler(setupTestLogger(), setupAuthService(t, store))

	w := postJSON(t, h.Register, "/api/register", api.RegisterRequest{
		Username: "bob",
		Email:    "bob@tempmail.com",
		Password: "secret1",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)

	resp := decodeResponse(t, w)
	assert.Equal(t, api.StatusError, resp.Status)
	assert.Equal(t, "Invalid email address.", resp.Message)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "email", resp.Errors[0].Field)
	assert.Equal(t, "Blocked domain", resp.Errors[0].Issue)
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	store := newMockUserStorage()
	h := NewAuthHandler(setupTestLogger(), setupAuthService(t, store))

	w := postJSON(t, h.Register, "/api/register", api.RegisterRequest{
		Username: "alice", Email: "alice@real.com", Password: "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, h.Register, "/api/register", api.RegisterRequest{
		Username: "alice", Email: "other@real.com", Password: "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeResponse(t, w)
	assert.Equal(t, api.StatusError, resp.Status)
	assert.Equal(t, "Email or username already in use.", resp.Message)
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	store := newMockUserStorage()
	h := NewAuthHandler(setupTestLogger(), setupAuthService(t, store))

	w := postJSON(t, h.Register, "/api/register", api.RegisterRequest{
		Username: "a",
		Email:    "not-an-email",
		Password: "x",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeResponse(t, w)
	assert.Equal(t, api.StatusError, resp.Status)
	// По ошибке на каждое невалидное поле
	assert.Len(t, resp.Errors, 3)
}

func TestAuthHandler_Register_BadBody(t *testing.T) {
	store := newMockUserStorage()
	h := NewAuthHandler(setupTestLogger(), setupAuthService(t, store))

	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader([]byte("{broken")))
	w := httptest.NewRecorder()
	h.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	store := newMockUserStorage()
	h := NewAuthHandler(setupTestLogger(), setupAuthService(t, store))

	w := postJSON(t, h.Register, "/api/register", api.RegisterRequest{
		Username: "alice", Email: "alice@real.com", Password: "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, h.Login, "/api/login", api.LoginRequest{
		Username: "alice", Password: "secret1",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	assert.Equal(t, api.StatusSuccess, resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, data["access_token"])
	assert.NotEmpty(t, data["refresh_token"])
	assert.Equal(t, "bearer", data["token_type"])
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	store := newMockUserStorage()
	h := NewAuthHandler(setupTestLogger(), setupAuthService(t, store))

	w := postJSON(t, h.Register, "/api/register", api.RegisterRequest{
		Username: "alice", Email: "alice@real.com", Password: "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Неизвестный username и неверный пароль дают один и тот же ответ
	for _, req := range []api.LoginRequest{
		{Username: "nobody", Password: "secret1"},
		{Username: "alice", Password: "wrong"},
	} {
		w = postJSON(t, h.Login, "/api/login", req)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := decodeResponse(t, w)
		assert.Equal(t, api.StatusError, resp.Status)
		assert.Equal(t, "Invalid credentials.", resp.Message)
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	store := newMockUserStorage()
	svc := setupAuthService(t, store)
	h := NewAuthHandler(setupTestLogger(), svc)

	w := postJSON(t, h.Register, "/api/register", api.RegisterRequest{
		Username: "alice", Email: "alice@real.com", Password: "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, h.Login, "/api/login", api.LoginRequest{
		Username: "alice", Password: "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	loginResp := decodeResponse(t, w)
	data := loginResp.Data.(map[string]any)
	refreshToken := data["refresh_token"].(string)
	firstAccess := data["access_token"].(string)

	req := httptest.NewRequest(http.MethodPost, "/api/refresh-token", nil)
	req.Header.Set("Authorization", "Bearer "+refreshToken)
	rec := httptest.NewRecorder()
	h.Refresh(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	assert.Equal(t, api.StatusSuccess, resp.Status)

	refreshData, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, refreshData["access_token"])
	assert.NotEqual(t, firstAccess, refreshData["access_token"])
	// Новый refresh token не выпускается
	assert.NotContains(t, refreshData, "refresh_token")
}

func TestAuthHandler_Refresh_Invalid(t *testing.T) {
	store := newMockUserStorage()
	h := NewAuthHandler(setupTestLogger(), setupAuthService(t, store))

	tests := []struct {
		name       string
		authHeader string
	}{
		{name: "no header", authHeader: ""},
		{name: "garbage token", authHeader: "Bearer garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/refresh-token", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			h.Refresh(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			resp := decodeResponse(t, rec)
			assert.Equal(t, api.StatusError, resp.Status)
			assert.Equal(t, "Invalid refresh token.", resp.Message)
		})
	}
}
