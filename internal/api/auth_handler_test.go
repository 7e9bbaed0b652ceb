package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comicshelf/comicshelf-api/internal/api"
	"github.com/comicshelf/comicshelf-api/internal/api/shared"
	"github.com/comicshelf/comicshelf-api/internal/config"
	"github.com/comicshelf/comicshelf-api/internal/mocks"
	"github.com/comicshelf/comicshelf-api/internal/service"
	"github.com/comicshelf/comicshelf-api/internal/service/auth"
)

func newTestJWTService(t *testing.T) auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "test-jwt-secret-that-is-32-chars-long",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)
	return svc
}

func newTestUserService(t *testing.T, userStore *mocks.MockUserStore) service.UserService {
	t.Helper()
	return service.NewUserService(
		userStore,
		auth.NewBcryptHasher(4),
		auth.NewBcryptVerifier(),
		nil,
	)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("success returns 201 with verifiable token", func(t *testing.T) {
		t.Parallel()

		jwtService := newTestJWTService(t)
		handler := api.NewAuthHandler(newTestUserService(t, mocks.NewMockUserStore()), jwtService)

		rr := postJSON(t, handler.Register, "/auth/register",
			api.RegisterRequest{Username: "abc", Password: "secret"})

		require.Equal(t, http.StatusCreated, rr.Code)

		var resp api.TokenResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Token)

		claims, err := jwtService.ValidateToken(context.Background(), resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "abc", claims.Username)
	})

	t.Run("duplicate username returns 400 with username in message", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		userService := newTestUserService(t, userStore)
		handler := api.NewAuthHandler(userService, newTestJWTService(t))

		_, err := userService.Register(context.Background(), "abc", "secret")
		require.NoError(t, err)

		rr := postJSON(t, handler.Register, "/auth/register",
			api.RegisterRequest{Username: "abc", Password: "other-secret"})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decodeError(t, rr)
		assert.Equal(t, "Duplicate username: abc", resp.Error.Message)
		assert.Equal(t, http.StatusBadRequest, resp.Error.Status)
	})

	t.Run("short username returns 400", func(t *testing.T) {
		t.Parallel()

		handler := api.NewAuthHandler(newTestUserService(t, mocks.NewMockUserStore()), newTestJWTService(t))

		rr := postJSON(t, handler.Register, "/auth/register",
			api.RegisterRequest{Username: "ab", Password: "secret"})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decodeError(t, rr)
		assert.Contains(t, resp.Error.Message, "at least 3 characters")
	})

	t.Run("short password returns 400", func(t *testing.T) {
		t.Parallel()

		handler := api.NewAuthHandler(newTestUserService(t, mocks.NewMockUserStore()), newTestJWTService(t))

		rr := postJSON(t, handler.Register, "/auth/register",
			api.RegisterRequest{Username: "abc", Password: "1234"})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		t.Parallel()

		handler := api.NewAuthHandler(newTestUserService(t, mocks.NewMockUserStore()), newTestJWTService(t))

		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString("{not json"))
		rr := httptest.NewRecorder()
		handler.Register(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestToken(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) *api.AuthHandler {
		t.Helper()
		userService := newTestUserService(t, mocks.NewMockUserStore())
		_, err := userService.Register(context.Background(), "abc", "secret")
		require.NoError(t, err)
		return api.NewAuthHandler(userService, newTestJWTService(t))
	}

	t.Run("valid credentials return 200 with token", func(t *testing.T) {
		t.Parallel()

		handler := setup(t)
		rr := postJSON(t, handler.Token, "/auth/token",
			api.LoginRequest{Username: "abc", Password: "secret"})

		require.Equal(t, http.StatusOK, rr.Code)

		var resp api.TokenResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("unknown user and wrong password share one message", func(t *testing.T) {
		t.Parallel()

		handler := setup(t)

		wrongPassword := postJSON(t, handler.Token, "/auth/token",
			api.LoginRequest{Username: "abc", Password: "nope1"})
		unknownUser := postJSON(t, handler.Token, "/auth/token",
			api.LoginRequest{Username: "ghost", Password: "secret"})

		assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
		assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
		assert.Equal(t,
			decodeError(t, wrongPassword).Error.Message,
			decodeError(t, unknownUser).Error.Message)
		assert.Equal(t, "Invalid username/password", decodeError(t, wrongPassword).Error.Message)
	})

	t.Run("empty fields return 401 not 400", func(t *testing.T) {
		t.Parallel()

		handler := setup(t)
		rr := postJSON(t, handler.Token, "/auth/token",
			api.LoginRequest{Username: "", Password: ""})

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Invalid username/password", decodeError(t, rr).Error.Message)
	})
}
