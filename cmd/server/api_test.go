package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
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

// newTestApp wires the application over in-memory stores with a real JWT
// service, so requests flow through the same router, middleware, and
// handlers the server runs in production.
func newTestApp(t *testing.T) *application {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Port: 0, LogLevel: "error"},
		Auth: config.AuthConfig{
			JWTSecret:            "test-jwt-secret-that-is-32-chars-long",
			TokenLifetimeMinutes: 60,
			BcryptCost:           4,
		},
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	require.NoError(t, err)

	userService := service.NewUserService(
		mocks.NewMockUserStore(),
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		auth.NewBcryptVerifier(),
		slog.Default(),
	)
	favoriteService := service.NewFavoriteService(mocks.NewMockFavoriteStore(), slog.Default())

	return &application{
		config:          cfg,
		logger:          slog.Default(),
		jwtService:      jwtService,
		userService:     userService,
		favoriteService: favoriteService,
	}
}

func doJSON(
	t *testing.T,
	router http.Handler,
	method, path, token string,
	body interface{},
) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func registerUser(t *testing.T, router http.Handler, username, password string) string {
	t.Helper()

	rr := doJSON(t, router, http.MethodPost, "/auth/register", "",
		api.RegisterRequest{Username: username, Password: password})
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp api.TokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error.Message
}

func TestFavoriteLifecycle(t *testing.T) {
	router := newTestApp(t).setupRouter()

	token := registerUser(t, router, "abc", "secret")

	// The user's numeric ID comes from the identity lookup.
	userResp := doJSON(t, router, http.MethodGet, "/users/abc", token, nil)
	require.Equal(t, http.StatusOK, userResp.Code)
	var userBody struct {
		User struct {
			ID       int64  `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(userResp.Body.Bytes(), &userBody))
	require.Equal(t, "abc", userBody.User.Username)
	userID := userBody.User.ID

	addBody := api.AddFavoriteRequest{
		CharacterID: "1",
		Name:        "Hulk",
		Image:       "u",
		Description: "d",
		UserID:      userID,
	}

	created := doJSON(t, router, http.MethodPost, "/characters/favorite/abc/abc", token, addBody)
	require.Equal(t, http.StatusCreated, created.Code)
	var favBody struct {
		Character struct {
			CharacterID string `json:"characterId"`
			Name        string `json:"name"`
			UserID      int64  `json:"userId"`
		} `json:"character"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &favBody))
	assert.Equal(t, "1", favBody.Character.CharacterID)
	assert.Equal(t, "Hulk", favBody.Character.Name)
	assert.Equal(t, userID, favBody.Character.UserID)

	duplicate := doJSON(t, router, http.MethodPost, "/characters/favorite/abc/abc", token, addBody)
	assert.Equal(t, http.StatusBadRequest, duplicate.Code)
	assert.Equal(t, "Character 1 is already associated with this user.", errorMessage(t, duplicate))

	listed := doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/characters/favorite/abc/%d", userID), token, nil)
	require.Equal(t, http.StatusOK, listed.Code)
	var listBody struct {
		Character []struct {
			CharacterID string `json:"character_id"`
		} `json:"character"`
	}
	require.NoError(t, json.Unmarshal(listed.Body.Bytes(), &listBody))
	require.Len(t, listBody.Character, 1)
	assert.Equal(t, "1", listBody.Character[0].CharacterID)

	removeBody := api.RemoveFavoriteRequest{UserID: userID, CharacterID: "1"}

	deleted := doJSON(t, router, http.MethodDelete, "/characters/favorite/abc/abc", token, removeBody)
	require.Equal(t, http.StatusOK, deleted.Code)
	assert.JSONEq(t, `{"deleted":"Character Deleted"}`, deleted.Body.String())

	deletedAgain := doJSON(t, router, http.MethodDelete, "/characters/favorite/abc/abc", token, removeBody)
	assert.Equal(t, http.StatusNotFound, deletedAgain.Code)
	assert.Equal(t, "No Character", errorMessage(t, deletedAgain))
}

func TestAuthFlow(t *testing.T) {
	router := newTestApp(t).setupRouter()

	registerUser(t, router, "abc", "secret")

	t.Run("login issues usable token", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPost, "/auth/token", "",
			api.LoginRequest{Username: "abc", Password: "secret"})
		require.Equal(t, http.StatusOK, rr.Code)

		var resp api.TokenResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

		me := doJSON(t, router, http.MethodGet, "/users/abc", resp.Token, nil)
		assert.Equal(t, http.StatusOK, me.Code)
	})

	t.Run("duplicate registration rejected", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPost, "/auth/register", "",
			api.RegisterRequest{Username: "abc", Password: "secret"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Duplicate username: abc", errorMessage(t, rr))
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPost, "/auth/token", "",
			api.LoginRequest{Username: "abc", Password: "wrong"})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Invalid username/password", errorMessage(t, rr))
	})
}

func TestRouteGuards(t *testing.T) {
	router := newTestApp(t).setupRouter()

	tokenABC := registerUser(t, router, "abc", "secret")
	registerUser(t, router, "def", "secret")

	t.Run("missing token rejected", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/users/abc", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Unauthorized", errorMessage(t, rr))
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/users/abc", "not-a-jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("another user's resource rejected", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/users/def", tokenABC, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Unauthorized", errorMessage(t, rr))
	})

	t.Run("favorites routes share the guard", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPost, "/characters/favorite/def/def", tokenABC,
			api.AddFavoriteRequest{CharacterID: "1", UserID: 1})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestPublicRoutes(t *testing.T) {
	router := newTestApp(t).setupRouter()

	t.Run("banner is plain text", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/", "", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Welcome to the comicshelf API", rr.Body.String())
	})

	t.Run("health", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "OK", rr.Body.String())
	})

	t.Run("unknown route gets the error envelope", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/nope", "", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)

		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, http.StatusNotFound, resp.Error.Status)
	})
}
