package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comicshelf/comicshelf-api/internal/api"
	"github.com/comicshelf/comicshelf-api/internal/mocks"
)

func newUserRouter(handler *api.UserHandler) chi.Router {
	r := chi.NewRouter()
	r.Get("/users/{username}", handler.Get)
	return r
}

func TestUserGet(t *testing.T) {
	t.Parallel()

	t.Run("returns identity projection without hash", func(t *testing.T) {
		t.Parallel()

		userService := newTestUserService(t, mocks.NewMockUserStore())
		registered, err := userService.Register(context.Background(), "abc", "secret")
		require.NoError(t, err)

		router := newUserRouter(api.NewUserHandler(userService))

		req := httptest.NewRequest(http.MethodGet, "/users/abc", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var body map[string]map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		user, ok := body["user"]
		require.True(t, ok, "response must nest under the user key")
		assert.Equal(t, "abc", user["username"])
		assert.EqualValues(t, registered.ID, user["id"])
		assert.NotContains(t, rr.Body.String(), "password")
	})

	t.Run("unknown username returns 404 naming it", func(t *testing.T) {
		t.Parallel()

		router := newUserRouter(api.NewUserHandler(newTestUserService(t, mocks.NewMockUserStore())))

		req := httptest.NewRequest(http.MethodGet, "/users/ghost", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "No user: ghost", decodeError(t, rr).Error.Message)
	})
}
