package recipe

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	recipeService "recipe-nutrition/internal/core/recipe"
	"recipe-nutrition/internal/infrastructure/config"
	"recipe-nutrition/internal/infrastructure/storage"
	"recipe-nutrition/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.NewStorage(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	generator := recipeService.NewService(&config.GroqConfig{Timeout: time.Second})
	return NewHandler(generator, nil, store)
}

func notFoundRequest(t *testing.T, handle gin.HandlerFunc, method string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/api/v1/recipes/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handle(c)
	return w
}

func assertRecipeNotFound(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
	var resp common.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != common.ErrRecipeNotFound.Code {
		t.Errorf("expected code %q, got %q", common.ErrRecipeNotFound.Code, resp.Code)
	}
}

func TestHandleGetNotFound(t *testing.T) {
	h := newTestHandler(t)
	w := notFoundRequest(t, h.HandleGet, http.MethodGet)
	assertRecipeNotFound(t, w)
}

func TestHandleToggleFavoriteNotFound(t *testing.T) {
	h := newTestHandler(t)
	w := notFoundRequest(t, h.HandleToggleFavorite, http.MethodPatch)
	assertRecipeNotFound(t, w)
}
