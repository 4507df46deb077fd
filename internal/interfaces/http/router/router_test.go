package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubRegistrar struct {
	path string
}

func (r *stubRegistrar) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET(r.path, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
}

func TestRouterRegistersUnderVersionPrefix(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)
	r.Register(&stubRegistrar{path: "/accounts"})
	r.Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/accounts", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouterCustomAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))
	r.Register(&stubRegistrar{path: "/accounts"})
	r.Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v2/accounts", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterMultipleRegistrars(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)
	r.Register(&stubRegistrar{path: "/accounts"}).Register(&stubRegistrar{path: "/health"})
	r.Setup()

	for _, path := range []string{"/api/v1/accounts", "/api/v1/health"} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}
