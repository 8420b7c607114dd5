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

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestRouterSetup(t *testing.T) {
	t.Run("mounts at the root by default", func(t *testing.T) {
		engine := gin.New()
		group := NewDomainGroup("test", "/test").GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})
		NewRouter(engine).Register(group).Setup()

		w := serve(engine, http.MethodGet, "/test/ping")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "pong", w.Body.String())
	})

	t.Run("honours a prefix", func(t *testing.T) {
		engine := gin.New()
		group := NewDomainGroup("test", "/test").GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})
		NewRouter(engine, WithPrefix("/api")).Register(group).Setup()

		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/test/ping").Code)
		assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/test/ping").Code)
	})
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("cart", "/cart")
		assert.Equal(t, "cart", g.Name())
		assert.Equal(t, "/cart", g.Prefix())
	})

	t.Run("registers every method", func(t *testing.T) {
		engine := gin.New()
		ok := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }
		g := NewDomainGroup("cart", "/cart").
			GET("", ok).
			POST("/items", ok).
			PUT("/items/:itemId", ok).
			DELETE("/items/:itemId", ok)
		g.RegisterRoutes(engine.Group(""))

		assert.Equal(t, "GET", serve(engine, http.MethodGet, "/cart").Body.String())
		assert.Equal(t, "POST", serve(engine, http.MethodPost, "/cart/items").Body.String())
		assert.Equal(t, "PUT", serve(engine, http.MethodPut, "/cart/items/a1").Body.String())
		assert.Equal(t, "DELETE", serve(engine, http.MethodDelete, "/cart/items/a1").Body.String())
	})

	t.Run("group middleware applies to subgroups", func(t *testing.T) {
		engine := gin.New()
		var calls int
		g := NewDomainGroup("merchant", "/merchant").Use(func(c *gin.Context) {
			calls++
			c.Next()
		})
		g.GET("/stats", func(c *gin.Context) { c.Status(http.StatusOK) })
		g.Group("menu", "/menu").GET("", func(c *gin.Context) { c.Status(http.StatusOK) })
		g.RegisterRoutes(engine.Group(""))

		serve(engine, http.MethodGet, "/merchant/stats")
		serve(engine, http.MethodGet, "/merchant/menu")
		assert.Equal(t, 2, calls)
	})
}
