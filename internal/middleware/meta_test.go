package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monikajha100/prime-admin-gateway/internal/service"
)

func TestAnnotateCarriesCacheHitAndGatewayTime(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)

	var meta map[string]interface{}
	r.Use(Annotate(service.NewMetricsService()))
	r.GET("/batches", func(c *gin.Context) {
		SetCacheHit(c, true)
		meta = ResponseMeta(c)
		c.Status(http.StatusOK)
	})

	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/batches", nil))

	require.NotNil(t, meta)
	assert.Equal(t, true, meta["cache_hit"])
	_, ok := meta["gateway_ms"]
	assert.True(t, ok, "gateway time is stamped when the middleware is installed")
}

func TestAnnotateNilMetricsService(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)

	r.Use(Annotate(nil))
	r.GET("/batches", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/batches", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestResponseMetaWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/batches", nil)

	SetCacheHit(c, false)
	meta := ResponseMeta(c)

	assert.Equal(t, false, meta["cache_hit"])
	_, ok := meta["gateway_ms"]
	assert.False(t, ok, "no gateway time without the middleware")
}
