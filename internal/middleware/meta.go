package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/monikajha100/prime-admin-gateway/internal/service"
)

// The gateway annotates list responses with where their payload came from:
// cache or a fresh upstream read, and how long the gateway spent resolving
// it. Handlers add entries through SetCacheHit and collect the final map
// with ResponseMeta just before serializing the envelope.
const (
	metaKey      = "gatewayMeta"
	metaStartKey = "gatewayMetaStart"
)

// Annotate seeds the per-request annotation map and, once the handler chain
// finishes, reports the request outcome to the metrics service. Routed
// requests are labelled by route pattern so path parameters do not explode
// metric cardinality.
func Annotate(metrics *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(metaStartKey, time.Now())
		c.Set(metaKey, map[string]interface{}{})
		c.Next()

		if metrics == nil {
			return
		}
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		elapsed := sinceStart(c)
		metrics.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), elapsed)
	}
}

// SetCacheHit records whether the response payload was served from the
// response cache.
func SetCacheHit(c *gin.Context, hit bool) {
	metaFor(c)["cache_hit"] = hit
}

// ResponseMeta finalizes and returns the annotations for the request. The
// gateway time is stamped here, before the envelope is written, so it covers
// the time actually spent resolving the payload.
func ResponseMeta(c *gin.Context) map[string]interface{} {
	meta := metaFor(c)
	if _, seeded := c.Get(metaStartKey); seeded {
		meta["gateway_ms"] = sinceStart(c).Milliseconds()
	}
	return meta
}

func metaFor(c *gin.Context) map[string]interface{} {
	if v, ok := c.Get(metaKey); ok {
		if meta, ok := v.(map[string]interface{}); ok {
			return meta
		}
	}
	meta := map[string]interface{}{}
	c.Set(metaKey, meta)
	return meta
}

func sinceStart(c *gin.Context) time.Duration {
	if v, ok := c.Get(metaStartKey); ok {
		if start, ok := v.(time.Time); ok {
			return time.Since(start)
		}
	}
	return 0
}
