package middleware

import "github.com/gin-gonic/gin"

// CacheHeader is set on cacheable responses to report whether they came from cache.
const CacheHeader = "X-Cache"

// SetCacheHit records cache usage for the current response.
func SetCacheHit(c *gin.Context, hit bool) {
	if hit {
		c.Header(CacheHeader, "HIT")
		return
	}
	c.Header(CacheHeader, "MISS")
}
