package mw

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

type cachedResponse struct {
	status  int
	headers http.Header
	body    []byte
}

type bodyCacheWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyCacheWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w bodyCacheWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// uncachedHeaders belong to a single response and are never stored or replayed.
var uncachedHeaders = []string{"Set-Cookie", "X-Cache"}

func cacheableHeaders(h http.Header) http.Header {
	out := h.Clone()
	for _, k := range uncachedHeaders {
		out.Del(k)
	}
	return out
}

// KeyFunc derives the cache key of a request.
type KeyFunc func(c *gin.Context) string

// RequestURIKey caches by request URI alone.
func RequestURIKey(c *gin.Context) string {
	return c.Request.URL.RequestURI()
}

// Cache is a middleware for in-memory caching of GET requests. Responses
// that depend on the visitor's language or theme must include them in key.
func Cache(store *cache.Cache, duration time.Duration, key KeyFunc) gin.HandlerFunc {
	if key == nil {
		key = RequestURIKey
	}
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		k := key(c)
		if resp, found := store.Get(k); found {
			cached := resp.(cachedResponse)
			for h, v := range cached.headers {
				c.Writer.Header()[h] = append([]string(nil), v...)
			}
			c.Writer.Header().Set("X-Cache", "HIT")
			c.Writer.WriteHeader(cached.status)
			c.Writer.Write(cached.body)
			c.Abort()
			return
		}

		blw := &bodyCacheWriter{body: bytes.NewBuffer(nil), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		// Only cache successful responses
		if blw.Status() >= 200 && blw.Status() < 300 {
			response := cachedResponse{
				status:  blw.Status(),
				headers: cacheableHeaders(blw.Header()),
				body:    blw.body.Bytes(),
			}
			store.Set(k, response, duration)
		}
	}
}
