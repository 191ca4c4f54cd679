package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const publicCachePrefix = "cache:public"

// bodyCapture tees the response body so a successful JSON payload can be
// stored after the handler runs.
type bodyCapture struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func cacheKey(c *gin.Context) string {
	sum := sha1.Sum([]byte(c.FullPath() + "?" + c.Request.URL.RawQuery))
	return fmt.Sprintf("%s:%x", publicCachePrefix, sum)
}

// CachePublicGET serves public content reads from Redis for the given TTL.
// Only 200 responses are stored, bodies are assumed to be JSON, and a nil
// client disables the whole thing.
func CachePublicGET(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	if rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := cacheKey(c)
		if cached, err := rdb.Get(c.Request.Context(), key).Bytes(); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			c.Abort()
			return
		}

		cw := &bodyCapture{ResponseWriter: c.Writer}
		c.Writer = cw
		c.Next()

		if c.Writer.Status() == http.StatusOK && cw.buf.Len() > 0 {
			if err := rdb.Set(c.Request.Context(), key, cw.buf.Bytes(), ttl).Err(); err != nil {
				log.Printf("cache: store failed: %v", err)
			}
		}
	}
}

// FlushPublicCache drops every cached public response. Admin mutations call
// this so edits show up on the site immediately instead of after TTL.
func FlushPublicCache(ctx context.Context, rdb *redis.Client) {
	if rdb == nil {
		return
	}
	iter := rdb.Scan(ctx, 0, publicCachePrefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := rdb.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("cache: delete %s failed: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("cache: scan failed: %v", err)
	}
}
