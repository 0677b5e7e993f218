package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/boy52hz/OASIP-US-3-V2/internal/config"
)

// cachedResponse is the value stored in Redis per cache key. Headers are
// kept so a hit replays the exact response the handler produced.
type cachedResponse struct {
	Status int         `json:"status"`
	Header http.Header `json:"header"`
	Body   []byte      `json:"body"`
}

// captureWriter tees the response body into a buffer, up to limit bytes,
// while still streaming it to the client. A response that outgrows the
// limit is delivered normally but not cached.
type captureWriter struct {
	http.ResponseWriter
	status   int
	buf      bytes.Buffer
	written  int64
	limit    int64
	overflow bool
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.written += int64(len(b))
	if cw.limit > 0 && cw.written > cw.limit {
		cw.overflow = true
	} else {
		cw.buf.Write(b)
	}
	return cw.ResponseWriter.Write(b)
}

// cacheKeyFrom hashes the configured request parts under the prefix.
func cacheKeyFrom(cfg config.CacheConfig, c echo.Context) string {
	r := c.Request()
	var parts []string
	switch strings.ToLower(cfg.KeyStrategy) {
	case "route":
		parts = []string{c.Path()}
	case "method_route":
		parts = []string{r.Method, c.Path()}
	case "method_route_query":
		parts = []string{r.Method, c.Path(), r.URL.RawQuery}
	default: // route_query
		parts = []string{c.Path(), r.URL.RawQuery}
	}
	sum := sha1.Sum([]byte(strings.Join(parts, ":")))
	return fmt.Sprintf("%s:%x", cfg.Prefix, sum)
}

// NewRedisCache caches whole responses of the configured methods. Only
// 200 responses are stored; everything else passes through untouched. The
// category list and allocated-slot lookups are the hot read paths this
// exists for.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
				return next(c)
			}
			key := cacheKeyFrom(cfg, c)

			if raw, err := rdb.Get(c.Request().Context(), key).Bytes(); err == nil {
				var cached cachedResponse
				if json.Unmarshal(raw, &cached) == nil {
					for k, vals := range cached.Header {
						if strings.EqualFold(k, "Content-Length") {
							continue
						}
						for _, v := range vals {
							c.Response().Header().Add(k, v)
						}
					}
					c.Response().Header().Set("X-Cache", "HIT")
					c.Response().WriteHeader(cached.Status)
					if len(cached.Body) > 0 {
						_, _ = c.Response().Write(cached.Body)
					}
					return nil
				}
			}

			cw := &captureWriter{
				ResponseWriter: c.Response().Writer,
				status:         http.StatusOK,
				limit:          int64(cfg.MaxBodyBytes),
			}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			if cw.status == http.StatusOK && !cw.overflow {
				entry := cachedResponse{
					Status: cw.status,
					Header: c.Response().Header().Clone(),
					Body:   cw.buf.Bytes(),
				}
				if raw, err := json.Marshal(entry); err == nil {
					// Detached context: the request may finish before Redis does.
					_ = rdb.SetEx(context.Background(), key, raw, ttl).Err()
				}
			}
			return nil
		}
	}
}
