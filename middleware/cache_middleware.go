package middleware

import (
	"bufio"
	"bytes"
	"hash/fnv"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/service/cache"
	"github.com/heritage-x/goapi/service/cache/provider"
	"github.com/heritage-x/goapi/service/cache/provider/primitive"
)

var (
	cacheMiddlewareLocalCache provider.Provider

	cacheMiddlewarePfx = "httpCacheMiddleware"

	once = sync.Once{}
)

// SetupCache initializes the in-process response cache. Must be called once
// before CacheHttp is used.
func SetupCache(sizeMb int) {
	once.Do(func() {
		cacheMiddlewareLocalCache = primitive.NewPrimitive(cacheMiddlewarePfx, sizeMb)
	})
}

// Response is the cached response data structure
type Response struct {
	Value  []byte
	Header http.Header
}

type bodyDumpResponseWriter struct {
	statusCode int
	io.Writer
	http.ResponseWriter
}

func (w *bodyDumpResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyDumpResponseWriter) Write(b []byte) (int, error) {
	return w.Writer.Write(b)
}

func (w *bodyDumpResponseWriter) Flush() {
	w.ResponseWriter.(http.Flusher).Flush()
}

func (w *bodyDumpResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return w.ResponseWriter.(http.Hijacker).Hijack()
}

func sortURLParams(URL *url.URL) {
	params := URL.Query()
	for _, param := range params {
		sort.Slice(param, func(i, j int) bool {
			return param[i] < param[j]
		})
	}
	URL.RawQuery = params.Encode()
}

func generateKey(URL string) string {
	hash := fnv.New64a()
	hash.Write([]byte(URL))

	return strconv.FormatUint(hash.Sum64(), 36)
}

// CacheHttp caches GET responses for ttl. Mutating methods pass through.
func CacheHttp(ttl time.Duration) echo.MiddlewareFunc {
	if cacheMiddlewareLocalCache == nil {
		panic("need SetupCache before using CacheHttp")
	}

	cacheService := cache.New(cache.ServiceConfig{
		Ttl:   ttl,
		Pfx:   cacheMiddlewarePfx,
		Cache: cacheMiddlewareLocalCache,
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}

			context := c.Get("ctx").(ctx.Ctx)

			sortURLParams(c.Request().URL)
			key := generateKey(c.Request().URL.String())

			cached := &Response{}
			if err := cacheService.Get(context, key, cached); err == nil {
				for k, vals := range cached.Header {
					for _, v := range vals {
						c.Response().Header().Set(k, v)
					}
				}
				return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, cached.Value)
			}

			resBody := new(bytes.Buffer)
			mw := io.MultiWriter(c.Response().Writer, resBody)
			writer := &bodyDumpResponseWriter{statusCode: http.StatusOK, Writer: mw, ResponseWriter: c.Response().Writer}
			c.Response().Writer = writer

			if err := next(c); err != nil {
				return err
			}

			if writer.statusCode >= 200 && writer.statusCode < 300 {
				if err := cacheService.Set(context, key, &Response{
					Value:  resBody.Bytes(),
					Header: c.Response().Header(),
				}); err != nil {
					context.WithField("err", err).Warn("cache response failed")
				}
			}

			return nil
		}
	}
}
