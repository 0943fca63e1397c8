package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

// AllowPrivateIP lets loopback and private network clients (10/8, 172.16/12,
// 192.168/16) bypass a limiter.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		parsed := net.ParseIP(ipFromCtx(c))
		if parsed == nil {
			return false
		}
		return parsed.IsLoopback() || parsed.IsPrivate()
	}
}

// AllowAny bypasses when at least one of fns does.
func AllowAny(fns ...AllowFunc) AllowFunc {
	return func(c *gin.Context) bool {
		for _, fn := range fns {
			if fn != nil && fn(c) {
				return true
			}
		}
		return false
	}
}

// AllowMethods bypasses requests with one of the given methods, e.g. reads
// on a route group that only limits writes.
func AllowMethods(methods ...string) AllowFunc {
	return func(c *gin.Context) bool {
		for _, m := range methods {
			if c.Request.Method == m {
				return true
			}
		}
		return false
	}
}
