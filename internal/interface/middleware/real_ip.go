package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

const CtxRealIPKey = "real_ip"

// RealIP stores the client address under CtxRealIPKey, checking in order
// CF-Connecting-IP, the left-most X-Forwarded-For entry and X-Real-IP
// before falling back to c.ClientIP(). Headers that do not parse as an IP
// are ignored.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxRealIPKey, realIP(c))
		c.Next()
	}
}

func realIP(c *gin.Context) string {
	candidates := []string{c.GetHeader("CF-Connecting-IP")}
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		candidates = append(candidates, strings.SplitN(xff, ",", 2)[0])
	}
	candidates = append(candidates, c.GetHeader("X-Real-IP"))
	for _, v := range candidates {
		if ip := net.ParseIP(strings.TrimSpace(v)); ip != nil {
			return ip.String()
		}
	}
	return c.ClientIP()
}
