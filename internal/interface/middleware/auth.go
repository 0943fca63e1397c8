package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/shop-admin-dashboard/pkg/helpers"
	"github.com/oksasatya/shop-admin-dashboard/pkg/response"
)

// bearer returns the token of an "Authorization: Bearer" header.
func bearer(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// Auth validates the session token of API requests, taken from the
// Authorization header or else the session cookie. It sets the session
// context, userID and token on success. The role is left to the services.
func Auth(jwt *helpers.JWTManager, cookies *helpers.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearer(c)
		fromCookie := false
		if token == "" {
			token, fromCookie = cookies.Read(c), true
		}
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "missing session token", response.ErrorBody{Code: "unauthenticated"})
			return
		}
		claims, err := jwt.Verify(token, helpers.SessionKey)
		if err != nil {
			if fromCookie {
				cookies.Clear(c)
			}
			response.Abort(c, http.StatusUnauthorized, "invalid session token", response.ErrorBody{Code: "unauthenticated"})
			return
		}
		setSession(c, token, claims)
		c.Next()
	}
}
