package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/shop-admin-dashboard/pkg/helpers"
)

// Gin context keys shared with the handlers.
const (
	CtxSessionKey = "session"
	CtxUserIDKey  = "userID"
	CtxTokenKey   = "token"
)

// SessionContext is the per-request view of the signed-in account as the
// token describes it. Handlers that change state still go through the
// services, which re-read the account.
type SessionContext struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	Image     string    `json:"image,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func setSession(c *gin.Context, token string, claims *helpers.Claims) {
	s := &SessionContext{
		UserID:  claims.UserID,
		Email:   claims.Email,
		IsAdmin: claims.IsAdmin,
		Image:   claims.Image,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	c.Set(CtxSessionKey, s)
	c.Set(CtxUserIDKey, claims.UserID)
	c.Set(CtxTokenKey, token)
}

// Session returns the context set by SessionGate or Auth.
func Session(c *gin.Context) (*SessionContext, bool) {
	v, ok := c.Get(CtxSessionKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*SessionContext)
	return s, ok
}

// Token returns the verified session token, or "" on public routes.
func Token(c *gin.Context) string {
	return c.GetString(CtxTokenKey)
}

// Protected reports whether path is one of prefixes or nested below one.
// "/dashboardx" is not below "/dashboard".
func Protected(path string, prefixes []string) bool {
	for _, p := range prefixes {
		p = strings.TrimRight(p, "/")
		if p == "" {
			continue
		}
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// SessionGate guards page routes under prefixes. A protected request
// without a token is redirected to entryPath; one with an invalid or
// expired token is redirected as well and its cookie is cleared. Roles are
// not checked here. Other paths pass through; a valid cookie on them still
// fills the session context.
func SessionGate(jwt *helpers.JWTManager, cookies *helpers.Manager, prefixes []string, entryPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookies.Read(c)
		if !Protected(c.Request.URL.Path, prefixes) {
			if token != "" {
				if claims, err := jwt.Verify(token, helpers.SessionKey); err == nil {
					setSession(c, token, claims)
				}
			}
			c.Next()
			return
		}

		if token == "" {
			redirect(c, entryPath)
			return
		}
		claims, err := jwt.Verify(token, helpers.SessionKey)
		if err != nil {
			cookies.Clear(c)
			redirect(c, entryPath)
			return
		}
		setSession(c, token, claims)
		c.Next()
	}
}

func redirect(c *gin.Context, to string) {
	c.Redirect(http.StatusTemporaryRedirect, to)
	c.Abort()
}
