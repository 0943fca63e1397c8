package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func TestCookie_SetSession(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/login", nil)

	NewCookie("token", "localhost", true).SetSession(c, "abc", time.Now().Add(time.Hour))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	ck := cookies[0]
	assert.Equal(t, "token", ck.Name)
	assert.Equal(t, "abc", ck.Value)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
	assert.InDelta(t, 3600, ck.MaxAge, 2)
}

func TestCookie_ClearExpiresImmediately(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/logout", nil)

	NewCookie("token", "", false).Clear(c)

	header := w.Header().Get("Set-Cookie")
	assert.Contains(t, header, "token=;")
	assert.Contains(t, header, "Max-Age=0")
	assert.Contains(t, header, "Expires=Thu, 01 Jan 1970 00:00:00 GMT")
}

func TestCookie_Read(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	m := NewCookie("token", "", false)
	assert.Equal(t, "", m.Read(c))

	c.Request.AddCookie(&http.Cookie{Name: "token", Value: "xyz"})
	assert.Equal(t, "xyz", m.Read(c))
}
