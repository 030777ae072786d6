package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func issueCookie(t *testing.T, set func(c *gin.Context)) *http.Cookie {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/", nil)
	set(c)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestSetAuthCookie(t *testing.T) {
	cookie := issueCookie(t, func(c *gin.Context) {
		SetAuthCookie(c, "the-token", false)
	})

	require.Equal(t, CookieName, cookie.Name)
	require.Equal(t, "the-token", cookie.Value)
	require.Equal(t, "/", cookie.Path)
	require.True(t, cookie.HttpOnly)
	require.False(t, cookie.Secure)
	require.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	require.Equal(t, int(TokenTTL.Seconds()), cookie.MaxAge)
}

func TestSetAuthCookieProductionIsSecure(t *testing.T) {
	cookie := issueCookie(t, func(c *gin.Context) {
		SetAuthCookie(c, "the-token", true)
	})

	require.True(t, cookie.Secure)
}

func TestClearAuthCookie(t *testing.T) {
	cookie := issueCookie(t, func(c *gin.Context) {
		ClearAuthCookie(c, false)
	})

	require.Equal(t, CookieName, cookie.Name)
	require.Empty(t, cookie.Value)
	require.Negative(t, cookie.MaxAge)
}
