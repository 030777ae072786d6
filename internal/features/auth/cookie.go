package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CookieName is the session cookie carrying the signed token
const CookieName = "auth-token"

// SetAuthCookie binds the session token to the response as an
// HTTP-only, Lax cookie scoped to the whole site. Secure is on in
// production only so local HTTP development keeps working.
func SetAuthCookie(c *gin.Context, token string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(TokenTTL.Seconds()), "/", "", secure, true)
}

// ClearAuthCookie expires the session cookie. Clearing an absent
// cookie is a no-op, so logout is idempotent.
func ClearAuthCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", secure, true)
}
