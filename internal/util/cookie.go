package util

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// AuthCookieName is the session cookie carrying the signed token.
const AuthCookieName = "auth_token"

const authCookieMaxAge = int(TokenTTL / time.Second)

// SetAuthCookie attaches the session token to the response. Secure is only
// set in release mode so plain-HTTP development keeps working.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AuthCookieName, token, authCookieMaxAge, "/", "", gin.Mode() == gin.ReleaseMode, true)
}

// ClearAuthCookie expires the session cookie immediately.
func ClearAuthCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AuthCookieName, "", -1, "/", "", gin.Mode() == gin.ReleaseMode, true)
}

// ReadAuthCookie extracts the session token from the request, if present.
func ReadAuthCookie(c *gin.Context) (string, bool) {
	v, err := c.Cookie(AuthCookieName)
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}
