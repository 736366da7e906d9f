package middleware

import (
	"net/http"

	"github.com/lathees-dev/Budget-App/internal/util"

	"github.com/gin-gonic/gin"
)

var publicPages = map[string]bool{
	"/login":  true,
	"/signup": true,
}

// PageGuard is the pre-route check for browser pages. It proves only the
// token's signature and expiry and never touches the store, so a deleted
// user with a still-valid token passes here and is rejected later by
// AuthMiddleware on the first API call. It must never be the sole
// authorization check for data access.
//
// Unauthenticated visitors are sent to /login from protected pages;
// authenticated ones are sent home from /login and /signup.
func PageGuard(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticated := false
		if tokenStr, ok := util.ReadAuthCookie(c); ok {
			if _, err := util.ParseToken(jwtSecret, tokenStr); err == nil {
				authenticated = true
			}
		}

		public := publicPages[c.Request.URL.Path]
		switch {
		case !authenticated && !public:
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
		case authenticated && public:
			c.Redirect(http.StatusFound, "/")
			c.Abort()
		default:
			c.Next()
		}
	}
}
