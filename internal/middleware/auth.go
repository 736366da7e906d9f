package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/lathees-dev/Budget-App/internal/models"
	"github.com/lathees-dev/Budget-App/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CurrentUserKey is where the resolved identity lives in the gin context.
const CurrentUserKey = "currentUser"

// AuthMiddleware resolves the full identity behind the session cookie:
// cookie -> signature/expiry -> user row. Every rejection collapses to the
// same 401 body so a caller cannot probe which step failed. The result is
// not cached; each request pays one store lookup.
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := util.ReadAuthCookie(c)
		if !ok {
			unauthenticated(c)
			return
		}

		userID, err := util.ParseToken(jwtSecret, tokenStr)
		if err != nil {
			unauthenticated(c)
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// user deleted after the token was issued
				unauthenticated(c)
			} else {
				log.Printf("auth: load user: %v", err)
				util.Fail(c, http.StatusInternalServerError, "Authentication error")
				c.Abort()
			}
			return
		}

		c.Set(CurrentUserKey, &user)
		c.Next()
	}
}

func unauthenticated(c *gin.Context) {
	util.Fail(c, http.StatusUnauthorized, "Not authenticated")
	c.Abort()
}
