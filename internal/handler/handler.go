package handler

import (
	"github.com/lathees-dev/Budget-App/internal/middleware"
	"github.com/lathees-dev/Budget-App/internal/models"

	"github.com/gin-gonic/gin"
)

// currentUser reads the identity resolved by the auth middleware.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(middleware.CurrentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
