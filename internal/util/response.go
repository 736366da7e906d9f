package util

import "github.com/gin-gonic/gin"

// Fail writes the flat error body used across the API. Every error response
// is a single human-readable string; internal detail stays in the server log.
func Fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}
