package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports liveness. The body is fixed; the frontend pings it to
// detect a reachable backend.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello Next.js!"})
}
