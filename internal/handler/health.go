package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health answers the unauthenticated liveness probe.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "ok",
		Data: gin.H{
			"time": time.Now().UTC().Format(time.RFC3339),
		},
	})
}
