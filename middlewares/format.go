package middlewares

import (
	"log"

	"github.com/gin-gonic/gin"
)

// RespondJSON writes a success response. Every success body carries
// "success": true alongside the payload fields.
func RespondJSON(c *gin.Context, data gin.H, status int) {
	body := gin.H{"success": true}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(status, body)
}

// HttpError logs an error and writes the unified error envelope. All failures
// share one shape: {"success": false, "error": "<message>"}.
func HttpError(c *gin.Context, message string, status int, err error) {
	log.Printf("HTTP %d - %s: %v", status, message, err)
	c.JSON(status, gin.H{"success": false, "error": message})
}
