package response

import "github.com/gin-gonic/gin"

// The client contract is a flat error body: the state layer reads the
// "error" field and nothing else.

func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

func AbortError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{"error": message})
}
