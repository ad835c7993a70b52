package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// JSONValidationError adds the offending field so the form can mark it.
func JSONValidationError(c *gin.Context, code int, field, message string) {
	c.JSON(code, gin.H{"success": false, "error": message, "field": field})
}
