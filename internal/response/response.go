// Package response implements the API response contract: success bodies are
// the entity shapes themselves, every error body is a JSON object with a
// single "error" string field.
package response

import "github.com/gin-gonic/gin"

// Success sends a successful JSON response with the given status code and body.
func Success(c *gin.Context, statusCode int, body interface{}) {
	c.JSON(statusCode, body)
}

// Fail sends an error response for the given code.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, gin.H{"error": GetMessage(code)})
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, gin.H{"error": GetMessage(code)})
}
