package utils

import "github.com/gin-gonic/gin"

// Envelope defines the uniform structure for API responses.
type Envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	StatusCode int         `json:"statusCode,omitempty"`
}

// Success returns a standard success response.
func Success(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(200, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error returns a standard error response with the given HTTP status.
func Error(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, Envelope{
		Success:    false,
		Message:    message,
		StatusCode: status,
	})
}
