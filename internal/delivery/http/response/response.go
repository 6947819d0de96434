package response

import (
	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON envelope.
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	ErrorKind string      `json:"error_kind,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// Success sends a success response.
func Success(c *gin.Context, code int, message string, data interface{}) {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string)

	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: idStr,
	})
}

// Error sends an error response. The kind classifies the failure against the
// workflow error taxonomy; it may be empty for generic errors.
func Error(c *gin.Context, code int, message string, kind string) {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string)

	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		ErrorKind: kind,
		RequestID: idStr,
	})
}
