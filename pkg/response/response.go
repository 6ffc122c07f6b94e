package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/arts-admin-api/pkg/errors"
)

// Failure is the body written for every unsuccessful request.
type Failure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Message is the body for mutations that only report an outcome.
type Message struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// JSON sends a payload with no-store caching headers. Payloads carry their own success discriminator.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, payload)
}

// OK responds with {success:true, message}.
func OK(c *gin.Context, message string) {
	JSON(c, http.StatusOK, Message{Success: true, Message: message})
}

// Error converts err into the failure envelope. Wrapped causes are never written to the client; server errors are
// attached to the context for the request logger.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	if appErr.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	JSON(c, appErr.Status, Failure{Success: false, Message: appErr.Message, Code: appErr.Code})
}

// Abort writes the failure envelope and stops the handler chain.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
