package respond

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"files-backend/internal/shared/telemetry"
)

const internalMessage = "Internal server error"

// ErrorResponse is the standardized error envelope.
type ErrorResponse struct {
	StatusCode int         `json:"statusCode"`
	Timestamp  string      `json:"timestamp"`
	Path       string      `json:"path"`
	Method     string      `json:"method"`
	Error      string      `json:"error"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	fields := requestFields(c)
	fields["status"] = status
	fields["code"] = code
	fields["message"] = message
	if status >= http.StatusInternalServerError {
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Warn("http.error", fields)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		StatusCode: status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
		Path:       c.Request.URL.Path,
		Method:     c.Request.Method,
		Error:      code,
		Message:    message,
		Details:    details,
	})
}

// Internal logs err with the request context and replies with a generic 500.
func Internal(c *gin.Context, err error, action string) {
	fields := requestFields(c)
	fields["action"] = action
	if err != nil {
		fields["error"] = err.Error()
	}
	telemetry.Error("http.unexpected", fields)
	Error(c, http.StatusInternalServerError, "internal_error", internalMessage, nil)
}

// Reason returns err's message without the leading "<sentinel>: " prefix, so clients
// see only why the input was rejected.
func Reason(err, sentinel error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
		return rest
	}
	return msg
}

func requestFields(c *gin.Context) map[string]any {
	fields := map[string]any{
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if route := c.FullPath(); route != "" {
		fields["route"] = route
	}
	if fileID := c.GetString("fileId"); fileID != "" {
		fields["file_id"] = fileID
	}
	return fields
}
