package response

import (
	"net/http"

	"surveysvc/pkg/errors"
	"surveysvc/pkg/utils/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorBody is the envelope carried by every non-2xx response.
type ErrorBody struct {
	Code    errors.ErrorCode `json:"code"`               // machine-readable error code
	Message string           `json:"message"`            // human-readable message
	Detail  string           `json:"detail,omitempty"`   // opaque diagnostic, 500s only
	TraceID string           `json:"trace_id,omitempty"` // request trace id
}

// Success sends a 200 response with a JSON payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// OK sends a status-only 200 response. Mutating calls return no body.
func OK(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Error sends an error response.
// It extracts the error code from the error and maps it to an HTTP status.
func Error(c *gin.Context, err error) {
	customErr := errors.GetError(err)
	status := customErr.Code.HTTPStatus()

	logger.Error(c.Request.Context(), "request error",
		zap.String("code", string(customErr.Code)),
		zap.String("message", customErr.Error()),
		zap.String("stack", customErr.Stack),
	)

	body := ErrorBody{
		Code:    customErr.Code,
		Message: customErr.Error(),
		TraceID: getTraceID(c),
	}
	if status >= http.StatusInternalServerError && customErr.Err != nil {
		body.Detail = customErr.Err.Error()
	}

	c.JSON(status, body)
}

// ErrorWithCode sends an error response with a specific error code.
func ErrorWithCode(c *gin.Context, code errors.ErrorCode, message string) {
	if message == "" {
		message = code.Message()
	}

	logger.Error(c.Request.Context(), "request error",
		zap.String("code", string(code)),
		zap.String("message", message),
	)

	c.JSON(code.HTTPStatus(), ErrorBody{
		Code:    code,
		Message: message,
		TraceID: getTraceID(c),
	})
}

// BadRequest sends a 400 invalid-params error
func BadRequest(c *gin.Context, message string) {
	ErrorWithCode(c, errors.InvalidParams, message)
}

// getTraceID extracts trace ID from context
func getTraceID(c *gin.Context) string {
	if traceID, exists := c.Get("trace_id"); exists {
		return traceID.(string)
	}
	return ""
}
