package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"lambda-layer-common/pkg/httperrors"
	"lambda-layer-common/pkg/lambda"
)

// RequestIDKey is the key used to store request ID in context
const RequestIDKey = "request_id"

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger writes one access log line per request. When the chain
// recorded an error, the line carries the same error_id the client got.
func StructuredLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		query := c.Request.URL.RawQuery

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		status := c.Writer.Status()
		entry := logrus.WithFields(logrus.Fields{
			"request_id":  c.GetString(RequestIDKey),
			"method":      c.Request.Method,
			"path":        path,
			"status_code": status,
			"latency_ms":  time.Since(start).Milliseconds(),
			"client_ip":   c.ClientIP(),
			"body_bytes":  c.Request.ContentLength,
		})
		if query != "" {
			entry = entry.WithField("query", query)
		}
		if err := lastError(c); err != nil {
			entry = entry.WithFields(errorFields(err))
		}

		switch {
		case status >= 500:
			entry.Error("Request failed")
		case status >= 400:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request completed")
		}
	}
}

// lastError returns the error the response was built from, or nil
func lastError(c *gin.Context) error {
	last := c.Errors.Last()
	if last == nil {
		return nil
	}

	// Binding failures that are not exceptions are the client's fault
	if _, ok := httperrors.As(last.Err); !ok && last.Type == gin.ErrorTypeBind {
		return httperrors.WrapBadRequestError(last.Err, last.Error())
	}
	return last.Err
}

func errorFields(err error) logrus.Fields {
	_, resp := lambda.NewErrorResponse(err, "")

	fields := logrus.Fields{
		"error_id": resp.Error,
		"error":    err.Error(),
	}
	if resp.Message != "" {
		fields["error_message"] = resp.Message
	}
	return fields
}
