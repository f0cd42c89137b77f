package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"lambda-layer-common/pkg/httperrors"
	"lambda-layer-common/pkg/lambda"
)

// CORS middleware for handling Cross-Origin Resource Sharing
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, Authorization, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "Content-Length, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// ErrorHandler middleware translates the last error attached with c.Error
// into the standard JSON error body. HTTP exceptions keep their status
// code and identifier; bind errors become bad requests; anything else is
// reported as an internal error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		err := lastError(c)
		if err == nil {
			return
		}

		// lambda.Error logs the failure with the request ID
		resp := lambda.Error(err, c.GetString(RequestIDKey))
		c.Data(resp.StatusCode, "application/json", resp.Body)
	}
}

// Recovery converts panics into internal error responses
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		abortWith(c, httperrors.WrapInternalError(fmt.Errorf("panic: %v", recovered), ""))
	})
}
