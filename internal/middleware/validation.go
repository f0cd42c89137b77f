package middleware

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"lambda-layer-common/pkg/httperrors"
	"lambda-layer-common/pkg/lambda"
)

// abortWith writes the error response for err and stops the chain. The
// error is recorded on the context so the access log can report it.
func abortWith(c *gin.Context, err error) {
	_ = c.Error(err)
	resp := lambda.Error(err, c.GetString(RequestIDKey))
	c.Data(resp.StatusCode, "application/json", resp.Body)
	c.Abort()
}

// RateLimiter implements rate limiting middleware
func RateLimiter(requestsPerSecond float64, burstSize int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			logrus.WithFields(logrus.Fields{
				"client_ip":  c.ClientIP(),
				"path":       c.Request.URL.Path,
				"user_agent": c.Request.UserAgent(),
			}).Warn("Rate limit exceeded")

			abortWith(c, httperrors.TooManyRequests.New(fmt.Sprintf("Too many requests. Limit: %.1f requests per second", requestsPerSecond)))
			return
		}
		c.Next()
	}
}

// ContentTypeValidation validates request content types
func ContentTypeValidation(allowedTypes ...string) gin.HandlerFunc {
	if len(allowedTypes) == 0 {
		allowedTypes = []string{"application/json"}
	}

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		contentType := c.GetHeader("Content-Type")
		if contentType == "" {
			abortWith(c, httperrors.NewBadRequestError("Content-Type header is required"))
			return
		}

		mainType, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			abortWith(c, httperrors.NewBadRequestError("Malformed Content-Type header"))
			return
		}

		for _, allowedType := range allowedTypes {
			if mainType == allowedType {
				c.Next()
				return
			}
		}

		abortWith(c, httperrors.UnsupportedMediaType.New(fmt.Sprintf("Content-Type '%s' is not supported. Allowed types: %v", mainType, allowedTypes)))
	}
}

// RequestSizeLimit limits the size of request bodies
func RequestSizeLimit(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			abortWith(c, httperrors.PayloadTooLarge.New(fmt.Sprintf("Request body size (%d bytes) exceeds maximum allowed size (%d bytes)", c.Request.ContentLength, maxSize)))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
