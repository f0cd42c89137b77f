package lambda

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"lambda-layer-common/pkg/httperrors"
)

// ErrorResponse is the JSON body returned for failed requests
type ErrorResponse struct {
	Error       string `json:"error"`
	Message     string `json:"message,omitempty"`
	Description string `json:"description"`
	RequestID   string `json:"request_id,omitempty"`
}

// NewErrorResponse builds the response body for err. Errors that are not
// HTTP exceptions are reported as internal errors without their text.
func NewErrorResponse(err error, requestID string) (int, ErrorResponse) {
	httpErr, ok := httperrors.As(err)
	if !ok {
		httpErr = httperrors.NewInternalError("")
	}

	return httpErr.HTTPCode(), ErrorResponse{
		Error:       httpErr.Identifier(),
		Message:     httpErr.Message(),
		Description: httpErr.Description(),
		RequestID:   requestID,
	}
}

// JSON creates a JSON response with the given status code
func JSON(statusCode int, v any) (*Response, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: statusCode,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
	}, nil
}

// Error translates err into a JSON error response and logs it
func Error(err error, requestID string) *Response {
	status, body := NewErrorResponse(err, requestID)
	logError(err, status, body)

	resp, marshalErr := JSON(status, body)
	if marshalErr != nil {
		return &Response{
			StatusCode: http.StatusInternalServerError,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       []byte(`{"error": "B_INTERNAL_ERROR"}`),
		}
	}
	return resp
}

func logError(err error, status int, body ErrorResponse) {
	fields := logrus.Fields{
		"request_id":  body.RequestID,
		"status_code": status,
		"error_id":    body.Error,
		"error":       err.Error(),
	}

	if status >= http.StatusInternalServerError {
		logrus.WithFields(fields).Error("Request failed")
	} else {
		logrus.WithFields(fields).Warn("Request rejected")
	}
}
