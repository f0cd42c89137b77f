package lambda

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"lambda-layer-common/pkg/httperrors"
)

// APIGatewayHandler is the signature expected by lambda.Start for proxy integrations
type APIGatewayHandler func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// Wrap adapts a HandlerFunc to API Gateway proxy events. Errors returned by
// the handler, including HTTP exceptions, are translated into JSON error
// responses; a panic is reported as an internal error. The returned error is
// always nil so API Gateway receives the translated response.
func Wrap(h HandlerFunc) APIGatewayHandler {
	return func(ctx context.Context, event events.APIGatewayProxyRequest) (resp events.APIGatewayProxyResponse, err error) {
		start := time.Now()
		req := FromAPIGateway(event)
		if req.RequestID == "" {
			req.RequestID = uuid.New().String()
		}

		defer func() {
			if r := recover(); r != nil {
				resp = Error(httperrors.WrapInternalError(fmt.Errorf("panic: %v", r), ""), req.RequestID).ToAPIGateway()
				err = nil
			}
			if resp.Headers == nil {
				resp.Headers = make(map[string]string)
			}
			if _, ok := resp.Headers["X-Request-ID"]; !ok {
				resp.Headers["X-Request-ID"] = req.RequestID
			}

			logrus.WithFields(logrus.Fields{
				"request_id":  req.RequestID,
				"method":      req.Method,
				"path":        req.Path,
				"status_code": resp.StatusCode,
				"latency_ms":  float64(time.Since(start).Nanoseconds()) / 1000000,
			}).Info("Request completed")
		}()

		out, handlerErr := h(ctx, req)
		if handlerErr != nil {
			return Error(handlerErr, req.RequestID).ToAPIGateway(), nil
		}
		if out == nil {
			return Error(httperrors.NewInternalError("handler returned nil response"), req.RequestID).ToAPIGateway(), nil
		}

		return out.ToAPIGateway(), nil
	}
}
