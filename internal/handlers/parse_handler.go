package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lambda-layer-common/pkg/httperrors"
	"lambda-layer-common/pkg/lambda"
)

// BodyEncodingHeader marks a base64 encoded body on the local server,
// standing in for API Gateway's isBase64Encoded flag.
const BodyEncodingHeader = "X-Body-Encoding"

// ParseResponse is returned by the parse endpoints
type ParseResponse struct {
	Body map[string]any `json:"body"`
}

// ParseHandler echoes decoded request bodies
type ParseHandler struct {
	opts []lambda.BodyOption
}

// NewParseHandler creates a new parse handler
func NewParseHandler(decodeFormKeys bool) *ParseHandler {
	h := &ParseHandler{}
	if decodeFormKeys {
		h.opts = append(h.opts, lambda.WithKeyUnescaping())
	}
	return h
}

// ParseJSON decodes a JSON object body
func (h *ParseHandler) ParseJSON(c *gin.Context) {
	h.respond(c, (*lambda.Body).FromJSON)
}

// ParseForm decodes an urlencoded body
func (h *ParseHandler) ParseForm(c *gin.Context) {
	h.respond(c, (*lambda.Body).FromURLEncoded)
}

func (h *ParseHandler) respond(c *gin.Context, parse func(*lambda.Body) (map[string]any, error)) {
	raw, err := c.GetRawData()
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			_ = c.Error(httperrors.PayloadTooLarge.Wrap(err, fmt.Sprintf("Request body exceeds maximum allowed size (%d bytes)", maxBytesErr.Limit)))
			return
		}
		_ = c.Error(httperrors.WrapBadRequestError(err, "Failed to read request body"))
		return
	}

	encoded := strings.EqualFold(c.GetHeader(BodyEncodingHeader), "base64")
	parsed, err := parse(lambda.NewBody(string(raw), encoded, h.opts...))
	if err != nil {
		_ = c.Error(lambda.BadRequest(err))
		return
	}

	c.JSON(http.StatusOK, ParseResponse{Body: parsed})
}

// HandleParse decodes the body of a Lambda request according to its Content-Type
func (h *ParseHandler) HandleParse(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	parsed, err := req.Parse(h.opts...)
	if err != nil {
		return nil, lambda.BadRequest(err)
	}

	return lambda.JSON(http.StatusOK, ParseResponse{Body: parsed})
}
