package lambda

import (
	"errors"
	"fmt"
	"mime"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"lambda-layer-common/pkg/httperrors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so messages match the request body
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	return v
}

// Parse decodes the request body according to its Content-Type header.
// JSON is assumed when the header is missing.
func (r *Request) Parse(opts ...BodyOption) (map[string]any, error) {
	body := r.BodyDecoder(opts...)

	contentType := r.Header("Content-Type")
	if contentType == "" {
		return body.FromJSON()
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, newBodyError("Parse", ErrUnsupportedBody, contentType)
	}

	switch mediaType {
	case "application/json":
		return body.FromJSON()
	case "application/x-www-form-urlencoded":
		return body.FromURLEncoded()
	default:
		return nil, newBodyError("Parse", ErrUnsupportedBody, mediaType)
	}
}

// Bind parses the request body into v and validates it using `validate`
// struct tags. Every failure is returned as a *httperrors.BadRequestError.
func Bind(req *Request, v any, opts ...BodyOption) error {
	parsed, err := req.Parse(opts...)
	if err != nil {
		return BadRequest(err)
	}

	data, err := json.Marshal(parsed)
	if err != nil {
		return httperrors.WrapBadRequestError(err, "Invalid request body")
	}

	if err := json.Unmarshal(data, v); err != nil {
		return httperrors.WrapBadRequestError(err, "Invalid request body")
	}

	if err := validate.Struct(v); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return httperrors.WrapBadRequestError(err, formatValidationErrors(validationErrors))
		}
		return httperrors.WrapBadRequestError(err, "Invalid request body")
	}

	return nil
}

// BadRequest wraps a body decoding error in a BadRequestError whose message
// is safe to show to clients. The original error stays reachable via errors.Is.
func BadRequest(err error) *httperrors.BadRequestError {
	return httperrors.WrapBadRequestError(err, bodyErrorMessage(err))
}

func bodyErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidBase64), errors.Is(err, ErrInvalidUTF8):
		return "Request body could not be decoded"
	case errors.Is(err, ErrInvalidJSON), errors.Is(err, ErrNotJSONObject):
		return "Request body must be a JSON object"
	case errors.Is(err, ErrMalformedForm):
		return "Request body is not valid form data"
	case errors.Is(err, ErrUnsupportedBody):
		return "Unsupported Content-Type"
	default:
		return "Invalid request body"
	}
}

func formatValidationErrors(validationErrors validator.ValidationErrors) string {
	messages := make([]string, 0, len(validationErrors))

	for _, err := range validationErrors {
		var message string

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "uuid":
			message = fmt.Sprintf("%s must be a valid UUID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		default:
			message = fmt.Sprintf("%s is invalid", err.Field())
		}

		messages = append(messages, message)
	}

	return strings.Join(messages, "; ")
}
