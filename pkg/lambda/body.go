package lambda

import (
	"bytes"
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-json"
)

// Body parses API Gateway request bodies sent to Lambda functions.
// It holds no mutable state and is safe for concurrent use.
type Body struct {
	raw             string
	isBase64Encoded bool
	unescapeKeys    bool
}

// BodyOption configures a Body
type BodyOption func(*Body)

// WithKeyUnescaping percent-decodes form keys as well as values.
// By default keys are used exactly as sent.
func WithKeyUnescaping() BodyOption {
	return func(b *Body) {
		b.unescapeKeys = true
	}
}

// NewBody creates a body decoder over raw
func NewBody(raw string, isBase64Encoded bool, opts ...BodyOption) *Body {
	b := &Body{
		raw:             raw,
		isBase64Encoded: isBase64Encoded,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Decoded returns the body as text, undoing base64 encoding when the
// request was flagged as encoded.
func (b *Body) Decoded() (string, error) {
	if !b.isBase64Encoded {
		return b.raw, nil
	}

	data, err := base64.StdEncoding.DecodeString(b.raw)
	if err != nil {
		return "", newBodyError("Decoded", ErrInvalidBase64, err.Error())
	}
	if !utf8.Valid(data) {
		return "", newBodyError("Decoded", ErrInvalidUTF8, "")
	}

	return string(data), nil
}

// FromJSON loads a JSON object body as a map
func (b *Body) FromJSON() (map[string]any, error) {
	text, err := b.Decoded()
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, newBodyError("FromJSON", ErrInvalidJSON, "empty body")
	}

	parsed, err := decodeJSON(text)
	if err != nil {
		return nil, newBodyError("FromJSON", ErrInvalidJSON, err.Error())
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, newBodyError("FromJSON", ErrNotJSONObject, jsonKind(parsed))
	}

	return obj, nil
}

// FromURLEncoded loads an application/x-www-form-urlencoded body as a map.
// Each value is percent-decoded and then parsed as JSON when possible, so
// "a=1" yields the number 1 and "b=%22x%22" yields the string "x". Values
// that are not JSON are kept as the decoded string. Repeated keys keep the
// last value.
func (b *Body) FromURLEncoded() (map[string]any, error) {
	text, err := b.Decoded()
	if err != nil {
		return nil, err
	}

	parsed := make(map[string]any)

	for _, item := range strings.Split(text, "&") {
		key, rawValue, found := strings.Cut(item, "=")
		if !found {
			return nil, newBodyError("FromURLEncoded", ErrMalformedForm, "segment "+quote(item)+" has no '='")
		}

		if b.unescapeKeys {
			key = unquote(key)
		}

		value := unquote(rawValue)
		parsed[key] = parseValue(value)
	}

	return parsed, nil
}

// parseValue returns the JSON value encoded in s, or s itself when it is not JSON
func parseValue(s string) any {
	if strings.TrimSpace(s) == "" {
		return s
	}
	v, err := decodeJSON(s)
	if err != nil {
		return s
	}
	return v
}

// decodeJSON parses a single JSON document. Integers that fit in int64 come
// back as int64 and larger ones as their exact json.Number literal; all other
// numbers are float64.
func decodeJSON(s string) (any, error) {
	data := []byte(s)
	if !json.Valid(data) {
		var discard any
		if err := json.Unmarshal(data, &discard); err != nil {
			return nil, err
		}
		return nil, errTrailingData
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return normalizeNumbers(v), nil
}

func normalizeNumbers(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeNumbers(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = normalizeNumbers(item)
		}
		return val
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if !strings.ContainsAny(val.String(), ".eE") {
			return val
		}
		f, _ := val.Float64()
		return f
	default:
		return v
	}
}

// unquote percent-decodes s. Sequences that are not a valid %XX escape are
// kept verbatim and "+" is left alone. Bytes that do not form UTF-8 become
// U+FFFD.
func unquote(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}

	var buf strings.Builder
	buf.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			buf.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
			continue
		}
		buf.WriteByte(s[i])
	}

	out := buf.String()
	if !utf8.ValidString(out) {
		out = strings.ToValidUTF8(out, "\uFFFD")
	}
	return out
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "got null"
	case []any:
		return "got array"
	case string:
		return "got string"
	case int64, float64, json.Number:
		return "got number"
	case bool:
		return "got boolean"
	default:
		return ""
	}
}

func quote(s string) string {
	const maxRunes = 32
	if utf8.RuneCountInString(s) > maxRunes {
		cut := 0
		for n := 0; n < maxRunes; n++ {
			_, size := utf8.DecodeRuneInString(s[cut:])
			cut += size
		}
		s = s[:cut] + "..."
	}
	return `"` + s + `"`
}
