package lambda

import (
	"encoding/base64"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func TestBody_Decoded(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		encoded bool
		want    string
		wantErr error
	}{
		{name: "plain text unchanged", raw: "a=1&b=2", want: "a=1&b=2"},
		{name: "empty plain body", raw: "", want: ""},
		{name: "plain body that looks like base64", raw: encode("hello"), want: encode("hello")},
		{name: "base64 ascii", raw: encode(`{"a":1}`), encoded: true, want: `{"a":1}`},
		{name: "base64 unicode", raw: encode("name=Žemaitė&city=Kaunas"), encoded: true, want: "name=Žemaitė&city=Kaunas"},
		{name: "base64 empty", raw: "", encoded: true, want: ""},
		{name: "invalid base64", raw: "not base64!!", encoded: true, wantErr: ErrInvalidBase64},
		{name: "invalid utf-8", raw: base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, 0xfd}), encoded: true, wantErr: ErrInvalidUTF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewBody(tt.raw, tt.encoded).Decoded()
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, IsDecodeError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBody_FromJSON(t *testing.T) {
	t.Run("object", func(t *testing.T) {
		got, err := NewBody(`{"a":1,"b":"x"}`, false).FromJSON()
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": int64(1), "b": "x"}, got)
	})

	t.Run("nested values", func(t *testing.T) {
		got, err := NewBody(`{"list":[1,true,null],"obj":{"k":"v"}}`, false).FromJSON()
		require.NoError(t, err)
		assert.Equal(t, []any{int64(1), true, nil}, got["list"])
		assert.Equal(t, map[string]any{"k": "v"}, got["obj"])
	})

	t.Run("base64 encoded object", func(t *testing.T) {
		got, err := NewBody(encode(`{"a":1,"b":"x"}`), true).FromJSON()
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": int64(1), "b": "x"}, got)
	})

	t.Run("duplicate keys keep last", func(t *testing.T) {
		got, err := NewBody(`{"a":1,"a":2}`, false).FromJSON()
		require.NoError(t, err)
		assert.Equal(t, int64(2), got["a"])
	})

	t.Run("not json", func(t *testing.T) {
		_, err := NewBody("a=1&b=2", false).FromJSON()
		assert.ErrorIs(t, err, ErrInvalidJSON)
	})

	t.Run("empty body", func(t *testing.T) {
		_, err := NewBody("", false).FromJSON()
		assert.ErrorIs(t, err, ErrInvalidJSON)
	})

	for _, raw := range []string{`[1,2]`, `"text"`, `42`, `true`, `null`} {
		t.Run("non-object "+raw, func(t *testing.T) {
			_, err := NewBody(raw, false).FromJSON()
			assert.ErrorIs(t, err, ErrNotJSONObject)
		})
	}

	t.Run("invalid base64 propagates", func(t *testing.T) {
		_, err := NewBody("%%%", true).FromJSON()
		assert.ErrorIs(t, err, ErrInvalidBase64)
	})
}

func TestBody_FromURLEncoded(t *testing.T) {
	t.Run("values are json decoded when possible", func(t *testing.T) {
		got, err := NewBody("a=1&b=%22hello%22&c=plain", false).FromURLEncoded()
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": int64(1), "b": "hello", "c": "plain"}, got)
	})

	t.Run("structured values", func(t *testing.T) {
		got, err := NewBody("ids=%5B1%2C2%5D&flag=true&none=null&obj=%7B%22k%22%3A%22v%22%7D", false).FromURLEncoded()
		require.NoError(t, err)
		assert.Equal(t, []any{int64(1), int64(2)}, got["ids"])
		assert.Equal(t, true, got["flag"])
		assert.Contains(t, got, "none")
		assert.Nil(t, got["none"])
		assert.Equal(t, map[string]any{"k": "v"}, got["obj"])
	})

	t.Run("empty value stays empty string", func(t *testing.T) {
		got, err := NewBody("a=", false).FromURLEncoded()
		require.NoError(t, err)
		assert.Equal(t, "", got["a"])
	})

	t.Run("splits on first equals sign", func(t *testing.T) {
		got, err := NewBody("expr=a%3Db&raw=x=y", false).FromURLEncoded()
		require.NoError(t, err)
		assert.Equal(t, "a=b", got["expr"])
		assert.Equal(t, "x=y", got["raw"])
	})

	t.Run("plus is not a space", func(t *testing.T) {
		got, err := NewBody("q=a+b", false).FromURLEncoded()
		require.NoError(t, err)
		assert.Equal(t, "a+b", got["q"])
	})

	t.Run("repeated keys keep last", func(t *testing.T) {
		got, err := NewBody("a=1&a=2", false).FromURLEncoded()
		require.NoError(t, err)
		assert.Equal(t, int64(2), got["a"])
	})

	t.Run("keys are raw by default", func(t *testing.T) {
		got, err := NewBody("first%20name=Ada", false).FromURLEncoded()
		require.NoError(t, err)
		assert.Equal(t, "Ada", got["first%20name"])
		assert.NotContains(t, got, "first name")
	})

	t.Run("keys unescaped on request", func(t *testing.T) {
		got, err := NewBody("first%20name=Ada", false, WithKeyUnescaping()).FromURLEncoded()
		require.NoError(t, err)
		assert.Equal(t, "Ada", got["first name"])
	})

	t.Run("base64 encoded form", func(t *testing.T) {
		got, err := NewBody(encode("a=1&c=plain"), true).FromURLEncoded()
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": int64(1), "c": "plain"}, got)
	})

	t.Run("segment without separator", func(t *testing.T) {
		_, err := NewBody("a=1&broken&c=3", false).FromURLEncoded()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedForm)
		assert.Contains(t, err.Error(), "broken")
	})

	t.Run("empty body", func(t *testing.T) {
		_, err := NewBody("", false).FromURLEncoded()
		assert.ErrorIs(t, err, ErrMalformedForm)
	})

	t.Run("trailing ampersand", func(t *testing.T) {
		_, err := NewBody("a=1&", false).FromURLEncoded()
		assert.ErrorIs(t, err, ErrMalformedForm)
	})

	t.Run("invalid percent escapes are kept verbatim", func(t *testing.T) {
		got, err := NewBody("a=%zz&discount=50%&note=100%25&tail=%4", false).FromURLEncoded()
		require.NoError(t, err)
		assert.Equal(t, "%zz", got["a"])
		assert.Equal(t, "50%", got["discount"])
		assert.Equal(t, "100%", got["note"])
		assert.Equal(t, "%4", got["tail"])
	})

	t.Run("lenient key unescaping", func(t *testing.T) {
		got, err := NewBody("rate%=5&a%2Db=1", false, WithKeyUnescaping()).FromURLEncoded()
		require.NoError(t, err)
		assert.Equal(t, int64(5), got["rate%"])
		assert.Equal(t, int64(1), got["a-b"])
	})

	t.Run("multi-byte escapes", func(t *testing.T) {
		got, err := NewBody("city=Vilni%C5%B3s&bad=%FF", false).FromURLEncoded()
		require.NoError(t, err)
		assert.Equal(t, "Vilniųs", got["city"])
		assert.Equal(t, "\uFFFD", got["bad"])
	})

	t.Run("large integers keep precision", func(t *testing.T) {
		got, err := NewBody("id=12345678901234567891&small=9007199254740993&ratio=0.5", false).FromURLEncoded()
		require.NoError(t, err)
		assert.Equal(t, json.Number("12345678901234567891"), got["id"])
		assert.Equal(t, int64(9007199254740993), got["small"])
		assert.Equal(t, 0.5, got["ratio"])
	})
}

func TestBody_FromJSONNumbers(t *testing.T) {
	got, err := NewBody(`{"id":9007199254740993,"big":12345678901234567891,"neg":-7,"f":1.5,"e":1e3,"list":[9007199254740993]}`, false).FromJSON()
	require.NoError(t, err)

	assert.Equal(t, int64(9007199254740993), got["id"])
	assert.Equal(t, json.Number("12345678901234567891"), got["big"])
	assert.Equal(t, int64(-7), got["neg"])
	assert.Equal(t, 1.5, got["f"])
	assert.Equal(t, float64(1000), got["e"])
	assert.Equal(t, []any{int64(9007199254740993)}, got["list"])
}

func TestBody_TrailingData(t *testing.T) {
	_, err := NewBody(`{"a":1} {"b":2}`, false).FromJSON()
	assert.ErrorIs(t, err, ErrInvalidJSON)

	got, err := NewBody("a=1abc", false).FromURLEncoded()
	require.NoError(t, err)
	assert.Equal(t, "1abc", got["a"])
}

func TestQuote(t *testing.T) {
	long := strings.Repeat("ž", 40)

	got := quote(long)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, `"`+strings.Repeat("ž", 32)+`..."`, got)

	assert.Equal(t, `"short"`, quote("short"))
}

func TestBody_Stateless(t *testing.T) {
	body := NewBody(encode(`{"a":1}`), true)

	first, err := body.Decoded()
	require.NoError(t, err)
	second, err := body.Decoded()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
