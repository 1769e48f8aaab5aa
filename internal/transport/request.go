package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/agentstation/personsync/pkg/errors"
)

// RequestBuilder builds requests against a fixed API base URL.
type RequestBuilder struct {
	baseURL string
}

// NewRequestBuilder creates a request builder rooted at baseURL.
func NewRequestBuilder(baseURL string) *RequestBuilder {
	return &RequestBuilder{baseURL: strings.TrimSuffix(baseURL, "/")}
}

// URL joins path onto the base URL and appends query, when set. The query is
// encoded in the key order given.
func (rb *RequestBuilder) URL(path string, query ...string) string {
	u := rb.baseURL + path
	if len(query) == 0 {
		return u
	}
	var b strings.Builder
	for i := 0; i+1 < len(query); i += 2 {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(query[i]))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(query[i+1]))
	}
	return u + "?" + b.String()
}

// NewRequest builds a request for method and url with an optional body.
func NewRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, errors.NewValidationError("url", url, err.Error())
	}
	return req, nil
}

// NewJSONRequest marshals payload and builds a request carrying it.
func NewJSONRequest(ctx context.Context, method, url string, payload any) (*http.Request, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.WrapParse("json", "request", err)
	}
	return NewRequest(ctx, method, url, bytes.NewReader(data))
}
