package handler

import (
	"maps"
	"net/http"
	"strconv"
)

type rawResponse struct {
	status      int
	contentType string
	headers     http.Header
	body        []byte
}

func (b rawResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	maps.Copy(w.Header(), b.headers)
	w.Header().Set("Content-Type", b.contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(b.body)))
	w.WriteHeader(b.status)
	_, err := w.Write(b.body)
	return err
}

// RawOption sets a header on a Raw response.
type RawOption func(http.Header)

func WithHeader(key, value string) RawOption {
	return func(h http.Header) { h.Set(key, value) }
}

// Raw writes body as is, for payloads that are already encoded such as an
// exported translation bundle.
func Raw(contentType string, body []byte, opts ...RawOption) Response {
	headers := http.Header{}
	for _, opt := range opts {
		opt(headers)
	}
	return rawResponse{status: http.StatusOK, contentType: contentType, headers: headers, body: body}
}
