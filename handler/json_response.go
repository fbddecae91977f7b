package handler

import (
	"encoding/json"
	"errors"
	"maps"
	"net/http"

	"github.com/dmitrymomot/localegate/binder"
)

// JSONResponse is the envelope for every JSON body.
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

type jsonResponse struct {
	status  int
	headers http.Header
	body    JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	maps.Copy(w.Header(), j.headers)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

type JSONOption func(*jsonResponse)

func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) { r.status = status }
}

func WithJSONMeta(meta map[string]any) JSONOption {
	return func(r *jsonResponse) { r.body.Meta = meta }
}

// WithJSONHeader sets a response header such as Vary or Content-Language.
func WithJSONHeader(key, value string) JSONOption {
	return func(r *jsonResponse) {
		if r.headers == nil {
			r.headers = http.Header{}
		}
		r.headers.Set(key, value)
	}
}

// WithErrorMessage replaces the error message, e.g. with a translated one.
func WithErrorMessage(message string) JSONOption {
	return func(r *jsonResponse) {
		if r.body.Error != nil && message != "" {
			r.body.Error.Message = message
		}
	}
}

// JSON wraps v as {"data": v}. An error value is rendered as JSONError.
func JSON(v any, opts ...JSONOption) Response {
	if err, ok := v.(error); ok {
		return JSONError(err, opts...)
	}
	r := &jsonResponse{status: http.StatusOK, body: JSONResponse{Data: v}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError renders {"error": {...}} with a status derived from err.
func JSONError(err error, opts ...JSONOption) Response {
	status, detail := ErrorToDetail(err)
	r := &jsonResponse{status: status, body: JSONResponse{Error: detail}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ErrorToDetail classifies err: ValidationError is 422, HTTPError uses its
// own code, request decoding failures are 400 or 415 and anything else 500.
func ErrorToDetail(err error) (int, *ErrorDetail) {
	var valErr ValidationError
	if errors.As(err, &valErr) {
		detail := &ErrorDetail{Code: "validation_error", Message: "validation failed"}
		if len(valErr) > 0 {
			detail.Details = maps.Clone(map[string][]string(valErr))
		}
		return http.StatusUnprocessableEntity, detail
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, &ErrorDetail{Code: httpErr.Key, Message: http.StatusText(httpErr.Code)}
	}

	switch {
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		return http.StatusUnsupportedMediaType, &ErrorDetail{Code: ErrUnsupportedMediaType.Key, Message: err.Error()}
	case errors.Is(err, binder.ErrInvalidJSON), errors.Is(err, binder.ErrInvalidParam):
		return http.StatusBadRequest, &ErrorDetail{Code: ErrBadRequest.Key, Message: err.Error()}
	}

	return http.StatusInternalServerError, &ErrorDetail{
		Code:    ErrInternalServerError.Key,
		Message: http.StatusText(http.StatusInternalServerError),
	}
}
