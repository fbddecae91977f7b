package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localegate/binder"
	"github.com/dmitrymomot/localegate/handler"
)

type langRequest struct {
	Language string `json:"language"`
	Header   string `query:"header"`
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) handler.JSONResponse {
	t.Helper()
	var body handler.JSONResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWrap(t *testing.T) {
	t.Parallel()

	echo := func(ctx handler.Context, req langRequest) handler.Response {
		return handler.JSON(req)
	}

	t.Run("binds body and query", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(echo, handler.WithBinders[handler.Context, langRequest](binder.BindJSON(), binder.Query()))

		req := httptest.NewRequest(http.MethodPut, "/?header=ko-KR", strings.NewReader(`{"language":"ko"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, map[string]any{"language": "ko", "Header": "ko-KR"}, decodeBody(t, rec).Data)
	})

	t.Run("binder error goes to error handler", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(echo, handler.WithBinders[handler.Context, langRequest](binder.BindJSON()))

		req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"language":`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "bad_request", decodeBody(t, rec).Error.Code)
	})

	t.Run("custom error handler", func(t *testing.T) {
		t.Parallel()
		var got error
		h := handler.Wrap(
			func(ctx handler.Context, req langRequest) handler.Response { return nil },
			handler.WithErrorHandler[handler.Context, langRequest](func(ctx handler.Context, err error) {
				got = err
				ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
			}),
		)
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.ErrorIs(t, got, handler.ErrNilResponse)
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("context exposes request", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
			assert.Equal(t, "/languages", ctx.Request().URL.Path)
			assert.NoError(t, ctx.Err())
			return handler.Empty()
		})
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/languages", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestJSONError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"http error", handler.ErrNotFound, http.StatusNotFound, "not_found"},
		{"wrapped http error", errors.Join(errors.New("ctx"), handler.ErrServiceUnavailable), http.StatusServiceUnavailable, "service_unavailable"},
		{"invalid json", binder.ErrInvalidJSON, http.StatusBadRequest, "bad_request"},
		{"media type", binder.ErrUnsupportedMediaType, http.StatusUnsupportedMediaType, "unsupported_media_type"},
		{"unknown error", errors.New("dial tcp: refused"), http.StatusInternalServerError, "internal_server_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			require.NoError(t, handler.JSONError(tt.err).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeBody(t, rec)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.NotContains(t, body.Error.Message, "dial tcp", "internal errors are not leaked")
		})
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	verr := handler.NewValidationError()
	assert.True(t, verr.IsEmpty())
	verr.Add("language", "unsupported")

	rec := httptest.NewRecorder()
	resp := handler.JSON(verr, handler.WithErrorMessage("언어를 지원하지 않습니다"))
	require.NoError(t, resp.Render(rec, httptest.NewRequest(http.MethodPut, "/", nil)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "validation_error", body.Error.Code)
	assert.Equal(t, "언어를 지원하지 않습니다", body.Error.Message)
	assert.Equal(t, map[string][]string{"language": {"unsupported"}}, body.Error.Details)
}

func TestJSONOptions(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	resp := handler.JSON(
		map[string]string{"language": "ko"},
		handler.WithJSONStatus(http.StatusCreated),
		handler.WithJSONMeta(map[string]any{"source": "cookie"}),
		handler.WithJSONHeader("Content-Language", "ko"),
	)
	require.NoError(t, resp.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "ko", rec.Header().Get("Content-Language"))
	body := decodeBody(t, rec)
	assert.Equal(t, map[string]any{"source": "cookie"}, body.Meta)
}
