package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localegate/handler"
)

func TestRaw(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	body := []byte(`{"welcome":"Hello"}`)
	resp := handler.Raw("application/json", body, handler.WithHeader("Cache-Control", "public, max-age=300"))
	require.NoError(t, resp.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=300", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "19", rec.Header().Get("Content-Length"))
	assert.JSONEq(t, string(body), rec.Body.String())
}

func TestEmpty(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	require.NoError(t, handler.EmptyWithStatus(http.StatusAccepted).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestTempl(t *testing.T) {
	t.Parallel()
	component := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>"+templ.EscapeString("<ko>")+"</p>")
		return err
	})

	rec := httptest.NewRecorder()
	require.NoError(t, handler.Templ(component).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "<p>&lt;ko&gt;</p>", rec.Body.String())

	rec = httptest.NewRecorder()
	require.NoError(t, handler.TemplWithStatus(http.StatusNotFound, component).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
