package handler

import (
	"net/http"

	"github.com/a-h/templ"
)

type templResponse struct {
	status    int
	component templ.Component
}

func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(t.status)
	return t.component.Render(r.Context(), w)
}

// Templ renders component as an HTML page with status 200.
func Templ(component templ.Component) Response {
	return templResponse{status: http.StatusOK, component: component}
}

func TemplWithStatus(status int, component templ.Component) Response {
	return templResponse{status: status, component: component}
}
