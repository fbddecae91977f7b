package main

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/localegate/handler"
	"github.com/dmitrymomot/localegate/modules/locale"
	"github.com/dmitrymomot/localegate/pkg/i18n"
)

type homeParams struct {
	Lang   string
	Title  string
	Intro  string
	Picker locale.PickerParams
}

// home renders the localized landing page. LocaleRedirect guarantees a
// supported language prefix for GET and HEAD requests.
func (a *app) home(ctx handler.Context, _ struct{}) handler.Response {
	r := ctx.Request()
	seg, _, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	if !a.languages.Contains(seg) {
		return handler.JSONError(handler.ErrNotFound)
	}

	return handler.Templ(homePage(homeParams{
		Lang:   i18n.GetLocale(ctx),
		Title:  a.translator.Tc(ctx, "home.title"),
		Intro:  a.translator.Tc(ctx, "home.intro"),
		Picker: a.locale.PickerFor(ctx, r.URL.Path),
	}))
}

func homePage(p homeParams) templ.Component {
	return templ.Join(
		templ.Raw(`<!doctype html><html lang="`+templ.EscapeString(p.Lang)+
			`"><head><meta charset="utf-8"><title>`+templ.EscapeString(p.Title)+
			`</title></head><body><header>`),
		locale.Picker(p.Picker),
		templ.Raw(`</header><main><h1>`+templ.EscapeString(p.Title)+
			`</h1><p>`+templ.EscapeString(p.Intro)+`</p></main></body></html>`),
	)
}
