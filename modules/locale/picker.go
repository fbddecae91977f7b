package locale

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// PickerParams contains data for rendering the language switcher.
type PickerParams struct {
	Title   string
	Current string
	Options []PickerOption
}

// PickerOption is a single entry of the language switcher. Label is shown
// in the language itself, Title in English.
type PickerOption struct {
	Tag    string
	Label  string
	Title  string
	Href   string
	Active bool
}

// Picker renders the language switcher as a navigation list whose links
// point at the language-prefixed page URLs.
func Picker(p PickerParams) templ.Component {
	items := make([]templ.Component, 0, len(p.Options)+2)
	items = append(items, templ.Raw(`<nav class="language-picker" aria-label="`+
		templ.EscapeString(p.Title)+`" data-current="`+
		templ.EscapeString(p.Current)+`"><ul>`))
	for _, opt := range p.Options {
		items = append(items, pickerOption(opt))
	}
	items = append(items, templ.Raw(`</ul></nav>`))
	return templ.Join(items...)
}

func pickerOption(opt PickerOption) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<li><a href="`)
		b.WriteString(templ.EscapeString(string(templ.URL(opt.Href))))
		b.WriteString(`" hreflang="`)
		b.WriteString(templ.EscapeString(opt.Tag))
		b.WriteString(`" lang="`)
		b.WriteString(templ.EscapeString(opt.Tag))
		b.WriteString(`" title="`)
		b.WriteString(templ.EscapeString(opt.Title))
		b.WriteString(`"`)
		if opt.Active {
			b.WriteString(` aria-current="true"`)
		}
		b.WriteString(`>`)
		b.WriteString(templ.EscapeString(opt.Label))
		b.WriteString(`</a></li>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
