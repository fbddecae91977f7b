package i18n

import "net/http"

// LangExtractor pulls a language code out of an HTTP request.
// An empty result means the request carried no usable language.
type LangExtractor func(r *http.Request) string
