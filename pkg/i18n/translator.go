package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// Translator serves translation bundles loaded through a TranslationAdapter.
// It is safe for concurrent use.
type Translator struct {
	translations   map[string]map[string]any
	defaultLang    string
	fallbackToKey  bool
	missingLogMode bool
	logger         *slog.Logger
	mu             sync.RWMutex
}

// NewTranslator loads translations from adapter and returns a ready Translator.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, options ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, option := range options {
		option(t)
	}

	translations, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}

	normalized := make(map[string]map[string]any, len(translations))
	for lang, msgs := range translations {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang == "" {
			return nil, fmt.Errorf("%w: empty language code", ErrInvalidLanguageTag)
		}
		if msgs == nil {
			return nil, fmt.Errorf("nil translations map for language: %s", lang)
		}
		normalized[lang] = msgs
	}
	if len(normalized) == 0 {
		t.logger.WarnContext(ctx, "No translations provided")
	}

	t.translations = normalized
	t.logger.InfoContext(ctx, "Translations loaded", "languages", t.supportedLanguages())
	return t, nil
}

func (t *Translator) supportedLanguages() []string {
	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}

// SupportedLanguages returns the sorted language codes that have translations.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.supportedLanguages()
}

// DefaultLanguage returns the language used by Tc and Nc when the context
// carries none.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// lookup walks a nested map using a dot separated key, so
// "errors.not_found" reads m["errors"]["not_found"].
func lookup(m map[string]any, key string) (any, bool) {
	parts := strings.Split(key, ".")
	current := m

	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return val, true
		}

		switch next := val.(type) {
		case map[string]any:
			current = next
		case map[any]any:
			current = make(map[string]any, len(next))
			for k, v := range next {
				if ks, ok := k.(string); ok {
					current[ks] = v
				}
			}
		default:
			return nil, false
		}
	}

	return nil, false
}

// HasTranslation reports whether lang has a value for key.
func (t *Translator) HasTranslation(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	msgs, ok := t.translations[lang]
	if !ok {
		return false
	}
	_, ok = lookup(msgs, key)
	return ok
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// format substitutes %{name} placeholders from key/value pairs. Unknown
// placeholders are left as they are; a trailing odd argument is ignored.
func format(tmpl string, args []string) string {
	if len(args) < 2 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}

// resolve returns the string stored under key for lang. Misses are logged
// only when logMissing is set and missing translation logging is enabled.
func (t *Translator) resolve(lang, key string, logMissing bool) (string, bool) {
	logMissing = logMissing && t.missingLogMode

	msgs, ok := t.translations[lang]
	if !ok {
		if logMissing {
			t.logger.Warn("Language not supported", "lang", lang, "key", key)
		}
		return "", false
	}

	val, ok := lookup(msgs, key)
	if !ok {
		if logMissing {
			t.logger.Warn("Translation not found", "lang", lang, "key", key)
		}
		return "", false
	}

	switch v := val.(type) {
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	default:
		if logMissing {
			t.logger.Warn("Translation is not a string", "lang", lang, "key", key, "type", fmt.Sprintf("%T", v))
		}
		return "", false
	}
}

func (t *Translator) missing(key string, args []string) string {
	if t.fallbackToKey {
		return format(key, args)
	}
	return ""
}

// T translates key for lang, substituting %{name} placeholders from
// key/value argument pairs:
//
//	// "welcome": "Hello, %{name}!"
//	translator.T("en", "welcome", "name", "John") // "Hello, John!"
//
// A missing translation yields the key, or "" when key fallback is off.
func (t *Translator) T(lang, key string, args ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if msg, ok := t.resolve(lang, key, true); ok {
		return format(msg, args)
	}
	return t.missing(key, args)
}

// Td is like T but falls back to defaultValue instead of the key.
func (t *Translator) Td(lang, key, defaultValue string, args ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if msg, ok := t.resolve(lang, key, true); ok {
		return format(msg, args)
	}
	return format(defaultValue, args)
}

// N translates a plural key. For n == 0 it tries key.zero then key.other,
// for n == 1 key.one, otherwise key.other, and finally key itself.
// A "count" argument is added when the caller did not pass one.
func (t *Translator) N(lang, key string, n int, args ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var forms []string
	switch n {
	case 0:
		forms = []string{".zero", ".other"}
	case 1:
		forms = []string{".one"}
	default:
		forms = []string{".other"}
	}
	forms = append(forms, "")

	hasCount := false
	for i := 0; i+1 < len(args); i += 2 {
		if args[i] == "count" {
			hasCount = true
			break
		}
	}
	if !hasCount {
		args = append(slices.Clone(args), "count", strconv.Itoa(n))
	}

	for _, suffix := range forms {
		if msg, ok := t.resolve(lang, key+suffix, false); ok {
			return format(msg, args)
		}
	}

	if t.missingLogMode {
		t.logger.Warn("Pluralization not found", "lang", lang, "key", key, "n", n)
	}
	return t.missing(key, args)
}

// Tc translates key using the language stored in ctx by Middleware.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(t.contextLang(ctx), key, args...)
}

// Nc is the context-aware variant of N.
func (t *Translator) Nc(ctx context.Context, key string, n int, args ...string) string {
	return t.N(t.contextLang(ctx), key, n, args...)
}

func (t *Translator) contextLang(ctx context.Context) string {
	if locale, _ := ctx.Value(localeContextKey{}).(string); locale != "" {
		return locale
	}
	return t.defaultLang
}

// ExportJSON returns the whole bundle for lang as JSON, for client-side
// rendering.
func (t *Translator) ExportJSON(lang string) ([]byte, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	msgs, ok := t.translations[strings.ToLower(lang)]
	if !ok {
		return nil, &ErrLanguageNotSupported{Lang: lang}
	}

	data, err := json.Marshal(normalizeMap(msgs))
	if err != nil {
		return nil, errors.Join(ErrFailedToMarshalJSON, err)
	}
	return data, nil
}

// normalizeMap converts nested map[any]any values into map[string]any so
// encoding/json can marshal them.
func normalizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return normalizeMap(val)
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[fmt.Sprint(k)] = normalizeValue(item)
		}
		return m
	default:
		return v
	}
}
