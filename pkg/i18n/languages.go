package i18n

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// LanguageSet is the ordered, immutable set of languages the application
// can render, plus the fallback used when negotiation finds no match.
// It is built once from configuration and shared read-only between requests.
type LanguageSet struct {
	tags        []string
	defaultLang string
}

// LanguageInfo describes a supported language for language switchers.
type LanguageInfo struct {
	Tag        string `json:"tag"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
}

// NewLanguageSet validates and normalizes the configured languages.
// Tags are lower-cased and de-duplicated, keeping the first occurrence.
// The default language has to be one of the tags.
func NewLanguageSet(defaultLang string, tags ...string) (*LanguageSet, error) {
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || slices.Contains(normalized, tag) {
			continue
		}
		if _, err := language.Parse(tag); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidLanguageTag, tag, err)
		}
		normalized = append(normalized, tag)
	}

	if len(normalized) == 0 {
		return nil, ErrNoLanguages
	}

	defaultLang = strings.ToLower(strings.TrimSpace(defaultLang))
	if !slices.Contains(normalized, defaultLang) {
		return nil, fmt.Errorf("%w: %q", ErrDefaultNotSupported, defaultLang)
	}

	return &LanguageSet{tags: normalized, defaultLang: defaultLang}, nil
}

// MustLanguageSet is like NewLanguageSet but panics on invalid configuration.
func MustLanguageSet(defaultLang string, tags ...string) *LanguageSet {
	s, err := NewLanguageSet(defaultLang, tags...)
	if err != nil {
		panic(err)
	}
	return s
}

// Default returns the fallback language.
func (s *LanguageSet) Default() string {
	return s.defaultLang
}

// Tags returns a copy of the supported tags in configuration order.
func (s *LanguageSet) Tags() []string {
	return slices.Clone(s.tags)
}

// Contains reports whether tag is supported, ignoring case.
func (s *LanguageSet) Contains(tag string) bool {
	return slices.Contains(s.tags, strings.ToLower(strings.TrimSpace(tag)))
}

// Match resolves a single language code (from a cookie, query parameter or
// path segment) to a supported tag using the same base-then-exact rule as
// Select. It returns an empty string when the code is not supported.
func (s *LanguageSet) Match(code string) string {
	return matchTag(strings.ToLower(strings.TrimSpace(code)), s.tags)
}

// Select negotiates an Accept-Language header against the set.
func (s *LanguageSet) Select(header string) string {
	return SelectLanguage(header, s.tags, s.defaultLang)
}

// Languages returns display information for every supported tag.
// Names come from CLDR data; tags without data fall back to the tag itself.
func (s *LanguageSet) Languages() []LanguageInfo {
	names := display.English.Tags()
	out := make([]LanguageInfo, 0, len(s.tags))
	for _, tag := range s.tags {
		t := language.Make(tag)
		info := LanguageInfo{
			Tag:        tag,
			Name:       names.Name(t),
			NativeName: display.Self.Name(t),
		}
		if info.Name == "" {
			info.Name = tag
		}
		if info.NativeName == "" {
			info.NativeName = info.Name
		}
		out = append(out, info)
	}
	return out
}
