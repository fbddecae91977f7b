package i18n

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"
)

// DefaultLanguage is the language code used when nothing else was resolved.
const DefaultLanguage = "en"

// Preference is a single language range from an Accept-Language header
// together with its quality weight.
type Preference struct {
	Tag     string
	Quality float64
}

// ParseAcceptLanguage splits an Accept-Language header into preferences
// ordered by quality, highest first. Entries with equal quality keep the
// order in which they appear in the header.
//
// Tags are trimmed and lower-cased. A missing, malformed or out of range
// q parameter counts as 1.0. Empty segments are dropped.
func ParseAcceptLanguage(header string) []Preference {
	if header == "" {
		return nil
	}

	var prefs []Preference

	for part := range strings.SplitSeq(header, ",") {
		params := strings.Split(part, ";")
		tag := strings.ToLower(strings.TrimSpace(params[0]))
		if tag == "" {
			continue
		}

		prefs = append(prefs, Preference{Tag: tag, Quality: parseQuality(params[1:])})
	}

	// Stable sort: the first listed range wins a tie.
	slices.SortStableFunc(prefs, func(a, b Preference) int {
		return cmp.Compare(b.Quality, a.Quality)
	})

	return prefs
}

// parseQuality looks for a q=<float> parameter and returns its value,
// or 1.0 when there is none that can be used.
func parseQuality(params []string) float64 {
	for _, p := range params {
		p = strings.TrimSpace(p)
		if len(p) < 2 || (p[0] != 'q' && p[0] != 'Q') || p[1] != '=' {
			continue
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(p[2:]), 64)
		if err != nil || math.IsNaN(q) || q < 0 || q > 1 {
			return 1.0
		}
		return q
	}
	return 1.0
}

// baseSubtag returns the primary language subtag: "ko" for "ko-kr".
func baseSubtag(tag string) string {
	if idx := strings.IndexByte(tag, '-'); idx >= 0 {
		return tag[:idx]
	}
	return tag
}

// matchTag checks a single lower-cased tag against the supported list.
// The base subtag is tried before the full tag.
func matchTag(tag string, supported []string) string {
	if tag == "" {
		return ""
	}
	if base := baseSubtag(tag); base != "" && slices.Contains(supported, base) {
		return base
	}
	if slices.Contains(supported, tag) {
		return tag
	}
	return ""
}

func normalizeTags(tags []string) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = strings.ToLower(strings.TrimSpace(t))
	}
	return out
}

// SelectLanguage maps a raw Accept-Language header to one of the supported
// languages, or to defaultLang when nothing matches.
//
// Preferences are walked in quality order. For each one the base subtag is
// checked first, then the full tag, and the first hit is returned. A lower
// quality preference is never consulted before a higher one has been tried
// both ways.
//
// Comparison is case-insensitive and the result is lower-cased. The
// function never fails: empty, malformed or hostile input all end up at
// defaultLang.
func SelectLanguage(header string, supported []string, defaultLang string) string {
	if header == "" || len(supported) == 0 {
		return defaultLang
	}

	normalized := normalizeTags(supported)

	for _, pref := range ParseAcceptLanguage(header) {
		if lang := matchTag(pref.Tag, normalized); lang != "" {
			return lang
		}
	}

	return defaultLang
}
