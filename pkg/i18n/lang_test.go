package i18n_test

import (
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localegate/pkg/i18n"
)

func TestSelectLanguage(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		header      string
		supported   []string
		defaultLang string
		expected    string
	}{
		{
			name:        "empty header returns default",
			header:      "",
			supported:   []string{"en", "ko"},
			defaultLang: "en",
			expected:    "en",
		},
		{
			name:        "region tag matches base language",
			header:      "ko-KR,ko;q=0.9,en;q=0.8",
			supported:   []string{"en", "ko"},
			defaultLang: "en",
			expected:    "ko",
		},
		{
			name:        "unsupported languages fall back to default",
			header:      "fr-FR,fr;q=0.9",
			supported:   []string{"en", "ko"},
			defaultLang: "en",
			expected:    "en",
		},
		{
			name:        "higher quality wins regardless of order",
			header:      "en;q=0.5,ko;q=0.9",
			supported:   []string{"en", "ko"},
			defaultLang: "en",
			expected:    "ko",
		},
		{
			name:        "equal quality keeps header order",
			header:      "en;q=0.8,ko;q=0.8",
			supported:   []string{"en", "ko"},
			defaultLang: "en",
			expected:    "en",
		},
		{
			name:        "equal quality keeps header order reversed",
			header:      "ko;q=0.8,en;q=0.8",
			supported:   []string{"en", "ko"},
			defaultLang: "en",
			expected:    "ko",
		},
		{
			name:        "base subtag fallback",
			header:      "ko-KR",
			supported:   []string{"ko"},
			defaultLang: "en",
			expected:    "ko",
		},
		{
			name:        "case insensitive header",
			header:      "KO-kr",
			supported:   []string{"ko"},
			defaultLang: "en",
			expected:    "ko",
		},
		{
			name:        "case insensitive supported list",
			header:      "ko",
			supported:   []string{"EN", "Ko"},
			defaultLang: "en",
			expected:    "ko",
		},
		{
			name:        "full tag matches when base is unsupported",
			header:      "en-US",
			supported:   []string{"en-us", "ko"},
			defaultLang: "ko",
			expected:    "en-us",
		},
		{
			name:        "base subtag preferred over exact tag",
			header:      "en-US",
			supported:   []string{"en-us", "en"},
			defaultLang: "ko",
			expected:    "en",
		},
		{
			name:        "quality first, specificity second",
			header:      "ko-KR;q=0.9,en-US",
			supported:   []string{"ko", "en-us"},
			defaultLang: "ko",
			expected:    "en-us",
		},
		{
			name:        "unparsable quality counts as 1.0",
			header:      "ko;q=0.9,en;q=abc",
			supported:   []string{"en", "ko"},
			defaultLang: "ko",
			expected:    "en",
		},
		{
			name:        "out of range quality counts as 1.0",
			header:      "en;q=0.9,ko;q=5",
			supported:   []string{"en", "ko"},
			defaultLang: "en",
			expected:    "ko",
		},
		{
			name:        "quality found after other parameters",
			header:      "ko;level=1;q=0.2,en;q=0.5",
			supported:   []string{"en", "ko"},
			defaultLang: "ko",
			expected:    "en",
		},
		{
			name:        "whitespace around tags and parameters",
			header:      "  ko-KR ; q=0.7 ,  en ;q=0.8 ",
			supported:   []string{"en", "ko"},
			defaultLang: "ko",
			expected:    "en",
		},
		{
			name:        "zero quality still ranks last",
			header:      "ko;q=0,fr",
			supported:   []string{"en", "ko"},
			defaultLang: "en",
			expected:    "ko",
		},
		{
			name:        "wildcard is not a language",
			header:      "*",
			supported:   []string{"en", "ko"},
			defaultLang: "en",
			expected:    "en",
		},
		{
			name:        "empty segments are skipped",
			header:      ",,;q=0.5,ko",
			supported:   []string{"en", "ko"},
			defaultLang: "en",
			expected:    "ko",
		},
		{
			name:        "empty supported list returns default",
			header:      "ko",
			supported:   nil,
			defaultLang: "en",
			expected:    "en",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := i18n.SelectLanguage(tt.header, tt.supported, tt.defaultLang)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSelectLanguageTotality(t *testing.T) {
	t.Parallel()

	supported := []string{"en", "ko"}
	inputs := []string{
		";;;",
		",,,",
		"q=0.5",
		";q=",
		"en;q=",
		"en;q=NaN",
		"en;q=-inf",
		"en;q=1e309",
		"\x00\xff\xfe",
		"-",
		"-kr",
		"ko-",
		"ko;q=0.9;q=0.1",
		"한국어",
		strings.Repeat("a", 10000),
		strings.Repeat("x-y;q=0.1,", 1000),
	}

	for _, in := range inputs {
		var got string
		require.NotPanics(t, func() {
			got = i18n.SelectLanguage(in, supported, "en")
		}, "input %q", in)
		assert.True(t, slices.Contains(supported, got), "input %q returned %q", in, got)
	}
}

func TestSelectLanguageLongHeader(t *testing.T) {
	t.Parallel()
	supported := []string{"en", "ko"}

	t.Run("supported tag at the end is found", func(t *testing.T) {
		t.Parallel()
		header := strings.Repeat("fr,", 2000) + "ko"
		assert.Equal(t, "ko", i18n.SelectLanguage(header, supported, "en"))
	})

	t.Run("supported tag first", func(t *testing.T) {
		t.Parallel()
		header := "ko," + strings.Repeat("fr,", 2000)
		assert.Equal(t, "ko", i18n.SelectLanguage(header, supported, "en"))
	})

	t.Run("long tag is never shortened into a match", func(t *testing.T) {
		t.Parallel()
		// "kor" straddles byte 4096 and must stay "kor".
		header := strings.Repeat("fr,", 1364) + "x," + "kor"
		assert.Equal(t, "en", i18n.SelectLanguage(header, supported, "en"))

		prefs := i18n.ParseAcceptLanguage(header)
		require.Len(t, prefs, 1366)
		assert.Equal(t, "kor", prefs[len(prefs)-1].Tag)
	})
}

func TestSelectLanguageIdempotent(t *testing.T) {
	t.Parallel()

	supported := []string{"en", "ko"}
	header := "da, en-GB;q=0.8, ko;q=0.8"
	first := i18n.SelectLanguage(header, supported, "en")

	var wg sync.WaitGroup
	results := make([]string, 50)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = i18n.SelectLanguage(header, supported, "en")
		}()
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, first, r)
	}
	assert.Equal(t, []string{"en", "ko"}, supported, "supported list must not be modified")
}

func TestParseAcceptLanguage(t *testing.T) {
	t.Parallel()

	t.Run("empty header", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, i18n.ParseAcceptLanguage(""))
	})

	t.Run("ranks by quality with stable ties", func(t *testing.T) {
		t.Parallel()
		prefs := i18n.ParseAcceptLanguage("de;q=0.5, en-US, fr;q=0.5, ko;q=0.9, ja")
		assert.Equal(t, []i18n.Preference{
			{Tag: "en-us", Quality: 1},
			{Tag: "ja", Quality: 1},
			{Tag: "ko", Quality: 0.9},
			{Tag: "de", Quality: 0.5},
			{Tag: "fr", Quality: 0.5},
		}, prefs)
	})

	t.Run("uppercase q parameter", func(t *testing.T) {
		t.Parallel()
		prefs := i18n.ParseAcceptLanguage("en;Q=0.3")
		require.Len(t, prefs, 1)
		assert.InDelta(t, 0.3, prefs[0].Quality, 1e-9)
	})
}

func FuzzSelectLanguage(f *testing.F) {
	for _, seed := range []string{
		"",
		"ko-KR,ko;q=0.9,en;q=0.8",
		"en;q=0.5,ko;q=0.9",
		"*;q=0.1",
		";;,,q=",
	} {
		f.Add(seed)
	}
	supported := []string{"en", "ko", "pt-br"}

	f.Fuzz(func(t *testing.T, header string) {
		got := i18n.SelectLanguage(header, supported, "en")
		if !slices.Contains(supported, got) {
			t.Fatalf("SelectLanguage(%q) = %q, not supported", header, got)
		}
		if again := i18n.SelectLanguage(header, supported, "en"); again != got {
			t.Fatalf("SelectLanguage(%q) not idempotent: %q then %q", header, got, again)
		}
	})
}
