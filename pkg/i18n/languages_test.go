package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localegate/pkg/i18n"
)

func TestNewLanguageSet(t *testing.T) {
	t.Parallel()

	t.Run("normalizes and deduplicates", func(t *testing.T) {
		t.Parallel()
		set, err := i18n.NewLanguageSet("EN", " en ", "ko", "KO", "pt-BR", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"en", "ko", "pt-br"}, set.Tags())
		assert.Equal(t, "en", set.Default())
	})

	t.Run("rejects empty list", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.NewLanguageSet("en")
		assert.ErrorIs(t, err, i18n.ErrNoLanguages)
	})

	t.Run("rejects invalid tag", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.NewLanguageSet("en", "en", "not a tag!")
		assert.ErrorIs(t, err, i18n.ErrInvalidLanguageTag)
	})

	t.Run("rejects default outside set", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.NewLanguageSet("fr", "en", "ko")
		assert.ErrorIs(t, err, i18n.ErrDefaultNotSupported)
	})

	t.Run("must panics on invalid config", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { i18n.MustLanguageSet("fr", "en") })
	})

	t.Run("tags returns a copy", func(t *testing.T) {
		t.Parallel()
		set := i18n.MustLanguageSet("en", "en", "ko")
		tags := set.Tags()
		tags[0] = "xx"
		assert.Equal(t, []string{"en", "ko"}, set.Tags())
	})
}

func TestLanguageSetMatch(t *testing.T) {
	t.Parallel()
	set := i18n.MustLanguageSet("en", "en", "ko", "zh-tw")

	tests := []struct {
		code     string
		expected string
	}{
		{"ko", "ko"},
		{"KO-kr", "ko"},
		{" en ", "en"},
		{"zh-TW", "zh-tw"},
		{"zh", ""},
		{"fr", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, set.Match(tt.code), "code %q", tt.code)
	}

	assert.True(t, set.Contains("ZH-tw"))
	assert.False(t, set.Contains("zh"))
}

func TestLanguageSetSelect(t *testing.T) {
	t.Parallel()
	set := i18n.MustLanguageSet("en", "en", "ko")

	assert.Equal(t, "ko", set.Select("ko-KR,ko;q=0.9,en;q=0.8"))
	assert.Equal(t, "en", set.Select("fr-FR,fr;q=0.9"))
	assert.Equal(t, "en", set.Select(""))
}

func TestLanguageSetLanguages(t *testing.T) {
	t.Parallel()
	set := i18n.MustLanguageSet("en", "en", "ko")

	langs := set.Languages()
	require.Len(t, langs, 2)
	assert.Equal(t, i18n.LanguageInfo{Tag: "en", Name: "English", NativeName: "English"}, langs[0])
	assert.Equal(t, i18n.LanguageInfo{Tag: "ko", Name: "Korean", NativeName: "한국어"}, langs[1])
}
