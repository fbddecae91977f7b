package i18n

import (
	"context"
	"path/filepath"
	"strings"
)

// Parser decodes a translation file into language -> nested messages.
type Parser interface {
	Parse(ctx context.Context, content []byte) (map[string]map[string]any, error)

	// SupportsFileExtension accepts the extension with or without the dot.
	SupportsFileExtension(ext string) bool
}

// NewParserForFile picks a parser by file extension, or nil when none fits.
func NewParserForFile(filename string) Parser {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "json":
		return NewJSONParser()
	case "yaml", "yml":
		return NewYAMLParser()
	default:
		return nil
	}
}

// toBundles keeps the top-level entries that are message maps.
func toBundles(data map[string]any) map[string]map[string]any {
	result := make(map[string]map[string]any, len(data))
	for lang, val := range data {
		if msgs, ok := val.(map[string]any); ok {
			result[lang] = msgs
		}
	}
	return result
}
