package i18n

import (
	"errors"
	"fmt"
)

var (
	// Language set configuration
	ErrNoLanguages         = errors.New("no supported languages configured")
	ErrInvalidLanguageTag  = errors.New("invalid language tag")
	ErrDefaultNotSupported = errors.New("default language is not in the supported set")

	// Preference storage
	ErrPreferenceNotFound = errors.New("language preference not found")
	ErrEmptyVisitorID     = errors.New("empty visitor id")

	// Parsing
	ErrFailedToMarshalJSON = errors.New("failed to marshal translations to JSON")
	ErrParsingCancelled    = errors.New("translation parsing cancelled")
	ErrFailedToParseJSON   = errors.New("failed to parse JSON content")
	ErrFailedToParseYAML   = errors.New("failed to parse YAML content")

	// Loading
	ErrNilAdapter              = errors.New("translation adapter is nil")
	ErrLoadingCancelled        = errors.New("loading translations cancelled")
	ErrFailedToReadFile        = errors.New("failed to read translation file")
	ErrFailedToParseFile       = errors.New("failed to parse translation file")
	ErrFailedToAccessDirectory = errors.New("failed to access translations directory")
	ErrFailedToReadDirectory   = errors.New("failed to read translations directory")
	ErrNoTranslationFiles      = errors.New("no valid translation files found")
)

// ErrLanguageNotSupported indicates that the requested language has no translations.
type ErrLanguageNotSupported struct {
	Lang string
}

func (e *ErrLanguageNotSupported) Error() string {
	return fmt.Sprintf("language not supported: %s", e.Lang)
}
