package cookie

import "errors"

var (
	// ErrNoSecret is returned by New when no signing secret is configured.
	ErrNoSecret = errors.New("cookie: signing secret is required")
	// ErrSecretTooShort is returned for secrets under 32 characters.
	ErrSecretTooShort = errors.New("cookie: signing secret is too short")

	ErrCookieNotFound = errors.New("cookie: not found")
	// ErrInvalidFormat means a signed cookie is not "<value>.<signature>".
	ErrInvalidFormat = errors.New("cookie: malformed signed value")
	// ErrInvalidSignature means no configured secret produced the signature.
	ErrInvalidSignature = errors.New("cookie: signature mismatch")
)
