package binder

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingContentType   = errors.New("missing content type")
	ErrInvalidJSON          = errors.New("invalid JSON")
	ErrInvalidParam         = errors.New("invalid request parameter")

	// ErrNotApplicable tells handler.Wrap to skip a binder for this request.
	ErrNotApplicable = errors.New("binder not applicable")
)
