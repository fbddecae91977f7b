package logger

import (
	"log/slog"
	"time"
)

// Error returns an "error" attribute, or an empty Attr for a nil error so it
// can be passed unconditionally.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Lang(lang string) slog.Attr {
	return slog.String("lang", lang)
}

// VisitorID is empty for an empty id.
func VisitorID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("visitor_id", id)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

func Method(method string) slog.Attr {
	return slog.String("method", method)
}

func Path(path string) slog.Attr {
	return slog.String("path", path)
}

func Status(code int) slog.Attr {
	return slog.Int("status", code)
}
