package clientip

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// FromRequest returns the originating client address, checking in order:
//  1. CF-Connecting-IP
//  2. the first valid entry of X-Forwarded-For
//  3. X-Real-IP
//  4. RemoteAddr
//
// Addresses are normalized (IPv4-mapped IPv6 becomes IPv4). It returns ""
// when nothing parses.
func FromRequest(r *http.Request) string {
	if ip := parse(r.Header.Get("CF-Connecting-IP")); ip != "" {
		return ip
	}
	for part := range strings.SplitSeq(r.Header.Get("X-Forwarded-For"), ",") {
		if ip := parse(part); ip != "" {
			return ip
		}
	}
	if ip := parse(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parse(r.RemoteAddr)
	}
	return parse(host)
}

func parse(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return ""
	}
	return addr.Unmap().String()
}

type contextKey struct{}

func WithContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKey{}, ip)
}

func FromContext(ctx context.Context) string {
	ip, _ := ctx.Value(contextKey{}).(string)
	return ip
}

// Middleware stores FromRequest in the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), FromRequest(r))))
	})
}

// Key is a rate limit key function: the address stored by Middleware, or
// FromRequest when the middleware did not run.
func Key(r *http.Request) string {
	if ip := FromContext(r.Context()); ip != "" {
		return ip
	}
	return FromRequest(r)
}

// LoggerExtractor returns a logger.ContextExtractor adding "client_ip".
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if ip := FromContext(ctx); ip != "" {
			return slog.String("client_ip", ip), true
		}
		return slog.Attr{}, false
	}
}
