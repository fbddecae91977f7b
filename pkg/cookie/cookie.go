package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"
)

const minSecretLength = 32

// Manager writes cookies with shared defaults and signs values with
// HMAC-SHA256. The first secret signs; every secret verifies, so secrets
// can be rotated by prepending a new one.
type Manager struct {
	secrets  [][]byte
	defaults []Option
}

func New(secrets []string, opts ...Option) (*Manager, error) {
	keys := make([][]byte, 0, len(secrets))
	for i, s := range secrets {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
		keys = append(keys, []byte(s))
	}
	if len(keys) == 0 {
		return nil, ErrNoSecret
	}
	return &Manager{secrets: keys, defaults: slices.Clone(opts)}, nil
}

func (m *Manager) cookie(name, value string, opts []Option) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	for _, opt := range m.defaults {
		opt(c)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Set writes a plain cookie.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) {
	http.SetCookie(w, m.cookie(name, value, opts))
}

// Get returns ErrCookieNotFound when the request has no such cookie.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if errors.Is(err, http.ErrNoCookie) {
		return "", ErrCookieNotFound
	}
	if err != nil {
		return "", err
	}
	return c.Value, nil
}

// Delete expires the cookie using the manager's path and domain.
func (m *Manager) Delete(w http.ResponseWriter, name string, opts ...Option) {
	c := m.cookie(name, "", opts)
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)
}

// SetSigned writes base64(value)|base64(hmac) so the value cannot be
// altered by the client.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, opts ...Option) {
	m.Set(w, name, m.sign(value), opts...)
}

// GetSigned returns ErrInvalidFormat or ErrInvalidSignature for tampered
// cookies.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	signed, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.verify(signed)
}

func mac(key, value []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(value)
	return h.Sum(nil)
}

func (m *Manager) sign(value string) string {
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(value)) + "|" + enc.EncodeToString(mac(m.secrets[0], []byte(value)))
}

func (m *Manager) verify(signed string) (string, error) {
	encoded, sig, ok := strings.Cut(signed, "|")
	if !ok {
		return "", ErrInvalidFormat
	}
	value, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidFormat
	}
	got, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, key := range m.secrets {
		if hmac.Equal(got, mac(key, value)) {
			return string(value), nil
		}
	}
	return "", ErrInvalidSignature
}
