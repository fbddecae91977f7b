// Package cookie writes HTTP cookies with shared defaults and HMAC-SHA256
// signed values.
//
// The localegate service keeps two cookies: the visitor ID, which is signed
// so it cannot be forged to read another visitor's preference, and the
// plain language cookie read by the i18n extractors.
//
//	m, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")}, cookie.WithSecure(true))
//	m.SetSigned(w, "visitor", id)
//	id, err := m.GetSigned(r, "visitor")
//
// Every configured secret is tried when verifying, which allows rotation:
// put the new secret first and keep the old one until issued cookies expire.
package cookie
