package locale

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/localegate/pkg/cookie"
)

// VisitorID returns the id from the signed visitor cookie, or "" when the
// cookie is missing, tampered with or not a UUID.
func (s *Service) VisitorID(r *http.Request) string {
	id, err := s.cookies.GetSigned(r, s.cfg.VisitorCookie)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(id); err != nil {
		return ""
	}
	return id
}

// ensureVisitor returns the current visitor id, issuing a new one when the
// request has none.
func (s *Service) ensureVisitor(w http.ResponseWriter, r *http.Request) string {
	if id := s.VisitorID(r); id != "" {
		return id
	}
	id := uuid.NewString()
	s.cookies.SetSigned(w, s.cfg.VisitorCookie, id, cookie.WithMaxAge(s.cfg.CookieMaxAge))
	return id
}
