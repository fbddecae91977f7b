package locale

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrymomot/localegate/handler"
	"github.com/dmitrymomot/localegate/pkg/i18n"
	"github.com/dmitrymomot/localegate/pkg/logger"
	"github.com/dmitrymomot/localegate/pkg/ratelimiter"
)

// errorHandler renders binding and rendering failures with a message in the
// request language.
func (s *Service) errorHandler(ctx handler.Context, err error) {
	resp := s.jsonError(ctx, err)
	if rerr := resp.Render(ctx.ResponseWriter(), ctx.Request()); rerr != nil {
		s.log.ErrorContext(ctx, "Failed to render error response", logger.Error(rerr))
	}
}

// jsonError maps err to a JSON error body whose message is the translation
// of "errors.<code>", falling back to the default status text.
func (s *Service) jsonError(ctx handler.Context, err error) handler.Response {
	status, detail := handler.ErrorToDetail(err)
	if status >= http.StatusInternalServerError {
		s.log.ErrorContext(ctx, "Request failed",
			logger.Error(err),
			logger.Group("http",
				logger.Method(ctx.Request().Method),
				logger.Path(ctx.Request().URL.Path),
			),
		)
	}
	return handler.JSONError(err, handler.WithErrorMessage(s.message(ctx, "errors."+detail.Code, detail.Message)))
}

func (s *Service) message(ctx context.Context, key, fallback string) string {
	if s.translator == nil {
		return fallback
	}
	return s.translator.Td(i18n.GetLocale(ctx), key, fallback)
}

// denyWrite answers requests rejected by the write limiter. A failing
// limiter store yields 503.
func (s *Service) denyWrite(w http.ResponseWriter, r *http.Request, err error) {
	ctx := handler.NewContext(w, r)
	if errors.Is(err, ratelimiter.ErrLimitExceeded) {
		s.log.WarnContext(ctx, "Preference write rate limited", logger.Path(r.URL.Path))
		s.errorHandler(ctx, handler.ErrTooManyRequests)
		return
	}
	s.log.ErrorContext(ctx, "Rate limiter unavailable", logger.Error(err))
	s.errorHandler(ctx, handler.ErrServiceUnavailable)
}
