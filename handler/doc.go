// Package handler turns typed handler functions into http.HandlerFunc.
//
// A HandlerFunc receives a Context and a request value already decoded by
// the configured binders, and returns a Response that renders itself:
//
//	type setPreferenceRequest struct {
//		Language string `json:"language"`
//	}
//
//	func setPreference(ctx handler.Context, req setPreferenceRequest) handler.Response {
//		if req.Language == "" {
//			verr := handler.NewValidationError()
//			verr.Add("language", "required")
//			return handler.JSONError(verr)
//		}
//		return handler.JSON(map[string]string{"language": req.Language})
//	}
//
//	r.Put("/preference", handler.Wrap(setPreference,
//		handler.WithBinders[handler.Context, setPreferenceRequest](binder.BindJSON()),
//	))
//
// Responses are JSON envelopes (JSON, JSONError), bodies that are already
// encoded (Raw), templ components (Templ) and bare status codes (Empty).
//
// Errors map to status codes in ErrorToDetail: ValidationError is 422,
// HTTPError carries its own code and key, binder failures are 400 or 415
// and everything else is a 500 without internal details.
package handler
