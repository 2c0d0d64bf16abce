package errors

import (
	"net/http"
)

// RecoveryMiddleware recovers panics from downstream handlers and renders
// them as RFC 7807 problem responses through the shared handler, so a
// panicking analytics operation answers with the same error shape as every
// other failure.
func RecoveryMiddleware(handler *ErrorHandler) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					handler.HandlePanic(w, r, rec)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
