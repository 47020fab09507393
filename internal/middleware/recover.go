// Package middleware provides HTTP middleware for the widget API.
package middleware

import (
	"log/slog"
	"net/http"
)

// Recover returns middleware that converts handler panics into 500s.
func Recover() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					slog.Error("panic in handler", "panic", rec, "path", r.URL.Path)
					http.Error(w, `{"error": "internal error"}`, http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
