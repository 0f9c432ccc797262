package middleware

import (
	"fmt"
	"net/http"

	"github.com/openarc/ehive-shop/internal/logger"
)

func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					err := fmt.Errorf("panic: %v", rec)
					if logg != nil {
						ctx := logg.WithFields(r.Context(), map[string]any{"panic": fmt.Sprint(rec)})
						logg.Error(ctx, "panic.recovered", err)
					}
					http.Error(w, "Internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
