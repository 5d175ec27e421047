package middleware

import "net/http"

// Preflight contesta cualquier OPTIONS con los headers CORS dados y 200 sin body,
// antes de que chi busque ruta.
func Preflight(headers map[string]string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			for k, v := range headers {
				w.Header().Set(k, v)
			}
			w.WriteHeader(http.StatusOK)
		})
	}
}
