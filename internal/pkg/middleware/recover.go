package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"

	"psstock/internal/domain"
	"psstock/internal/pkg/logger"
)

// Recover transforma um panic no handler em 500 {"error": "<valor do panic>"}.
// http.ErrAbortHandler é repassado: é o sinal do net/http para abortar a resposta.
func Recover(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				message := fmt.Sprint(rec)
				log.Error("Panic durante a requisição.", fmt.Errorf("%s %s: %s", r.Method, r.URL.Path, message))

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(domain.ErrorResponse{Error: message})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
