package api

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS answers preflight requests and sets the Access-Control headers for
// the given origins. An empty list allows any origin. Credentials are never
// allowed since sessions travel in the Authorization header.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}).Handler(next)
}
