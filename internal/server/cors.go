package server

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows every origin, header and common method, with credentials.
// With credentials the origin is echoed back instead of "*". Preflight
// requests are answered here and never reach next.
func CORS(next http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return c.Handler(next)
}
