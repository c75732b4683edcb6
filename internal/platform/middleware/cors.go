package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/janisto/hello-backend/internal/config"
)

// CORS returns a middleware enforcing the given cross-origin policy.
//
// A wildcard origin list combined with AllowCredentials is not a valid
// response per the Fetch standard, so in that case the request Origin is
// echoed back instead of "*". That makes any site a credentialed caller;
// callers should surface config.CORSConfig.InsecureWildcardCredentials.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   cfg.ExposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	if cfg.InsecureWildcardCredentials() {
		opts.AllowedOrigins = nil
		opts.AllowOriginFunc = func(_ *http.Request, _ string) bool { return true }
	}
	return cors.Handler(opts)
}
