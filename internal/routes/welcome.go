package routes

import (
	"net/http"
	"time"

	pkgdeps "github.com/joa2pac/conexa-star-wars-api/pkg/deps"
	pkghttpx "github.com/joa2pac/conexa-star-wars-api/pkg/httpx"
)

// Welcome handles GET /, the only route that needs no token.
func Welcome(_ pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
			"message": "Welcome to the Star Wars API",
		})
	}
}

// Health returns a handler that responds with service status.
func Health(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := int64(time.Since(d.StartedAt).Seconds())
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
			"status":         "ok",
			"service":        d.Name,
			"uptime_seconds": uptime,
		})
	}
}
