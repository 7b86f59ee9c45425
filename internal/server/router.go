package server

import (
	"net/http"

	"github.com/joa2pac/conexa-star-wars-api/internal/routes"
	"github.com/joa2pac/conexa-star-wars-api/pkg/deps"
)

type Server struct {
	deps.ServerDeps

	AllowedOrigins []string
}

func New(sd deps.ServerDeps, allowedOrigins []string) *Server {
	return &Server{ServerDeps: sd, AllowedOrigins: allowedOrigins}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	sd := s.ServerDeps

	read := sd.Auth.Require("admin", "users")
	admin := sd.Auth.Require("admin")

	handle := func(pattern string, mw func(http.Handler) http.Handler, h http.HandlerFunc) {
		mux.Handle(pattern, mw(h))
	}

	// Endpoints declared here for easy scanning
	mux.HandleFunc("GET /{$}", routes.Welcome(sd))
	mux.HandleFunc("GET /health", routes.Health(sd))

	handle("GET /movies", read, routes.MoviesList(sd))
	handle("GET /movies/{id}", read, routes.MovieGet(sd))
	handle("GET /movies/{id}/details", read, routes.MovieDetails(sd))
	handle("POST /movies", admin, routes.MovieCreate(sd))
	handle("POST /movies/sync", admin, routes.MoviesSync(sd))
	handle("PATCH /movies/{id}", admin, routes.MoviePatch(sd))
	handle("PUT /movies/{id}", admin, routes.MoviePatch(sd))
	handle("DELETE /movies/{id}", admin, routes.MovieDelete(sd))

	handle("GET /movie-details", read, routes.DetailsList(sd))
	handle("GET /movie-details/{id}", read, routes.DetailGet(sd))
	handle("POST /movie-details", admin, routes.DetailCreate(sd))
	handle("PATCH /movie-details/{id}", admin, routes.DetailPatch(sd))
	handle("PUT /movie-details/{id}", admin, routes.DetailPatch(sd))
	handle("DELETE /movie-details/{id}", admin, routes.DetailDelete(sd))

	handle("GET /cognito/users", admin, routes.UsersList(sd))
	handle("POST /cognito/users", admin, routes.UserCreate(sd))
	handle("PUT /cognito/users/{username}/password", admin, routes.UserSetPassword(sd))
	handle("POST /cognito/users/{username}/groups", admin, routes.UserAddGroup(sd))
	handle("DELETE /cognito/users/{username}", admin, routes.UserDelete(sd))

	return withCorrelationID(withLogging(withSecurityHeaders(withCORS(s.AllowedOrigins)(mux))))
}
