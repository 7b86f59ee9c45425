package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/joa2pac/conexa-star-wars-api/internal/model"
	"github.com/joa2pac/conexa-star-wars-api/internal/repos"

	pkgdeps "github.com/joa2pac/conexa-star-wars-api/pkg/deps"
	pkghttpx "github.com/joa2pac/conexa-star-wars-api/pkg/httpx"
)

const moviesCacheKey = "movies:all"

// MoviesList handles GET /movies. The listing is a full table scan, cached
// briefly and invalidated by every movie write.
func MoviesList(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if cached, ok := d.Cache.Get(ctx, moviesCacheKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(cached))
			return
		}
		movies, err := d.Repo.Movies.ListAll(ctx)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to list movies", err))
			return
		}
		if movies == nil {
			movies = []model.Movie{}
		}
		b, _ := json.Marshal(movies)
		_ = d.Cache.Set(ctx, moviesCacheKey, string(b), 2*time.Minute)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}
}

// MovieGet handles GET /movies/{id}.
func MovieGet(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		movie, found, err := d.Repo.Movies.GetByID(r.Context(), r.PathValue("id"))
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to fetch movie", err))
			return
		}
		if !found {
			pkghttpx.WriteError(w, r, pkghttpx.NotFound("movie not found", nil))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, movie)
	}
}

// MovieCreate handles POST /movies. The movieId is always generated
// server-side, replacing whatever the client sent.
func MovieCreate(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var m model.Movie
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		if m.Title == "" {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("title is required", nil))
			return
		}
		m.MovieID = uuid.NewString()
		if err := d.Repo.Movies.Create(r.Context(), m); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to create movie", err))
			return
		}
		_ = d.Cache.DeletePrefix(r.Context(), "movies:")
		pkghttpx.WriteJSON(w, http.StatusCreated, m)
	}
}

// MoviePatch handles PATCH /movies/{id} and PUT /movies/{id}; both carry
// partial-update semantics. Responds with the new values of the updated
// attributes only.
func MoviePatch(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p model.MoviePatch
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		attrs, err := d.Repo.Movies.Patch(r.Context(), r.PathValue("id"), p)
		if err != nil {
			if errors.Is(err, repos.ErrEmptyUpdate) {
				pkghttpx.WriteError(w, r, pkghttpx.BadRequest("no updatable fields in payload", err))
				return
			}
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to update movie", err))
			return
		}
		_ = d.Cache.DeletePrefix(r.Context(), "movies:")
		pkghttpx.WriteJSON(w, http.StatusOK, attrs)
	}
}

// MovieDelete handles DELETE /movies/{id}. Hard delete; deleting an absent
// id is not an error.
func MovieDelete(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Repo.Movies.Delete(r.Context(), r.PathValue("id")); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to delete movie", err))
			return
		}
		_ = d.Cache.DeletePrefix(r.Context(), "movies:")
		w.WriteHeader(http.StatusNoContent)
	}
}

// MovieDetails handles GET /movies/{id}/details, scanning the details table
// for records referencing the movie.
func MovieDetails(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		details, err := d.Repo.Movies.DetailsByMovieID(r.Context(), r.PathValue("id"))
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to fetch movie details", err))
			return
		}
		if details == nil {
			details = []model.MovieDetail{}
		}
		pkghttpx.WriteJSON(w, http.StatusOK, details)
	}
}

// MoviesSync handles POST /movies/sync, reconciling the upstream film list
// into the local store.
func MoviesSync(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := d.Sync.SyncAll(r.Context())
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("sync failed", err))
			return
		}
		_ = d.Cache.DeletePrefix(r.Context(), "movies:")
		pkghttpx.WriteJSON(w, http.StatusOK, res)
	}
}
