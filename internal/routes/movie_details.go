package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/joa2pac/conexa-star-wars-api/internal/model"
	"github.com/joa2pac/conexa-star-wars-api/internal/repos"

	pkgdeps "github.com/joa2pac/conexa-star-wars-api/pkg/deps"
	pkghttpx "github.com/joa2pac/conexa-star-wars-api/pkg/httpx"
)

// DetailsList handles GET /movie-details.
func DetailsList(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		details, err := d.Repo.Details.ListAll(r.Context())
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to list movie details", err))
			return
		}
		if details == nil {
			details = []model.MovieDetail{}
		}
		pkghttpx.WriteJSON(w, http.StatusOK, details)
	}
}

// DetailGet handles GET /movie-details/{id}. The lookup keys on the movieId
// attribute, so records are addressed by the movie they describe.
func DetailGet(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detail, found, err := d.Repo.Details.GetByID(r.Context(), r.PathValue("id"))
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to fetch movie detail", err))
			return
		}
		if !found {
			pkghttpx.WriteError(w, r, pkghttpx.NotFound("movie detail not found", nil))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, detail)
	}
}

// DetailCreate handles POST /movie-details. A movieDetailId is stamped on
// every record; the movieId must reference an existing or future movie but
// is not validated here.
func DetailCreate(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var md model.MovieDetail
		if err := json.NewDecoder(r.Body).Decode(&md); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		if md.MovieID == "" {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("movieId is required", nil))
			return
		}
		stored, err := d.Repo.Details.Create(r.Context(), md)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to create movie detail", err))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusCreated, stored)
	}
}

// DetailPatch handles PATCH /movie-details/{id} and PUT /movie-details/{id}.
func DetailPatch(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p model.MovieDetailPatch
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		attrs, err := d.Repo.Details.Patch(r.Context(), r.PathValue("id"), p)
		if err != nil {
			if errors.Is(err, repos.ErrEmptyUpdate) {
				pkghttpx.WriteError(w, r, pkghttpx.BadRequest("no updatable fields in payload", err))
				return
			}
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to update movie detail", err))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, attrs)
	}
}

// DetailDelete handles DELETE /movie-details/{id}.
func DetailDelete(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Repo.Details.Delete(r.Context(), r.PathValue("id")); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to delete movie detail", err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
