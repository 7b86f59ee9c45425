// Package sync reconciles the upstream film list into the local movie store.
// The reconciliation is additive only: existing movies are never touched.
package sync

import (
	"context"

	"github.com/google/uuid"

	"github.com/joa2pac/conexa-star-wars-api/internal/model"
	"github.com/joa2pac/conexa-star-wars-api/pkg/swapi"
)

// Fallbacks applied when the upstream film carries no value for a field.
const (
	defaultSynopsis = "No synopsis available"
	defaultDuration = 120
	defaultRating   = "NR"
)

var (
	defaultCast  = []string{"Unknown"}
	defaultGenre = []string{"Unknown"}
)

// FilmSource lists upstream films. *swapi.Client satisfies it.
type FilmSource interface {
	Films(ctx context.Context) ([]swapi.Film, error)
}

// Movies is the slice of the movie repository the service needs.
type Movies interface {
	ListAll(ctx context.Context) ([]model.Movie, error)
	Create(ctx context.Context, m model.Movie) error
}

// Details is the slice of the detail repository the service needs.
type Details interface {
	Create(ctx context.Context, d model.MovieDetail) (model.MovieDetail, error)
}

// Added pairs a newly created movie with its detail record.
type Added struct {
	Movie   model.Movie       `json:"movie"`
	Details model.MovieDetail `json:"details"`
}

// Result maps the title of every newly created film to its records. An empty
// map is a valid outcome when nothing new was found upstream.
type Result struct {
	AddedMovies map[string]Added `json:"addedMovies"`
}

type Service struct {
	movies  Movies
	details Details
	films   FilmSource
	newID   func() string
}

func New(movies Movies, details Details, films FilmSource) *Service {
	return &Service{movies: movies, details: details, films: films, newID: uuid.NewString}
}

// SyncAll loads the full local movie list and the full upstream film list,
// then creates a movie and a detail record for every upstream film whose
// title has no exact match locally. Matching is by title string equality
// only, so a locally renamed film is re-added under its upstream title and
// two different films sharing a title count as one. The upstream episode
// identifier is discarded; each new film gets a freshly generated identifier
// shared by its movie and detail records.
//
// Any failure aborts the remaining films and propagates; records persisted
// before the failure stay in place, and the movie/detail pair of a single
// film is not atomic.
func (s *Service) SyncAll(ctx context.Context) (Result, error) {
	local, err := s.movies.ListAll(ctx)
	if err != nil {
		return Result{}, err
	}
	upstream, err := s.films.Films(ctx)
	if err != nil {
		return Result{}, err
	}

	known := make(map[string]struct{}, len(local))
	for _, m := range local {
		known[m.Title] = struct{}{}
	}

	added := make(map[string]Added)
	for _, film := range upstream {
		if _, ok := known[film.Title]; ok {
			continue
		}

		id := s.newID()
		movie := model.Movie{MovieID: id, Title: film.Title, Created: film.Created}
		if err := s.movies.Create(ctx, movie); err != nil {
			return Result{}, err
		}

		deleted := false
		detail, err := s.details.Create(ctx, model.MovieDetail{
			MovieID:     id,
			Synopsis:    orString(film.Synopsis, defaultSynopsis),
			Cast:        orList(film.Cast, defaultCast),
			Duration:    orInt(film.Duration, defaultDuration),
			Genre:       orList(film.Genre, defaultGenre),
			Rating:      orString(film.Rating, defaultRating),
			ReleaseDate: film.ReleaseDate,
			Created:     film.Created,
			Deleted:     &deleted,
		})
		if err != nil {
			return Result{}, err
		}

		added[film.Title] = Added{Movie: movie, Details: detail}
	}

	return Result{AddedMovies: added}, nil
}

func orString(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func orInt(v, def int) int {
	if v != 0 {
		return v
	}
	return def
}

func orList(v, def []string) []string {
	if len(v) > 0 {
		return v
	}
	return def
}
