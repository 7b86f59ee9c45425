package repos

import (
	"github.com/google/uuid"

	"github.com/joa2pac/conexa-star-wars-api/internal/store"
)

// Repository bundles the per-table repositories over one table store.
type Repository struct {
	Movies  *MoviesRepo
	Details *DetailsRepo
}

func New(st store.Table, moviesTable, detailsTable string) *Repository {
	return &Repository{
		Movies:  &MoviesRepo{store: st, table: moviesTable, detailsTable: detailsTable},
		Details: &DetailsRepo{store: st, table: detailsTable, newID: uuid.NewString},
	}
}
