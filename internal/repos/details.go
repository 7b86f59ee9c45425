package repos

import (
	"context"

	"github.com/joa2pac/conexa-star-wars-api/internal/model"
	"github.com/joa2pac/conexa-star-wars-api/internal/store"
)

// DetailsRepo owns the movie_details table.
type DetailsRepo struct {
	store store.Table
	table string
	newID func() string
}

// GetByID fetches one detail record by the movieId table key. Records created
// directly without a movieId are not reachable here (known defect, kept).
func (r *DetailsRepo) GetByID(ctx context.Context, movieID string) (model.MovieDetail, bool, error) {
	var d model.MovieDetail
	found, err := r.store.Get(ctx, r.table, store.Key(keyAttr, movieID), &d)
	return d, found, err
}

// Create stamps a fresh movieDetailId onto the record and stores it. The
// table key stays movieId, taken from the record itself; callers that omit it
// produce a record addressable only through scans.
func (r *DetailsRepo) Create(ctx context.Context, d model.MovieDetail) (model.MovieDetail, error) {
	d.MovieDetailID = r.newID()
	if err := r.store.Put(ctx, r.table, d); err != nil {
		return model.MovieDetail{}, err
	}
	return d, nil
}

// Patch merges the truthy-or-defined subset of the patch into the stored
// record and returns the new values of the updated attributes.
func (r *DetailsRepo) Patch(ctx context.Context, movieID string, p model.MovieDetailPatch) (map[string]any, error) {
	upd, err := detailUpdate(p)
	if err != nil {
		return nil, err
	}
	attrs, err := r.store.Update(ctx, r.table, store.Key(keyAttr, movieID), upd)
	if err != nil {
		return nil, err
	}
	return unmarshalAttrs(attrs)
}

// Delete removes the record from the store.
func (r *DetailsRepo) Delete(ctx context.Context, movieID string) error {
	return r.store.Delete(ctx, r.table, store.Key(keyAttr, movieID))
}

// ListAll scans the whole table with no pagination.
func (r *DetailsRepo) ListAll(ctx context.Context) ([]model.MovieDetail, error) {
	var out []model.MovieDetail
	if err := r.store.Scan(ctx, r.table, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
