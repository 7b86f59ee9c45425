package repos

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/joa2pac/conexa-star-wars-api/internal/model"
	"github.com/joa2pac/conexa-star-wars-api/internal/store"
)

const keyAttr = "movieId"

// MoviesRepo owns the movies table.
type MoviesRepo struct {
	store        store.Table
	table        string
	detailsTable string
}

// GetByID fetches one movie. The bool reports presence.
func (r *MoviesRepo) GetByID(ctx context.Context, movieID string) (model.Movie, bool, error) {
	var m model.Movie
	found, err := r.store.Get(ctx, r.table, store.Key(keyAttr, movieID), &m)
	return m, found, err
}

// Create inserts or replaces a movie record.
func (r *MoviesRepo) Create(ctx context.Context, m model.Movie) error {
	return r.store.Put(ctx, r.table, m)
}

// Patch merges the truthy-or-defined subset of the patch into the stored
// record and returns the new values of the updated attributes.
func (r *MoviesRepo) Patch(ctx context.Context, movieID string, p model.MoviePatch) (map[string]any, error) {
	upd, err := movieUpdate(p)
	if err != nil {
		return nil, err
	}
	attrs, err := r.store.Update(ctx, r.table, store.Key(keyAttr, movieID), upd)
	if err != nil {
		return nil, err
	}
	return unmarshalAttrs(attrs)
}

// Delete removes the record from the store. This is a hard delete; the
// deleted flag on the record is unrelated application-level metadata.
func (r *MoviesRepo) Delete(ctx context.Context, movieID string) error {
	return r.store.Delete(ctx, r.table, store.Key(keyAttr, movieID))
}

// ListAll scans the whole table. No pagination, no size limit; the result is
// whatever the scan returns at call time.
func (r *MoviesRepo) ListAll(ctx context.Context) ([]model.Movie, error) {
	var out []model.Movie
	if err := r.store.Scan(ctx, r.table, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DetailsByMovieID scans the details table for records carrying the given
// movieId. A scan rather than a key lookup: directly created detail records
// may hold their identity in movieDetailId instead of the table key.
func (r *MoviesRepo) DetailsByMovieID(ctx context.Context, movieID string) ([]model.MovieDetail, error) {
	filter := &store.Filter{
		Expression: "movieId = :movieId",
		Values: map[string]types.AttributeValue{
			":movieId": &types.AttributeValueMemberS{Value: movieID},
		},
	}
	var out []model.MovieDetail
	if err := r.store.Scan(ctx, r.detailsTable, filter, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func unmarshalAttrs(attrs map[string]types.AttributeValue) (map[string]any, error) {
	out := make(map[string]any, len(attrs))
	if err := attributevalue.UnmarshalMap(attrs, &out); err != nil {
		return nil, err
	}
	return out, nil
}
