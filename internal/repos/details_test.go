package repos

import (
	"context"
	"errors"
	"testing"

	"github.com/joa2pac/conexa-star-wars-api/internal/model"
)

func TestDetailCreateStampsDetailID(t *testing.T) {
	st := newFakeStore()
	r := New(st, "movies", "movie_details")
	d := model.MovieDetail{MovieID: "m1", Synopsis: "far, far away"}
	stored, err := r.Details.Create(context.Background(), d)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if stored.MovieDetailID == "" {
		t.Fatal("expected a generated movieDetailId")
	}
	if stored.MovieID != "m1" {
		t.Fatalf("movieId must be preserved, got %q", stored.MovieID)
	}
}

func TestDetailCreateWithoutMovieIDIsUnreachableByKey(t *testing.T) {
	// Known dual-addressing defect: a directly created record without
	// movieId only carries movieDetailId and cannot be fetched through
	// the movieId key.
	st := newFakeStore()
	r := New(st, "movies", "movie_details")
	ctx := context.Background()
	stored, err := r.Details.Create(ctx, model.MovieDetail{Synopsis: "orphaned"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, found, _ := r.Details.GetByID(ctx, stored.MovieDetailID); found {
		t.Fatal("record must not be addressable by movieDetailId through the key")
	}
	all, err := r.Details.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatal("record must still exist in the table")
	}
}

func TestDetailPatchMergePolicy(t *testing.T) {
	st := newFakeStore()
	r := New(st, "movies", "movie_details")
	ctx := context.Background()
	if _, err := r.Details.Create(ctx, model.MovieDetail{
		MovieID:  "m1",
		Synopsis: "original synopsis",
		Cast:     []string{"Mark Hamill"},
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Empty synopsis and empty cast are dropped; deleted=false applies.
	attrs, err := r.Details.Patch(ctx, "m1", model.MovieDetailPatch{
		Synopsis: "",
		Cast:     []string{},
		Deleted:  boolPtr(false),
	})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if _, ok := attrs["synopsis"]; ok {
		t.Fatal("empty synopsis must be dropped from the update")
	}
	if _, ok := attrs["cast"]; ok {
		t.Fatal("empty cast must be dropped from the update")
	}
	if _, ok := attrs["deleted"]; !ok {
		t.Fatal("deleted=false must be part of the update")
	}

	got, _, err := r.Details.GetByID(ctx, "m1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Synopsis != "original synopsis" || len(got.Cast) != 1 {
		t.Fatalf("stored fields must be untouched: %+v", got)
	}
}

func TestDetailPatchReplacesCast(t *testing.T) {
	st := newFakeStore()
	r := New(st, "movies", "movie_details")
	ctx := context.Background()
	if _, err := r.Details.Create(ctx, model.MovieDetail{MovieID: "m1", Cast: []string{"Unknown"}}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := r.Details.Patch(ctx, "m1", model.MovieDetailPatch{
		Cast: []string{"Mark Hamill", "Carrie Fisher"},
	}); err != nil {
		t.Fatalf("patch: %v", err)
	}
	got, _, _ := r.Details.GetByID(ctx, "m1")
	if len(got.Cast) != 2 || got.Cast[0] != "Mark Hamill" {
		t.Fatalf("unexpected cast %v", got.Cast)
	}
}

func TestDetailPatchEmptyPayload(t *testing.T) {
	r := New(newFakeStore(), "movies", "movie_details")
	if _, err := r.Details.Patch(context.Background(), "m1", model.MovieDetailPatch{}); !errors.Is(err, ErrEmptyUpdate) {
		t.Fatalf("expected ErrEmptyUpdate, got %v", err)
	}
}

func TestDetailDelete(t *testing.T) {
	st := newFakeStore()
	r := New(st, "movies", "movie_details")
	ctx := context.Background()
	if _, err := r.Details.Create(ctx, model.MovieDetail{MovieID: "m1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := r.Details.Delete(ctx, "m1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found, _ := r.Details.GetByID(ctx, "m1"); found {
		t.Fatal("expected record removed")
	}
}
