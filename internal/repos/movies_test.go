package repos

import (
	"context"
	"errors"
	"testing"

	"github.com/joa2pac/conexa-star-wars-api/internal/model"
)

func boolPtr(b bool) *bool { return &b }

func TestMovieCreateAndGet(t *testing.T) {
	st := newFakeStore()
	r := New(st, "movies", "movie_details")
	ctx := context.Background()

	m := model.Movie{MovieID: "m1", Title: "A New Hope", Created: "1977-05-25"}
	if err := r.Movies.Create(ctx, m); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, found, err := r.Movies.GetByID(ctx, "m1")
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if got.Title != "A New Hope" || got.Created != "1977-05-25" {
		t.Fatalf("unexpected movie %+v", got)
	}
	if got.Deleted != nil {
		t.Fatalf("deleted should be absent, got %v", *got.Deleted)
	}
}

func TestMovieGetAbsent(t *testing.T) {
	r := New(newFakeStore(), "movies", "movie_details")
	_, found, err := r.Movies.GetByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected absent movie")
	}
}

func TestMoviePatchMergesOnlyTruthyFields(t *testing.T) {
	st := newFakeStore()
	r := New(st, "movies", "movie_details")
	ctx := context.Background()
	if err := r.Movies.Create(ctx, model.Movie{MovieID: "m1", Title: "A New Hope", Created: "1977-05-25"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Empty title is dropped from the update; deleted=false is applied.
	attrs, err := r.Movies.Patch(ctx, "m1", model.MoviePatch{Title: "", Deleted: boolPtr(false)})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if _, ok := attrs["title"]; ok {
		t.Fatal("empty title must not be part of the update")
	}
	if v, ok := attrs["deleted"]; !ok || v != false {
		t.Fatalf("deleted=false must survive the merge, got %v", attrs)
	}

	got, _, err := r.Movies.GetByID(ctx, "m1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "A New Hope" {
		t.Fatalf("title must be untouched, got %q", got.Title)
	}
	if got.Deleted == nil || *got.Deleted {
		t.Fatalf("expected deleted=false stored, got %v", got.Deleted)
	}
}

func TestMoviePatchRename(t *testing.T) {
	st := newFakeStore()
	r := New(st, "movies", "movie_details")
	ctx := context.Background()
	if err := r.Movies.Create(ctx, model.Movie{MovieID: "m1", Title: "Old", Created: "1977-05-25"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := r.Movies.Patch(ctx, "m1", model.MoviePatch{Title: "New"}); err != nil {
		t.Fatalf("patch: %v", err)
	}
	got, _, _ := r.Movies.GetByID(ctx, "m1")
	if got.Title != "New" {
		t.Fatalf("expected renamed title, got %q", got.Title)
	}
	if got.Created != "1977-05-25" {
		t.Fatal("unlisted fields must be left untouched")
	}
}

func TestMoviePatchEmptyPayload(t *testing.T) {
	st := newFakeStore()
	r := New(st, "movies", "movie_details")
	if _, err := r.Movies.Patch(context.Background(), "m1", model.MoviePatch{}); !errors.Is(err, ErrEmptyUpdate) {
		t.Fatalf("expected ErrEmptyUpdate, got %v", err)
	}
	if len(st.updates) != 0 {
		t.Fatal("store must not be called for an empty patch")
	}
}

func TestMovieListAllReturnsEveryRecord(t *testing.T) {
	st := newFakeStore()
	r := New(st, "movies", "movie_details")
	ctx := context.Background()
	titles := []string{"A New Hope", "The Empire Strikes Back", "Return of the Jedi"}
	for i, title := range titles {
		if err := r.Movies.Create(ctx, model.Movie{MovieID: string(rune('a' + i)), Title: title}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	all, err := r.Movies.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != len(titles) {
		t.Fatalf("expected %d movies, got %d", len(titles), len(all))
	}
}

func TestMovieDelete(t *testing.T) {
	st := newFakeStore()
	r := New(st, "movies", "movie_details")
	ctx := context.Background()
	if err := r.Movies.Create(ctx, model.Movie{MovieID: "m1", Title: "Gone"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := r.Movies.Delete(ctx, "m1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found, _ := r.Movies.GetByID(ctx, "m1"); found {
		t.Fatal("expected record removed from store")
	}
}

func TestMovieStoreErrorPropagates(t *testing.T) {
	st := newFakeStore()
	st.err = errors.New("connection reset")
	r := New(st, "movies", "movie_details")
	if _, err := r.Movies.ListAll(context.Background()); !errors.Is(err, st.err) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestDetailsByMovieIDFiltersScan(t *testing.T) {
	st := newFakeStore()
	r := New(st, "movies", "movie_details")
	ctx := context.Background()
	for _, d := range []model.MovieDetail{
		{MovieID: "m1", Synopsis: "first"},
		{MovieID: "m2", Synopsis: "second"},
	} {
		if _, err := r.Details.Create(ctx, d); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	got, err := r.Movies.DetailsByMovieID(ctx, "m1")
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if len(got) != 1 || got[0].Synopsis != "first" {
		t.Fatalf("unexpected details %+v", got)
	}
}
