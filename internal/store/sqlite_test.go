package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/remaimber-it/imagequiz/internal/domain/questionbank"
	"github.com/remaimber-it/imagequiz/internal/store"
)

func newTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetAssetFailure(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	f := &store.AssetFailure{
		Kind:       questionbank.KindQuestion,
		QuestionID: 17,
		Path:       "./questions/17.png",
		Reason:     "not_found",
		Detail:     "open 17.png: file does not exist",
		Source:     store.SourceSession,
		OccurredAt: time.UnixMilli(1700000000000),
	}
	if err := s.SaveAssetFailure(ctx, f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.ID == 0 {
		t.Fatal("expected ID to be assigned")
	}

	got, err := s.GetAssetFailure(ctx, f.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Path != f.Path || got.QuestionID != 17 || got.Kind != questionbank.KindQuestion {
		t.Errorf("unexpected failure %+v", got)
	}
	if !got.OccurredAt.Equal(f.OccurredAt) {
		t.Errorf("expected occurred_at %v, got %v", f.OccurredAt, got.OccurredAt)
	}
}

func TestGetAssetFailure_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetAssetFailure(context.Background(), 999)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListAssetFailures_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.UnixMilli(1700000000000)

	for i := 1; i <= 3; i++ {
		err := s.SaveAssetFailure(ctx, &store.AssetFailure{
			Kind:       questionbank.KindAnswer,
			QuestionID: i,
			Path:       "./answers/x.png",
			Reason:     "decode",
			Source:     store.SourceSession,
			OccurredAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("failed to save: %v", err)
		}
	}

	failures, err := s.ListAssetFailures(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(failures) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(failures))
	}
	if failures[0].QuestionID != 3 || failures[1].QuestionID != 2 {
		t.Errorf("expected newest first, got %d then %d", failures[0].QuestionID, failures[1].QuestionID)
	}
}

func TestListAssetFailures_Empty(t *testing.T) {
	s := newTestStore(t)

	failures, err := s.ListAssetFailures(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if failures == nil || len(failures) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", failures)
	}
}

func TestClearAssetFailures_BySource(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, source := range []string{store.SourceAudit, store.SourceAudit, store.SourceSession} {
		if err := s.SaveAssetFailure(ctx, &store.AssetFailure{
			Kind: questionbank.KindQuestion, QuestionID: 1, Path: "p", Reason: "r", Source: source,
		}); err != nil {
			t.Fatalf("failed to save: %v", err)
		}
	}

	n, err := s.ClearAssetFailures(ctx, store.SourceAudit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 rows deleted, got %d", n)
	}

	remaining, _ := s.ListAssetFailures(ctx, 0)
	if len(remaining) != 1 || remaining[0].Source != store.SourceSession {
		t.Errorf("expected only the session failure to remain, got %+v", remaining)
	}

	n, err = s.ClearAssetFailures(ctx, "")
	if err != nil || n != 1 {
		t.Errorf("expected 1 row deleted, got %d (%v)", n, err)
	}
}

func TestPing(t *testing.T) {
	s := newTestStore(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
