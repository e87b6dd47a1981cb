package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/prepmitra/currentaffairs-backend/internal/pkg/errors"
	"github.com/prepmitra/currentaffairs-backend/internal/repos"
	"github.com/prepmitra/currentaffairs-backend/internal/repos/testutil"
)

func newNoteService(t *testing.T) (NoteService, *testutilScope) {
	t.Helper()
	scope := newTestutilScope(t)
	svc := NewNoteService(
		scope.tx,
		scope.log,
		repos.NewNoteRepo(scope.tx, scope.log),
		repos.NewArticleRepo(scope.tx, scope.log),
	)
	return svc, scope
}

func TestNoteServiceOwnership(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	svc, scope := newNoteService(t)
	owner := testutil.SeedUser(t, ctx, scope.tx, "noteowner@test.dev")
	other := testutil.SeedUser(t, ctx, scope.tx, "noteother@test.dev")
	article := testutil.SeedArticle(t, ctx, scope.tx, "Annotated news", "Polity", []string{"UPSC"}, now)

	note, err := svc.Create(ctx, owner.ID, article.ID, NoteInput{NoteText: "key judgment"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(ctx, other.ID, note.ID, NoteInput{NoteText: "hijacked"}); !errors.Is(err, pkgerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner update, got %v", err)
	}
	if err := svc.Delete(ctx, other.ID, note.ID); !errors.Is(err, pkgerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner delete, got %v", err)
	}
	if _, err := svc.Update(ctx, owner.ID, uuid.New(), NoteInput{NoteText: "x"}); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing note, got %v", err)
	}

	updated, err := svc.Update(ctx, owner.ID, note.ID, NoteInput{NoteText: "revised", Highlighted: true})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.NoteText != "revised" || !updated.Highlighted {
		t.Fatalf("update not applied: %+v", updated)
	}

	if err := svc.Delete(ctx, owner.ID, note.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	notes, err := svc.ListForUser(ctx, owner.ID, testutil.PtrUUID(article.ID))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notes) != 0 {
		t.Fatalf("expected no notes after delete, got %d", len(notes))
	}
}

func TestNoteServiceCreateValidation(t *testing.T) {
	ctx := context.Background()

	svc, scope := newNoteService(t)
	user := testutil.SeedUser(t, ctx, scope.tx, "notevalid@test.dev")

	if _, err := svc.Create(ctx, user.ID, uuid.New(), NoteInput{NoteText: "orphan"}); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown article, got %v", err)
	}
	article := testutil.SeedArticle(t, ctx, scope.tx, "Blank note target", "Economy", []string{"UPSC"}, time.Now().UTC())
	if _, err := svc.Create(ctx, user.ID, article.ID, NoteInput{NoteText: "   "}); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for blank text, got %v", err)
	}
}
