package repos

import (
	"context"
	"testing"
	"time"

	"github.com/prepmitra/currentaffairs-backend/internal/repos/testutil"
)

func TestNoteRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewNoteRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "noterepo@example.com")
	a := testutil.SeedArticle(t, ctx, tx, "Monsoon Patterns", "Geography", []string{"UPSC"}, time.Now().UTC())
	b := testutil.SeedArticle(t, ctx, tx, "New Vaccine", "Science", []string{"NEET"}, time.Now().UTC())

	n1 := testutil.SeedNote(t, ctx, tx, u.ID, a.ID, "first")
	n2 := testutil.SeedNote(t, ctx, tx, u.ID, a.ID, "second")
	_ = testutil.SeedNote(t, ctx, tx, u.ID, b.ID, "other article")

	got, err := repo.GetByID(ctx, tx, n1.ID)
	if err != nil || got == nil || got.NoteText != "first" {
		t.Fatalf("GetByID: got=%+v err=%v", got, err)
	}

	// multiple notes per (user, article) are allowed
	scoped, err := repo.ListForUser(ctx, tx, u.ID, testutil.PtrUUID(a.ID))
	if err != nil || len(scoped) != 2 {
		t.Fatalf("ListForUser scoped: len=%d err=%v", len(scoped), err)
	}

	n2.NoteText = "second (edited)"
	n2.Highlighted = true
	if _, err := repo.Update(ctx, tx, n2); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err = repo.GetByID(ctx, tx, n2.ID)
	if err != nil || got == nil || !got.Highlighted || got.NoteText != "second (edited)" {
		t.Fatalf("GetByID after update: got=%+v err=%v", got, err)
	}

	all, err := repo.ListForUser(ctx, tx, u.ID, nil)
	if err != nil || len(all) != 3 {
		t.Fatalf("ListForUser: len=%d err=%v", len(all), err)
	}
	// ordered by last update, most recent first
	if all[0].ID != n2.ID {
		t.Fatalf("ListForUser: expected most recently updated note first")
	}

	ids, err := repo.ListArticleIDsForUser(ctx, tx, u.ID)
	if err != nil || len(ids) != 2 {
		t.Fatalf("ListArticleIDsForUser: ids=%v err=%v", ids, err)
	}

	if err := repo.DeleteByID(ctx, tx, n1.ID); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	if got, err := repo.GetByID(ctx, tx, n1.ID); err != nil || got != nil {
		t.Fatalf("GetByID after delete: got=%+v err=%v", got, err)
	}
}
