package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/prepmitra/currentaffairs-backend/internal/repos/testutil"
	"github.com/prepmitra/currentaffairs-backend/internal/types"
)

func TestBookmarkRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewBookmarkRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "bookmarkrepo@example.com")
	a := testutil.SeedArticle(t, ctx, tx, "Article A", "Economy", []string{"UPSC"}, time.Now().UTC())
	b := testutil.SeedArticle(t, ctx, tx, "Article B", "Science", []string{"NEET"}, time.Now().UTC().Add(-time.Hour))

	bm := &types.ArticleBookmark{ID: uuid.New(), UserID: u.ID, ArticleID: a.ID, BookmarkedAt: time.Now().UTC()}
	if n, err := repo.CreateIgnoreDuplicates(ctx, tx, bm); err != nil || n != 1 {
		t.Fatalf("CreateIgnoreDuplicates: n=%d err=%v", n, err)
	}

	// second insert for the same pair is a no-op
	dup := &types.ArticleBookmark{ID: uuid.New(), UserID: u.ID, ArticleID: a.ID, BookmarkedAt: time.Now().UTC()}
	if n, err := repo.CreateIgnoreDuplicates(ctx, tx, dup); err != nil || n != 0 {
		t.Fatalf("CreateIgnoreDuplicates dup: n=%d err=%v", n, err)
	}

	got, err := repo.GetByUserAndArticle(ctx, tx, u.ID, a.ID)
	if err != nil {
		t.Fatalf("GetByUserAndArticle: %v", err)
	}
	if got == nil || got.ID != bm.ID {
		t.Fatalf("GetByUserAndArticle: expected original row, got %+v", got)
	}

	if got, err := repo.GetByUserAndArticle(ctx, tx, u.ID, b.ID); err != nil || got != nil {
		t.Fatalf("GetByUserAndArticle missing: got=%+v err=%v", got, err)
	}

	bm2 := &types.ArticleBookmark{ID: uuid.New(), UserID: u.ID, ArticleID: b.ID, BookmarkedAt: time.Now().UTC().Add(time.Minute)}
	if n, err := repo.CreateIgnoreDuplicates(ctx, tx, bm2); err != nil || n != 1 {
		t.Fatalf("CreateIgnoreDuplicates second article: n=%d err=%v", n, err)
	}

	list, err := repo.ListForUser(ctx, tx, u.ID)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("ListForUser: expected 2 rows, got %d", len(list))
	}
	// newest first
	if list[0].ArticleID != b.ID {
		t.Fatalf("ListForUser: expected most recent bookmark first")
	}
	if list[0].Article == nil || list[0].Article.Title != "Article B" {
		t.Fatalf("ListForUser: expected preloaded article")
	}

	ids, err := repo.ListArticleIDsForUser(ctx, tx, u.ID)
	if err != nil || len(ids) != 2 {
		t.Fatalf("ListArticleIDsForUser: ids=%v err=%v", ids, err)
	}

	removed, err := repo.DeleteByUserAndArticle(ctx, tx, u.ID, a.ID)
	if err != nil || !removed {
		t.Fatalf("DeleteByUserAndArticle: removed=%v err=%v", removed, err)
	}
	removed, err = repo.DeleteByUserAndArticle(ctx, tx, u.ID, a.ID)
	if err != nil || removed {
		t.Fatalf("DeleteByUserAndArticle twice: removed=%v err=%v", removed, err)
	}
}
