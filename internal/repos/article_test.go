package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/prepmitra/currentaffairs-backend/internal/repos/testutil"
)

func TestArticleRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewArticleRepo(db, testutil.Logger(t))

	now := time.Now().UTC()
	a := testutil.SeedArticle(t, ctx, tx, "Policy Update", "Education", []string{"UPSC", "SSC"}, now)
	b := testutil.SeedArticle(t, ctx, tx, "Satellite Launch", "Science", []string{"NEET", "UPSC"}, now.Add(-24*time.Hour))
	_ = testutil.SeedArticle(t, ctx, tx, "Old Banking News", "Economy", []string{"Banking"}, now.Add(-72*time.Hour))

	got, err := repo.GetByIDs(ctx, tx, nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("GetByIDs empty: len=%d err=%v", len(got), err)
	}
	got, err = repo.GetByIDs(ctx, tx, []uuid.UUID{a.ID, b.ID})
	if err != nil || len(got) != 2 {
		t.Fatalf("GetByIDs: len=%d err=%v", len(got), err)
	}

	list, err := repo.List(ctx, tx, 10, "")
	if err != nil || len(list) != 3 {
		t.Fatalf("List: len=%d err=%v", len(list), err)
	}
	if list[0].ID != a.ID {
		t.Fatalf("List: expected newest article first")
	}

	list, err = repo.List(ctx, tx, 10, "Science")
	if err != nil || len(list) != 1 || list[0].ID != b.ID {
		t.Fatalf("List by category: len=%d err=%v", len(list), err)
	}

	byDate, err := repo.ListByDate(ctx, tx, now.Add(-24*time.Hour))
	if err != nil || len(byDate) != 1 || byDate[0].ID != b.ID {
		t.Fatalf("ListByDate: len=%d err=%v", len(byDate), err)
	}

	upsc, err := repo.ListByExamRelevance(ctx, tx, "UPSC")
	if err != nil || len(upsc) != 2 {
		t.Fatalf("ListByExamRelevance: len=%d err=%v", len(upsc), err)
	}
	if upsc[0].ID != a.ID {
		t.Fatalf("ListByExamRelevance: expected newest first")
	}
	neet, err := repo.ListByExamRelevance(ctx, tx, "NEET")
	if err != nil || len(neet) != 1 || neet[0].ID != b.ID {
		t.Fatalf("ListByExamRelevance NEET: len=%d err=%v", len(neet), err)
	}

	since, err := repo.ListPublishedSince(ctx, tx, now.Add(-36*time.Hour), 50, "")
	if err != nil || len(since) != 2 {
		t.Fatalf("ListPublishedSince: len=%d err=%v", len(since), err)
	}

	u := testutil.SeedUser(t, ctx, tx, "articlerepo@example.com")
	testutil.SeedBookmark(t, ctx, tx, u.ID, a.ID)
	testutil.SeedNote(t, ctx, tx, u.ID, a.ID, "n1")
	testutil.SeedNote(t, ctx, tx, u.ID, a.ID, "n2")

	withData, err := repo.ListWithUserData(ctx, tx, u.ID, 10, "")
	if err != nil {
		t.Fatalf("ListWithUserData: %v", err)
	}
	if len(withData) != 3 {
		t.Fatalf("ListWithUserData: expected 3 rows, got %d", len(withData))
	}
	first := withData[0]
	if first.ID != a.ID || !first.IsBookmarked || !first.HasNotes {
		t.Fatalf("ListWithUserData: expected decorated newest article, got %+v", first)
	}
	for _, row := range withData[1:] {
		if row.IsBookmarked || row.HasNotes || row.UserInteractions != 0 {
			t.Fatalf("ListWithUserData: expected bare decorations for untouched articles")
		}
	}
}
