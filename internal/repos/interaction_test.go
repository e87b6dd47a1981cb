package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/prepmitra/currentaffairs-backend/internal/repos/testutil"
	"github.com/prepmitra/currentaffairs-backend/internal/types"
)

func TestInteractionRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewInteractionRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "interactionrepo@example.com")
	a := testutil.SeedArticle(t, ctx, tx, "Budget 2026", "Economy", []string{"UPSC"}, time.Now().UTC())
	b := testutil.SeedArticle(t, ctx, tx, "Gene Editing", "Science", []string{"NEET"}, time.Now().UTC())

	now := time.Now().UTC()
	events := []*types.ArticleInteraction{
		{ID: uuid.New(), UserID: u.ID, ArticleID: a.ID, Type: types.InteractionView, Metadata: datatypes.JSON([]byte("{}")), CreatedAt: now.Add(-2 * time.Second)},
		{ID: uuid.New(), UserID: u.ID, ArticleID: a.ID, Type: types.InteractionView, Metadata: datatypes.JSON([]byte("{}")), CreatedAt: now.Add(-1 * time.Second)},
		{ID: uuid.New(), UserID: u.ID, ArticleID: b.ID, Type: types.InteractionBookmarkAdd, Metadata: datatypes.JSON([]byte(`{"action":"added"}`)), CreatedAt: now},
	}
	if _, err := repo.Create(ctx, tx, events); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// duplicate events are both kept; history only grows
	all, err := repo.ListByUser(ctx, tx, u.ID, nil)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("ListByUser: expected 3 events, got %d", len(all))
	}
	if all[0].Type != types.InteractionBookmarkAdd {
		t.Fatalf("ListByUser: expected most recent event first, got %s", all[0].Type)
	}

	scoped, err := repo.ListByUser(ctx, tx, u.ID, testutil.PtrUUID(a.ID))
	if err != nil || len(scoped) != 2 {
		t.Fatalf("ListByUser scoped: len=%d err=%v", len(scoped), err)
	}
	for _, e := range scoped {
		if e.Type != types.InteractionView {
			t.Fatalf("ListByUser scoped: unexpected type %s", e.Type)
		}
	}

	n, err := repo.CountByUser(ctx, tx, u.ID)
	if err != nil || n != 3 {
		t.Fatalf("CountByUser: n=%d err=%v", n, err)
	}

	counts, err := repo.CountsByCategory(ctx, tx, u.ID)
	if err != nil {
		t.Fatalf("CountsByCategory: %v", err)
	}
	byCat := map[string]int64{}
	for _, c := range counts {
		byCat[c.Category] = c.Count
	}
	if byCat["Economy"] != 2 || byCat["Science"] != 1 {
		t.Fatalf("CountsByCategory: got %v", byCat)
	}
}
