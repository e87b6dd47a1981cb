package services

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgerrors "github.com/prepmitra/currentaffairs-backend/internal/pkg/errors"
	"github.com/prepmitra/currentaffairs-backend/internal/repos"
	"github.com/prepmitra/currentaffairs-backend/internal/repos/testutil"
	"github.com/prepmitra/currentaffairs-backend/internal/types"
)

func newRecommendationService(t *testing.T) (RecommendationService, *testutilScope) {
	t.Helper()
	scope := newTestutilScope(t)
	svc := NewRecommendationService(
		scope.tx,
		scope.log,
		repos.NewRecommendationRepo(scope.tx, scope.log),
		repos.NewArticleRepo(scope.tx, scope.log),
		repos.NewUserProfileRepo(scope.tx, scope.log),
		repos.NewBookmarkRepo(scope.tx, scope.log),
		repos.NewNoteRepo(scope.tx, scope.log),
		repos.NewInteractionRepo(scope.tx, scope.log),
		nil,
		0,
	)
	return svc, scope
}

func TestRecommendationServiceGenerate(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("requires a profile", func(t *testing.T) {
		svc, scope := newRecommendationService(t)
		user := testutil.SeedUser(t, ctx, scope.tx, "noprofile@test.dev")
		_, err := svc.Generate(ctx, user.ID, 10)
		if !errors.Is(err, pkgerrors.ErrProfileRequired) {
			t.Fatalf("expected ErrProfileRequired, got %v", err)
		}
	})

	t.Run("filters candidates by target exam", func(t *testing.T) {
		svc, scope := newRecommendationService(t)
		user := testutil.SeedUser(t, ctx, scope.tx, "upsc@test.dev")
		testutil.SeedProfile(t, ctx, scope.tx, user.ID, "UPSC", nil)
		upsc1 := testutil.SeedArticle(t, ctx, scope.tx, "Budget session", "Economy", []string{"UPSC"}, now)
		upsc2 := testutil.SeedArticle(t, ctx, scope.tx, "New bill passed", "Polity", []string{"UPSC", "SSC"}, now)
		testutil.SeedArticle(t, ctx, scope.tx, "NEET syllabus change", "Education", []string{"NEET"}, now)

		recs, err := svc.Generate(ctx, user.ID, 10)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(recs) != 2 {
			t.Fatalf("expected 2 recommendations, got %d", len(recs))
		}
		seen := map[string]bool{}
		for _, r := range recs {
			seen[r.ArticleID.String()] = true
			if r.RecommendationType != types.RecommendationExamRelevant {
				t.Fatalf("unexpected type %q", r.RecommendationType)
			}
		}
		if !seen[upsc1.ID.String()] || !seen[upsc2.ID.String()] {
			t.Fatalf("expected both UPSC articles recommended")
		}
	})

	t.Run("excludes fully engaged articles", func(t *testing.T) {
		svc, scope := newRecommendationService(t)
		user := testutil.SeedUser(t, ctx, scope.tx, "engaged@test.dev")
		testutil.SeedProfile(t, ctx, scope.tx, user.ID, "UPSC", nil)
		engaged := testutil.SeedArticle(t, ctx, scope.tx, "Old news", "Economy", []string{"UPSC"}, now)
		lightly := testutil.SeedArticle(t, ctx, scope.tx, "Bookmarked only", "Economy", []string{"UPSC"}, now)
		fresh := testutil.SeedArticle(t, ctx, scope.tx, "Fresh news", "Polity", []string{"UPSC"}, now)
		testutil.SeedBookmark(t, ctx, scope.tx, user.ID, engaged.ID)
		testutil.SeedNote(t, ctx, scope.tx, user.ID, engaged.ID, "revisit")
		testutil.SeedBookmark(t, ctx, scope.tx, user.ID, lightly.ID)

		recs, err := svc.Generate(ctx, user.ID, 10)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(recs) != 2 {
			t.Fatalf("expected 2 recommendations, got %d", len(recs))
		}
		for _, r := range recs {
			if r.ArticleID == engaged.ID {
				t.Fatalf("fully engaged article should be excluded")
			}
		}
		_ = fresh
	})

	t.Run("weak subject articles score higher", func(t *testing.T) {
		svc, scope := newRecommendationService(t)
		user := testutil.SeedUser(t, ctx, scope.tx, "weak@test.dev")
		testutil.SeedProfile(t, ctx, scope.tx, user.ID, "NEET", []string{"Biology"})
		bio := testutil.SeedArticle(t, ctx, scope.tx, "Genome study", "Biology", []string{"NEET"}, now)
		testutil.SeedArticle(t, ctx, scope.tx, "Particle physics", "Physics", []string{"NEET"}, now)

		recs, err := svc.Generate(ctx, user.ID, 10)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(recs) != 2 {
			t.Fatalf("expected 2 recommendations, got %d", len(recs))
		}
		if recs[0].ArticleID != bio.ID {
			t.Fatalf("expected weak-subject article first")
		}
		if recs[0].RecommendationType != types.RecommendationWeakSubject {
			t.Fatalf("expected weak_subject type, got %q", recs[0].RecommendationType)
		}
		if recs[0].Score <= recs[1].Score {
			t.Fatalf("expected weak-subject score above base: %v vs %v", recs[0].Score, recs[1].Score)
		}
	})

	t.Run("empty candidate pool yields empty run", func(t *testing.T) {
		svc, scope := newRecommendationService(t)
		user := testutil.SeedUser(t, ctx, scope.tx, "empty@test.dev")
		testutil.SeedProfile(t, ctx, scope.tx, user.ID, "CAT", nil)

		recs, err := svc.Generate(ctx, user.ID, 10)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(recs) != 0 {
			t.Fatalf("expected empty run, got %d", len(recs))
		}
	})

	t.Run("runs are additive", func(t *testing.T) {
		svc, scope := newRecommendationService(t)
		user := testutil.SeedUser(t, ctx, scope.tx, "additive@test.dev")
		testutil.SeedProfile(t, ctx, scope.tx, user.ID, "UPSC", nil)
		testutil.SeedArticle(t, ctx, scope.tx, "Standing news", "Economy", []string{"UPSC"}, now)

		if _, err := svc.Generate(ctx, user.ID, 10); err != nil {
			t.Fatalf("first run: %v", err)
		}
		if _, err := svc.Generate(ctx, user.ID, 10); err != nil {
			t.Fatalf("second run: %v", err)
		}
		repo := repos.NewRecommendationRepo(scope.tx, scope.log)
		n, err := repo.CountForUser(ctx, nil, user.ID)
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if n != 2 {
			t.Fatalf("expected 2 persisted rows across runs, got %d", n)
		}
	})
}

func TestRecommendationServiceFeed(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("cold start generates synchronously", func(t *testing.T) {
		svc, scope := newRecommendationService(t)
		user := testutil.SeedUser(t, ctx, scope.tx, "cold@test.dev")
		testutil.SeedProfile(t, ctx, scope.tx, user.ID, "UPSC", nil)
		testutil.SeedArticle(t, ctx, scope.tx, "Monsoon report", "Geography", []string{"UPSC"}, now)

		recs, err := svc.Feed(ctx, user.ID, 10)
		if err != nil {
			t.Fatalf("feed: %v", err)
		}
		if len(recs) != 1 {
			t.Fatalf("expected cold-start feed of 1, got %d", len(recs))
		}
		if recs[0].Article == nil {
			t.Fatalf("expected article preloaded on feed rows")
		}
	})

	t.Run("cold start without profile surfaces the error", func(t *testing.T) {
		svc, scope := newRecommendationService(t)
		user := testutil.SeedUser(t, ctx, scope.tx, "coldnoprofile@test.dev")
		_, err := svc.Feed(ctx, user.ID, 10)
		if !errors.Is(err, pkgerrors.ErrProfileRequired) {
			t.Fatalf("expected ErrProfileRequired, got %v", err)
		}
	})
}

func TestRecommendationServiceMarkViewed(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	svc, scope := newRecommendationService(t)
	owner := testutil.SeedUser(t, ctx, scope.tx, "owner@test.dev")
	other := testutil.SeedUser(t, ctx, scope.tx, "other@test.dev")
	testutil.SeedProfile(t, ctx, scope.tx, owner.ID, "UPSC", nil)
	testutil.SeedArticle(t, ctx, scope.tx, "Viewed news", "Economy", []string{"UPSC"}, now)

	recs, err := svc.Generate(ctx, owner.ID, 10)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	recID := recs[0].ID

	if _, err := svc.MarkViewed(ctx, other.ID, recID); !errors.Is(err, pkgerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
	if _, err := svc.MarkViewed(ctx, owner.ID, types.ArticleRecommendation{}.ID); err == nil {
		t.Fatalf("expected error for nil recommendation id")
	}

	rec, err := svc.MarkViewed(ctx, owner.ID, recID)
	if err != nil {
		t.Fatalf("mark viewed: %v", err)
	}
	if !rec.Viewed {
		t.Fatalf("expected viewed=true")
	}
	// flipping again is a no-op
	rec, err = svc.MarkViewed(ctx, owner.ID, recID)
	if err != nil {
		t.Fatalf("second mark viewed: %v", err)
	}
	if !rec.Viewed {
		t.Fatalf("expected viewed to stay true")
	}
}

func TestRecommendationServicePruneOlderThan(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	svc, scope := newRecommendationService(t)
	user := testutil.SeedUser(t, ctx, scope.tx, "prune@test.dev")
	testutil.SeedProfile(t, ctx, scope.tx, user.ID, "UPSC", nil)
	article := testutil.SeedArticle(t, ctx, scope.tx, "Prunable news", "Economy", []string{"UPSC"}, now)

	repo := repos.NewRecommendationRepo(scope.tx, scope.log)
	stale := &types.ArticleRecommendation{
		UserID:             user.ID,
		ArticleID:          article.ID,
		RecommendationType: types.RecommendationExamRelevant,
		Score:              0.8,
		Reason:             "Relevant for UPSC preparation",
		GeneratedAt:        now.AddDate(0, 0, -45),
	}
	if _, err := repo.Create(ctx, nil, []*types.ArticleRecommendation{stale}); err != nil {
		t.Fatalf("seed stale: %v", err)
	}
	if _, err := svc.Generate(ctx, user.ID, 10); err != nil {
		t.Fatalf("generate fresh: %v", err)
	}

	n, err := svc.PruneOlderThan(ctx, user.ID, 30*24*time.Hour)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 pruned row, got %d", n)
	}
	remaining, err := repo.CountForUser(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if remaining != 1 {
		t.Fatalf("expected the fresh row to survive, got %d", remaining)
	}
}
