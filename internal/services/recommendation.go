package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/prepmitra/currentaffairs-backend/internal/clients/redis"
	pkgerrors "github.com/prepmitra/currentaffairs-backend/internal/pkg/errors"
	"github.com/prepmitra/currentaffairs-backend/internal/pkg/logger"
	"github.com/prepmitra/currentaffairs-backend/internal/repos"
	"github.com/prepmitra/currentaffairs-backend/internal/types"
)

const (
	defaultRecommendationLimit = 10

	examRelevantBaseScore = 0.8
	weakSubjectBoost      = 0.15
	activeCategoryBoost   = 0.05
)

type RecommendationService interface {
	// Generate computes and persists a fresh run of recommendations.
	// Additive: prior runs are never touched. An empty candidate pool is a
	// valid terminal state, not an error.
	Generate(ctx context.Context, userID uuid.UUID, limit int) ([]*types.ArticleRecommendation, error)
	// Feed returns persisted recommendations joined with their articles,
	// score descending then generation time descending. On a cold start it
	// synchronously generates once before re-reading.
	Feed(ctx context.Context, userID uuid.UUID, limit int) ([]*types.ArticleRecommendation, error)
	// MarkViewed flips the viewed flag. A missing id returns ErrNotFound;
	// an id owned by another user returns ErrForbidden, so callers can tell
	// "nothing there" from "not yours". Already-viewed rows are a no-op.
	MarkViewed(ctx context.Context, userID, recommendationID uuid.UUID) (*types.ArticleRecommendation, error)
	// PruneOlderThan removes a user's recommendation rows older than age.
	// Generation is append-only; pruning is an explicit maintenance call.
	PruneOlderThan(ctx context.Context, userID uuid.UUID, age time.Duration) (int64, error)
}

type recommendationService struct {
	db              *gorm.DB
	log             *logger.Logger
	repo            repos.RecommendationRepo
	articleRepo     repos.ArticleRepo
	profileRepo     repos.UserProfileRepo
	bookmarkRepo    repos.BookmarkRepo
	noteRepo        repos.NoteRepo
	interactionRepo repos.InteractionRepo

	guard       redis.GenerationGuard
	guardTTL    time.Duration
	genInFlight singleflight.Group
}

func NewRecommendationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	repo repos.RecommendationRepo,
	articleRepo repos.ArticleRepo,
	profileRepo repos.UserProfileRepo,
	bookmarkRepo repos.BookmarkRepo,
	noteRepo repos.NoteRepo,
	interactionRepo repos.InteractionRepo,
	guard redis.GenerationGuard,
	guardTTL time.Duration,
) RecommendationService {
	if guardTTL <= 0 {
		guardTTL = 10 * time.Minute
	}
	return &recommendationService{
		db:              db,
		log:             baseLog.With("service", "RecommendationService"),
		repo:            repo,
		articleRepo:     articleRepo,
		profileRepo:     profileRepo,
		bookmarkRepo:    bookmarkRepo,
		noteRepo:        noteRepo,
		interactionRepo: interactionRepo,
		guard:           guard,
		guardTTL:        guardTTL,
	}
}

func (s *recommendationService) Generate(ctx context.Context, userID uuid.UUID, limit int) ([]*types.ArticleRecommendation, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id required", pkgerrors.ErrInvalidArgument)
	}
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}

	profile, err := s.profileRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: user %s", pkgerrors.ErrProfileRequired, userID)
	}

	candidates, err := s.articleRepo.ListByExamRelevance(ctx, nil, profile.TargetExam)
	if err != nil {
		return nil, fmt.Errorf("loading candidates: %w", err)
	}
	if len(candidates) == 0 {
		return []*types.ArticleRecommendation{}, nil
	}

	bookmarkedIDs, err := s.bookmarkRepo.ListArticleIDsForUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("loading bookmarks: %w", err)
	}
	annotatedIDs, err := s.noteRepo.ListArticleIDsForUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("loading notes: %w", err)
	}
	catCounts, err := s.interactionRepo.CountsByCategory(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("loading activity: %w", err)
	}
	activeCategories := make(map[string]bool, len(catCounts))
	for _, c := range catCounts {
		activeCategories[c.Category] = true
	}

	eligible := excludeFullyEngaged(candidates, bookmarkedIDs, annotatedIDs)
	scored := scoreCandidates(profile, eligible, activeCategories)
	if len(scored) > limit {
		scored = scored[:limit]
	}
	if len(scored) == 0 {
		return []*types.ArticleRecommendation{}, nil
	}

	now := time.Now().UTC()
	rows := make([]*types.ArticleRecommendation, 0, len(scored))
	for _, c := range scored {
		rows = append(rows, &types.ArticleRecommendation{
			ID:                 uuid.New(),
			UserID:             userID,
			ArticleID:          c.article.ID,
			RecommendationType: c.recType,
			Score:              c.score,
			Reason:             c.reason,
			GeneratedAt:        now,
		})
	}
	created, err := s.repo.Create(ctx, nil, rows)
	if err != nil {
		s.log.Warn("persisting recommendations failed", "error", err)
		return nil, err
	}
	s.log.Info("generated recommendations", "user_id", userID, "count", len(created))
	return created, nil
}

func (s *recommendationService) Feed(ctx context.Context, userID uuid.UUID, limit int) ([]*types.ArticleRecommendation, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id required", pkgerrors.ErrInvalidArgument)
	}
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}

	recs, err := s.repo.ListForUser(ctx, nil, userID, limit)
	if err != nil {
		return nil, err
	}
	if len(recs) > 0 {
		return recs, nil
	}

	// Cold start: generate once, collapsing concurrent requests for the
	// same user, then re-read.
	if err := s.generateOnce(ctx, userID, limit); err != nil {
		return nil, err
	}
	return s.repo.ListForUser(ctx, nil, userID, limit)
}

// generateOnce runs a single generation per user per cooldown window. The
// singleflight group collapses concurrent in-process callers; the redis slot
// (when configured) suppresses repeat generations across processes, so an
// empty candidate pool does not re-trigger a full scan on every feed read.
func (s *recommendationService) generateOnce(ctx context.Context, userID uuid.UUID, limit int) error {
	_, err, _ := s.genInFlight.Do(userID.String(), func() (any, error) {
		key := "reco:gen:" + userID.String()
		if s.guard != nil {
			acquired, gErr := s.guard.TryAcquire(ctx, key, s.guardTTL)
			if gErr != nil {
				s.log.Warn("generation guard unavailable, proceeding", "error", gErr)
			} else if !acquired {
				return nil, nil
			}
		}
		if _, gErr := s.Generate(ctx, userID, limit); gErr != nil {
			// keep the failure visible on the next request
			if s.guard != nil {
				if rErr := s.guard.Release(ctx, key); rErr != nil {
					s.log.Warn("releasing generation slot failed", "error", rErr)
				}
			}
			return nil, gErr
		}
		return nil, nil
	})
	return err
}

func (s *recommendationService) MarkViewed(ctx context.Context, userID, recommendationID uuid.UUID) (*types.ArticleRecommendation, error) {
	if userID == uuid.Nil || recommendationID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id and recommendation id required", pkgerrors.ErrInvalidArgument)
	}
	rec, err := s.repo.GetByID(ctx, nil, recommendationID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: recommendation %s", pkgerrors.ErrNotFound, recommendationID)
	}
	if rec.UserID != userID {
		return nil, fmt.Errorf("%w: recommendation %s", pkgerrors.ErrForbidden, recommendationID)
	}
	if rec.Viewed {
		return rec, nil
	}
	if err := s.repo.SetViewed(ctx, nil, rec.ID); err != nil {
		return nil, err
	}
	rec.Viewed = true
	return rec, nil
}

func (s *recommendationService) PruneOlderThan(ctx context.Context, userID uuid.UUID, age time.Duration) (int64, error) {
	if userID == uuid.Nil {
		return 0, fmt.Errorf("%w: user id required", pkgerrors.ErrInvalidArgument)
	}
	if age <= 0 {
		return 0, fmt.Errorf("%w: age must be positive", pkgerrors.ErrInvalidArgument)
	}
	cutoff := time.Now().UTC().Add(-age)
	return s.repo.DeleteOlderThan(ctx, nil, userID, cutoff)
}

type scoredCandidate struct {
	article *types.Article
	score   float64
	recType string
	reason  string
}

// excludeFullyEngaged drops articles the user has both bookmarked and
// annotated. Either signal alone keeps the article eligible so the feed is
// not starved by light engagement.
func excludeFullyEngaged(articles []*types.Article, bookmarkedIDs, annotatedIDs []uuid.UUID) []*types.Article {
	bookmarked := make(map[uuid.UUID]bool, len(bookmarkedIDs))
	for _, id := range bookmarkedIDs {
		bookmarked[id] = true
	}
	annotated := make(map[uuid.UUID]bool, len(annotatedIDs))
	for _, id := range annotatedIDs {
		annotated[id] = true
	}
	out := make([]*types.Article, 0, len(articles))
	for _, a := range articles {
		if bookmarked[a.ID] && annotated[a.ID] {
			continue
		}
		out = append(out, a)
	}
	return out
}

// scoreCandidates assigns each article a score and sorts the result by
// score descending, published date descending, then article id, so a run is
// reproducible regardless of input order.
func scoreCandidates(profile *types.UserProfile, articles []*types.Article, activeCategories map[string]bool) []scoredCandidate {
	weak := decodeSubjectSet(profile.WeakSubjects)
	out := make([]scoredCandidate, 0, len(articles))
	for _, a := range articles {
		score := examRelevantBaseScore
		recType := types.RecommendationExamRelevant
		reason := fmt.Sprintf("Relevant for %s preparation", profile.TargetExam)
		if weak[strings.ToLower(a.Category)] {
			score += weakSubjectBoost
			recType = types.RecommendationWeakSubject
			reason = fmt.Sprintf("Covers %s, a weak subject for your %s preparation", a.Category, profile.TargetExam)
		}
		if activeCategories[a.Category] {
			score += activeCategoryBoost
		}
		out = append(out, scoredCandidate{article: a, score: score, recType: recType, reason: reason})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].score != out[j].score {
			return out[i].score > out[j].score
		}
		if !out[i].article.PublishedDate.Equal(out[j].article.PublishedDate) {
			return out[i].article.PublishedDate.After(out[j].article.PublishedDate)
		}
		return out[i].article.ID.String() < out[j].article.ID.String()
	})
	return out
}

func decodeSubjectSet(raw []byte) map[string]bool {
	out := map[string]bool{}
	if len(raw) == 0 {
		return out
	}
	var subjects []string
	if err := json.Unmarshal(raw, &subjects); err != nil {
		return out
	}
	for _, s := range subjects {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out[s] = true
		}
	}
	return out
}
