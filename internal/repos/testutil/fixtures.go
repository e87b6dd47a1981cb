package testutil

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/prepmitra/currentaffairs-backend/internal/types"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedProfile(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, targetExam string, weakSubjects []string) *types.UserProfile {
	tb.Helper()
	p := &types.UserProfile{
		ID:             uuid.New(),
		UserID:         userID,
		TargetExam:     targetExam,
		StrongSubjects: MustJSON(tb, []string{}),
		WeakSubjects:   MustJSON(tb, weakSubjects),
		Preferences:    datatypes.JSON([]byte("{}")),
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed profile: %v", err)
	}
	return p
}

func SeedArticle(tb testing.TB, ctx context.Context, tx *gorm.DB, title, category string, examRelevance []string, published time.Time) *types.Article {
	tb.Helper()
	a := &types.Article{
		ID:            uuid.New(),
		Title:         title,
		Content:       "body",
		Summary:       "summary",
		Category:      category,
		Source:        "test",
		PublishedDate: published,
		Tags:          MustJSON(tb, []string{}),
		Importance:    types.ImportanceMedium,
		ExamRelevance: MustJSON(tb, examRelevance),
		ReadTime:      5,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed article: %v", err)
	}
	return a
}

func SeedBookmark(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, articleID uuid.UUID) *types.ArticleBookmark {
	tb.Helper()
	b := &types.ArticleBookmark{
		ID:           uuid.New(),
		UserID:       userID,
		ArticleID:    articleID,
		BookmarkedAt: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(b).Error; err != nil {
		tb.Fatalf("seed bookmark: %v", err)
	}
	return b
}

func SeedNote(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, articleID uuid.UUID, text string) *types.ArticleNote {
	tb.Helper()
	n := &types.ArticleNote{
		ID:        uuid.New(),
		UserID:    userID,
		ArticleID: articleID,
		NoteText:  text,
	}
	if err := tx.WithContext(ctx).Create(n).Error; err != nil {
		tb.Fatalf("seed note: %v", err)
	}
	return n
}

func MustJSON(tb testing.TB, v any) datatypes.JSON {
	tb.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		tb.Fatalf("marshal fixture json: %v", err)
	}
	return datatypes.JSON(b)
}

func PtrUUID(id uuid.UUID) *uuid.UUID { return &id }
