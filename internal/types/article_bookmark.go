package types

import (
	"time"

	"github.com/google/uuid"
)

// ArticleBookmark existence is the sole source of truth for "is bookmarked".
// The composite unique index keeps concurrent adds from producing two rows.
type ArticleBookmark struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookmark_user_article" json:"user_id"`
	User         *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ArticleID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookmark_user_article" json:"article_id"`
	Article      *Article  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ArticleID;references:ID" json:"article,omitempty"`
	BookmarkedAt time.Time `gorm:"not null;default:now();index" json:"bookmarked_at"`
}

func (ArticleBookmark) TableName() string { return "article_bookmark" }
