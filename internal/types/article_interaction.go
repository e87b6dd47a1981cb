package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Closed set of interaction types. Duplicate events are signal, not state.
const (
	InteractionView           = "view"
	InteractionBookmarkAdd    = "bookmark_add"
	InteractionBookmarkRemove = "bookmark_remove"
	InteractionNoteCreated    = "note_created"
	InteractionQuizGenerated  = "quiz_generated"
)

var validInteractionTypes = map[string]struct{}{
	InteractionView:           {},
	InteractionBookmarkAdd:    {},
	InteractionBookmarkRemove: {},
	InteractionNoteCreated:    {},
	InteractionQuizGenerated:  {},
}

func IsValidInteractionType(t string) bool {
	_, ok := validInteractionTypes[t]
	return ok
}

// ArticleInteraction is an append-only log row. No code path in this engine
// updates or deletes one once written.
type ArticleInteraction struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ArticleID uuid.UUID      `gorm:"type:uuid;not null;index" json:"article_id"`
	Article   *Article       `gorm:"constraint:OnDelete:CASCADE;foreignKey:ArticleID;references:ID" json:"article,omitempty"`
	Type      string         `gorm:"column:type;not null;index" json:"type"`
	Metadata  datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
	CreatedAt time.Time      `gorm:"not null;default:now();index" json:"created_at"`
}

func (ArticleInteraction) TableName() string { return "article_interaction" }
