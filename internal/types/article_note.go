package types

import (
	"time"

	"github.com/google/uuid"
)

// ArticleNote is a free-text annotation a user attaches to an article.
// Many notes per (user, article) are allowed.
type ArticleNote struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ArticleID   uuid.UUID `gorm:"type:uuid;not null;index" json:"article_id"`
	Article     *Article  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ArticleID;references:ID" json:"article,omitempty"`
	NoteText    string    `gorm:"type:text;not null" json:"note_text"`
	Highlighted bool      `gorm:"not null;default:false" json:"highlighted"`
	Position    *string   `json:"position,omitempty"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now();index" json:"updated_at"`
}

func (ArticleNote) TableName() string { return "article_note" }
