package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Importance levels, ordered low < medium < high.
const (
	ImportanceLow    = "low"
	ImportanceMedium = "medium"
	ImportanceHigh   = "high"
)

// Article is a single piece of ingested current-affairs material. Rows are
// immutable after publish: the engine only ever reads them.
type Article struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title         string         `gorm:"not null" json:"title"`
	Content       string         `gorm:"type:text;not null" json:"content"`
	Summary       string         `gorm:"type:text" json:"summary"`
	Category      string         `gorm:"not null;index" json:"category"`
	Source        string         `json:"source"`
	PublishedDate time.Time      `gorm:"not null;index" json:"published_date"`
	Tags          datatypes.JSON `gorm:"type:jsonb" json:"tags"`
	ImageURL      string         `json:"image_url,omitempty"`
	Importance    string         `gorm:"not null;default:medium" json:"importance"`
	ExamRelevance datatypes.JSON `gorm:"type:jsonb;column:exam_relevance" json:"exam_relevance"`
	ReadTime      int            `gorm:"column:read_time" json:"read_time"`
	AIKeyPoints   datatypes.JSON `gorm:"type:jsonb;column:ai_key_points" json:"ai_key_points,omitempty"`
	AISummary     string         `gorm:"type:text;column:ai_summary" json:"ai_summary,omitempty"`
	RelatedTopics datatypes.JSON `gorm:"type:jsonb;column:related_topics" json:"related_topics,omitempty"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Article) TableName() string { return "article" }

// ArticleWithUserData decorates an article with the caller's own engagement
// state for feed rendering.
type ArticleWithUserData struct {
	Article
	IsBookmarked     bool  `json:"is_bookmarked"`
	HasNotes         bool  `json:"has_notes"`
	UserInteractions int64 `json:"user_interactions"`
}
