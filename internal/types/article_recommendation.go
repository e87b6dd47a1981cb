package types

import (
	"time"

	"github.com/google/uuid"
)

// Recommendation types written by the generator.
const (
	RecommendationExamRelevant = "exam_relevant"
	RecommendationWeakSubject  = "weak_subject"
)

// ArticleRecommendation is written only by the generator. Viewed flips
// false->true once and never reverts. Runs are additive: several rows may
// reference the same article for the same user across generation runs.
type ArticleRecommendation struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User               *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ArticleID          uuid.UUID `gorm:"type:uuid;not null;index" json:"article_id"`
	Article            *Article  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ArticleID;references:ID" json:"article,omitempty"`
	RecommendationType string    `gorm:"not null" json:"recommendation_type"`
	Score              float64   `gorm:"not null;index" json:"score"`
	Reason             string    `gorm:"type:text" json:"reason"`
	GeneratedAt        time.Time `gorm:"not null;default:now();index" json:"generated_at"`
	Viewed             bool      `gorm:"not null;default:false" json:"viewed"`
}

func (ArticleRecommendation) TableName() string { return "article_recommendation" }
