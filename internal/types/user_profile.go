package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserProfile carries the exam and subject signals the recommendation
// generator reads. Owned by the user; never mutated by this engine.
type UserProfile struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User           *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	TargetExam     string         `gorm:"not null" json:"target_exam"`
	StrongSubjects datatypes.JSON `gorm:"type:jsonb;column:strong_subjects" json:"strong_subjects"`
	WeakSubjects   datatypes.JSON `gorm:"type:jsonb;column:weak_subjects" json:"weak_subjects"`
	Preferences    datatypes.JSON `gorm:"type:jsonb" json:"preferences"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserProfile) TableName() string { return "user_profile" }
