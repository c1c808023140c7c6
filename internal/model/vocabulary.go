// internal/model/vocabulary.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxLearningStage は学習ステージの上限です。ステージがこの値に達した単語は
// 「復習フェーズ」に入り、以後は IntervalDays と EaseFactor で間隔が決まります。
const MaxLearningStage = 8

// Vocabulary は学習者1人の単語1件と、その復習スケジュール状態を表します。
// スケジュール列 (NextReview / IntervalDays / EaseFactor / LearningStage) を
// 書き換えるのは ReviewService 経由の srs.Scheduler だけです。
type Vocabulary struct {
	VocabularyID  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"vocabulary_id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"-"`
	Word          string         `gorm:"not null" json:"word"`
	Translation   string         `gorm:"not null" json:"translation"`
	NextReview    time.Time      `gorm:"not null;index" json:"next_review"`
	IntervalDays  float64        `gorm:"not null;default:0" json:"interval_days"`
	EaseFactor    float64        `gorm:"not null;default:2.5" json:"ease_factor"`
	LearningStage int            `gorm:"not null;default:0" json:"learning_stage"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用
}

func (Vocabulary) TableName() string {
	return "vocabularies"
}

// 単語登録リクエストDTO
type PostVocabularyRequest struct {
	Word        string `json:"word" validate:"required,min=1,max=150"`
	Translation string `json:"translation" validate:"required,min=1,max=150"`
}

// 単語更新（部分）リクエストDTO
type PatchVocabularyRequest struct {
	Word        *string `json:"word,omitempty" validate:"omitempty,min=1,max=150"`
	Translation *string `json:"translation,omitempty" validate:"omitempty,min=1,max=150"`
}
