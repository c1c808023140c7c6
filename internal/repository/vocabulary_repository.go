//go:generate mockery --name VocabularyRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_5_quiz_keep/internal/middleware"
	"go_5_quiz_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VocabularyRepository は語彙とその復習スケジュール状態の永続化を担当します。
type VocabularyRepository interface {
	Create(ctx context.Context, tx *gorm.DB, vocab *model.Vocabulary) error
	FindByID(ctx context.Context, db *gorm.DB, userID, vocabID uuid.UUID) (*model.Vocabulary, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, userID, vocabID uuid.UUID) (*model.Vocabulary, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Vocabulary, error)
	FindDueByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, now time.Time, limit int) ([]*model.Vocabulary, error)
	Update(ctx context.Context, tx *gorm.DB, userID, vocabID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, userID, vocabID uuid.UUID) error
	ListTranslations(ctx context.Context, db *gorm.DB, userID uuid.UUID, excludeID uuid.UUID) ([]string, error)
}

type gormVocabularyRepository struct{}

func NewGormVocabularyRepository() VocabularyRepository {
	return &gormVocabularyRepository{}
}

func (r *gormVocabularyRepository) Create(ctx context.Context, tx *gorm.DB, vocab *model.Vocabulary) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(vocab)
	if result.Error != nil {
		logger.Error("Error creating vocabulary in DB",
			"error", result.Error,
			"user_id", vocab.UserID.String(),
			"word", vocab.Word,
		)
		return fmt.Errorf("gormVocabularyRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormVocabularyRepository) FindByID(ctx context.Context, db *gorm.DB, userID, vocabID uuid.UUID) (*model.Vocabulary, error) {
	logger := middleware.GetLogger(ctx)
	var vocab model.Vocabulary
	result := db.WithContext(ctx).Where("user_id = ? AND vocabulary_id = ?", userID, vocabID).First(&vocab)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding vocabulary by ID in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"vocabulary_id", vocabID.String(),
		)
		return nil, fmt.Errorf("gormVocabularyRepository.FindByID: %w", result.Error)
	}
	return &vocab, nil
}

// FindByIDForUpdate は行ロック（SELECT ... FOR UPDATE）付きで語彙を取得します。
// 読み取った状態を元に更新するトランザクションの中で使います。
func (r *gormVocabularyRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, userID, vocabID uuid.UUID) (*model.Vocabulary, error) {
	logger := middleware.GetLogger(ctx)
	var vocab model.Vocabulary
	result := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND vocabulary_id = ?", userID, vocabID).
		First(&vocab)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding vocabulary for update in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"vocabulary_id", vocabID.String(),
		)
		return nil, fmt.Errorf("gormVocabularyRepository.FindByIDForUpdate: %w", result.Error)
	}
	return &vocab, nil
}

func (r *gormVocabularyRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Vocabulary, error) {
	logger := middleware.GetLogger(ctx)
	var vocabs []*model.Vocabulary
	result := db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&vocabs)
	if result.Error != nil {
		logger.Error("Error finding vocabularies by user in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormVocabularyRepository.FindByUser: %w", result.Error)
	}
	return vocabs, nil
}

// FindDueByUser は復習期限が来ている語彙を期限の古い順に返します。
func (r *gormVocabularyRepository) FindDueByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, now time.Time, limit int) ([]*model.Vocabulary, error) {
	logger := middleware.GetLogger(ctx)
	var vocabs []*model.Vocabulary
	result := db.WithContext(ctx).
		Where("user_id = ? AND next_review <= ?", userID, now).
		Order("next_review ASC").
		Limit(limit).
		Find(&vocabs)
	if result.Error != nil {
		logger.Error("Error finding due vocabularies in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormVocabularyRepository.FindDueByUser: %w", result.Error)
	}
	return vocabs, nil
}

func (r *gormVocabularyRepository) Update(ctx context.Context, tx *gorm.DB, userID, vocabID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Vocabulary{}).
		Where("user_id = ? AND vocabulary_id = ?", userID, vocabID).
		Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating vocabulary in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"vocabulary_id", vocabID.String(),
		)
		return fmt.Errorf("gormVocabularyRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormVocabularyRepository) Delete(ctx context.Context, tx *gorm.DB, userID, vocabID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Vocabulary{}, vocabID)
	if result.Error != nil {
		logger.Error("Error deleting vocabulary in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"vocabulary_id", vocabID.String(),
		)
		return fmt.Errorf("gormVocabularyRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ListTranslations はダミー選択肢の候補プールとして訳の一覧を返します。
// excludeID が uuid.Nil でなければその語彙を除外します。
func (r *gormVocabularyRepository) ListTranslations(ctx context.Context, db *gorm.DB, userID uuid.UUID, excludeID uuid.UUID) ([]string, error) {
	logger := middleware.GetLogger(ctx)
	var translations []string
	query := db.WithContext(ctx).Model(&model.Vocabulary{}).Where("user_id = ?", userID)
	if excludeID != uuid.Nil {
		query = query.Where("vocabulary_id != ?", excludeID)
	}
	result := query.Pluck("translation", &translations)
	if result.Error != nil {
		logger.Error("Error listing translations in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormVocabularyRepository.ListTranslations: %w", result.Error)
	}
	return translations, nil
}
