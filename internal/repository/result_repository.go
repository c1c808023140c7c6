//go:generate mockery --name ResultRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"go_5_quiz_keep/internal/middleware"
	"go_5_quiz_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResultRepository は採点結果の記録を担当します。結果は追記専用で、
// 更新・削除のAPIは提供しません。
type ResultRepository interface {
	CreateTestResult(ctx context.Context, tx *gorm.DB, result *model.TestResult) error
	CreateLearnResult(ctx context.Context, tx *gorm.DB, result *model.LearnTestResult) error
	ListRecentByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, limit int) ([]*model.TestResult, error)
}

type gormResultRepository struct{}

func NewGormResultRepository() ResultRepository {
	return &gormResultRepository{}
}

func (r *gormResultRepository) CreateTestResult(ctx context.Context, tx *gorm.DB, testResult *model.TestResult) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(testResult)
	if result.Error != nil {
		logger.Error("Error creating test result in DB",
			"error", result.Error,
			"user_id", testResult.UserID.String(),
			"test_id", testResult.TestID.String(),
		)
		return fmt.Errorf("gormResultRepository.CreateTestResult: %w", result.Error)
	}
	return nil
}

func (r *gormResultRepository) CreateLearnResult(ctx context.Context, tx *gorm.DB, learnResult *model.LearnTestResult) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(learnResult)
	if result.Error != nil {
		logger.Error("Error creating learn result in DB",
			"error", result.Error,
			"user_id", learnResult.UserID.String(),
			"test_id", learnResult.TestID.String(),
		)
		return fmt.Errorf("gormResultRepository.CreateLearnResult: %w", result.Error)
	}
	return nil
}

func (r *gormResultRepository) ListRecentByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, limit int) ([]*model.TestResult, error) {
	logger := middleware.GetLogger(ctx)
	var results []*model.TestResult
	result := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results)
	if result.Error != nil {
		logger.Error("Error listing test results in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormResultRepository.ListRecentByUser: %w", result.Error)
	}
	return results, nil
}
