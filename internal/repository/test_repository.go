//go:generate mockery --name TestRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_5_quiz_keep/internal/middleware"
	"go_5_quiz_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TestRepository はブックとテストの永続化を担当します。
// 書き込み系は tx、読み取り系は db を受け取ります（サービス層がトランザクション境界を握る）。
type TestRepository interface {
	FirstOrCreateBook(ctx context.Context, tx *gorm.DB, title string) (*model.Book, error)
	ListBooks(ctx context.Context, db *gorm.DB) ([]*model.Book, error)
	Create(ctx context.Context, tx *gorm.DB, test *model.Test) error
	FindByID(ctx context.Context, db *gorm.DB, testID uuid.UUID) (*model.Test, error)
	FindByBook(ctx context.Context, db *gorm.DB, bookID uuid.UUID) ([]*model.Test, error)
	SearchByName(ctx context.Context, db *gorm.DB, query string, limit int) ([]*model.Test, error)
	Update(ctx context.Context, tx *gorm.DB, testID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, testID uuid.UUID) error
}

type gormTestRepository struct{}

func NewGormTestRepository() TestRepository {
	return &gormTestRepository{}
}

// FirstOrCreateBook はタイトルが一致するブックを返し、なければ作成します。
func (r *gormTestRepository) FirstOrCreateBook(ctx context.Context, tx *gorm.DB, title string) (*model.Book, error) {
	logger := middleware.GetLogger(ctx)
	var book model.Book
	result := tx.WithContext(ctx).
		Where("title = ?", title).
		Attrs(model.Book{BookID: uuid.New(), Title: title}).
		FirstOrCreate(&book)
	if result.Error != nil {
		logger.Error("Error finding or creating book in DB",
			"error", result.Error,
			"title", title,
		)
		return nil, fmt.Errorf("gormTestRepository.FirstOrCreateBook: %w", result.Error)
	}
	return &book, nil
}

func (r *gormTestRepository) ListBooks(ctx context.Context, db *gorm.DB) ([]*model.Book, error) {
	logger := middleware.GetLogger(ctx)
	var books []*model.Book
	result := db.WithContext(ctx).Order("title ASC").Find(&books)
	if result.Error != nil {
		logger.Error("Error listing books in DB", "error", result.Error)
		return nil, fmt.Errorf("gormTestRepository.ListBooks: %w", result.Error)
	}
	return books, nil
}

func (r *gormTestRepository) Create(ctx context.Context, tx *gorm.DB, test *model.Test) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(test)
	if result.Error != nil {
		logger.Error("Error creating test in DB",
			"error", result.Error,
			"book_id", test.BookID.String(),
			"name", test.Name,
		)
		return fmt.Errorf("gormTestRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormTestRepository) FindByID(ctx context.Context, db *gorm.DB, testID uuid.UUID) (*model.Test, error) {
	logger := middleware.GetLogger(ctx)
	var test model.Test
	result := db.WithContext(ctx).Where("test_id = ?", testID).First(&test)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding test by ID in DB",
			"error", result.Error,
			"test_id", testID.String(),
		)
		return nil, fmt.Errorf("gormTestRepository.FindByID: %w", result.Error)
	}
	return &test, nil
}

func (r *gormTestRepository) FindByBook(ctx context.Context, db *gorm.DB, bookID uuid.UUID) ([]*model.Test, error) {
	logger := middleware.GetLogger(ctx)
	var tests []*model.Test
	result := db.WithContext(ctx).Where("book_id = ?", bookID).Order("created_at ASC").Find(&tests)
	if result.Error != nil {
		logger.Error("Error finding tests by book in DB",
			"error", result.Error,
			"book_id", bookID.String(),
		)
		return nil, fmt.Errorf("gormTestRepository.FindByBook: %w", result.Error)
	}
	return tests, nil
}

// SearchByName はテスト名の部分一致検索です（オートコンプリート用）。
func (r *gormTestRepository) SearchByName(ctx context.Context, db *gorm.DB, query string, limit int) ([]*model.Test, error) {
	logger := middleware.GetLogger(ctx)
	var tests []*model.Test
	result := db.WithContext(ctx).
		Where("name LIKE ?", "%"+query+"%").
		Order("name ASC").
		Limit(limit).
		Find(&tests)
	if result.Error != nil {
		logger.Error("Error searching tests by name in DB",
			"error", result.Error,
			"query", query,
		)
		return nil, fmt.Errorf("gormTestRepository.SearchByName: %w", result.Error)
	}
	return tests, nil
}

func (r *gormTestRepository) Update(ctx context.Context, tx *gorm.DB, testID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Test{}).Where("test_id = ?", testID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating test in DB",
			"error", result.Error,
			"test_id", testID.String(),
		)
		return fmt.Errorf("gormTestRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormTestRepository) Delete(ctx context.Context, tx *gorm.DB, testID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Delete(&model.Test{}, "test_id = ?", testID)
	if result.Error != nil {
		logger.Error("Error deleting test in DB",
			"error", result.Error,
			"test_id", testID.String(),
		)
		return fmt.Errorf("gormTestRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
