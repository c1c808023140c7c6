package service

import (
	"context"
	"errors"
	"time"

	"go_5_quiz_keep/internal/middleware"
	"go_5_quiz_keep/internal/model"
	"go_5_quiz_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VocabularyService インターフェース
type VocabularyService interface {
	PostVocabulary(ctx context.Context, userID uuid.UUID, req *model.PostVocabularyRequest) (*model.Vocabulary, error)
	GetVocabulary(ctx context.Context, userID, vocabID uuid.UUID) (*model.Vocabulary, error)
	GetVocabularies(ctx context.Context, userID uuid.UUID) ([]*model.Vocabulary, error)
	PatchVocabulary(ctx context.Context, userID, vocabID uuid.UUID, req *model.PatchVocabularyRequest) (*model.Vocabulary, error)
	DeleteVocabulary(ctx context.Context, userID, vocabID uuid.UUID) error
}

type vocabularyService struct {
	db        *gorm.DB
	vocabRepo repository.VocabularyRepository
}

func NewVocabularyService(db *gorm.DB, vocabRepo repository.VocabularyRepository) VocabularyService {
	return &vocabularyService{
		db:        db,
		vocabRepo: vocabRepo,
	}
}

func (s *vocabularyService) PostVocabulary(ctx context.Context, userID uuid.UUID, req *model.PostVocabularyRequest) (*model.Vocabulary, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	// 新規語彙は即時に復習対象となる初期スケジュールで登録する
	vocab := &model.Vocabulary{
		VocabularyID:  uuid.New(),
		UserID:        userID,
		Word:          req.Word,
		Translation:   req.Translation,
		NextReview:    time.Now(),
		IntervalDays:  0,
		EaseFactor:    2.5,
		LearningStage: 0,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if createErr := s.vocabRepo.Create(ctx, tx, vocab); createErr != nil {
			logger.Error("Error creating vocabulary", "error", createErr)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "語彙の登録に失敗しました。", "", createErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Vocabulary created", "vocabulary_id", vocab.VocabularyID)
	return vocab, nil
}

func (s *vocabularyService) GetVocabulary(ctx context.Context, userID, vocabID uuid.UUID) (*model.Vocabulary, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "vocabulary_id", vocabID)

	vocab, err := s.vocabRepo.FindByID(ctx, s.db, userID, vocabID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "語彙が見つかりません。", "", err)
		}
		logger.Error("Failed to find vocabulary", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "語彙の取得に失敗しました。", "", err)
	}
	return vocab, nil
}

func (s *vocabularyService) GetVocabularies(ctx context.Context, userID uuid.UUID) ([]*model.Vocabulary, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	vocabs, err := s.vocabRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		logger.Error("Failed to list vocabularies", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "語彙一覧の取得に失敗しました。", "", err)
	}
	return vocabs, nil
}

func (s *vocabularyService) PatchVocabulary(ctx context.Context, userID, vocabID uuid.UUID, req *model.PatchVocabularyRequest) (*model.Vocabulary, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "vocabulary_id", vocabID)

	updates := make(map[string]interface{})
	if req.Word != nil {
		updates["word"] = *req.Word
	}
	if req.Translation != nil {
		updates["translation"] = *req.Translation
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if updateErr := s.vocabRepo.Update(ctx, tx, userID, vocabID, updates); updateErr != nil {
			if errors.Is(updateErr, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "更新対象の語彙が見つかりません。", "", updateErr)
			}
			logger.Error("Error updating vocabulary", "error", updateErr)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "語彙の更新に失敗しました。", "", updateErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetVocabulary(ctx, userID, vocabID)
}

func (s *vocabularyService) DeleteVocabulary(ctx context.Context, userID, vocabID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "vocabulary_id", vocabID)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if deleteErr := s.vocabRepo.Delete(ctx, tx, userID, vocabID); deleteErr != nil {
			if errors.Is(deleteErr, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "削除対象の語彙が見つかりません。", "", deleteErr)
			}
			logger.Error("Error deleting vocabulary", "error", deleteErr)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "語彙の削除に失敗しました。", "", deleteErr)
		}
		logger.Info("Vocabulary deleted")
		return nil
	})
}
