// internal/service/review_service_test.go
package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"go_5_quiz_keep/internal/config"
	"go_5_quiz_keep/internal/model"
	"go_5_quiz_keep/internal/repository/mocks"
	"go_5_quiz_keep/internal/session"
	"go_5_quiz_keep/internal/srs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テストヘルパー関数 (インメモリDBセットアップ) ---
func setupTestDBReview(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // テスト中はログを抑制
	})
	if err != nil {
		t.Fatalf("failed to connect database for review service testing: %v", err)
	}
	if err := db.AutoMigrate(&model.Vocabulary{}); err != nil {
		t.Fatalf("failed to migrate database for review service testing: %v", err)
	}
	return db
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.ReviewLimit = 10
	cfg.App.DistractorCount = 3
	return cfg
}

func newReviewServiceForTest(t *testing.T, vocabRepo *mocks.VocabularyRepository, store session.Store) ReviewService {
	t.Helper()
	db := setupTestDBReview(t)
	return NewReviewService(db, vocabRepo, store, srs.NewScheduler(), newTestConfig(), rand.New(rand.NewSource(1)))
}

// --- Test StartSession ---
func Test_reviewService_StartSession(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	dueVocabs := []*model.Vocabulary{
		{VocabularyID: uuid.New(), UserID: userID, Word: "apple", Translation: "りんご"},
		{VocabularyID: uuid.New(), UserID: userID, Word: "grape", Translation: "ぶどう"},
	}

	tests := []struct {
		name         string
		setupMock    func(m *mocks.VocabularyRepository)
		wantErr      error
		wantTotal    int
		wantPractice bool
	}{
		{
			name: "正常系: 期限切れ語彙があればそれを対象にする",
			setupMock: func(m *mocks.VocabularyRepository) {
				m.On("FindDueByUser", ctx, mock.Anything, userID, mock.AnythingOfType("time.Time"), 10).
					Return(dueVocabs, nil).Once()
			},
			wantErr:      nil,
			wantTotal:    2,
			wantPractice: false,
		},
		{
			name: "正常系: 期限切れがなければ全語彙で練習モード",
			setupMock: func(m *mocks.VocabularyRepository) {
				m.On("FindDueByUser", ctx, mock.Anything, userID, mock.AnythingOfType("time.Time"), 10).
					Return([]*model.Vocabulary{}, nil).Once()
				m.On("FindByUser", ctx, mock.Anything, userID).
					Return(dueVocabs, nil).Once()
			},
			wantErr:      nil,
			wantTotal:    2,
			wantPractice: true,
		},
		{
			name: "異常系: 語彙が1件もなければ開始できない",
			setupMock: func(m *mocks.VocabularyRepository) {
				m.On("FindDueByUser", ctx, mock.Anything, userID, mock.AnythingOfType("time.Time"), 10).
					Return([]*model.Vocabulary{}, nil).Once()
				m.On("FindByUser", ctx, mock.Anything, userID).
					Return([]*model.Vocabulary{}, nil).Once()
			},
			wantErr: model.ErrEmptyVocabulary,
		},
		{
			name: "異常系: リポジトリでDBエラー",
			setupMock: func(m *mocks.VocabularyRepository) {
				m.On("FindDueByUser", ctx, mock.Anything, userID, mock.AnythingOfType("time.Time"), 10).
					Return(nil, errors.New("db error")).Once()
			},
			wantErr: model.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockVocabRepo := new(mocks.VocabularyRepository)
			tt.setupMock(mockVocabRepo)
			store := session.NewMemoryStore()
			svc := newReviewServiceForTest(t, mockVocabRepo, store)

			resp, err := svc.StartSession(ctx, userID)

			if tt.wantErr != nil {
				require.Error(t, err)
				if !errors.Is(err, tt.wantErr) {
					// AppErrorでラップされていないDBエラーはコード比較で確認
					var appErr *model.AppError
					require.True(t, errors.As(err, &appErr))
					assert.Equal(t, "INTERNAL_SERVER_ERROR", appErr.Detail.Code)
				}
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantTotal, resp.Total)
				assert.Equal(t, tt.wantPractice, resp.Practice)

				// セッション状態が保存されていること
				_, ok, getErr := store.Get(ctx, "review_"+userID.String())
				require.NoError(t, getErr)
				assert.True(t, ok)
			}
			mockVocabRepo.AssertExpectations(t)
		})
	}
}

// --- Test NextQuestion ---
func Test_reviewService_NextQuestion(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	vocabID := uuid.New()
	vocab := &model.Vocabulary{
		VocabularyID: vocabID,
		UserID:       userID,
		Word:         "apple",
		Translation:  "りんご",
	}

	t.Run("正常系: 出題に正解とダミーが混ざった選択肢が付く", func(t *testing.T) {
		mockVocabRepo := new(mocks.VocabularyRepository)
		mockVocabRepo.On("FindByID", ctx, mock.Anything, userID, vocabID).
			Return(vocab, nil).Once()
		mockVocabRepo.On("ListTranslations", ctx, mock.Anything, userID, vocabID).
			Return([]string{"みかん", "ぶどう", "もも", "なし"}, nil).Once()

		store := session.NewMemoryStore()
		require.NoError(t, store.Put(ctx, "review_"+userID.String(),
			`{"item_ids":["`+vocabID.String()+`"],"index":0,"practice":false}`))
		svc := newReviewServiceForTest(t, mockVocabRepo, store)

		question, done, err := svc.NextQuestion(ctx, userID)
		require.NoError(t, err)
		assert.False(t, done)
		assert.Equal(t, vocabID, question.VocabularyID)
		assert.Equal(t, "apple", question.Word)
		assert.Equal(t, 1, question.Position)
		assert.Equal(t, 1, question.Total)
		assert.Len(t, question.Choices, 4)
		assert.Contains(t, question.Choices, "りんご")
		mockVocabRepo.AssertExpectations(t)
	})

	t.Run("正常系: 全問消化済みなら完了を返して状態を破棄", func(t *testing.T) {
		mockVocabRepo := new(mocks.VocabularyRepository)
		store := session.NewMemoryStore()
		require.NoError(t, store.Put(ctx, "review_"+userID.String(),
			`{"item_ids":["`+vocabID.String()+`"],"index":1,"practice":false}`))
		svc := newReviewServiceForTest(t, mockVocabRepo, store)

		question, done, err := svc.NextQuestion(ctx, userID)
		require.NoError(t, err)
		assert.True(t, done)
		assert.Nil(t, question)

		_, ok, _ := store.Get(ctx, "review_"+userID.String())
		assert.False(t, ok)
	})

	t.Run("正常系: 削除済みの語彙は読み飛ばす", func(t *testing.T) {
		deletedID := uuid.New()
		mockVocabRepo := new(mocks.VocabularyRepository)
		mockVocabRepo.On("FindByID", ctx, mock.Anything, userID, deletedID).
			Return(nil, model.ErrNotFound).Once()
		mockVocabRepo.On("FindByID", ctx, mock.Anything, userID, vocabID).
			Return(vocab, nil).Once()
		mockVocabRepo.On("ListTranslations", ctx, mock.Anything, userID, vocabID).
			Return([]string{"みかん"}, nil).Once()

		store := session.NewMemoryStore()
		require.NoError(t, store.Put(ctx, "review_"+userID.String(),
			`{"item_ids":["`+deletedID.String()+`","`+vocabID.String()+`"],"index":0,"practice":false}`))
		svc := newReviewServiceForTest(t, mockVocabRepo, store)

		question, done, err := svc.NextQuestion(ctx, userID)
		require.NoError(t, err)
		assert.False(t, done)
		assert.Equal(t, vocabID, question.VocabularyID)
		assert.Equal(t, 2, question.Position)
		mockVocabRepo.AssertExpectations(t)
	})

	t.Run("異常系: セッション未開始", func(t *testing.T) {
		mockVocabRepo := new(mocks.VocabularyRepository)
		svc := newReviewServiceForTest(t, mockVocabRepo, session.NewMemoryStore())

		_, _, err := svc.NextQuestion(ctx, userID)
		assert.ErrorIs(t, err, model.ErrSessionExpired)
	})

	t.Run("異常系: ダミー選択肢を作る語彙が足りない", func(t *testing.T) {
		mockVocabRepo := new(mocks.VocabularyRepository)
		mockVocabRepo.On("FindByID", ctx, mock.Anything, userID, vocabID).
			Return(vocab, nil).Once()
		mockVocabRepo.On("ListTranslations", ctx, mock.Anything, userID, vocabID).
			Return([]string{}, nil).Once()

		store := session.NewMemoryStore()
		require.NoError(t, store.Put(ctx, "review_"+userID.String(),
			`{"item_ids":["`+vocabID.String()+`"],"index":0,"practice":false}`))
		svc := newReviewServiceForTest(t, mockVocabRepo, store)

		_, _, err := svc.NextQuestion(ctx, userID)
		assert.ErrorIs(t, err, model.ErrInsufficientData)
	})
}

// --- Test SubmitAnswer ---
func Test_reviewService_SubmitAnswer(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	vocabID := uuid.New()
	vocab := &model.Vocabulary{
		VocabularyID:  vocabID,
		UserID:        userID,
		Word:          "apple",
		Translation:   "Ringo",
		EaseFactor:    2.5,
		LearningStage: 0,
	}

	stateJSON := func(index int, practice bool) string {
		practiceStr := "false"
		if practice {
			practiceStr = "true"
		}
		indexStr := "0"
		if index == 1 {
			indexStr = "1"
		}
		return `{"item_ids":["` + vocabID.String() + `"],"index":` + indexStr + `,"practice":` + practiceStr + `}`
	}

	t.Run("正常系: 正解でスケジュールが更新され完了になる", func(t *testing.T) {
		mockVocabRepo := new(mocks.VocabularyRepository)
		mockVocabRepo.On("FindByIDForUpdate", ctx, mock.Anything, userID, vocabID).
			Return(vocab, nil).Once()
		mockVocabRepo.On("Update", ctx, mock.Anything, userID, vocabID,
			mock.MatchedBy(func(updates map[string]interface{}) bool {
				stage, ok := updates["learning_stage"].(int)
				return ok && stage == 1
			})).Return(nil).Once()

		store := session.NewMemoryStore()
		require.NoError(t, store.Put(ctx, "review_"+userID.String(), stateJSON(0, false)))
		svc := newReviewServiceForTest(t, mockVocabRepo, store)

		// 大文字小文字・アクセントは無視して比較される
		resp, err := svc.SubmitAnswer(ctx, userID, &model.SubmitAnswerRequest{Answer: "ringo"})
		require.NoError(t, err)
		assert.True(t, resp.Correct)
		assert.Equal(t, "Ringo", resp.CorrectAnswer)
		assert.True(t, resp.Completed)

		// 完了したのでセッション状態は破棄されている
		_, ok, _ := store.Get(ctx, "review_"+userID.String())
		assert.False(t, ok)
		mockVocabRepo.AssertExpectations(t)
	})

	t.Run("正常系: 不正解でもリセットされた上で次へ進む", func(t *testing.T) {
		mockVocabRepo := new(mocks.VocabularyRepository)
		mockVocabRepo.On("FindByIDForUpdate", ctx, mock.Anything, userID, vocabID).
			Return(vocab, nil).Once()
		mockVocabRepo.On("Update", ctx, mock.Anything, userID, vocabID,
			mock.MatchedBy(func(updates map[string]interface{}) bool {
				stage, ok := updates["learning_stage"].(int)
				return ok && stage == 0
			})).Return(nil).Once()

		store := session.NewMemoryStore()
		require.NoError(t, store.Put(ctx, "review_"+userID.String(), stateJSON(0, false)))
		svc := newReviewServiceForTest(t, mockVocabRepo, store)

		resp, err := svc.SubmitAnswer(ctx, userID, &model.SubmitAnswerRequest{Answer: "wrong"})
		require.NoError(t, err)
		assert.False(t, resp.Correct)
		assert.True(t, resp.Completed)
		mockVocabRepo.AssertExpectations(t)
	})

	t.Run("正常系: 練習モードではスケジュールを更新しない", func(t *testing.T) {
		mockVocabRepo := new(mocks.VocabularyRepository)
		mockVocabRepo.On("FindByID", ctx, mock.Anything, userID, vocabID).
			Return(vocab, nil).Once()
		// Update が呼ばれないことは AssertExpectations で確認される

		store := session.NewMemoryStore()
		require.NoError(t, store.Put(ctx, "review_"+userID.String(), stateJSON(0, true)))
		svc := newReviewServiceForTest(t, mockVocabRepo, store)

		resp, err := svc.SubmitAnswer(ctx, userID, &model.SubmitAnswerRequest{Answer: "ringo"})
		require.NoError(t, err)
		assert.True(t, resp.Correct)
		assert.True(t, resp.Practice)
		mockVocabRepo.AssertExpectations(t)
		mockVocabRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("正常系: 同時に届いた二重送信でもスケジュール適用が失われない", func(t *testing.T) {
		// 同じ語彙が2問並んだセッション。直列化されていないと両方の解答が
		// 同じ状態を読んでしまい、片方のスケジュール適用が消える
		var mu sync.Mutex
		current := *vocab

		mockVocabRepo := new(mocks.VocabularyRepository)
		mockVocabRepo.On("FindByIDForUpdate", ctx, mock.Anything, userID, vocabID).
			Return(func(ctx context.Context, tx *gorm.DB, u uuid.UUID, v uuid.UUID) *model.Vocabulary {
				mu.Lock()
				defer mu.Unlock()
				snapshot := current
				return &snapshot
			}, nil).Twice()
		mockVocabRepo.On("Update", ctx, mock.Anything, userID, vocabID, mock.Anything).
			Return(func(ctx context.Context, tx *gorm.DB, u uuid.UUID, v uuid.UUID, updates map[string]interface{}) error {
				mu.Lock()
				defer mu.Unlock()
				current.LearningStage = updates["learning_stage"].(int)
				current.IntervalDays = updates["interval_days"].(float64)
				current.EaseFactor = updates["ease_factor"].(float64)
				return nil
			}).Twice()

		store := session.NewMemoryStore()
		require.NoError(t, store.Put(ctx, "review_"+userID.String(),
			`{"item_ids":["`+vocabID.String()+`","`+vocabID.String()+`"],"index":0,"practice":false}`))
		svc := newReviewServiceForTest(t, mockVocabRepo, store)

		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, submitErr := svc.SubmitAnswer(ctx, userID, &model.SubmitAnswerRequest{Answer: "ringo"})
				assert.NoError(t, submitErr)
			}()
		}
		wg.Wait()

		// 2回分の正解がどちらも反映され、段階が2つ進んでいること
		assert.Equal(t, 2, current.LearningStage)

		// 2問とも消化したのでセッション状態は破棄されている
		_, ok, _ := store.Get(ctx, "review_"+userID.String())
		assert.False(t, ok)
		mockVocabRepo.AssertExpectations(t)
	})

	t.Run("異常系: セッション未開始", func(t *testing.T) {
		mockVocabRepo := new(mocks.VocabularyRepository)
		svc := newReviewServiceForTest(t, mockVocabRepo, session.NewMemoryStore())

		_, err := svc.SubmitAnswer(ctx, userID, &model.SubmitAnswerRequest{Answer: "x"})
		assert.ErrorIs(t, err, model.ErrSessionExpired)
	})
}
