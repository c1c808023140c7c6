package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go_5_quiz_keep/internal/config"
	"go_5_quiz_keep/internal/middleware"
	"go_5_quiz_keep/internal/model"
	"go_5_quiz_keep/internal/repository"
	"go_5_quiz_keep/internal/session"
	"go_5_quiz_keep/internal/srs"
	"go_5_quiz_keep/internal/textnorm"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewService は復習ウォークスルー（開始→出題→解答の繰り返し）を提供します。
type ReviewService interface {
	StartSession(ctx context.Context, userID uuid.UUID) (*model.ReviewSessionResponse, error)
	// NextQuestion は現在の出題を返します。2番目の返り値が true のときは
	// ウォークスルー完了で、出題はありません。
	NextQuestion(ctx context.Context, userID uuid.UUID) (*model.ReviewQuestionResponse, bool, error)
	SubmitAnswer(ctx context.Context, userID uuid.UUID, req *model.SubmitAnswerRequest) (*model.SubmitAnswerResponse, error)
}

type reviewService struct {
	db        *gorm.DB
	vocabRepo repository.VocabularyRepository
	store     session.Store
	scheduler *srs.Scheduler
	cfg       *config.Config

	mu  sync.Mutex
	rng *rand.Rand

	// userLocks は userID ごとの解答処理ロック (uuid.UUID -> *sync.Mutex)
	userLocks sync.Map
}

func NewReviewService(db *gorm.DB, vocabRepo repository.VocabularyRepository, store session.Store, scheduler *srs.Scheduler, cfg *config.Config, rng *rand.Rand) ReviewService {
	return &reviewService{
		db:        db,
		vocabRepo: vocabRepo,
		store:     store,
		scheduler: scheduler,
		cfg:       cfg,
		rng:       rng,
	}
}

func reviewKey(userID uuid.UUID) string {
	return fmt.Sprintf("review_%s", userID)
}

// StartSession は復習セッションを開始します。期限が来ている語彙があれば
// それを対象に、なければ全語彙から練習モード（スケジュール更新なし）で
// セッションを組みます。語彙が1件もなければ model.ErrEmptyVocabulary です。
func (s *reviewService) StartSession(ctx context.Context, userID uuid.UUID) (*model.ReviewSessionResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	due, err := s.vocabRepo.FindDueByUser(ctx, s.db, userID, time.Now(), s.cfg.App.ReviewLimit)
	if err != nil {
		logger.Error("Failed to find due vocabularies", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習対象の取得に失敗しました。", "", err)
	}

	practice := false
	items := due
	if len(items) == 0 {
		// 期限切れがない場合は練習モード
		all, allErr := s.vocabRepo.FindByUser(ctx, s.db, userID)
		if allErr != nil {
			logger.Error("Failed to find vocabularies for practice", "error", allErr)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "語彙の取得に失敗しました。", "", allErr)
		}
		if len(all) == 0 {
			return nil, model.NewAppError("EMPTY_VOCABULARY", "復習できる語彙がありません。先に語彙を登録してください。", "", model.ErrEmptyVocabulary)
		}
		practice = true
		items = all
		if len(items) > s.cfg.App.ReviewLimit {
			items = items[:s.cfg.App.ReviewLimit]
		}
	}

	itemIDs := make([]uuid.UUID, len(items))
	for i, v := range items {
		itemIDs[i] = v.VocabularyID
	}
	// 出題順はセッションごとにランダム
	s.mu.Lock()
	s.rng.Shuffle(len(itemIDs), func(i, j int) {
		itemIDs[i], itemIDs[j] = itemIDs[j], itemIDs[i]
	})
	s.mu.Unlock()

	state := model.ReviewSessionState{ItemIDs: itemIDs, Index: 0, Practice: practice}
	if err := s.saveState(ctx, userID, &state); err != nil {
		logger.Error("Failed to save review session state", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習セッションの開始に失敗しました。", "", err)
	}

	logger.Info("Review session started", "total", len(itemIDs), "practice", practice)
	return &model.ReviewSessionResponse{Total: len(itemIDs), Practice: practice}, nil
}

func (s *reviewService) NextQuestion(ctx context.Context, userID uuid.UUID) (*model.ReviewQuestionResponse, bool, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	state, err := s.loadState(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	// セッション中に削除された語彙は読み飛ばす
	for state.Index < len(state.ItemIDs) {
		vocab, findErr := s.vocabRepo.FindByID(ctx, s.db, userID, state.ItemIDs[state.Index])
		if findErr != nil {
			if errors.Is(findErr, model.ErrNotFound) {
				logger.Warn("Vocabulary in session no longer exists, skipping", "vocabulary_id", state.ItemIDs[state.Index])
				state.Index++
				if saveErr := s.saveState(ctx, userID, state); saveErr != nil {
					return nil, false, model.NewAppError("INTERNAL_SERVER_ERROR", "復習セッションの更新に失敗しました。", "", saveErr)
				}
				continue
			}
			logger.Error("Failed to find vocabulary for question", "error", findErr)
			return nil, false, model.NewAppError("INTERNAL_SERVER_ERROR", "出題の取得に失敗しました。", "", findErr)
		}

		choices, choiceErr := s.buildChoices(ctx, userID, vocab)
		if choiceErr != nil {
			return nil, false, choiceErr
		}

		return &model.ReviewQuestionResponse{
			VocabularyID: vocab.VocabularyID,
			Word:         vocab.Word,
			Choices:      choices,
			Position:     state.Index + 1,
			Total:        len(state.ItemIDs),
			Practice:     state.Practice,
		}, false, nil
	}

	// 全問消化済み。状態を破棄して完了を返す
	if deleteErr := s.store.Delete(ctx, reviewKey(userID)); deleteErr != nil {
		logger.Warn("Failed to delete review session state", "error", deleteErr)
	}
	return nil, true, nil
}

// buildChoices は正解の訳とダミー選択肢を混ぜてシャッフルした選択肢を作ります。
func (s *reviewService) buildChoices(ctx context.Context, userID uuid.UUID, vocab *model.Vocabulary) ([]string, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "vocabulary_id", vocab.VocabularyID)

	pool, err := s.vocabRepo.ListTranslations(ctx, s.db, userID, vocab.VocabularyID)
	if err != nil {
		logger.Error("Failed to list translations for distractors", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "選択肢の生成に失敗しました。", "", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	distractors, err := srs.PickDistractors(vocab.Translation, pool, s.cfg.App.DistractorCount, s.rng)
	if err != nil {
		return nil, err
	}

	choices := append(distractors, vocab.Translation)
	s.rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	return choices, nil
}

// SubmitAnswer は解答を判定し、（練習モードでなければ）復習スケジュールを
// 更新して次の出題へ進めます。最後の1問だった場合はセッションを破棄します。
func (s *reviewService) SubmitAnswer(ctx context.Context, userID uuid.UUID, req *model.SubmitAnswerRequest) (*model.SubmitAnswerResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	// フォームの二重送信などで同じユーザーの解答が同時に届いても、
	// セッション状態の読み書きが交錯しないようユーザー単位で直列化する
	lock := s.submitLock(userID)
	lock.Lock()
	defer lock.Unlock()

	state, err := s.loadState(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state.Index >= len(state.ItemIDs) {
		return nil, model.NewAppError("SESSION_EXPIRED", "出題中の問題がありません。", "", model.ErrSessionExpired)
	}

	vocabID := state.ItemIDs[state.Index]

	var correct bool
	var translation string
	if state.Practice {
		// 練習モードではスケジュールを一切更新しないので読み取りだけで良い
		vocab, findErr := s.vocabRepo.FindByID(ctx, s.db, userID, vocabID)
		if findErr != nil {
			if errors.Is(findErr, model.ErrNotFound) {
				return nil, model.NewAppError("NOT_FOUND", "出題中の語彙が見つかりません。", "", findErr)
			}
			logger.Error("Failed to find vocabulary for answer", "error", findErr)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "解答の処理に失敗しました。", "", findErr)
		}
		// 発音記号や大文字小文字の違いを吸収して比較する
		correct = textnorm.Normalize(req.Answer) == textnorm.Normalize(vocab.Translation)
		translation = vocab.Translation
	} else {
		// 取得・判定・更新を1トランザクションにまとめ、行ロック付きで読む。
		// 同じ語彙への同時更新が古い状態を上書きしないようにするため。
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			vocab, findErr := s.vocabRepo.FindByIDForUpdate(ctx, tx, userID, vocabID)
			if findErr != nil {
				if errors.Is(findErr, model.ErrNotFound) {
					return model.NewAppError("NOT_FOUND", "出題中の語彙が見つかりません。", "", findErr)
				}
				logger.Error("Failed to find vocabulary for answer", "error", findErr)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "解答の処理に失敗しました。", "", findErr)
			}

			// 発音記号や大文字小文字の違いを吸収して比較する
			correct = textnorm.Normalize(req.Answer) == textnorm.Normalize(vocab.Translation)
			translation = vocab.Translation

			updated := s.scheduler.Apply(*vocab, correct, time.Now())
			updates := map[string]interface{}{
				"next_review":    updated.NextReview,
				"interval_days":  updated.IntervalDays,
				"ease_factor":    updated.EaseFactor,
				"learning_stage": updated.LearningStage,
			}
			if updateErr := s.vocabRepo.Update(ctx, tx, userID, vocabID, updates); updateErr != nil {
				logger.Error("Error updating review schedule", "error", updateErr)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "復習スケジュールの更新に失敗しました。", "", updateErr)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	// 正誤に関わらず次の問題へ進む
	state.Index++
	completed := state.Index >= len(state.ItemIDs)
	if completed {
		if deleteErr := s.store.Delete(ctx, reviewKey(userID)); deleteErr != nil {
			logger.Warn("Failed to delete review session state", "error", deleteErr)
		}
	} else {
		if saveErr := s.saveState(ctx, userID, state); saveErr != nil {
			logger.Error("Failed to save review session state", "error", saveErr)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習セッションの更新に失敗しました。", "", saveErr)
		}
	}

	logger.Info("Review answer submitted",
		"vocabulary_id", vocabID,
		"correct", correct,
		"practice", state.Practice,
		"completed", completed,
	)
	return &model.SubmitAnswerResponse{
		Correct:       correct,
		CorrectAnswer: translation,
		Completed:     completed,
		Practice:      state.Practice,
		Position:      state.Index,
		Total:         len(state.ItemIDs),
	}, nil
}

// submitLock は解答処理をユーザー単位で直列化するためのロックを返します。
func (s *reviewService) submitLock(userID uuid.UUID) *sync.Mutex {
	lock, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func (s *reviewService) loadState(ctx context.Context, userID uuid.UUID) (*model.ReviewSessionState, error) {
	stateJSON, ok, err := s.store.Get(ctx, reviewKey(userID))
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習セッションの取得に失敗しました。", "", err)
	}
	if !ok {
		return nil, model.NewAppError("SESSION_EXPIRED", "復習セッションが開始されていないか、期限切れです。", "", model.ErrSessionExpired)
	}
	var state model.ReviewSessionState
	if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習セッションの読み込みに失敗しました。", "", err)
	}
	return &state, nil
}

func (s *reviewService) saveState(ctx context.Context, userID uuid.UUID, state *model.ReviewSessionState) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, reviewKey(userID), string(stateJSON))
}
