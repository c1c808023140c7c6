package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go_5_quiz_keep/internal/middleware"
	"go_5_quiz_keep/internal/model"
	"go_5_quiz_keep/internal/repository"
	"go_5_quiz_keep/internal/session"
	"go_5_quiz_keep/internal/testcontent"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// searchLimit はオートコンプリート検索の最大件数です。
const searchLimit = 10

// recentResultsLimit は成績一覧で返す直近の件数です。
const recentResultsLimit = 50

// TestService インターフェース
type TestService interface {
	CreateTest(ctx context.Context, userID uuid.UUID, req *model.PostTestRequest) (*model.Test, error)
	GetTest(ctx context.Context, testID uuid.UUID) (*model.Test, error)
	ListBooks(ctx context.Context) ([]*model.Book, error)
	ListTestsByBook(ctx context.Context, bookID uuid.UUID) ([]*model.Test, error)
	SearchTests(ctx context.Context, query string) ([]*model.Test, error)
	UpdateTest(ctx context.Context, userID, testID uuid.UUID, req *model.PutTestRequest) (*model.Test, error)
	DeleteTest(ctx context.Context, userID, testID uuid.UUID) error
	StartTest(ctx context.Context, userID, testID uuid.UUID) (*model.TestView, error)
	SubmitTest(ctx context.Context, userID, testID uuid.UUID, req *model.SubmitTestRequest) (*model.TestSubmissionResult, error)
	GetRecentResults(ctx context.Context, userID uuid.UUID) ([]*model.TestResult, error)
}

// testState は受験開始からの進行状態です。セッションストアにJSONで保存します。
// Shuffle は並べ替えテストのときだけ入り、採点時に同じ提示順を復元するのに使います。
type testState struct {
	StartedAt time.Time                    `json:"started_at"`
	Shuffle   *testcontent.ShuffledContent `json:"shuffle,omitempty"`
}

type testService struct {
	db         *gorm.DB
	testRepo   repository.TestRepository
	resultRepo repository.ResultRepository
	store      session.Store

	// rand.Rand はゴルーチンセーフではないため mu で守る
	mu  sync.Mutex
	rng *rand.Rand
}

func NewTestService(db *gorm.DB, testRepo repository.TestRepository, resultRepo repository.ResultRepository, store session.Store, rng *rand.Rand) TestService {
	return &testService{
		db:         db,
		testRepo:   testRepo,
		resultRepo: resultRepo,
		store:      store,
		rng:        rng,
	}
}

// stateKey はユーザー×テストごとの進行状態のキーです。
func stateKey(testID, userID uuid.UUID) string {
	return fmt.Sprintf("start_time_%s_%s", testID, userID)
}

func (s *testService) CreateTest(ctx context.Context, userID uuid.UUID, req *model.PostTestRequest) (*model.Test, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	var test *model.Test
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		book, bookErr := s.testRepo.FirstOrCreateBook(ctx, tx, req.BookTitle)
		if bookErr != nil {
			logger.Error("Error finding or creating book", "error", bookErr)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "ブックの取得に失敗しました。", "", bookErr)
		}

		test = &model.Test{
			TestID:            uuid.New(),
			BookID:            book.BookID,
			Name:              req.Name,
			Content:           req.Content,
			TimeLimit:         req.TimeLimit,
			ShuffleSentences:  req.ShuffleSentences,
			ShuffleParagraphs: req.ShuffleParagraphs,
			CreatedBy:         userID,
		}
		if createErr := s.testRepo.Create(ctx, tx, test); createErr != nil {
			logger.Error("Error creating test", "error", createErr)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "テストの作成に失敗しました。", "", createErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Test created", "test_id", test.TestID, "name", test.Name)
	return test, nil
}

func (s *testService) GetTest(ctx context.Context, testID uuid.UUID) (*model.Test, error) {
	logger := middleware.GetLogger(ctx).With("test_id", testID)

	test, err := s.testRepo.FindByID(ctx, s.db, testID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "テストが見つかりません。", "", err)
		}
		logger.Error("Failed to find test", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "テストの取得に失敗しました。", "", err)
	}
	return test, nil
}

func (s *testService) ListBooks(ctx context.Context) ([]*model.Book, error) {
	logger := middleware.GetLogger(ctx)

	books, err := s.testRepo.ListBooks(ctx, s.db)
	if err != nil {
		logger.Error("Failed to list books", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "ブック一覧の取得に失敗しました。", "", err)
	}
	return books, nil
}

func (s *testService) ListTestsByBook(ctx context.Context, bookID uuid.UUID) ([]*model.Test, error) {
	logger := middleware.GetLogger(ctx).With("book_id", bookID)

	tests, err := s.testRepo.FindByBook(ctx, s.db, bookID)
	if err != nil {
		logger.Error("Failed to list tests by book", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "テスト一覧の取得に失敗しました。", "", err)
	}
	return tests, nil
}

func (s *testService) SearchTests(ctx context.Context, query string) ([]*model.Test, error) {
	logger := middleware.GetLogger(ctx)

	if query == "" {
		return []*model.Test{}, nil
	}
	tests, err := s.testRepo.SearchByName(ctx, s.db, query, searchLimit)
	if err != nil {
		logger.Error("Failed to search tests", "error", err, "query", query)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "テストの検索に失敗しました。", "", err)
	}
	return tests, nil
}

func (s *testService) UpdateTest(ctx context.Context, userID, testID uuid.UUID, req *model.PutTestRequest) (*model.Test, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "test_id", testID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		test, findErr := s.testRepo.FindByID(ctx, tx, testID)
		if findErr != nil {
			if errors.Is(findErr, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "更新対象のテストが見つかりません。", "", findErr)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "テストの取得に失敗しました。", "", findErr)
		}
		if test.CreatedBy != userID {
			return model.NewAppError("FORBIDDEN", "このテストを編集する権限がありません。", "", model.ErrForbidden)
		}

		updates := map[string]interface{}{
			"name":               req.Name,
			"content":            req.Content,
			"time_limit":         req.TimeLimit,
			"shuffle_sentences":  req.ShuffleSentences,
			"shuffle_paragraphs": req.ShuffleParagraphs,
		}
		if updateErr := s.testRepo.Update(ctx, tx, testID, updates); updateErr != nil {
			if errors.Is(updateErr, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "更新対象のテストが見つかりません。", "", updateErr)
			}
			logger.Error("Error updating test", "error", updateErr)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "テストの更新に失敗しました。", "", updateErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetTest(ctx, testID)
}

func (s *testService) DeleteTest(ctx context.Context, userID, testID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "test_id", testID)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		test, findErr := s.testRepo.FindByID(ctx, tx, testID)
		if findErr != nil {
			if errors.Is(findErr, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "削除対象のテストが見つかりません。", "", findErr)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "テストの取得に失敗しました。", "", findErr)
		}
		if test.CreatedBy != userID {
			return model.NewAppError("FORBIDDEN", "このテストを削除する権限がありません。", "", model.ErrForbidden)
		}

		if deleteErr := s.testRepo.Delete(ctx, tx, testID); deleteErr != nil {
			logger.Error("Error deleting test", "error", deleteErr)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "テストの削除に失敗しました。", "", deleteErr)
		}
		logger.Info("Test deleted")
		return nil
	})
}

// StartTest は出題フェーズです。正解を含まない表示用のビューを組み立て、
// 開始時刻と（並べ替えテストなら）提示順をセッションストアに保存します。
// 採点は必ずこの保存済み状態に対して行われるため、出題と採点で
// 内容がずれることはありません。
func (s *testService) StartTest(ctx context.Context, userID, testID uuid.UUID) (*model.TestView, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "test_id", testID)

	test, err := s.GetTest(ctx, testID)
	if err != nil {
		return nil, err
	}

	view := &model.TestView{
		TestID:    test.TestID,
		Name:      test.Name,
		TimeLimit: test.TimeLimit,
	}
	state := testState{StartedAt: time.Now()}

	mode := testcontent.ModeOf(test.ShuffleSentences, test.ShuffleParagraphs)
	if mode != testcontent.ShuffleNone {
		units := testcontent.SplitUnits(test.Content, mode)

		s.mu.Lock()
		sc := testcontent.Shuffle(units, s.rng)
		s.mu.Unlock()

		view.Kind = "drag_and_drop"
		view.Total = len(sc.Items)
		view.Items = make([]model.RenderItem, len(sc.Items))
		for i, item := range sc.Items {
			view.Items[i] = model.RenderItem{ID: item.ID, Content: item.Content}
		}
		state.Shuffle = sc
	} else {
		pc := testcontent.Parse(test.Content)

		view.Kind = "standard"
		view.Total = len(pc.Fields)
		view.Lines = make([][]model.RenderSegment, len(pc.Lines))
		for i, line := range pc.Lines {
			segments := make([]model.RenderSegment, len(line))
			for j, seg := range line {
				segments[j] = s.renderSegment(seg)
			}
			view.Lines[i] = segments
		}
	}

	stateJSON, err := json.Marshal(state)
	if err != nil {
		logger.Error("Failed to marshal test state", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "テストの開始に失敗しました。", "", err)
	}
	if err := s.store.Put(ctx, stateKey(testID, userID), string(stateJSON)); err != nil {
		logger.Error("Failed to save test state", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "テストの開始に失敗しました。", "", err)
	}

	logger.Info("Test started", "kind", view.Kind, "total", view.Total)
	return view, nil
}

// renderSegment はパース済みセグメントを表示用DTOに変換します。正解は落とします。
// ドロップダウンの選択肢は提示のたびにシャッフルします。
func (s *testService) renderSegment(seg testcontent.Segment) model.RenderSegment {
	if seg.Field == nil {
		return model.RenderSegment{Kind: "text", Text: seg.Text}
	}
	if seg.Field.Kind == testcontent.FieldDropdown {
		options := make([]string, len(seg.Field.Options))
		copy(options, seg.Field.Options)
		s.mu.Lock()
		s.rng.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})
		s.mu.Unlock()
		return model.RenderSegment{Kind: "dropdown", FieldID: seg.Field.ID, Options: options}
	}
	return model.RenderSegment{Kind: "blank", FieldID: seg.Field.ID}
}

// SubmitTest は採点フェーズです。StartTest で保存した状態が見つからない場合は
// セッション切れとして拒否します。満点（かつ制限時間内）なら学習完了として記録します。
func (s *testService) SubmitTest(ctx context.Context, userID, testID uuid.UUID, req *model.SubmitTestRequest) (*model.TestSubmissionResult, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "test_id", testID)

	test, err := s.GetTest(ctx, testID)
	if err != nil {
		return nil, err
	}

	key := stateKey(testID, userID)
	stateJSON, ok, err := s.store.Get(ctx, key)
	if err != nil {
		logger.Error("Failed to load test state", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "テスト状態の取得に失敗しました。", "", err)
	}
	if !ok {
		return nil, model.NewAppError("SESSION_EXPIRED", "テストが開始されていないか、セッションが切れています。", "", model.ErrSessionExpired)
	}
	var state testState
	if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
		logger.Error("Failed to unmarshal test state", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "テスト状態の読み込みに失敗しました。", "", err)
	}

	submission := &model.TestSubmissionResult{}
	if test.TimeLimit != nil {
		elapsed := time.Since(state.StartedAt)
		submission.TimeLimitExceeded = elapsed > time.Duration(*test.TimeLimit)*time.Minute
	}

	if state.Shuffle != nil {
		result, scoreErr := testcontent.ScoreOrder(state.Shuffle, req.ItemOrder)
		if scoreErr != nil {
			return nil, scoreErr
		}
		submission.Score = result.Score
		submission.TotalQuestions = result.Total
		submission.CorrectOrder = state.Shuffle.Original
	} else {
		pc := testcontent.Parse(test.Content)
		result := testcontent.ScoreFields(pc, req.Answers)
		submission.Score = result.Score
		submission.TotalQuestions = result.Total
		submission.Fields = buildFieldResults(pc, req.Answers)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		testResult := &model.TestResult{
			ResultID:       uuid.New(),
			Score:          submission.Score,
			TotalQuestions: submission.TotalQuestions,
			UserID:         userID,
			TestID:         testID,
		}
		if createErr := s.resultRepo.CreateTestResult(ctx, tx, testResult); createErr != nil {
			logger.Error("Error saving test result", "error", createErr)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "採点結果の保存に失敗しました。", "", createErr)
		}

		// 満点かつ制限時間内なら学習完了として記録する
		if submission.Score == submission.TotalQuestions && submission.TotalQuestions > 0 && !submission.TimeLimitExceeded {
			learnResult := &model.LearnTestResult{
				LearnResultID: uuid.New(),
				UserID:        userID,
				TestID:        testID,
				CompletedAt:   time.Now(),
			}
			if createErr := s.resultRepo.CreateLearnResult(ctx, tx, learnResult); createErr != nil {
				logger.Error("Error saving learn result", "error", createErr)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "学習完了の記録に失敗しました。", "", createErr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 採点が確定したら進行状態は破棄する
	if deleteErr := s.store.Delete(ctx, key); deleteErr != nil {
		logger.Warn("Failed to delete test state", "error", deleteErr)
	}

	logger.Info("Test submitted",
		"score", submission.Score,
		"total", submission.TotalQuestions,
		"time_limit_exceeded", submission.TimeLimitExceeded,
	)
	return submission, nil
}

// buildFieldResults は解答欄ごとの正誤と正解を組み立てます（結果画面の再表示用）。
func buildFieldResults(pc *testcontent.ParsedContent, answers map[string]string) []model.FieldResult {
	results := make([]model.FieldResult, 0, len(pc.Fields))
	for _, f := range pc.Fields {
		submitted := answers[f.ID]
		single := testcontent.ScoreFields(&testcontent.ParsedContent{Fields: []*testcontent.Field{f}}, map[string]string{f.ID: submitted})
		results = append(results, model.FieldResult{
			FieldID:       f.ID,
			Submitted:     submitted,
			Correct:       single.Score == 1,
			CorrectAnswer: f.Answer,
		})
	}
	return results
}

func (s *testService) GetRecentResults(ctx context.Context, userID uuid.UUID) ([]*model.TestResult, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	results, err := s.resultRepo.ListRecentByUser(ctx, s.db, userID, recentResultsLimit)
	if err != nil {
		logger.Error("Failed to list test results", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "成績一覧の取得に失敗しました。", "", err)
	}
	return results, nil
}
