// internal/handlers/test_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"go_5_quiz_keep/internal/middleware"
	"go_5_quiz_keep/internal/model"
	"go_5_quiz_keep/internal/service"
	"go_5_quiz_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type TestHandler struct {
	service service.TestService
	logger  *slog.Logger
}

func NewTestHandler(s service.TestService, logger *slog.Logger) *TestHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TestHandler{
		service: s,
		logger:  logger,
	}
}

// PostTest は新しいテストリソースを作成するためのハンドラ
func (h *TestHandler) PostTest(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostTest"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.PostTestRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()))
			firstErr := validationErrors[0]
			appErr := model.NewAppError(
				"VALIDATION_ERROR",
				firstErr.Translate(webutil.Trans),
				firstErr.Field(),
				model.ErrInvalidInput,
			)
			webutil.HandleError(w, logger, appErr)
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	test, err := h.service.CreateTest(r.Context(), userID, &req)
	if err != nil {
		logger.Error("Error creating test in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Test created successfully", slog.String("test_id", test.TestID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, test)
}

// GetBooks はブック一覧を取得するためのハンドラ
func (h *TestHandler) GetBooks(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetBooks"))

	books, err := h.service.ListBooks(r.Context())
	if err != nil {
		logger.Error("Error listing books in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if books == nil {
		books = []*model.Book{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, books)
}

// GetBookTests はブック内のテスト一覧を取得するためのハンドラ
func (h *TestHandler) GetBookTests(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetBookTests"))

	bookIDStr := chi.URLParam(r, "book_id")
	bookID, err := uuid.Parse(bookIDStr)
	if err != nil {
		logger.Warn("Invalid book ID format in URL", slog.String("book_id_str", bookIDStr))
		appErr := model.NewAppError("INVALID_URL_PARAM", "book_idの形式が正しくありません。", "book_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	tests, err := h.service.ListTestsByBook(r.Context(), bookID)
	if err != nil {
		logger.Error("Error listing tests in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if tests == nil {
		tests = []*model.Test{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, tests)
}

// SearchTests はテスト名のオートコンプリート検索ハンドラ
func (h *TestHandler) SearchTests(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SearchTests"))

	query := r.URL.Query().Get("q")
	tests, err := h.service.SearchTests(r.Context(), query)
	if err != nil {
		logger.Error("Error searching tests in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if tests == nil {
		tests = []*model.Test{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, tests)
}

// GetTest は特定のテストリソースを取得するためのハンドラ
func (h *TestHandler) GetTest(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetTest"))

	testID, ok := h.parseTestID(w, r, logger)
	if !ok {
		return
	}

	test, err := h.service.GetTest(r.Context(), testID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Test not found in service", slog.Any("error", err))
		} else {
			logger.Error("Error getting test from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, test)
}

// PutTest は特定のテストリソースを置き換えるためのハンドラ
func (h *TestHandler) PutTest(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutTest"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt for PutTest", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	testID, ok := h.parseTestID(w, r, logger)
	if !ok {
		return
	}

	var req model.PutTestRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode PutTest request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			firstErr := validationErrors[0]
			appErr := model.NewAppError(
				"VALIDATION_ERROR",
				firstErr.Translate(webutil.Trans),
				firstErr.Field(),
				model.ErrInvalidInput,
			)
			webutil.HandleError(w, logger, appErr)
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	test, err := h.service.UpdateTest(r.Context(), userID, testID, &req)
	if err != nil {
		logger.Error("Error updating test in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Test updated successfully")
	webutil.RespondWithJSON(w, http.StatusOK, test)
}

// DeleteTest は特定のテストリソースを削除するためのハンドラ
func (h *TestHandler) DeleteTest(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteTest"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt for DeleteTest", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	testID, ok := h.parseTestID(w, r, logger)
	if !ok {
		return
	}

	if err := h.service.DeleteTest(r.Context(), userID, testID); err != nil {
		logger.Error("Error deleting test in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Test deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}

// StartTest は受験を開始し、正解を含まない出題ビューを返すハンドラ
func (h *TestHandler) StartTest(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "StartTest"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt for StartTest", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	testID, ok := h.parseTestID(w, r, logger)
	if !ok {
		return
	}

	view, err := h.service.StartTest(r.Context(), userID, testID)
	if err != nil {
		logger.Error("Error starting test in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Test started successfully", slog.String("kind", view.Kind))
	webutil.RespondWithJSON(w, http.StatusOK, view)
}

// SubmitTest は解答を受け付けて採点結果を返すハンドラ
func (h *TestHandler) SubmitTest(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SubmitTest"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt for SubmitTest", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	testID, ok := h.parseTestID(w, r, logger)
	if !ok {
		return
	}

	var req model.SubmitTestRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode SubmitTest request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	result, err := h.service.SubmitTest(r.Context(), userID, testID, &req)
	if err != nil {
		logger.Warn("Error submitting test in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Test submitted successfully", slog.Int("score", result.Score), slog.Int("total", result.TotalQuestions))
	webutil.RespondWithJSON(w, http.StatusOK, result)
}

// GetResults は直近の成績一覧を返すハンドラ
func (h *TestHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetResults"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt for GetResults", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	results, err := h.service.GetRecentResults(r.Context(), userID)
	if err != nil {
		logger.Error("Error listing results in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if results == nil {
		results = []*model.TestResult{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, results)
}

// parseTestID はURLパラメータの test_id を解析します。
func (h *TestHandler) parseTestID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	testIDStr := chi.URLParam(r, "test_id")
	testID, err := uuid.Parse(testIDStr)
	if err != nil {
		logger.Warn("Invalid test ID format in URL", slog.String("test_id_str", testIDStr))
		appErr := model.NewAppError("INVALID_URL_PARAM", "test_idの形式が正しくありません。", "test_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, false
	}
	return testID, true
}
