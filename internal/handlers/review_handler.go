// internal/handlers/review_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"go_5_quiz_keep/internal/middleware"
	"go_5_quiz_keep/internal/model"
	"go_5_quiz_keep/internal/service"
	"go_5_quiz_keep/internal/webutil"

	"github.com/go-playground/validator/v10"
)

type ReviewHandler struct {
	service service.ReviewService
	logger  *slog.Logger
}

func NewReviewHandler(s service.ReviewService, logger *slog.Logger) *ReviewHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewHandler{
		service: s,
		logger:  logger,
	}
}

// StartSession は復習セッションを開始するハンドラ
func (h *ReviewHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "StartSession"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	resp, err := h.service.StartSession(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrEmptyVocabulary) {
			logger.Info("No vocabulary available for review session")
		} else {
			logger.Error("Error starting review session in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Review session started successfully", slog.Int("total", resp.Total), slog.Bool("practice", resp.Practice))
	webutil.RespondWithJSON(w, http.StatusCreated, resp)
}

// GetQuestion は現在の出題を返すハンドラ。全問消化済みなら completed を返します。
func (h *ReviewHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetQuestion"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	question, done, err := h.service.NextQuestion(r.Context(), userID)
	if err != nil {
		logger.Warn("Error getting review question in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	if done {
		webutil.RespondWithJSON(w, http.StatusOK, map[string]bool{"completed": true})
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, question)
}

// SubmitAnswer は解答を判定して次の出題へ進めるハンドラ
func (h *ReviewHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SubmitAnswer"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.SubmitAnswerRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode SubmitAnswer request body", slog.String("error", err.Error()))
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

	resp, err := h.service.SubmitAnswer(r.Context(), userID, &req)
	if err != nil {
		logger.Warn("Error submitting review answer in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Review answer submitted successfully", slog.Bool("correct", resp.Correct), slog.Bool("completed", resp.Completed))
	webutil.RespondWithJSON(w, http.StatusOK, resp)
}
