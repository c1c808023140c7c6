// internal/handlers/vocab_handler.go
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

type VocabularyHandler struct {
	service service.VocabularyService
	logger  *slog.Logger
}

func NewVocabularyHandler(s service.VocabularyService, logger *slog.Logger) *VocabularyHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &VocabularyHandler{
		service: s,
		logger:  logger,
	}
}

// PostVocabulary は新しい語彙リソースを作成するためのハンドラ
func (h *VocabularyHandler) PostVocabulary(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostVocabulary"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.PostVocabularyRequest
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

	vocab, err := h.service.PostVocabulary(r.Context(), userID, &req)
	if err != nil {
		logger.Error("Error posting vocabulary in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Vocabulary posted successfully", slog.String("vocabulary_id", vocab.VocabularyID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, vocab)
}

// GetVocabularies は語彙リソースの一覧を取得するためのハンドラ
func (h *VocabularyHandler) GetVocabularies(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetVocabularies"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	vocabs, err := h.service.GetVocabularies(r.Context(), userID)
	if err != nil {
		logger.Error("Error listing vocabularies in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if vocabs == nil {
		vocabs = []*model.Vocabulary{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, vocabs)
}

// GetVocabulary は特定の語彙リソースを取得するためのハンドラ
func (h *VocabularyHandler) GetVocabulary(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetVocabulary"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	vocabID, ok := h.parseVocabularyID(w, r, logger)
	if !ok {
		return
	}

	vocab, err := h.service.GetVocabulary(r.Context(), userID, vocabID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Vocabulary not found in service", slog.Any("error", err))
		} else {
			logger.Error("Error getting vocabulary from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, vocab)
}

// PatchVocabulary は特定の語彙リソースの一部を更新するためのハンドラ
func (h *VocabularyHandler) PatchVocabulary(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchVocabulary"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt for PatchVocabulary", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	vocabID, ok := h.parseVocabularyID(w, r, logger)
	if !ok {
		return
	}

	var req model.PatchVocabularyRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode PatchVocabulary request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if req.Word == nil && req.Translation == nil {
		logger.Warn("PatchVocabulary called with no fields provided for update")
		appErr := model.NewAppError("VALIDATION_ERROR", "更新するフィールドが指定されていません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	vocab, err := h.service.PatchVocabulary(r.Context(), userID, vocabID, &req)
	if err != nil {
		logger.Error("Error patching vocabulary in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Vocabulary patched successfully")
	webutil.RespondWithJSON(w, http.StatusOK, vocab)
}

// DeleteVocabulary は特定の語彙リソースを削除するためのハンドラ
func (h *VocabularyHandler) DeleteVocabulary(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteVocabulary"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt for DeleteVocabulary", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	vocabID, ok := h.parseVocabularyID(w, r, logger)
	if !ok {
		return
	}

	if err := h.service.DeleteVocabulary(r.Context(), userID, vocabID); err != nil {
		logger.Error("Error deleting vocabulary in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Vocabulary deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}

func (h *VocabularyHandler) parseVocabularyID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	vocabIDStr := chi.URLParam(r, "vocabulary_id")
	vocabID, err := uuid.Parse(vocabIDStr)
	if err != nil {
		logger.Warn("Invalid vocabulary ID format in URL", slog.String("vocabulary_id_str", vocabIDStr))
		appErr := model.NewAppError("INVALID_URL_PARAM", "vocabulary_idの形式が正しくありません。", "vocabulary_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, false
	}
	return vocabID, true
}
