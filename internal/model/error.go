// internal/model/error.go
package model

import (
	"errors"
	"fmt"
)

// アプリケーション固有のエラー
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("resource conflict") // 重複エラー用

	// 採点・復習フロー固有のエラー
	ErrValidation       = errors.New("submission validation failed") // 提出内容の形が不正（部分採点はしない）
	ErrInsufficientData = errors.New("insufficient data")            // ダミー選択肢を作るための語彙が足りない
	ErrEmptyVocabulary  = errors.New("vocabulary is empty")          // 復習セッションを開始できない
	ErrSessionExpired   = errors.New("session expired")              // 開始時刻・セッション状態が見つからない
)

// ErrorDetail はAPIエラーレスポンスに含める詳細情報です。
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// AppError はエラーコードと利用者向けメッセージを持つアプリケーションエラーです。
// Unwrap で根本原因のセンチネルエラーに辿れます。
type AppError struct {
	Detail ErrorDetail
	Err    error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{Code: code, Message: message, Field: field},
		Err:    err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Detail.Code, e.Detail.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Detail.Code, e.Detail.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// コンテキストキー
type contextKey string

const UserIDKey contextKey = "user_id"
