// internal/middleware/auth.go
package middleware

import (
	"context"
	"net/http"

	"go_5_quiz_keep/internal/model"
	"go_5_quiz_keep/internal/webutil"

	"github.com/google/uuid"
)

// UserIDHeader はクライアントが自身を識別するためのヘッダー名です。
// 外部の認証基盤（リバースプロキシ等）が検証済みのIDを載せてくる前提で、
// 本サービス自身はトークン検証を行いません。
const UserIDHeader = "X-User-ID"

// UserAuthMiddleware はリクエストヘッダーからユーザーIDを取り出し、
// コンテキストに格納するミドルウェアです。
func UserAuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			headerValue := r.Header.Get(UserIDHeader)
			if headerValue == "" {
				logger.Warn("User auth failed: X-User-ID header missing")
				appErr := model.NewAppError("UNAUTHORIZED", "X-User-IDヘッダーが必要です。", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}

			userID, err := uuid.Parse(headerValue)
			if err != nil {
				logger.Warn("User auth failed: Invalid X-User-ID format", "value", headerValue)
				appErr := model.NewAppError("UNAUTHORIZED", "X-User-IDヘッダーの形式が正しくありません。", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}

			ctx := context.WithValue(r.Context(), model.UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext はコンテキストからユーザーIDを取得します。
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	value, ok := ctx.Value(model.UserIDKey).(uuid.UUID)
	if !ok {
		// ミドルウェアを通っていないルートから呼ばれた場合の内部エラー
		return uuid.Nil, model.NewAppError("INTERNAL_SERVER_ERROR", "コンテキストからユーザー情報を取得できませんでした。", "", model.ErrInternalServer)
	}
	return value, nil
}
