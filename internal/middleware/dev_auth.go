// internal/middleware/dev_auth.go
package middleware

import (
	"context"
	"net/http"

	"go_5_flashcard_srs/internal/model"
	"go_5_flashcard_srs/internal/webutil"

	"github.com/google/uuid"
)

// DevUserContextMiddleware は開発時 (auth.enabled=false) 用ミドルウェアです。
// X-User-ID ヘッダーからUUIDを抽出し、コンテキストに設定します。
// DBでのユーザー存在チェックは行いません。
func DevUserContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())

		userIDStr := r.Header.Get("X-User-ID")
		if userIDStr == "" {
			logger.Warn("[DEV AUTH] X-User-ID header missing")
			webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "[DEV] X-User-ID header is required.", "", model.ErrUnauthorized))
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			logger.Warn("[DEV AUTH] Invalid X-User-ID format", "x_user_id", userIDStr)
			webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "[DEV] X-User-ID must be a UUID.", "", model.ErrUnauthorized))
			return
		}

		logger.Debug("[DEV AUTH] User ID set to context (no validation)", "user_id", userID.String())
		ctx := context.WithValue(r.Context(), model.UserIDKey, userID)
		ctx = context.WithValue(ctx, logCtxKey{}, logger.With("user_id", userID.String()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
