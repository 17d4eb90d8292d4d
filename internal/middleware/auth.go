package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go_5_flashcard_srs/internal/model"
	"go_5_flashcard_srs/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTAuthMiddleware は Authorization ヘッダーの Bearer トークン (HS256) を検証し、
// sub クレームのユーザーIDをコンテキストに格納します
func JWTAuthMiddleware(secretKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("JWT auth failed: Authorization header missing")
				webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "Authorization header is required.", "", model.ErrUnauthorized))
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				logger.Warn("JWT auth failed: Invalid Authorization header format")
				webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "Authorization header must be 'Bearer <token>'.", "", model.ErrUnauthorized))
				return
			}

			userID, err := ParseAccessToken(headerParts[1], secretKey)
			if err != nil {
				logger.Warn("JWT auth failed: Invalid token", "error", err)
				webutil.HandleError(w, logger, model.NewAppError("INVALID_TOKEN", "Token is invalid or expired.", "", model.ErrUnauthorized))
				return
			}

			ctx := context.WithValue(r.Context(), model.UserIDKey, userID)
			ctx = context.WithValue(ctx, logCtxKey{}, logger.With("user_id", userID.String()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ParseAccessToken は署名・有効期限を検証し、sub のユーザーIDを返します
func ParseAccessToken(tokenString, secretKey string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return uuid.Nil, err
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(subject)
}

// GetUserIDFromContext は認証ミドルウェアが格納したユーザーIDを取得します
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	value, ok := ctx.Value(model.UserIDKey).(uuid.UUID)
	if !ok || value == uuid.Nil {
		return uuid.Nil, model.NewAppError("UNAUTHORIZED", "User is not authenticated.", "", model.ErrUnauthorized)
	}
	return value, nil
}
