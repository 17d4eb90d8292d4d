// internal/model/error.go
package model

import (
	"errors"

	"go_5_flashcard_srs/internal/srs"
)

// アプリケーション固有のエラー
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidQuality      = srs.ErrInvalidQuality
	ErrInternalServer      = errors.New("internal server error")
	ErrForbidden           = errors.New("forbidden")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrConflict            = errors.New("resource conflict") // 重複・楽観ロック競合
	ErrStorage             = errors.New("storage failure")
	ErrUpstreamParse       = errors.New("upstream response could not be parsed")
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
)

// ErrorDetail はクライアントに返すエラー情報
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// AppError はクライアント向けの詳細と根本原因のエラーを持つ
type AppError struct {
	Detail ErrorDetail
	Err    error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Detail.Code + ": " + e.Err.Error()
	}
	return e.Detail.Code + ": " + e.Detail.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError は AppError を生成します。err には上のセンチネルエラーを渡す。
func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{
			Code:    code,
			Message: message,
			Field:   field,
		},
		Err: err,
	}
}
