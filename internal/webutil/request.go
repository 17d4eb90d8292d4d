package webutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go_5_flashcard_srs/internal/model"

	"github.com/go-playground/validator/v10"
)

// maxJSONBodyBytes はJSONリクエストボディの上限
const maxJSONBodyBytes = 1 << 20

// DecodeJSONBody はリクエストボディをデコードします。未知のフィールドはエラー。
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.ErrInvalidInput
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxJSONBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errors.Join(model.ErrInvalidInput, err)
	}
	return nil
}

// DecodeAndValidate はデコードとバリデーションをまとめて行い、失敗時は AppError を返します
func DecodeAndValidate(r *http.Request, dst interface{}) error {
	if err := DecodeJSONBody(r, dst); err != nil {
		return model.NewAppError("INVALID_REQUEST_BODY", "Request body is not valid JSON for this endpoint.", "", err)
	}
	if err := Validator.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return NewValidationErrorResponse(validationErrors)
		}
		return model.NewAppError("INVALID_REQUEST_BODY", "Request body could not be validated.", "", errors.Join(model.ErrInvalidInput, err))
	}
	return nil
}
