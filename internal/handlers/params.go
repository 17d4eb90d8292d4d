package handlers

import (
	"net/http"

	"go_5_flashcard_srs/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// uuidParam はURLパスパラメータを UUID として取り出します
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, model.NewAppError("INVALID_PATH_PARAM", "Invalid "+name+" format.", name, model.ErrInvalidInput)
	}
	return id, nil
}
