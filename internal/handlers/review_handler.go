package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go_5_flashcard_srs/internal/middleware"
	"go_5_flashcard_srs/internal/model"
	"go_5_flashcard_srs/internal/service"
	"go_5_flashcard_srs/internal/webutil"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var errInvalidQuality = model.NewAppError("INVALID_QUALITY", "Quality must be an integer between 0 and 5.", "quality", model.ErrInvalidQuality)

type ReviewHandler struct {
	service service.ReviewService
}

func NewReviewHandler(s service.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: s}
}

// GetDueCards は復習対象のカードを返します。?deck_id= でデッキを絞り込む。
func (h *ReviewHandler) GetDueCards(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var deckID *uuid.UUID
	if raw := r.URL.Query().Get("deck_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			webutil.HandleError(w, logger, model.NewAppError("INVALID_QUERY_PARAM", "Invalid deck_id format.", "deck_id", model.ErrInvalidInput))
			return
		}
		deckID = &id
	}

	cards, err := h.service.GetDueCards(r.Context(), userID, deckID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if cards == nil {
		cards = []model.DueCardResponse{}
	}

	webutil.RespondWithJSON(w, http.StatusOK, cards, logger)
}

// GradeCard は評価 (0〜5) を受け取り、更新後の学習進捗を返します
func (h *ReviewHandler) GradeCard(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.GradeCardRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode grade request", "error", err)
		// quality が整数でない場合
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "quality" {
			webutil.HandleError(w, logger, errInvalidQuality)
			return
		}
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "Request body is not valid JSON for this endpoint.", "", err))
		return
	}
	if err := webutil.Validator.Struct(req); err != nil {
		webutil.HandleError(w, logger, gradeValidationError(err))
		return
	}

	progress, err := h.service.GradeCard(r.Context(), userID, req.CardID, *req.Quality)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, progress, logger)
}

// gradeValidationError は quality の欠落を INVALID_QUALITY に、それ以外を VALIDATION_ERROR に変換します
func gradeValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return model.NewAppError("INVALID_REQUEST_BODY", "Request body could not be validated.", "", errors.Join(model.ErrInvalidInput, err))
	}
	for _, fe := range validationErrors {
		if fe.Field() == "quality" {
			return errInvalidQuality
		}
	}
	return webutil.NewValidationErrorResponse(validationErrors)
}
