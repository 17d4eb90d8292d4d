package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"go_5_flashcard_srs/internal/middleware"
	"go_5_flashcard_srs/internal/model"
	"go_5_flashcard_srs/internal/service"
	"go_5_flashcard_srs/internal/webutil"
)

// 受け付ける画像形式
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type CardHandler struct {
	service       service.CardService
	maxImageBytes int64
}

func NewCardHandler(s service.CardService, maxImageBytes int64) *CardHandler {
	return &CardHandler{service: s, maxImageBytes: maxImageBytes}
}

func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.PostCardRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid card request", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	card, err := h.service.CreateCard(r.Context(), userID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusCreated, card, logger)
}

// GenerateCard はAIでカードを生成します。deck_id があれば保存して 201、なければプレビューを 200 で返す。
func (h *CardHandler) GenerateCard(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.GenerateCardRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid generate request", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	result, err := h.service.GenerateCard(r.Context(), userID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if result.Card != nil {
		webutil.RespondWithJSON(w, http.StatusCreated, result.Card, logger)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, result.Preview, logger)
}

// ExtractWord は multipart の image フィールドから英単語を1つ抽出します
func (h *CardHandler) ExtractWord(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	if _, err := middleware.GetUserIDFromContext(r.Context()); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	// multipart のヘッダー分の余裕を持たせる
	r.Body = http.MaxBytesReader(w, r.Body, h.maxImageBytes+(1<<20))
	if err := r.ParseMultipartForm(h.maxImageBytes); err != nil {
		logger.Warn("Failed to parse multipart form", "error", err)
		webutil.HandleError(w, logger, imageError(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("image")
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("VALIDATION_ERROR", "image file is required.", "image", model.ErrInvalidInput))
		return
	}
	defer file.Close()

	if header.Size > h.maxImageBytes {
		webutil.HandleError(w, logger, imageError(&http.MaxBytesError{Limit: h.maxImageBytes}))
		return
	}

	image, err := io.ReadAll(io.LimitReader(file, h.maxImageBytes+1))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("VALIDATION_ERROR", "Failed to read image.", "image", errors.Join(model.ErrInvalidInput, err)))
		return
	}
	if int64(len(image)) > h.maxImageBytes {
		webutil.HandleError(w, logger, imageError(&http.MaxBytesError{Limit: h.maxImageBytes}))
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(image)
	}
	mimeType = strings.TrimSpace(strings.Split(mimeType, ";")[0])
	if !allowedImageTypes[mimeType] {
		webutil.HandleError(w, logger, model.NewAppError("UNSUPPORTED_IMAGE_TYPE", "Image must be JPEG, PNG, GIF or WebP.", "image", model.ErrInvalidInput))
		return
	}

	word, err := h.service.ExtractWord(r.Context(), image, mimeType)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.ExtractWordResponse{Word: word}, logger)
}

func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	cardID, err := uuidParam(r, "card_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.service.DeleteCard(r.Context(), userID, cardID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func imageError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return model.NewAppError("IMAGE_TOO_LARGE", "Image exceeds the maximum upload size.", "image", errors.Join(model.ErrInvalidInput, err))
	}
	return model.NewAppError("INVALID_MULTIPART", "Request must be multipart/form-data with an image field.", "image", errors.Join(model.ErrInvalidInput, err))
}
