package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"go_5_flashcard_srs/internal/export"
	"go_5_flashcard_srs/internal/middleware"
	"go_5_flashcard_srs/internal/model"
	"go_5_flashcard_srs/internal/service"
	"go_5_flashcard_srs/internal/webutil"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DeckHandler struct {
	service service.DeckService
	cards   service.CardService
}

func NewDeckHandler(s service.DeckService, cards service.CardService) *DeckHandler {
	return &DeckHandler{service: s, cards: cards}
}

func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.PostDeckRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid deck request", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	deck, err := h.service.CreateDeck(r.Context(), userID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusCreated, deck, logger)
}

func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	decks, err := h.service.ListDecks(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if decks == nil {
		decks = []*model.Deck{}
	}

	webutil.RespondWithJSON(w, http.StatusOK, decks, logger)
}

func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	deckID, err := uuidParam(r, "deck_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	deck, err := h.service.GetDeck(r.Context(), userID, deckID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, deck, logger)
}

func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	deckID, err := uuidParam(r, "deck_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.service.DeleteDeck(r.Context(), userID, deckID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Deck deleted"}, logger)
}

// ListCards はデッキ内のカードを新しい順に返します
func (h *DeckHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	deckID, err := uuidParam(r, "deck_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	cards, err := h.cards.ListCards(r.Context(), userID, deckID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if cards == nil {
		cards = []*model.Card{}
	}

	webutil.RespondWithJSON(w, http.StatusOK, cards, logger)
}

// ExportDeck はデッキをJSONで返します。?format=xlsx ならExcelファイルを返す。
func (h *DeckHandler) ExportDeck(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	deckID, err := uuidParam(r, "deck_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "xlsx" {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_FORMAT", "format must be json or xlsx.", "format", model.ErrInvalidInput))
		return
	}

	deckExport, err := h.service.ExportDeck(r.Context(), userID, deckID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if format != "xlsx" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName(deckExport.Deck.Name, "json")+`"`)
		webutil.RespondWithJSON(w, http.StatusOK, deckExport, logger)
		return
	}

	// 全体を書き出してから返す
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, deckExport); err != nil {
		logger.Error("Failed to write xlsx", "error", err, "deck_id", deckID)
		webutil.HandleError(w, logger, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName(deckExport.Deck.Name, "xlsx")+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error("Failed to write xlsx response", "error", err)
	}
}
