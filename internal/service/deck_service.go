package service

import (
	"context"
	"errors"
	"strings"

	"go_5_flashcard_srs/internal/middleware"
	"go_5_flashcard_srs/internal/model"
	"go_5_flashcard_srs/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeckService interface {
	CreateDeck(ctx context.Context, userID uuid.UUID, req *model.PostDeckRequest) (*model.Deck, error)
	ListDecks(ctx context.Context, userID uuid.UUID) ([]*model.Deck, error)
	GetDeck(ctx context.Context, userID, deckID uuid.UUID) (*model.Deck, error)
	DeleteDeck(ctx context.Context, userID, deckID uuid.UUID) error
	ExportDeck(ctx context.Context, userID, deckID uuid.UUID) (*model.DeckExport, error)
}

type deckService struct {
	db       *gorm.DB
	deckRepo repository.DeckRepository
	cardRepo repository.CardRepository
}

func NewDeckService(db *gorm.DB, deckRepo repository.DeckRepository, cardRepo repository.CardRepository) DeckService {
	return &deckService{
		db:       db,
		deckRepo: deckRepo,
		cardRepo: cardRepo,
	}
}

var errDeckNotFound = model.NewAppError("DECK_NOT_FOUND", "Deck not found.", "", model.ErrNotFound)

func (s *deckService) CreateDeck(ctx context.Context, userID uuid.UUID, req *model.PostDeckRequest) (*model.Deck, error) {
	logger := middleware.GetLogger(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, model.NewAppError("VALIDATION_ERROR", "Deck name must not be blank.", "name", model.ErrInvalidInput)
	}

	deck := &model.Deck{
		DeckID: uuid.New(),
		UserID: userID,
		Name:   name,
	}
	if err := s.deckRepo.Create(ctx, s.db, deck); err != nil {
		logger.Error("Failed to create deck", "error", err)
		return nil, storageError("Failed to create deck.", err)
	}

	logger.Info("Deck created", "deck_id", deck.DeckID)
	return deck, nil
}

func (s *deckService) ListDecks(ctx context.Context, userID uuid.UUID) ([]*model.Deck, error) {
	decks, err := s.deckRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to list decks", "error", err)
		return nil, storageError("Failed to list decks.", err)
	}
	return decks, nil
}

func (s *deckService) GetDeck(ctx context.Context, userID, deckID uuid.UUID) (*model.Deck, error) {
	deck, err := s.deckRepo.FindByID(ctx, s.db, userID, deckID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, errDeckNotFound
		}
		middleware.GetLogger(ctx).Error("Failed to get deck", "error", err, "deck_id", deckID)
		return nil, storageError("Failed to get deck.", err)
	}
	return deck, nil
}

// DeleteDeck はデッキとその配下のカード・学習進捗を1トランザクションで削除します
func (s *deckService) DeleteDeck(ctx context.Context, userID, deckID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("deck_id", deckID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.deckRepo.Delete(ctx, tx, userID, deckID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Deck to delete not found")
			return errDeckNotFound
		}
		logger.Error("Failed to delete deck", "error", err)
		return storageError("Failed to delete deck.", err)
	}

	logger.Info("Deck deleted")
	return nil
}

// ExportDeck はデッキを 表面=英語 / 裏面=スペイン語 の形式で返します
func (s *deckService) ExportDeck(ctx context.Context, userID, deckID uuid.UUID) (*model.DeckExport, error) {
	deck, err := s.GetDeck(ctx, userID, deckID)
	if err != nil {
		return nil, err
	}

	cards, err := s.cardRepo.FindByDeck(ctx, s.db, deckID)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to load cards for export", "error", err, "deck_id", deckID)
		return nil, storageError("Failed to export deck.", err)
	}

	export := &model.DeckExport{
		Deck: model.DeckExportHeader{
			Name:      deck.Name,
			CreatedAt: deck.CreatedAt,
		},
		Cards: make([]model.ExportedCard, 0, len(cards)),
	}
	for _, c := range cards {
		examples := c.Examples
		if examples == nil {
			examples = []string{}
		}
		export.Cards = append(export.Cards, model.ExportedCard{
			Front:    c.WordEN,
			Back:     c.WordES,
			Phonetic: c.Phonetic,
			Examples: examples,
		})
	}
	return export, nil
}
