package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go_5_flashcard_srs/internal/middleware"
	"go_5_flashcard_srs/internal/model"
	"go_5_flashcard_srs/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CardGenerator は単語からカード内容を生成するプロバイダ
type CardGenerator interface {
	GenerateCard(ctx context.Context, word string) (*model.GeneratedCard, error)
	ExtractWord(ctx context.Context, image []byte, mimeType string) (string, error)
}

type CardService interface {
	CreateCard(ctx context.Context, userID uuid.UUID, req *model.PostCardRequest) (*model.Card, error)
	GenerateCard(ctx context.Context, userID uuid.UUID, req *model.GenerateCardRequest) (*model.GenerateCardResult, error)
	ListCards(ctx context.Context, userID, deckID uuid.UUID) ([]*model.Card, error)
	DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error
	ExtractWord(ctx context.Context, image []byte, mimeType string) (string, error)
}

type cardService struct {
	db        *gorm.DB
	deckRepo  repository.DeckRepository
	cardRepo  repository.CardRepository
	progRepo  repository.ProgressRepository
	generator CardGenerator
	now       func() time.Time
}

func NewCardService(
	db *gorm.DB,
	deckRepo repository.DeckRepository,
	cardRepo repository.CardRepository,
	progRepo repository.ProgressRepository,
	generator CardGenerator,
) CardService {
	return &cardService{
		db:        db,
		deckRepo:  deckRepo,
		cardRepo:  cardRepo,
		progRepo:  progRepo,
		generator: generator,
		now:       time.Now,
	}
}

var errDeckForbidden = model.NewAppError("DECK_FORBIDDEN", "Deck not found or unauthorized.", "deck_id", model.ErrForbidden)

// CreateCard はカードと初期状態の学習進捗を1トランザクションで作成します
func (s *cardService) CreateCard(ctx context.Context, userID uuid.UUID, req *model.PostCardRequest) (*model.Card, error) {
	logger := middleware.GetLogger(ctx).With("deck_id", req.DeckID)

	if err := s.checkDeck(ctx, userID, req.DeckID); err != nil {
		return nil, err
	}

	card := &model.Card{
		CardID:   uuid.New(),
		DeckID:   req.DeckID,
		WordEN:   strings.TrimSpace(req.WordEN),
		WordES:   strings.TrimSpace(req.WordES),
		Phonetic: req.Phonetic,
		Examples: req.Examples,
	}
	if err := s.save(ctx, card); err != nil {
		logger.Error("Failed to create card", "error", err)
		return nil, err
	}

	logger.Info("Card created", "card_id", card.CardID)
	return card, nil
}

// GenerateCard は生成プロバイダでカードを作ります。DeckID がなければ保存せずにプレビューを返す。
func (s *cardService) GenerateCard(ctx context.Context, userID uuid.UUID, req *model.GenerateCardRequest) (*model.GenerateCardResult, error) {
	logger := middleware.GetLogger(ctx).With("word", req.Word)

	// 生成前に所有権を確認する
	if req.DeckID != nil {
		if err := s.checkDeck(ctx, userID, *req.DeckID); err != nil {
			return nil, err
		}
	}

	generated, err := s.generator.GenerateCard(ctx, strings.TrimSpace(req.Word))
	if err != nil {
		logger.Warn("Card generation failed", "error", err)
		return nil, generatorError(err)
	}

	examples := generated.Examples
	if examples == nil {
		examples = []string{}
	}

	if req.DeckID == nil {
		return &model.GenerateCardResult{Preview: &model.CardPreview{
			Preview:  true,
			WordEN:   generated.WordEN,
			WordES:   generated.Translation,
			Phonetic: generated.Phonetic,
			Examples: examples,
		}}, nil
	}

	card := &model.Card{
		CardID:   uuid.New(),
		DeckID:   *req.DeckID,
		WordEN:   generated.WordEN,
		WordES:   generated.Translation,
		Phonetic: generated.Phonetic,
		Examples: examples,
	}
	if err := s.save(ctx, card); err != nil {
		logger.Error("Failed to save generated card", "error", err)
		return nil, err
	}

	logger.Info("Generated card saved", "card_id", card.CardID, "deck_id", card.DeckID)
	return &model.GenerateCardResult{Card: card}, nil
}

func (s *cardService) ListCards(ctx context.Context, userID, deckID uuid.UUID) ([]*model.Card, error) {
	if _, err := s.deckRepo.FindByID(ctx, s.db, userID, deckID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, errDeckNotFound
		}
		return nil, storageError("Failed to get deck.", err)
	}

	cards, err := s.cardRepo.FindByDeck(ctx, s.db, deckID)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to list cards", "error", err, "deck_id", deckID)
		return nil, storageError("Failed to list cards.", err)
	}
	return cards, nil
}

// DeleteCard はカードと学習進捗を削除します
func (s *cardService) DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("card_id", cardID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.cardRepo.FindByID(ctx, tx, userID, cardID); err != nil {
			return err
		}
		return s.cardRepo.Delete(ctx, tx, cardID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Card to delete not found or unauthorized")
			return errCardNotFound
		}
		logger.Error("Failed to delete card", "error", err)
		return storageError("Failed to delete card.", err)
	}

	logger.Info("Card deleted")
	return nil
}

// ExtractWord は画像から英単語を1つ取り出します
func (s *cardService) ExtractWord(ctx context.Context, image []byte, mimeType string) (string, error) {
	if len(image) == 0 {
		return "", model.NewAppError("VALIDATION_ERROR", "Image is empty.", "image", model.ErrInvalidInput)
	}

	word, err := s.generator.ExtractWord(ctx, image, mimeType)
	if err != nil {
		middleware.GetLogger(ctx).Warn("Word extraction failed", "error", err, "mime_type", mimeType)
		return "", generatorError(err)
	}
	return word, nil
}

func (s *cardService) checkDeck(ctx context.Context, userID, deckID uuid.UUID) error {
	if _, err := s.deckRepo.FindByID(ctx, s.db, userID, deckID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			middleware.GetLogger(ctx).Warn("Deck not owned by user", "deck_id", deckID)
			return errDeckForbidden
		}
		return storageError("Failed to get deck.", err)
	}
	return nil
}

func (s *cardService) save(ctx context.Context, card *model.Card) error {
	now := s.now().UTC()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.cardRepo.Create(ctx, tx, card); err != nil {
			return err
		}
		return s.progRepo.Create(ctx, tx, model.NewCardProgress(card.CardID, now))
	})
	if err != nil {
		return storageError("Failed to save card.", err)
	}
	return nil
}

// generatorError はプロバイダのエラーを AppError に変換します
func generatorError(err error) error {
	var appErr *model.AppError
	if errors.As(err, &appErr) {
		return err
	}
	switch {
	case errors.Is(err, model.ErrUpstreamParse):
		return model.NewAppError("AI_PARSE_ERROR", "Failed to parse the AI response.", "", err)
	case errors.Is(err, model.ErrUpstreamUnavailable):
		return model.NewAppError("AI_UNAVAILABLE", "The card generation service is unavailable.", "", err)
	case errors.Is(err, model.ErrInvalidInput):
		return model.NewAppError("VALIDATION_ERROR", "Invalid input for card generation.", "", err)
	default:
		return model.NewAppError("AI_UNAVAILABLE", "The card generation service is unavailable.", "", errors.Join(model.ErrUpstreamUnavailable, err))
	}
}
