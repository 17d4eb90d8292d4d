//go:generate mockery --name CardRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_5_flashcard_srs/internal/middleware"
	"go_5_flashcard_srs/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CardRepository interface {
	Create(ctx context.Context, tx *gorm.DB, card *model.Card) error
	// FindByID はデッキの所有者が userID のカードだけを返します
	FindByID(ctx context.Context, db *gorm.DB, userID, cardID uuid.UUID) (*model.Card, error)
	FindByDeck(ctx context.Context, db *gorm.DB, deckID uuid.UUID) ([]*model.Card, error)
	// Delete はカードと学習進捗を削除します。トランザクション内で呼ぶこと。
	Delete(ctx context.Context, tx *gorm.DB, cardID uuid.UUID) error
}

type gormCardRepository struct{}

func NewGormCardRepository() CardRepository {
	return &gormCardRepository{}
}

func (r *gormCardRepository) Create(ctx context.Context, tx *gorm.DB, card *model.Card) error {
	logger := middleware.GetLogger(ctx)
	// Progress は ProgressRepository 側で作成する
	if err := tx.WithContext(ctx).Omit("Progress").Create(card).Error; err != nil {
		logger.Error("Error creating card in DB", "error", err, "deck_id", card.DeckID.String(), "word_en", card.WordEN)
		return fmt.Errorf("gormCardRepository.Create: %w", err)
	}
	return nil
}

func (r *gormCardRepository) FindByID(ctx context.Context, db *gorm.DB, userID, cardID uuid.UUID) (*model.Card, error) {
	logger := middleware.GetLogger(ctx)
	var card model.Card

	result := db.WithContext(ctx).
		Joins("JOIN decks ON decks.deck_id = cards.deck_id").
		Where("cards.card_id = ? AND decks.user_id = ?", cardID, userID).
		First(&card)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding card by ID in DB", "error", result.Error, "card_id", cardID.String())
		return nil, fmt.Errorf("gormCardRepository.FindByID: %w", result.Error)
	}
	return &card, nil
}

func (r *gormCardRepository) FindByDeck(ctx context.Context, db *gorm.DB, deckID uuid.UUID) ([]*model.Card, error) {
	logger := middleware.GetLogger(ctx)
	var cards []*model.Card

	result := db.WithContext(ctx).Where("deck_id = ?", deckID).Order("created_at DESC").Find(&cards)
	if result.Error != nil {
		logger.Error("Error finding cards by deck in DB", "error", result.Error, "deck_id", deckID.String())
		return nil, fmt.Errorf("gormCardRepository.FindByDeck: %w", result.Error)
	}
	return cards, nil
}

func (r *gormCardRepository) Delete(ctx context.Context, tx *gorm.DB, cardID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("card_id", cardID.String())
	tx = tx.WithContext(ctx)

	if err := tx.Where("card_id = ?", cardID).Delete(&model.CardProgress{}).Error; err != nil {
		logger.Error("Error deleting progress of card", "error", err)
		return fmt.Errorf("gormCardRepository.Delete: %w", err)
	}
	result := tx.Where("card_id = ?", cardID).Delete(&model.Card{})
	if result.Error != nil {
		logger.Error("Error deleting card in DB", "error", result.Error)
		return fmt.Errorf("gormCardRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
