//go:generate mockery --name DeckRepository --output ./mocks --outpkg mocks --case=underscore
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

type DeckRepository interface {
	Create(ctx context.Context, db *gorm.DB, deck *model.Deck) error
	FindByID(ctx context.Context, db *gorm.DB, userID, deckID uuid.UUID) (*model.Deck, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Deck, error)
	// Delete はデッキ配下のカードと学習進捗もまとめて削除します。トランザクション内で呼ぶこと。
	Delete(ctx context.Context, tx *gorm.DB, userID, deckID uuid.UUID) error
}

type gormDeckRepository struct{}

func NewGormDeckRepository() DeckRepository {
	return &gormDeckRepository{}
}

func (r *gormDeckRepository) Create(ctx context.Context, db *gorm.DB, deck *model.Deck) error {
	logger := middleware.GetLogger(ctx)
	if err := db.WithContext(ctx).Create(deck).Error; err != nil {
		logger.Error("Error creating deck in DB", "error", err, "user_id", deck.UserID.String())
		return fmt.Errorf("gormDeckRepository.Create: %w", err)
	}
	return nil
}

func (r *gormDeckRepository) FindByID(ctx context.Context, db *gorm.DB, userID, deckID uuid.UUID) (*model.Deck, error) {
	logger := middleware.GetLogger(ctx)
	var deck model.Deck

	result := db.WithContext(ctx).Where("deck_id = ? AND user_id = ?", deckID, userID).First(&deck)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding deck by ID in DB", "error", result.Error, "deck_id", deckID.String())
		return nil, fmt.Errorf("gormDeckRepository.FindByID: %w", result.Error)
	}
	return &deck, nil
}

func (r *gormDeckRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Deck, error) {
	logger := middleware.GetLogger(ctx)
	var decks []*model.Deck

	result := db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&decks)
	if result.Error != nil {
		logger.Error("Error finding decks by user in DB", "error", result.Error, "user_id", userID.String())
		return nil, fmt.Errorf("gormDeckRepository.FindByUser: %w", result.Error)
	}
	return decks, nil
}

func (r *gormDeckRepository) Delete(ctx context.Context, tx *gorm.DB, userID, deckID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("deck_id", deckID.String())
	tx = tx.WithContext(ctx)

	cardIDs := tx.Model(&model.Card{}).Select("card_id").Where("deck_id = ?", deckID)
	if err := tx.Where("card_id IN (?)", cardIDs).Delete(&model.CardProgress{}).Error; err != nil {
		logger.Error("Error deleting progress of deck", "error", err)
		return fmt.Errorf("gormDeckRepository.Delete: %w", err)
	}
	if err := tx.Where("deck_id = ?", deckID).Delete(&model.Card{}).Error; err != nil {
		logger.Error("Error deleting cards of deck", "error", err)
		return fmt.Errorf("gormDeckRepository.Delete: %w", err)
	}

	result := tx.Where("deck_id = ? AND user_id = ?", deckID, userID).Delete(&model.Deck{})
	if result.Error != nil {
		logger.Error("Error deleting deck in DB", "error", result.Error)
		return fmt.Errorf("gormDeckRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
