//go:generate mockery --name ProgressRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_5_flashcard_srs/internal/middleware"
	"go_5_flashcard_srs/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gorm の Raw は "?" プレースホルダを各方言に変換する
var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type ProgressRepository interface {
	Create(ctx context.Context, tx *gorm.DB, progress *model.CardProgress) error
	// FindByCardForUser はデッキの所有者が userID のカードの進捗だけを返します
	FindByCardForUser(ctx context.Context, db *gorm.DB, userID, cardID uuid.UUID) (*model.CardProgress, error)
	// Update は Version が一致する場合のみ更新し、Version を1つ進めます。不一致は ErrConflict。
	Update(ctx context.Context, tx *gorm.DB, progress *model.CardProgress) error
	// FindDueByUser は next_review <= now のカードを next_review の昇順で返します
	FindDueByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, deckID *uuid.UUID, now time.Time) ([]model.DueCard, error)
	// CountDueByUser は復習対象が1枚以上あるユーザーごとの件数を返します
	CountDueByUser(ctx context.Context, db *gorm.DB, now time.Time) ([]model.DueCount, error)
}

type gormProgressRepository struct{}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

func (r *gormProgressRepository) Create(ctx context.Context, tx *gorm.DB, progress *model.CardProgress) error {
	logger := middleware.GetLogger(ctx)
	if err := tx.WithContext(ctx).Create(progress).Error; err != nil {
		if isDuplicateKey(err) {
			return model.ErrConflict
		}
		logger.Error("Error creating card progress in DB", "error", err, "card_id", progress.CardID.String())
		return fmt.Errorf("gormProgressRepository.Create: %w", err)
	}
	return nil
}

func (r *gormProgressRepository) FindByCardForUser(ctx context.Context, db *gorm.DB, userID, cardID uuid.UUID) (*model.CardProgress, error) {
	logger := middleware.GetLogger(ctx)
	var progress model.CardProgress

	result := db.WithContext(ctx).
		Joins("JOIN cards ON cards.card_id = card_progress.card_id").
		Joins("JOIN decks ON decks.deck_id = cards.deck_id").
		Where("card_progress.card_id = ? AND decks.user_id = ?", cardID, userID).
		First(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding card progress in DB", "error", result.Error, "card_id", cardID.String())
		return nil, fmt.Errorf("gormProgressRepository.FindByCardForUser: %w", result.Error)
	}
	return &progress, nil
}

func (r *gormProgressRepository) Update(ctx context.Context, tx *gorm.DB, progress *model.CardProgress) error {
	logger := middleware.GetLogger(ctx).With("card_id", progress.CardID.String())

	// ゼロ値 (interval=0, repetition=0) も書き込むため map で更新する
	result := tx.WithContext(ctx).Model(&model.CardProgress{}).
		Where("card_id = ? AND version = ?", progress.CardID, progress.Version).
		Updates(map[string]interface{}{
			"interval_days": progress.Interval,
			"repetition":    progress.Repetition,
			"efactor":       progress.EFactor,
			"next_review":   progress.NextReview,
			"last_reviewed": progress.LastReviewed,
			"version":       progress.Version + 1,
		})
	if result.Error != nil {
		logger.Error("Error updating card progress in DB", "error", result.Error)
		return fmt.Errorf("gormProgressRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		logger.Warn("Card progress version mismatch", "version", progress.Version)
		return model.ErrConflict
	}
	progress.Version++
	return nil
}

func (r *gormProgressRepository) FindDueByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, deckID *uuid.UUID, now time.Time) ([]model.DueCard, error) {
	logger := middleware.GetLogger(ctx)

	query := sqlBuilder.
		Select(
			"c.card_id", "c.deck_id", "c.word_en", "c.word_es", "c.phonetic", "c.examples", "c.created_at",
			"p.interval_days", "p.repetition", "p.efactor", "p.next_review",
		).
		From("cards c").
		Join("decks d ON d.deck_id = c.deck_id").
		Join("card_progress p ON p.card_id = c.card_id").
		Where(squirrel.Eq{"d.user_id": userID}).
		Where(squirrel.LtOrEq{"p.next_review": now}).
		OrderBy("p.next_review ASC", "c.card_id ASC")

	if deckID != nil {
		query = query.Where(squirrel.Eq{"c.deck_id": *deckID})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("gormProgressRepository.FindDueByUser: build query: %w", err)
	}

	var rows []model.DueCard
	if err := db.WithContext(ctx).Raw(sqlStr, args...).Scan(&rows).Error; err != nil {
		logger.Error("Error finding due cards in DB", "error", err, "user_id", userID.String())
		return nil, fmt.Errorf("gormProgressRepository.FindDueByUser: %w", err)
	}
	return rows, nil
}

func (r *gormProgressRepository) CountDueByUser(ctx context.Context, db *gorm.DB, now time.Time) ([]model.DueCount, error) {
	logger := middleware.GetLogger(ctx)

	sqlStr, args, err := sqlBuilder.
		Select("u.user_id", "u.email", "COUNT(*) AS due_count").
		From("card_progress p").
		Join("cards c ON c.card_id = p.card_id").
		Join("decks d ON d.deck_id = c.deck_id").
		Join("users u ON u.user_id = d.user_id").
		Where(squirrel.LtOrEq{"p.next_review": now}).
		GroupBy("u.user_id", "u.email").
		OrderBy("u.email ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("gormProgressRepository.CountDueByUser: build query: %w", err)
	}

	var counts []model.DueCount
	if err := db.WithContext(ctx).Raw(sqlStr, args...).Scan(&counts).Error; err != nil {
		logger.Error("Error counting due cards in DB", "error", err)
		return nil, fmt.Errorf("gormProgressRepository.CountDueByUser: %w", err)
	}
	return counts, nil
}
