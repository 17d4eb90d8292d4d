package service

import (
	"context"
	"errors"
	"time"

	"go_5_flashcard_srs/internal/config"
	"go_5_flashcard_srs/internal/middleware"
	"go_5_flashcard_srs/internal/model"
	"go_5_flashcard_srs/internal/repository"
	"go_5_flashcard_srs/internal/srs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewService interface {
	// GetDueCards は復習対象のカードを復習予定日時の早い順に返します
	GetDueCards(ctx context.Context, userID uuid.UUID, deckID *uuid.UUID) ([]model.DueCardResponse, error)
	// GradeCard は評価を受けて次回の復習予定を計算し、保存した進捗を返します
	GradeCard(ctx context.Context, userID, cardID uuid.UUID, quality int) (*model.CardProgress, error)
}

type reviewService struct {
	db       *gorm.DB
	progRepo repository.ProgressRepository
	cfg      *config.Config
	now      func() time.Time
}

func NewReviewService(db *gorm.DB, progRepo repository.ProgressRepository, cfg *config.Config) ReviewService {
	return &reviewService{
		db:       db,
		progRepo: progRepo,
		cfg:      cfg,
		now:      time.Now,
	}
}

var errCardNotFound = model.NewAppError("CARD_NOT_FOUND", "Card not found or unauthorized.", "card_id", model.ErrNotFound)

func (s *reviewService) GetDueCards(ctx context.Context, userID uuid.UUID, deckID *uuid.UUID) ([]model.DueCardResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)
	now := s.now().UTC()

	rows, err := s.progRepo.FindDueByUser(ctx, s.db, userID, deckID, now)
	if err != nil {
		logger.Error("Failed to find due cards", "error", err)
		return nil, storageError("Failed to get due cards.", err)
	}

	byID := make(map[uuid.UUID]model.DueCard, len(rows))
	entries := make([]srs.Entry, 0, len(rows))
	for _, r := range rows {
		byID[r.CardID] = r
		entries = append(entries, r.Entry())
	}

	due := srs.SelectDue(entries, now, deckID)
	if limit := s.cfg.App.DueLimit; limit > 0 && len(due) > limit {
		due = due[:limit]
	}

	responses := make([]model.DueCardResponse, 0, len(due))
	for _, e := range due {
		responses = append(responses, model.NewDueCardResponse(byID[e.CardID]))
	}

	logger.Info("Due cards retrieved", "count", len(responses))
	return responses, nil
}

func (s *reviewService) GradeCard(ctx context.Context, userID, cardID uuid.UUID, quality int) (*model.CardProgress, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "card_id", cardID)

	// 範囲外の評価は何も読まずに弾く
	q := srs.Quality(quality)
	if !q.Valid() {
		logger.Warn("Invalid quality", "quality", quality)
		return nil, model.NewAppError("INVALID_QUALITY", "Quality must be an integer between 0 and 5.", "quality", model.ErrInvalidQuality)
	}

	now := s.now().UTC()
	var graded *model.CardProgress

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		progress, err := s.progRepo.FindByCardForUser(ctx, tx, userID, cardID)
		if err != nil {
			return err
		}

		next, err := srs.Schedule(q, progress.State(), now)
		if err != nil {
			return err
		}
		progress.Apply(next)

		if err := s.progRepo.Update(ctx, tx, progress); err != nil {
			return err
		}
		graded = progress
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNotFound):
			logger.Warn("Card to grade not found")
			return nil, errCardNotFound
		case errors.Is(err, model.ErrConflict):
			logger.Warn("Progress was updated concurrently", "error", err)
			return nil, model.NewAppError("CONFLICT", "The card was graded concurrently. Please retry.", "", err)
		default:
			logger.Error("Failed to grade card", "error", err)
			return nil, storageError("Failed to save review result.", err)
		}
	}

	logger.Info("Card graded",
		"quality", q.String(),
		"interval", graded.Interval,
		"repetition", graded.Repetition,
		"efactor", graded.EFactor,
		"next_review", graded.NextReview,
	)
	return graded, nil
}
