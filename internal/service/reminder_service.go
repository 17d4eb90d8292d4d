package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_5_flashcard_srs/internal/config"
	"go_5_flashcard_srs/internal/middleware"
	"go_5_flashcard_srs/internal/repository"

	"gorm.io/gorm"
)

type ReminderService interface {
	// SendDueReminders は復習対象が1枚以上あるユーザーにメールを送り、送信できた件数を返します
	SendDueReminders(ctx context.Context) (int, error)
}

type reminderService struct {
	db       *gorm.DB
	progRepo repository.ProgressRepository
	mailer   Mailer
	cfg      *config.Config
	now      func() time.Time
}

func NewReminderService(db *gorm.DB, progRepo repository.ProgressRepository, mailer Mailer, cfg *config.Config) ReminderService {
	return &reminderService{
		db:       db,
		progRepo: progRepo,
		mailer:   mailer,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *reminderService) SendDueReminders(ctx context.Context) (int, error) {
	logger := middleware.GetLogger(ctx)

	counts, err := s.progRepo.CountDueByUser(ctx, s.db, s.now().UTC())
	if err != nil {
		logger.Error("Failed to count due cards", "error", err)
		return 0, storageError("Failed to count due cards.", err)
	}

	sent := 0
	var errs []error
	for _, c := range counts {
		subject := fmt.Sprintf("[%s] You have %d cards to review", s.cfg.App.Name, c.Count)
		body := fmt.Sprintf("You have %d cards due for review today.\n\nStart studying here:\n%s/study\n", c.Count, s.cfg.Reminder.FrontendURL)

		// 1件の失敗で残りの送信を止めない
		if err := s.mailer.Send(ctx, c.Email, subject, body); err != nil {
			logger.Warn("Failed to send reminder", "error", err, "user_id", c.UserID)
			errs = append(errs, fmt.Errorf("send reminder to %s: %w", c.UserID, err))
			continue
		}
		sent++
	}

	logger.Info("Due reminders sent", "users", len(counts), "sent", sent, "failed", len(errs))
	return sent, errors.Join(errs...)
}
