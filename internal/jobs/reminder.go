// Package jobs は定期実行するバックグラウンド処理をまとめる
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go_5_flashcard_srs/internal/middleware"
	"go_5_flashcard_srs/internal/service"

	"github.com/go-co-op/gocron"
)

// 1回のリマインダー送信に許す時間
const reminderRunTimeout = 5 * time.Minute

// ReminderScheduler は復習リマインダーを一定間隔で送る
type ReminderScheduler struct {
	scheduler     *gocron.Scheduler
	reminders     service.ReminderService
	intervalHours int
	logger        *slog.Logger
}

func NewReminderScheduler(reminders service.ReminderService, intervalHours int, logger *slog.Logger) *ReminderScheduler {
	return &ReminderScheduler{
		scheduler:     gocron.NewScheduler(time.UTC),
		reminders:     reminders,
		intervalHours: intervalHours,
		logger:        logger.With("job", "due_reminder"),
	}
}

// Start はジョブを登録し、非同期で実行を開始します
func (s *ReminderScheduler) Start() error {
	if _, err := s.scheduler.Every(s.intervalHours).Hours().Do(s.run); err != nil {
		return fmt.Errorf("schedule due reminder: %w", err)
	}
	s.scheduler.StartAsync()
	s.logger.Info("Reminder scheduler started", "interval_hours", s.intervalHours)
	return nil
}

// Stop は実行中のジョブの完了を待たずにスケジューラを止めます
func (s *ReminderScheduler) Stop() {
	s.scheduler.Stop()
	s.logger.Info("Reminder scheduler stopped")
}

func (s *ReminderScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), reminderRunTimeout)
	defer cancel()
	ctx = middleware.WithLogger(ctx, s.logger)

	start := time.Now()
	sent, err := s.reminders.SendDueReminders(ctx)
	if err != nil {
		s.logger.Error("Due reminder run finished with errors", "error", err, "sent", sent, "duration", time.Since(start))
		return
	}
	s.logger.Info("Due reminder run finished", "sent", sent, "duration", time.Since(start))
}
