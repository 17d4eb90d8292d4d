package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go_5_flashcard_srs/internal/config"
	"go_5_flashcard_srs/internal/model"
	"go_5_flashcard_srs/internal/repository/mocks"
	"go_5_flashcard_srs/internal/service"
	servicemocks "go_5_flashcard_srs/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReminderService_SendDueReminders(t *testing.T) {
	cfg := &config.Config{
		App:      config.AppConfig{Name: "flashcard-srs"},
		Reminder: config.ReminderConfig{FrontendURL: "http://localhost:5173"},
	}
	counts := []model.DueCount{
		{UserID: uuid.New(), Email: "a@example.com", Count: 3},
		{UserID: uuid.New(), Email: "b@example.com", Count: 12},
	}

	t.Run("正常系: 全員に送信", func(t *testing.T) {
		progRepo := mocks.NewProgressRepository(t)
		mailer := servicemocks.NewMailer(t)
		progRepo.On("CountDueByUser", mock.Anything, mock.Anything, mock.AnythingOfType("time.Time")).Return(counts, nil).Once()
		mailer.On("Send", mock.Anything, "a@example.com",
			mock.MatchedBy(func(subject string) bool { return strings.Contains(subject, "3 cards") }),
			mock.MatchedBy(func(body string) bool { return strings.Contains(body, "http://localhost:5173/study") }),
		).Return(nil).Once()
		mailer.On("Send", mock.Anything, "b@example.com", mock.Anything, mock.Anything).Return(nil).Once()

		sent, err := service.NewReminderService(nil, progRepo, mailer, cfg).SendDueReminders(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, sent)
	})

	t.Run("異常系: 1件失敗しても残りは送る", func(t *testing.T) {
		progRepo := mocks.NewProgressRepository(t)
		mailer := servicemocks.NewMailer(t)
		progRepo.On("CountDueByUser", mock.Anything, mock.Anything, mock.AnythingOfType("time.Time")).Return(counts, nil).Once()
		mailer.On("Send", mock.Anything, "a@example.com", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()
		mailer.On("Send", mock.Anything, "b@example.com", mock.Anything, mock.Anything).Return(nil).Once()

		sent, err := service.NewReminderService(nil, progRepo, mailer, cfg).SendDueReminders(context.Background())
		assert.Error(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("異常系: 集計に失敗", func(t *testing.T) {
		progRepo := mocks.NewProgressRepository(t)
		mailer := servicemocks.NewMailer(t)
		progRepo.On("CountDueByUser", mock.Anything, mock.Anything, mock.AnythingOfType("time.Time")).Return(nil, errors.New("db down")).Once()

		sent, err := service.NewReminderService(nil, progRepo, mailer, cfg).SendDueReminders(context.Background())
		assert.ErrorIs(t, err, model.ErrStorage)
		assert.Zero(t, sent)
		mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
