package jobs

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"go_5_flashcard_srs/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReminderScheduler_Run(t *testing.T) {
	t.Run("正常系: リマインダーを送る", func(t *testing.T) {
		reminders := mocks.NewReminderService(t)
		reminders.On("SendDueReminders", mock.Anything).Return(2, nil).Once()

		NewReminderScheduler(reminders, 24, discardLogger()).run()
	})

	t.Run("異常系: エラーでも panic しない", func(t *testing.T) {
		reminders := mocks.NewReminderService(t)
		reminders.On("SendDueReminders", mock.Anything).Return(0, errors.New("db down")).Once()

		assert.NotPanics(t, func() {
			NewReminderScheduler(reminders, 24, discardLogger()).run()
		})
	})
}

func TestReminderScheduler_StartStop(t *testing.T) {
	reminders := mocks.NewReminderService(t)
	// 開始直後に1回実行される
	reminders.On("SendDueReminders", mock.Anything).Return(0, nil).Maybe()

	s := NewReminderScheduler(reminders, 12, discardLogger())
	require.NoError(t, s.Start())
	assert.Len(t, s.scheduler.Jobs(), 1)
	assert.True(t, s.scheduler.IsRunning())

	s.Stop()
	assert.False(t, s.scheduler.IsRunning())
}
