package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go_5_flashcard_srs/internal/model"
	"go_5_flashcard_srs/internal/service/mocks"
)

func dueCard(en, es string) model.DueCardResponse {
	return model.DueCardResponse{
		CardID:     uuid.New(),
		DeckID:     uuid.New(),
		WordEN:     en,
		WordES:     es,
		Examples:   []string{"I " + strings.ToLower(en) + " every day."},
		EFactor:    2.5,
		NextReview: time.Now().Add(-time.Hour),
	}
}

func progressAt(cardID uuid.UUID, next time.Time) *model.CardProgress {
	return &model.CardProgress{CardID: cardID, EFactor: 2.5, NextReview: next}
}

func TestRunStudy(t *testing.T) {
	userID := uuid.New()
	ctx := context.Background()

	t.Run("正常系: Again のカードはセッション内で再出題される", func(t *testing.T) {
		run := dueCard("Run", "Correr")
		eat := dueCard("Eat", "Comer")
		review := mocks.NewReviewService(t)

		review.On("GradeCard", mock.Anything, userID, run.CardID, 1).Return(progressAt(run.CardID, time.Now().Add(time.Minute)), nil).Once()
		review.On("GradeCard", mock.Anything, userID, eat.CardID, 4).Return(progressAt(eat.CardID, time.Now().AddDate(0, 0, 1)), nil).Once()
		review.On("GradeCard", mock.Anything, userID, run.CardID, 5).Return(progressAt(run.CardID, time.Now().AddDate(0, 0, 1)), nil).Once()

		in := strings.NewReader("\n1\n\ngood\n\n5\n")
		var out bytes.Buffer

		got, err := runStudy(ctx, in, &out, review, userID, []model.DueCardResponse{run, eat})
		require.NoError(t, err)
		assert.Equal(t, summary{Reviewed: 3, Remaining: 0}, got)
		assert.Equal(t, 2, strings.Count(out.String(), "] Run"))
		assert.Contains(t, out.String(), "Correr")
		assert.Contains(t, out.String(), "Session complete.")
	})

	t.Run("正常系: 不正な評価は再入力を求める", func(t *testing.T) {
		card := dueCard("Run", "Correr")
		review := mocks.NewReviewService(t)
		review.On("GradeCard", mock.Anything, userID, card.CardID, 3).Return(progressAt(card.CardID, time.Now().Add(10*time.Minute)), nil).Once()

		var out bytes.Buffer
		got, err := runStudy(ctx, strings.NewReader("\n2\n7\n3\n"), &out, review, userID, []model.DueCardResponse{card})
		require.NoError(t, err)
		assert.Equal(t, 1, got.Reviewed)
		assert.Contains(t, out.String(), `unknown grade "2"`)
		assert.Contains(t, out.String(), `unknown grade "7"`)
	})

	t.Run("正常系: q で中断すると残りを返す", func(t *testing.T) {
		review := mocks.NewReviewService(t)
		cards := []model.DueCardResponse{dueCard("Run", "Correr"), dueCard("Eat", "Comer")}

		var out bytes.Buffer
		got, err := runStudy(ctx, strings.NewReader("\nq\n"), &out, review, userID, cards)
		require.NoError(t, err)
		assert.Equal(t, summary{Reviewed: 0, Remaining: 2}, got)
		review.AssertNotCalled(t, "GradeCard", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("正常系: 対象なし", func(t *testing.T) {
		review := mocks.NewReviewService(t)
		var out bytes.Buffer
		got, err := runStudy(ctx, strings.NewReader(""), &out, review, userID, nil)
		require.NoError(t, err)
		assert.Equal(t, summary{}, got)
		assert.Contains(t, out.String(), "No cards due")
	})

	t.Run("異常系: 採点エラーで終了する", func(t *testing.T) {
		card := dueCard("Run", "Correr")
		review := mocks.NewReviewService(t)
		review.On("GradeCard", mock.Anything, userID, card.CardID, 4).Return(nil, model.ErrConflict).Once()

		var out bytes.Buffer
		got, err := runStudy(ctx, strings.NewReader("\n4\n"), &out, review, userID, []model.DueCardResponse{card})
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrConflict))
		assert.Equal(t, 1, got.Remaining)
	})
}
