package srs

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryAt(deckID uuid.UUID, next time.Time) Entry {
	return Entry{
		CardID: uuid.New(),
		DeckID: deckID,
		State:  State{EFactor: InitialEFactor, NextReview: next},
	}
}

func TestSelectDue(t *testing.T) {
	deckA := uuid.New()
	deckB := uuid.New()

	late := entryAt(deckA, testNow.Add(-time.Minute))
	early := entryAt(deckB, testNow.Add(-48*time.Hour))
	exact := entryAt(deckA, testNow)
	future := entryAt(deckA, testNow.Add(time.Second))
	middle := entryAt(deckA, testNow.Add(-3*time.Hour))

	all := []Entry{late, future, early, exact, middle}

	t.Run("正常系: 期限切れのみを早い順に返す", func(t *testing.T) {
		got := SelectDue(all, testNow, nil)
		require.Len(t, got, 4)
		assert.Equal(t, []uuid.UUID{early.CardID, middle.CardID, late.CardID, exact.CardID}, cardIDs(got))
		for i := 1; i < len(got); i++ {
			assert.False(t, got[i].State.NextReview.Before(got[i-1].State.NextReview))
		}
	})

	t.Run("正常系: デッキで絞り込む", func(t *testing.T) {
		got := SelectDue(all, testNow, &deckA)
		assert.Equal(t, []uuid.UUID{middle.CardID, late.CardID, exact.CardID}, cardIDs(got))
	})

	t.Run("正常系: 該当なしは空スライス", func(t *testing.T) {
		got := SelectDue([]Entry{future}, testNow, nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("入力スライスを並べ替えない", func(t *testing.T) {
		before := cardIDs(all)
		_ = SelectDue(all, testNow, nil)
		assert.Equal(t, before, cardIDs(all))
	})
}

func cardIDs(entries []Entry) []uuid.UUID {
	ids := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		ids[i] = e.CardID
	}
	return ids
}
