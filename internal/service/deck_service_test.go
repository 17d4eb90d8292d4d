package service_test

import (
	"context"
	"testing"

	"go_5_flashcard_srs/internal/model"
	"go_5_flashcard_srs/internal/repository"
	"go_5_flashcard_srs/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckService(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	deckRepo := repository.NewGormDeckRepository()
	cardRepo := repository.NewGormCardRepository()
	progRepo := repository.NewGormProgressRepository()
	decks := service.NewDeckService(db, deckRepo, cardRepo)
	cards := service.NewCardService(db, deckRepo, cardRepo, progRepo, &fakeGenerator{})

	owner := seedUser(t, db, "owner@example.com")
	stranger := seedUser(t, db, "stranger@example.com")

	first, err := decks.CreateDeck(ctx, owner.UserID, &model.PostDeckRequest{Name: " Verbs "})
	require.NoError(t, err)
	assert.Equal(t, "Verbs", first.Name)
	second, err := decks.CreateDeck(ctx, owner.UserID, &model.PostDeckRequest{Name: "Nouns"})
	require.NoError(t, err)

	t.Run("異常系: 空白だけの名前", func(t *testing.T) {
		_, err := decks.CreateDeck(ctx, owner.UserID, &model.PostDeckRequest{Name: "   "})
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("正常系: 自分のデッキを新しい順に返す", func(t *testing.T) {
		list, err := decks.ListDecks(ctx, owner.UserID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, second.DeckID, list[0].DeckID)
		assert.Equal(t, first.DeckID, list[1].DeckID)

		list, err = decks.ListDecks(ctx, stranger.UserID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("異常系: 他人のデッキは取得できない", func(t *testing.T) {
		_, err := decks.GetDeck(ctx, stranger.UserID, first.DeckID)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("正常系: エクスポート", func(t *testing.T) {
		_, err := cards.CreateCard(ctx, owner.UserID, &model.PostCardRequest{
			DeckID: first.DeckID, WordEN: "run", WordES: "correr", Phonetic: "/rʌn/", Examples: []string{"I run.", "Yo corro."},
		})
		require.NoError(t, err)
		_, err = cards.CreateCard(ctx, owner.UserID, &model.PostCardRequest{DeckID: first.DeckID, WordEN: "eat", WordES: "comer"})
		require.NoError(t, err)

		export, err := decks.ExportDeck(ctx, owner.UserID, first.DeckID)
		require.NoError(t, err)
		assert.Equal(t, "Verbs", export.Deck.Name)
		require.Len(t, export.Cards, 2)

		byFront := map[string]model.ExportedCard{}
		for _, c := range export.Cards {
			byFront[c.Front] = c
		}
		assert.Equal(t, "correr", byFront["run"].Back)
		assert.Equal(t, "/rʌn/", byFront["run"].Phonetic)
		assert.Equal(t, []string{"I run.", "Yo corro."}, byFront["run"].Examples)
		assert.NotNil(t, byFront["eat"].Examples)

		_, err = decks.ExportDeck(ctx, stranger.UserID, first.DeckID)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("正常系: 削除するとカードと学習進捗も消える", func(t *testing.T) {
		err := decks.DeleteDeck(ctx, stranger.UserID, first.DeckID)
		assert.ErrorIs(t, err, model.ErrNotFound)

		require.NoError(t, decks.DeleteDeck(ctx, owner.UserID, first.DeckID))

		var cardCount, progressCount int64
		require.NoError(t, db.Model(&model.Card{}).Where("deck_id = ?", first.DeckID).Count(&cardCount).Error)
		require.NoError(t, db.Model(&model.CardProgress{}).Count(&progressCount).Error)
		assert.Zero(t, cardCount)
		assert.Zero(t, progressCount)

		err = decks.DeleteDeck(ctx, owner.UserID, first.DeckID)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
