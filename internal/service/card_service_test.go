package service_test

import (
	"context"
	"testing"
	"time"

	"go_5_flashcard_srs/internal/config"
	"go_5_flashcard_srs/internal/model"
	"go_5_flashcard_srs/internal/repository"
	"go_5_flashcard_srs/internal/service"
	"go_5_flashcard_srs/internal/srs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeGenerator は固定のカードを返す生成プロバイダ
type fakeGenerator struct {
	card  *model.GeneratedCard
	word  string
	err   error
	calls int
}

func (f *fakeGenerator) GenerateCard(ctx context.Context, word string) (*model.GeneratedCard, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.card, nil
}

func (f *fakeGenerator) ExtractWord(ctx context.Context, image []byte, mimeType string) (string, error) {
	f.calls++
	return f.word, f.err
}

type cardFixture struct {
	db        *gorm.DB
	generator *fakeGenerator
	cards     service.CardService
	reviews   service.ReviewService
	owner     *model.User
	deck      *model.Deck
	stranger  *model.User
}

func newCardFixture(t *testing.T) cardFixture {
	t.Helper()
	db := newTestDB(t)
	generator := &fakeGenerator{card: &model.GeneratedCard{
		WordEN:      "Run",
		Translation: "correr",
		Phonetic:    "/rʌn/",
		Examples:    []string{"I run every morning.", "Corro cada mañana."},
	}}
	progRepo := repository.NewGormProgressRepository()
	owner := seedUser(t, db, "owner@example.com")
	return cardFixture{
		db:        db,
		generator: generator,
		cards: service.NewCardService(db,
			repository.NewGormDeckRepository(),
			repository.NewGormCardRepository(),
			progRepo,
			generator,
		),
		reviews:  service.NewReviewService(db, progRepo, &config.Config{}),
		owner:    owner,
		deck:     seedDeck(t, db, owner.UserID, "Verbs"),
		stranger: seedUser(t, db, "stranger@example.com"),
	}
}

func TestCardService_CreateCard(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 初期状態の学習進捗も作られる", func(t *testing.T) {
		f := newCardFixture(t)
		before := time.Now().UTC()

		card, err := f.cards.CreateCard(ctx, f.owner.UserID, &model.PostCardRequest{
			DeckID: f.deck.DeckID, WordEN: " dog ", WordES: "perro", Examples: []string{"a", "b"},
		})
		require.NoError(t, err)
		assert.Equal(t, "dog", card.WordEN)

		progress, err := repository.NewGormProgressRepository().FindByCardForUser(ctx, f.db, f.owner.UserID, card.CardID)
		require.NoError(t, err)
		assert.Equal(t, 0, progress.Interval)
		assert.Equal(t, 0, progress.Repetition)
		assert.InDelta(t, srs.InitialEFactor, progress.EFactor, 1e-9)
		assert.Nil(t, progress.LastReviewed)
		assert.WithinDuration(t, before, progress.NextReview, 5*time.Second)

		// 作成直後から復習対象になる
		due, err := f.reviews.GetDueCards(ctx, f.owner.UserID, nil)
		require.NoError(t, err)
		require.Len(t, due, 1)
		assert.Equal(t, card.CardID, due[0].CardID)
	})

	t.Run("異常系: 他人のデッキには作れない", func(t *testing.T) {
		f := newCardFixture(t)

		card, err := f.cards.CreateCard(ctx, f.stranger.UserID, &model.PostCardRequest{
			DeckID: f.deck.DeckID, WordEN: "dog", WordES: "perro",
		})
		assert.Nil(t, card)
		assert.ErrorIs(t, err, model.ErrForbidden)

		cards, err := repository.NewGormCardRepository().FindByDeck(ctx, f.db, f.deck.DeckID)
		require.NoError(t, err)
		assert.Empty(t, cards)
	})
}

func TestCardService_GradeLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newCardFixture(t)

	card, err := f.cards.CreateCard(ctx, f.owner.UserID, &model.PostCardRequest{DeckID: f.deck.DeckID, WordEN: "cat", WordES: "gato"})
	require.NoError(t, err)

	graded, err := f.reviews.GradeCard(ctx, f.owner.UserID, card.CardID, int(srs.QualityGood))
	require.NoError(t, err)
	assert.Equal(t, 1, graded.Interval)
	assert.Equal(t, 1, graded.Repetition)

	due, err := f.reviews.GetDueCards(ctx, f.owner.UserID, nil)
	require.NoError(t, err)
	assert.Empty(t, due, "Good の後は翌日まで出題されない")

	_, err = f.reviews.GradeCard(ctx, f.stranger.UserID, card.CardID, int(srs.QualityGood))
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = f.reviews.GradeCard(ctx, f.owner.UserID, card.CardID, 9)
	assert.ErrorIs(t, err, model.ErrInvalidQuality)

	stored, err := repository.NewGormProgressRepository().FindByCardForUser(ctx, f.db, f.owner.UserID, card.CardID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Repetition, "不正な評価では更新されない")
	assert.Equal(t, 1, stored.Version)
}

func TestCardService_GenerateCard(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: deck_id なしはプレビューのみ", func(t *testing.T) {
		f := newCardFixture(t)

		result, err := f.cards.GenerateCard(ctx, f.owner.UserID, &model.GenerateCardRequest{Word: "running"})
		require.NoError(t, err)
		require.NotNil(t, result.Preview)
		assert.Nil(t, result.Card)
		assert.True(t, result.Preview.Preview)
		assert.Equal(t, "Run", result.Preview.WordEN)
		assert.Equal(t, "correr", result.Preview.WordES)

		cards, err := repository.NewGormCardRepository().FindByDeck(ctx, f.db, f.deck.DeckID)
		require.NoError(t, err)
		assert.Empty(t, cards)
	})

	t.Run("正常系: deck_id ありは保存する", func(t *testing.T) {
		f := newCardFixture(t)

		result, err := f.cards.GenerateCard(ctx, f.owner.UserID, &model.GenerateCardRequest{Word: "running", DeckID: &f.deck.DeckID})
		require.NoError(t, err)
		require.NotNil(t, result.Card)
		assert.Nil(t, result.Preview)
		assert.Equal(t, "correr", result.Card.WordES)

		_, err = repository.NewGormProgressRepository().FindByCardForUser(ctx, f.db, f.owner.UserID, result.Card.CardID)
		assert.NoError(t, err)
	})

	t.Run("異常系: 他人のデッキは生成前に弾く", func(t *testing.T) {
		f := newCardFixture(t)

		_, err := f.cards.GenerateCard(ctx, f.stranger.UserID, &model.GenerateCardRequest{Word: "run", DeckID: &f.deck.DeckID})
		assert.ErrorIs(t, err, model.ErrForbidden)
		assert.Equal(t, 0, f.generator.calls)
	})

	t.Run("異常系: AI応答を解析できない", func(t *testing.T) {
		f := newCardFixture(t)
		f.generator.err = model.ErrUpstreamParse

		_, err := f.cards.GenerateCard(ctx, f.owner.UserID, &model.GenerateCardRequest{Word: "run"})
		assert.ErrorIs(t, err, model.ErrUpstreamParse)
		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "AI_PARSE_ERROR", appErr.Detail.Code)
	})
}

func TestCardService_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newCardFixture(t)

	first, err := f.cards.CreateCard(ctx, f.owner.UserID, &model.PostCardRequest{DeckID: f.deck.DeckID, WordEN: "one", WordES: "uno"})
	require.NoError(t, err)
	second, err := f.cards.CreateCard(ctx, f.owner.UserID, &model.PostCardRequest{DeckID: f.deck.DeckID, WordEN: "two", WordES: "dos"})
	require.NoError(t, err)

	t.Run("正常系: 新しい順に返す", func(t *testing.T) {
		cards, err := f.cards.ListCards(ctx, f.owner.UserID, f.deck.DeckID)
		require.NoError(t, err)
		require.Len(t, cards, 2)
		assert.Equal(t, second.CardID, cards[0].CardID)
	})

	t.Run("異常系: 他人のデッキは一覧できない", func(t *testing.T) {
		_, err := f.cards.ListCards(ctx, f.stranger.UserID, f.deck.DeckID)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("異常系: 他人のカードは削除できない", func(t *testing.T) {
		err := f.cards.DeleteCard(ctx, f.stranger.UserID, first.CardID)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("正常系: 削除すると学習進捗も消える", func(t *testing.T) {
		require.NoError(t, f.cards.DeleteCard(ctx, f.owner.UserID, first.CardID))

		_, err := repository.NewGormProgressRepository().FindByCardForUser(ctx, f.db, f.owner.UserID, first.CardID)
		assert.ErrorIs(t, err, model.ErrNotFound)

		err = f.cards.DeleteCard(ctx, f.owner.UserID, first.CardID)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestCardService_ExtractWord(t *testing.T) {
	ctx := context.Background()
	f := newCardFixture(t)
	f.generator.word = "Apple"

	_, err := f.cards.ExtractWord(ctx, nil, "image/png")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	assert.Equal(t, 0, f.generator.calls)

	word, err := f.cards.ExtractWord(ctx, []byte{0x89, 0x50, 0x4e, 0x47}, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "Apple", word)

	f.generator.err = model.ErrUpstreamUnavailable
	_, err = f.cards.ExtractWord(ctx, []byte{0x89}, "image/png")
	assert.ErrorIs(t, err, model.ErrUpstreamUnavailable)
}

func TestCardService_DeckIDIsolation(t *testing.T) {
	ctx := context.Background()
	f := newCardFixture(t)
	other := seedDeck(t, f.db, f.owner.UserID, "Nouns")

	_, err := f.cards.CreateCard(ctx, f.owner.UserID, &model.PostCardRequest{DeckID: f.deck.DeckID, WordEN: "run", WordES: "correr"})
	require.NoError(t, err)
	noun, err := f.cards.CreateCard(ctx, f.owner.UserID, &model.PostCardRequest{DeckID: other.DeckID, WordEN: "house", WordES: "casa"})
	require.NoError(t, err)

	due, err := f.reviews.GetDueCards(ctx, f.owner.UserID, &other.DeckID)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, noun.CardID, due[0].CardID)

	unknown := uuid.New()
	due, err = f.reviews.GetDueCards(ctx, f.owner.UserID, &unknown)
	require.NoError(t, err)
	assert.Empty(t, due)
}
