package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"go_5_flashcard_srs/internal/model"
	"go_5_flashcard_srs/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB はテスト用のインメモリSQLiteを返します
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repository.NewSQLiteDB(":memory:", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{UserID: uuid.New(), Email: email, PasswordHash: "x"}
	require.NoError(t, repository.NewGormUserRepository().Create(context.Background(), db, user))
	return user
}

func seedDeck(t *testing.T, db *gorm.DB, userID uuid.UUID, name string) *model.Deck {
	t.Helper()
	deck := &model.Deck{DeckID: uuid.New(), UserID: userID, Name: name}
	require.NoError(t, repository.NewGormDeckRepository().Create(context.Background(), db, deck))
	return deck
}
