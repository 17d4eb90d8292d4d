// internal/model/deck.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Deck はカードの束
type Deck struct {
	DeckID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Cards []Card `gorm:"foreignKey:DeckID;references:DeckID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Deck) TableName() string {
	return "decks"
}

// デッキ作成リクエストDTO
type PostDeckRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// DeckExport はエクスポート用の形式 (表面=英語, 裏面=スペイン語)
type DeckExport struct {
	Deck  DeckExportHeader `json:"deck"`
	Cards []ExportedCard   `json:"cards"`
}

type DeckExportHeader struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type ExportedCard struct {
	Front    string   `json:"front"`
	Back     string   `json:"back"`
	Phonetic string   `json:"phonetic"`
	Examples []string `json:"examples"`
}
