// internal/model/card.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Card は単語カード (英語 → スペイン語)
type Card struct {
	CardID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DeckID    uuid.UUID `gorm:"type:uuid;not null;index" json:"deck_id"`
	WordEN    string    `gorm:"column:word_en;not null" json:"word_en"`
	WordES    string    `gorm:"column:word_es;not null" json:"word_es"`
	Phonetic  string    `json:"phonetic"`
	Examples  []string  `gorm:"serializer:json" json:"examples"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`

	// カードと学習進捗は1対1。カード削除時に一緒に消える。
	Progress *CardProgress `gorm:"foreignKey:CardID;references:CardID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Card) TableName() string {
	return "cards"
}

// カード作成リクエストDTO
type PostCardRequest struct {
	DeckID   uuid.UUID `json:"deck_id" validate:"required"`
	WordEN   string    `json:"word_en" validate:"required,max=200"`
	WordES   string    `json:"word_es" validate:"required,max=200"`
	Phonetic string    `json:"phonetic" validate:"max=200"`
	Examples []string  `json:"examples" validate:"max=10,dive,max=500"`
}

// GenerateCardRequest はAI生成リクエスト。deck_id がなければプレビューのみ。
type GenerateCardRequest struct {
	Word   string     `json:"word" validate:"required,max=100"`
	DeckID *uuid.UUID `json:"deck_id,omitempty"`
}

// GeneratedCard は生成プロバイダから返るカード内容
type GeneratedCard struct {
	WordEN      string   `json:"word_en"`
	Translation string   `json:"translation"`
	Phonetic    string   `json:"phonetic"`
	Examples    []string `json:"examples"`
}

// CardPreview は保存せずに返すプレビュー
type CardPreview struct {
	Preview  bool     `json:"preview"`
	WordEN   string   `json:"word_en"`
	WordES   string   `json:"word_es"`
	Phonetic string   `json:"phonetic"`
	Examples []string `json:"examples"`
}

// GenerateCardResult は Preview か Card のどちらか一方だけを持つ
type GenerateCardResult struct {
	Preview *CardPreview
	Card    *Card
}

// ExtractWordResponse は画像から抽出した単語
type ExtractWordResponse struct {
	Word string `json:"word"`
}
