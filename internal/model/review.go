// internal/model/review.go
package model

import (
	"time"

	"github.com/google/uuid"

	"go_5_flashcard_srs/internal/srs"
)

// DueCard は復習対象カードとその進捗 (JOIN結果)
type DueCard struct {
	CardID     uuid.UUID `gorm:"column:card_id"`
	DeckID     uuid.UUID `gorm:"column:deck_id"`
	WordEN     string    `gorm:"column:word_en"`
	WordES     string    `gorm:"column:word_es"`
	Phonetic   string    `gorm:"column:phonetic"`
	Examples   []string  `gorm:"column:examples;serializer:json"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	Interval   int       `gorm:"column:interval_days"`
	Repetition int       `gorm:"column:repetition"`
	EFactor    float64   `gorm:"column:efactor"`
	NextReview time.Time `gorm:"column:next_review"`
}

// Entry はスケジューラの復習候補に変換します
func (d DueCard) Entry() srs.Entry {
	return srs.Entry{
		CardID: d.CardID,
		DeckID: d.DeckID,
		State: srs.State{
			Interval:   d.Interval,
			Repetition: d.Repetition,
			EFactor:    d.EFactor,
			NextReview: d.NextReview,
		},
	}
}

// DueCardResponse は復習対象カードのレスポンスDTO (カード + 進捗をフラットに返す)
type DueCardResponse struct {
	CardID     uuid.UUID `json:"id"`
	DeckID     uuid.UUID `json:"deck_id"`
	WordEN     string    `json:"word_en"`
	WordES     string    `json:"word_es"`
	Phonetic   string    `json:"phonetic"`
	Examples   []string  `json:"examples"`
	CreatedAt  time.Time `json:"created_at"`
	Interval   int       `json:"interval"`
	Repetition int       `json:"repetition"`
	EFactor    float64   `json:"efactor"`
	NextReview time.Time `json:"next_review"`
}

func NewDueCardResponse(d DueCard) DueCardResponse {
	examples := d.Examples
	if examples == nil {
		examples = []string{}
	}
	return DueCardResponse{
		CardID:     d.CardID,
		DeckID:     d.DeckID,
		WordEN:     d.WordEN,
		WordES:     d.WordES,
		Phonetic:   d.Phonetic,
		Examples:   examples,
		CreatedAt:  d.CreatedAt,
		Interval:   d.Interval,
		Repetition: d.Repetition,
		EFactor:    d.EFactor,
		NextReview: d.NextReview,
	}
}

// GradeCardRequest は採点リクエストのDTO。quality は 0〜5。
type GradeCardRequest struct {
	CardID  uuid.UUID `json:"card_id" validate:"required"`
	Quality *int      `json:"quality" validate:"required"`
}

// DueCount はユーザーごとの復習対象数 (リマインダー用)
type DueCount struct {
	UserID uuid.UUID `gorm:"column:user_id"`
	Email  string    `gorm:"column:email"`
	Count  int64     `gorm:"column:due_count"`
}
