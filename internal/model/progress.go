// internal/model/progress.go
package model

import (
	"time"

	"github.com/google/uuid"

	"go_5_flashcard_srs/internal/srs"
)

// CardProgress はカード1枚の復習状態 (SM-2)
type CardProgress struct {
	CardID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"card_id"`
	Interval     int        `gorm:"column:interval_days;not null;default:0" json:"interval"`
	Repetition   int        `gorm:"not null;default:0" json:"repetition"`
	EFactor      float64    `gorm:"column:efactor;not null;default:2.5" json:"efactor"`
	NextReview   time.Time  `gorm:"not null;index" json:"next_review"`
	LastReviewed *time.Time `json:"last_reviewed"`
	Version      int        `gorm:"not null;default:0" json:"-"` // 楽観ロック用
	CreatedAt    time.Time  `json:"-"`
	UpdatedAt    time.Time  `json:"-"`
}

func (CardProgress) TableName() string {
	return "card_progress"
}

// NewCardProgress はカード作成時の初期進捗を返します
func NewCardProgress(cardID uuid.UUID, now time.Time) *CardProgress {
	p := &CardProgress{CardID: cardID}
	p.Apply(srs.InitialState(now))
	return p
}

// State はスケジューラに渡す形に変換します
func (p *CardProgress) State() srs.State {
	return srs.State{
		Interval:     p.Interval,
		Repetition:   p.Repetition,
		EFactor:      p.EFactor,
		NextReview:   p.NextReview,
		LastReviewed: p.LastReviewed,
	}
}

// Apply はスケジューラの計算結果を反映します (Version は変更しない)
func (p *CardProgress) Apply(s srs.State) {
	p.Interval = s.Interval
	p.Repetition = s.Repetition
	p.EFactor = s.EFactor
	p.NextReview = s.NextReview
	p.LastReviewed = s.LastReviewed
}
