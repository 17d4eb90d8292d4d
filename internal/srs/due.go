package srs

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Entry は復習候補のカード1枚
type Entry struct {
	CardID uuid.UUID
	DeckID uuid.UUID
	State  State
}

// SelectDue は now 時点で復習対象のカードを、復習予定日時の早い順に返します。
// deckID が nil でなければそのデッキのカードだけに絞り込む。
// 入力スライスは変更しない。
func SelectDue(entries []Entry, now time.Time, deckID *uuid.UUID) []Entry {
	due := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if deckID != nil && e.DeckID != *deckID {
			continue
		}
		if !e.State.Due(now) {
			continue
		}
		due = append(due, e)
	}

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].State.NextReview.Before(due[j].State.NextReview)
	})
	return due
}
