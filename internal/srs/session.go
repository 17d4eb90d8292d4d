package srs

import "github.com/google/uuid"

// Session は1回の復習セッション内の作業キュー。
// 「Again」と評価されたカードは末尾に戻され、セッション終了前にもう一度出題される。
// グローバルな復習対象 (next_review) とは独立している。
type Session struct {
	queue    []Entry
	reviewed int
}

func NewSession(entries []Entry) *Session {
	q := make([]Entry, len(entries))
	copy(q, entries)
	return &Session{queue: q}
}

// Next は次に出題するカードを返します。キューが空なら false。
func (s *Session) Next() (Entry, bool) {
	if len(s.queue) == 0 {
		return Entry{}, false
	}
	return s.queue[0], true
}

// Record は先頭カードの評価結果を反映します。
// cardID が先頭と一致しない場合は何もしない。
func (s *Session) Record(cardID uuid.UUID, q Quality) bool {
	if len(s.queue) == 0 || s.queue[0].CardID != cardID {
		return false
	}
	head := s.queue[0]
	s.queue = s.queue[1:]
	s.reviewed++

	if q == QualityAgain {
		s.queue = append(s.queue, head)
	}
	return true
}

// Remaining はキューに残っているカード数
func (s *Session) Remaining() int {
	return len(s.queue)
}

// Reviewed はこれまでに評価した回数 (再出題分も含む)
func (s *Session) Reviewed() int {
	return s.reviewed
}
