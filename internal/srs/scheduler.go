// internal/srs/scheduler.go
package srs

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Quality は復習時の自己評価 (0〜5)
type Quality int

// クライアントのボタンが送る値。2 は UI からは送られない。
const (
	QualityAgain Quality = 1
	QualityHard  Quality = 3
	QualityGood  Quality = 4
	QualityEasy  Quality = 5
)

const (
	MinQuality Quality = 0
	MaxQuality Quality = 5

	// 3 以上を「覚えていた」とみなす
	passThreshold Quality = 3

	InitialEFactor = 2.5
	MinEFactor     = 1.3

	againDelay = 1 * time.Minute
	hardDelay  = 10 * time.Minute
)

// ErrInvalidQuality は評価値が 0〜5 の範囲外のときに返される
var ErrInvalidQuality = errors.New("quality must be between 0 and 5")

// Valid は評価値が受け付け可能な範囲かを返します
func (q Quality) Valid() bool {
	return q >= MinQuality && q <= MaxQuality
}

func (q Quality) String() string {
	switch q {
	case QualityAgain:
		return "again"
	case QualityHard:
		return "hard"
	case QualityGood:
		return "good"
	case QualityEasy:
		return "easy"
	default:
		return fmt.Sprintf("quality(%d)", int(q))
	}
}

// State はカード1枚分の復習状態
type State struct {
	Interval     int // 日数
	Repetition   int
	EFactor      float64
	NextReview   time.Time
	LastReviewed *time.Time
}

// Due は now 時点で復習対象かどうかを返します
func (s State) Due(now time.Time) bool {
	return !s.NextReview.After(now)
}

// InitialState はカード作成時の状態を返します。作成直後から復習対象になる。
func InitialState(now time.Time) State {
	return State{
		Interval:   0,
		Repetition: 0,
		EFactor:    InitialEFactor,
		NextReview: now,
	}
}

// Schedule は評価値 q と直前の状態から次の状態を計算します。
// 副作用はなく、同じ入力には常に同じ結果を返す。
func Schedule(q Quality, prior State, now time.Time) (State, error) {
	if !q.Valid() {
		return State{}, fmt.Errorf("%w: got %d", ErrInvalidQuality, int(q))
	}

	next := sm2(q, prior)

	// ボタンごとの復習タイミング (SM-2 の間隔より優先)
	switch q {
	case QualityAgain:
		next.NextReview = now.Add(againDelay)
		next.Interval = 0
		next.Repetition = 0
	case QualityHard:
		next.NextReview = now.Add(hardDelay)
		next.Interval = 0
	default:
		// 4, 5 に加えて 0, 2 もここに来る。DESIGN.md 参照。
		next.NextReview = now.AddDate(0, 0, next.Interval)
	}

	reviewed := now
	next.LastReviewed = &reviewed
	return next, nil
}

// sm2 は SM-2 の基本計算 (間隔・連続正解数・EF) だけを行う
func sm2(q Quality, prior State) State {
	var next State

	if q >= passThreshold {
		switch prior.Repetition {
		case 0:
			next.Interval = 1
		case 1:
			next.Interval = 6
		default:
			// Hard の直後は前回間隔が 0 なので最低1日にする
			next.Interval = max(1, int(math.Round(float64(prior.Interval)*prior.EFactor)))
		}
		next.Repetition = prior.Repetition + 1
	} else {
		next.Repetition = 0
		next.Interval = 1
	}

	d := float64(MaxQuality - q)
	next.EFactor = prior.EFactor + (0.1 - d*(0.08+d*0.02))
	if next.EFactor < MinEFactor {
		next.EFactor = MinEFactor
	}
	return next
}
