package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 4, 9, 30, 0, 0, time.UTC)

func TestSchedule(t *testing.T) {
	fresh := InitialState(testNow.Add(-time.Hour))

	tests := []struct {
		name           string
		quality        Quality
		prior          State
		wantInterval   int
		wantRepetition int
		wantNext       time.Time
	}{
		{
			name:           "正常系: 初回 Good は1日後",
			quality:        QualityGood,
			prior:          fresh,
			wantInterval:   1,
			wantRepetition: 1,
			wantNext:       testNow.AddDate(0, 0, 1),
		},
		{
			name:           "正常系: 2回目の Good は6日後",
			quality:        QualityGood,
			prior:          State{Interval: 1, Repetition: 1, EFactor: 2.5},
			wantInterval:   6,
			wantRepetition: 2,
			wantNext:       testNow.AddDate(0, 0, 6),
		},
		{
			name:           "正常系: 3回目の Good は round(6*2.5)=15日後",
			quality:        QualityGood,
			prior:          State{Interval: 6, Repetition: 2, EFactor: 2.5},
			wantInterval:   15,
			wantRepetition: 3,
			wantNext:       testNow.AddDate(0, 0, 15),
		},
		{
			name:           "正常系: Easy は Good と同じ間隔計算",
			quality:        QualityEasy,
			prior:          State{Interval: 6, Repetition: 2, EFactor: 2.5},
			wantInterval:   15,
			wantRepetition: 3,
			wantNext:       testNow.AddDate(0, 0, 15),
		},
		{
			name:           "正常系: Again は1分後・連続正解数リセット",
			quality:        QualityAgain,
			prior:          State{Interval: 15, Repetition: 3, EFactor: 2.6},
			wantInterval:   0,
			wantRepetition: 0,
			wantNext:       testNow.Add(time.Minute),
		},
		{
			name:           "正常系: Hard は10分後・連続正解数は加算",
			quality:        QualityHard,
			prior:          State{Interval: 6, Repetition: 2, EFactor: 2.5},
			wantInterval:   0,
			wantRepetition: 3,
			wantNext:       testNow.Add(10 * time.Minute),
		},
		{
			name:           "境界値: 0 は忘却扱いで翌日",
			quality:        0,
			prior:          State{Interval: 15, Repetition: 3, EFactor: 2.5},
			wantInterval:   1,
			wantRepetition: 0,
			wantNext:       testNow.AddDate(0, 0, 1),
		},
		{
			name:           "境界値: 2 は忘却扱いで翌日",
			quality:        2,
			prior:          State{Interval: 6, Repetition: 2, EFactor: 2.5},
			wantInterval:   1,
			wantRepetition: 0,
			wantNext:       testNow.AddDate(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Schedule(tt.quality, tt.prior, testNow)
			require.NoError(t, err)

			assert.Equal(t, tt.wantInterval, got.Interval)
			assert.Equal(t, tt.wantRepetition, got.Repetition)
			assert.True(t, tt.wantNext.Equal(got.NextReview), "next_review: want %s, got %s", tt.wantNext, got.NextReview)
			require.NotNil(t, got.LastReviewed)
			assert.True(t, testNow.Equal(*got.LastReviewed))
			assert.True(t, got.NextReview.After(testNow), "next_review must be in the future")
		})
	}
}

func TestSchedule_EFactor(t *testing.T) {
	tests := []struct {
		name    string
		quality Quality
		prior   float64
		want    float64
	}{
		{name: "Easy は +0.1", quality: QualityEasy, prior: 2.5, want: 2.6},
		{name: "Good は変化なし", quality: QualityGood, prior: 2.5, want: 2.5},
		{name: "Hard は -0.14", quality: QualityHard, prior: 2.5, want: 2.36},
		{name: "Again は -0.54", quality: QualityAgain, prior: 2.5, want: 1.96},
		{name: "0 は -0.8", quality: 0, prior: 2.5, want: 1.7},
		{name: "下限 1.3 で止まる", quality: 0, prior: 1.4, want: MinEFactor},
		{name: "下限のまま Again", quality: QualityAgain, prior: MinEFactor, want: MinEFactor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Schedule(tt.quality, State{Repetition: 2, Interval: 6, EFactor: tt.prior}, testNow)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got.EFactor, 1e-9)
		})
	}
}

func TestSchedule_EFactorNeverBelowFloor(t *testing.T) {
	for q := MinQuality; q <= MaxQuality; q++ {
		for _, ef := range []float64{MinEFactor, 1.31, 1.5, 2.0, 2.5, 3.2} {
			for rep := 0; rep < 4; rep++ {
				// Interval 0 は Hard の直後の状態
				for _, interval := range []int{0, rep * 3} {
					got, err := Schedule(q, State{Interval: interval, Repetition: rep, EFactor: ef}, testNow)
					require.NoError(t, err)
					assert.GreaterOrEqual(t, got.EFactor, MinEFactor, "q=%d ef=%v rep=%d", q, ef, rep)
					assert.True(t, got.NextReview.Sub(testNow) >= time.Minute, "q=%d ef=%v rep=%d interval=%d", q, ef, rep, interval)
				}
			}
		}
	}
}

func TestSchedule_GoodAfterHardStaysInFuture(t *testing.T) {
	state := InitialState(testNow)
	now := testNow
	chain := []Quality{QualityGood, QualityGood, QualityHard, QualityGood, QualityGood}
	// Hard 後の Good は最低1日、その次は round(1*2.36)=2
	wantIntervals := []int{1, 6, 0, 1, 2}

	for i, q := range chain {
		got, err := Schedule(q, state, now)
		require.NoError(t, err)
		assert.Equal(t, wantIntervals[i], got.Interval, "step %d q=%s", i, q)
		assert.True(t, got.NextReview.Sub(now) >= time.Minute, "step %d q=%s next=%s", i, q, got.NextReview)
		state = got
		now = got.NextReview
	}
	assert.Equal(t, 5, state.Repetition)
}

func TestSchedule_AgainIgnoresPriorState(t *testing.T) {
	priors := []State{
		InitialState(testNow),
		{Interval: 1, Repetition: 1, EFactor: 2.5},
		{Interval: 120, Repetition: 9, EFactor: 3.1},
		{Interval: 0, Repetition: 4, EFactor: MinEFactor},
	}
	for _, p := range priors {
		got, err := Schedule(QualityAgain, p, testNow)
		require.NoError(t, err)
		assert.Equal(t, 0, got.Repetition)
		assert.Equal(t, 0, got.Interval)
		assert.True(t, testNow.Add(time.Minute).Equal(got.NextReview))
	}
}

func TestSchedule_InvalidQuality(t *testing.T) {
	for _, q := range []Quality{-1, 6, 42} {
		_, err := Schedule(q, InitialState(testNow), testNow)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidQuality)
	}
}

func TestSchedule_Idempotent(t *testing.T) {
	prior := State{Interval: 6, Repetition: 2, EFactor: 2.36, NextReview: testNow.Add(-time.Hour)}

	first, err := Schedule(QualityGood, prior, testNow)
	require.NoError(t, err)
	second, err := Schedule(QualityGood, prior, testNow)
	require.NoError(t, err)

	assert.Equal(t, first.Interval, second.Interval)
	assert.Equal(t, first.Repetition, second.Repetition)
	assert.Equal(t, first.EFactor, second.EFactor)
	assert.True(t, first.NextReview.Equal(second.NextReview))
	assert.True(t, first.LastReviewed.Equal(*second.LastReviewed))
}

func TestQuality_String(t *testing.T) {
	assert.Equal(t, "again", QualityAgain.String())
	assert.Equal(t, "easy", QualityEasy.String())
	assert.Equal(t, "quality(2)", Quality(2).String())
}
