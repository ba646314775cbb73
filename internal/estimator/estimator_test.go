package estimator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func reading(percent float64, after time.Duration) Reading {
	return Reading{Voltage: 3.7, Percent: percent, Timestamp: t0.Add(after)}
}

func TestRateHistoryEvictsOldest(t *testing.T) {
	h := NewRateHistory(10)
	for i := 1; i <= 11; i++ {
		h.Push(float64(i))
		require.LessOrEqual(t, h.Len(), 10)
	}
	assert.True(t, h.Full())
	assert.Equal(t, []float64{2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, h.Values())

	m, ok := h.Mean()
	assert.True(t, ok)
	assert.Equal(t, 6.5, m)
}

func TestRateHistoryEmptyMean(t *testing.T) {
	h := NewRateHistory(0)
	assert.Equal(t, 1, h.Cap())
	_, ok := h.Mean()
	assert.False(t, ok)
}

func TestNoSnapshotBeforeFirstReading(t *testing.T) {
	e := New(DefaultConfig())
	_, ok := e.Snapshot()
	assert.False(t, ok)
}

func TestInitialReadingIsIdleWithNoRates(t *testing.T) {
	e := New(DefaultConfig())
	e.Init(reading(50, 0))

	s, ok := e.Snapshot()
	require.True(t, ok)
	assert.Equal(t, Idle, s.Direction)
	assert.Empty(t, s.Rates)
	assert.Equal(t, 50.0, s.Latest.Percent)
	assert.Equal(t, DefaultWindow, s.Window)
}

func TestSmallChangeIsNotRecorded(t *testing.T) {
	e := New(DefaultConfig())
	e.Init(reading(50, 0))

	_, recorded := e.Update(reading(50.04, 30*time.Second))
	assert.False(t, recorded)

	s, _ := e.Snapshot()
	assert.Empty(t, s.Rates)
	assert.Equal(t, 50.04, s.Latest.Percent)
	assert.Equal(t, Idle, s.Direction)
}

func TestChangeAtMinimumDeltaIsRecorded(t *testing.T) {
	e := New(DefaultConfig())
	e.Init(reading(0, 0))

	rate, recorded := e.Update(reading(0.05, time.Hour))
	assert.True(t, recorded)
	assert.InDelta(t, 0.05, rate, 1e-9)
}

func TestNonPositiveTimeIsNotRecorded(t *testing.T) {
	e := New(DefaultConfig())
	e.Init(reading(50, time.Hour))

	_, recorded := e.Update(reading(60, time.Hour))
	assert.False(t, recorded)
	_, recorded = e.Update(reading(70, 0))
	assert.False(t, recorded)

	s, _ := e.Snapshot()
	assert.Empty(t, s.Rates)
	assert.Equal(t, 70.0, s.Latest.Percent)
}

func TestRateIsPercentPerHour(t *testing.T) {
	e := New(DefaultConfig())
	e.Init(reading(50, 0))

	rate, recorded := e.Update(reading(49, 30*time.Minute))
	require.True(t, recorded)
	assert.InDelta(t, -2.0, rate, 1e-9)
	assert.Equal(t, Discharging, e.Direction())

	rate, recorded = e.Update(reading(51, 60*time.Minute))
	require.True(t, recorded)
	assert.InDelta(t, 4.0, rate, 1e-9)
	assert.Equal(t, Charging, e.Direction())
}

func TestDeltaIsFromLastReadingEvenWhenSkipped(t *testing.T) {
	e := New(DefaultConfig())
	e.Init(reading(50, 0))

	_, recorded := e.Update(reading(50.03, time.Hour))
	require.False(t, recorded)
	// 50.03 -> 50.06 is below the threshold, 50 -> 50.06 would not have been.
	_, recorded = e.Update(reading(50.06, 2*time.Hour))
	assert.False(t, recorded)
}

func TestDirectionStaysStaleWhenChangeIsSkipped(t *testing.T) {
	e := New(DefaultConfig())
	e.Init(reading(50, 0))
	e.Update(reading(51, time.Hour))
	require.Equal(t, Charging, e.Direction())

	// Battery now slightly dropping, but below the threshold.
	e.Update(reading(50.98, 2*time.Hour))
	assert.Equal(t, Charging, e.Direction())
}

func TestHistoryIsCappedAtWindow(t *testing.T) {
	e := New(DefaultConfig())
	e.Init(reading(0, 0))
	for i := 1; i <= 11; i++ {
		_, recorded := e.Update(reading(float64(i), time.Duration(i)*time.Hour))
		require.True(t, recorded)
	}
	s, _ := e.Snapshot()
	assert.Len(t, s.Rates, DefaultWindow)
	assert.True(t, s.Full())
}

func TestSnapshotIsACopy(t *testing.T) {
	e := New(DefaultConfig())
	e.Init(reading(50, 0))
	e.Update(reading(51, time.Hour))

	s, _ := e.Snapshot()
	s.Rates[0] = -100
	s2, _ := e.Snapshot()
	assert.InDelta(t, 1.0, s2.Rates[0], 1e-9)
}

func TestUpdateBeforeInit(t *testing.T) {
	e := New(DefaultConfig())
	_, recorded := e.Update(reading(40, 0))
	assert.False(t, recorded)
	s, ok := e.Snapshot()
	require.True(t, ok)
	assert.Equal(t, 40.0, s.Latest.Percent)
}

func TestDirectionFromRates(t *testing.T) {
	tests := []struct {
		name  string
		rates []float64
		want  Direction
	}{
		{"empty", nil, Idle},
		{"positive mean", []float64{2, 2, -1}, Charging},
		{"negative mean", []float64{-2, 1}, Discharging},
		{"zero mean", []float64{1.5, -1.5}, Idle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DirectionFromRates(tt.rates))
		})
	}
}

func TestEstimateETA(t *testing.T) {
	eta, ok := EstimateETA(1.5, 40, Discharging)
	assert.True(t, ok)
	assert.InDelta(t, 26.6667, eta, 1e-4)

	eta, ok = EstimateETA(2, 90, Charging)
	assert.True(t, ok)
	assert.InDelta(t, 5.0, eta, 1e-9)

	_, ok = EstimateETA(0, 50, Discharging)
	assert.False(t, ok)
	_, ok = EstimateETA(-1, 50, Charging)
	assert.False(t, ok)
	_, ok = EstimateETA(2, 50, Idle)
	assert.False(t, ok)
}

func TestConcurrentReadsDuringUpdates(t *testing.T) {
	e := New(DefaultConfig())
	e.Init(reading(50, 0))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 1; i <= 200; i++ {
			e.Update(reading(50-float64(i)*0.1, time.Duration(i)*time.Minute))
		}
	}()
	for i := 0; i < 200; i++ {
		s, ok := e.Snapshot()
		require.True(t, ok)
		require.LessOrEqual(t, len(s.Rates), DefaultWindow)
	}
	<-done
	assert.Equal(t, Discharging, e.Direction())
}
