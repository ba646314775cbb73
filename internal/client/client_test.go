package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/TheCacophonyProject/battery-gauge/internal/api"
	"github.com/TheCacophonyProject/battery-gauge/internal/estimator"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	snapshot estimator.Snapshot
	ok       bool
}

func (f fakeSource) Snapshot() (estimator.Snapshot, bool) {
	return f.snapshot, f.ok
}

func newTestClient(t *testing.T, source api.StateSource) *Client {
	srv := httptest.NewServer(api.NewRouter(source, logrus.New()))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", time.Second, logrus.New())
}

func TestStatusFromService(t *testing.T) {
	rates := make([]float64, estimator.DefaultWindow)
	for i := range rates {
		rates[i] = -1.5
	}
	c := newTestClient(t, fakeSource{ok: true, snapshot: estimator.Snapshot{
		Latest:    estimator.Reading{Voltage: 3.8, Percent: 40},
		Direction: estimator.Discharging,
		Rates:     rates,
		Window:    estimator.DefaultWindow,
	}})

	s, err := c.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, s.Available)
	assert.Equal(t, estimator.Discharging, s.Status)
	rate, ok := s.RatePerHour.Float()
	require.True(t, ok)
	assert.Equal(t, 1.5, rate)
	eta, ok := s.ETAHours.Float()
	require.True(t, ok)
	assert.Equal(t, 26.67, eta)
}

func TestStatusStillCalculating(t *testing.T) {
	c := newTestClient(t, fakeSource{ok: true, snapshot: estimator.Snapshot{
		Latest:    estimator.Reading{Voltage: 3.8, Percent: 50},
		Direction: estimator.Charging,
		Rates:     []float64{2, 2, 2},
		Window:    estimator.DefaultWindow,
	}})

	s, err := c.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, s.RatePerHour.IsCalculating())
	assert.True(t, s.ETAHours.IsCalculating())
	assert.Contains(t, Summary(s), "Rate:       still calculating")
}

func TestStatusNoData(t *testing.T) {
	c := newTestClient(t, fakeSource{})
	_, err := c.Status(context.Background())
	assert.ErrorIs(t, err, ErrNoData)
}

func TestStatusUnexpectedCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second, logrus.New()).Status(context.Background())
	require.Error(t, err)
	assert.Equal(t, "got 500: boom", err.Error())
}

func TestFormatETA(t *testing.T) {
	assert.Equal(t, "30m", FormatETA(0.5))
	assert.Equal(t, "0m", FormatETA(0))
	assert.Equal(t, "5h 0m", FormatETA(5))
	assert.Equal(t, "1d 3h", FormatETA(26.67))
	assert.Equal(t, "3h 15m", FormatETA(3.25))
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, LevelFull, LevelFor(75))
	assert.Equal(t, LevelHigh, LevelFor(74.99))
	assert.Equal(t, LevelMedium, LevelFor(25))
	assert.Equal(t, LevelLow, LevelFor(10))
	assert.Equal(t, LevelCritical, LevelFor(9.99))
}

func TestSummary(t *testing.T) {
	s := &api.Status{
		Available:   true,
		Voltage:     4.05,
		Percent:     90,
		Status:      estimator.Charging,
		RatePerHour: api.Value(2),
		ETAHours:    api.Value(5),
	}
	out := Summary(s)
	assert.Contains(t, out, "Battery:    90.0% (full)")
	assert.Contains(t, out, "Status:     Charging")
	assert.Contains(t, out, "Rate:       2.00%/h")
	assert.Contains(t, out, "Until full: 5h 0m")

	s.Status = estimator.Idle
	s.ETAHours = api.None()
	assert.Contains(t, Summary(s), "Time left:  N/A")
}
