/*
battery-gauge - Battery charge rate and time remaining from a fuel gauge.
Copyright (C) 2025, The Cacophony Project

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package estimator

import (
	"math"
	"sync"
	"time"
)

const (
	DefaultWindow   = 10   // Rate samples averaged
	DefaultMinDelta = 0.05 // Smallest percent change that counts as a rate sample
)

// Reading is a single sample from the fuel gauge.
type Reading struct {
	Voltage   float64
	Percent   float64
	Timestamp time.Time
}

type Config struct {
	Window   int
	MinDelta float64
}

func DefaultConfig() Config {
	return Config{
		Window:   DefaultWindow,
		MinDelta: DefaultMinDelta,
	}
}

// Estimator holds the latest reading, the charge direction and the recent
// rate samples. There is a single writer (the sampler) and any number of
// readers; readers get a copy through Snapshot.
type Estimator struct {
	mu        sync.RWMutex
	minDelta  float64
	ready     bool
	latest    Reading
	previous  Reading
	direction Direction
	history   *RateHistory
}

func New(c Config) *Estimator {
	return &Estimator{
		minDelta:  c.MinDelta,
		direction: Idle,
		history:   NewRateHistory(c.Window),
	}
}

// Init records the first reading. No rate is calculated from it.
func (e *Estimator) Init(r Reading) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.init(r)
}

func (e *Estimator) init(r Reading) {
	e.ready = true
	e.latest = r
	e.previous = r
	e.direction = Idle
	e.history = NewRateHistory(e.history.Cap())
}

// Update takes a new reading and returns the rate in %/hour calculated from
// the previous one and whether it was added to the history. A rate is only
// added when the percent moved by at least the minimum delta and time moved
// forward. The direction is recalculated from the history either way, so it
// can lag behind the reading when the change was too small to count.
// Update before Init behaves like Init.
func (e *Estimator) Update(r Reading) (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.ready {
		e.init(r)
		return 0, false
	}

	deltaPercent := r.Percent - e.previous.Percent
	deltaHours := r.Timestamp.Sub(e.previous.Timestamp).Hours()

	var rate float64
	recorded := false
	if math.Abs(deltaPercent) >= e.minDelta && deltaHours > 0 {
		rate = deltaPercent / deltaHours
		e.history.Push(rate)
		recorded = true
	}

	e.direction = DirectionFromRates(e.history.Values())
	e.latest = r
	e.previous = r
	return rate, recorded
}

// Direction returns the current charge direction.
func (e *Estimator) Direction() Direction {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.direction
}

// Snapshot is a consistent copy of the estimator state.
type Snapshot struct {
	Latest    Reading
	Direction Direction
	Rates     []float64 // Oldest first
	Window    int
}

// Snapshot returns a copy of the current state, false if no reading has been
// taken yet.
func (e *Estimator) Snapshot() (Snapshot, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.ready {
		return Snapshot{}, false
	}
	return Snapshot{
		Latest:    e.latest,
		Direction: e.direction,
		Rates:     e.history.Values(),
		Window:    e.history.Cap(),
	}, true
}

// Full reports whether the smoothing window has filled up.
func (s Snapshot) Full() bool {
	return len(s.Rates) >= s.Window
}

// MeanRate is the mean of the rate samples in %/hour, 0 when there are none.
func (s Snapshot) MeanRate() float64 {
	m, _ := mean(s.Rates)
	return m
}
