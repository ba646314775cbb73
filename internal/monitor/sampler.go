package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/TheCacophonyProject/battery-gauge/internal/estimator"
)

// Reader takes a single reading from the fuel gauge.
type Reader interface {
	Read() (estimator.Reading, error)
}

// DirectionChangeFunc is called when the charge direction changes.
type DirectionChangeFunc func(from, to estimator.Direction, r estimator.Reading)

// Sampler polls the gauge and feeds the estimator.
type Sampler struct {
	Gauge     Reader
	Estimator *estimator.Estimator
	Interval  time.Duration

	// Optional.
	OnDirectionChange DirectionChangeFunc
}

// Run makes a first reading then one every Interval until ctx is cancelled.
// The interval is slept after each reading so the period includes the read
// time. A failed read stops the sampler and is returned; there is no retry.
func (s *Sampler) Run(ctx context.Context) error {
	r, err := s.Gauge.Read()
	if err != nil {
		return fmt.Errorf("initial gauge read: %w", err)
	}
	s.Estimator.Init(r)
	log.Infof("Initial reading: %.3fV, %.2f%%", r.Voltage, r.Percent)

	for {
		if err := sleepCtx(ctx, s.Interval); err != nil {
			return err
		}

		r, err := s.Gauge.Read()
		if err != nil {
			return fmt.Errorf("gauge read: %w", err)
		}

		before := s.Estimator.Direction()
		rate, recorded := s.Estimator.Update(r)
		after := s.Estimator.Direction()

		if recorded {
			log.Debugf("Reading: %.3fV, %.2f%%, rate %.2f%%/h, %s", r.Voltage, r.Percent, rate, after)
		} else {
			log.Debugf("Reading: %.3fV, %.2f%%, change too small for a rate, %s", r.Voltage, r.Percent, after)
		}

		if before != after {
			log.Infof("Battery is now %s (%.2f%%)", after, r.Percent)
			if s.OnDirectionChange != nil {
				s.OnDirectionChange(before, after, r)
			}
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
