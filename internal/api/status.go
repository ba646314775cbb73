package api

import (
	"math"
	"strconv"

	"github.com/TheCacophonyProject/battery-gauge/internal/estimator"
)

// Status is the body of a successful /api/battery response.
type Status struct {
	Available   bool                `json:"available"`
	Voltage     float64             `json:"voltage"`
	Percent     float64             `json:"percent"`
	Status      estimator.Direction `json:"status"`
	RatePerHour Metric              `json:"rate_per_hour"`
	ETAHours    Metric              `json:"eta_hours"`
}

// BuildStatus renders a snapshot. Rate and ETA are only given once the
// smoothing window is full.
func BuildStatus(s estimator.Snapshot) Status {
	status := Status{
		Available:   true,
		Voltage:     round(s.Latest.Voltage, 3),
		Percent:     round(s.Latest.Percent, 2),
		Status:      s.Direction,
		RatePerHour: Calculating(),
		ETAHours:    Calculating(),
	}
	if !s.Full() {
		return status
	}

	rate := math.Abs(s.MeanRate())
	status.RatePerHour = Value(round(rate, 2))
	if eta, ok := estimator.EstimateETA(rate, s.Latest.Percent, s.Direction); ok {
		status.ETAHours = Value(round(eta, 2))
	} else {
		status.ETAHours = None()
	}
	return status
}

// round rounds the exact binary value to the given decimal places, ties to
// even, so 50.125 gives 50.12.
func round(v float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}
