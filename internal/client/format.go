package client

import (
	"fmt"
	"math"
	"strings"

	"github.com/TheCacophonyProject/battery-gauge/internal/api"
	"github.com/TheCacophonyProject/battery-gauge/internal/estimator"
)

type Level string

const (
	LevelFull     Level = "full"
	LevelHigh     Level = "high"
	LevelMedium   Level = "medium"
	LevelLow      Level = "low"
	LevelCritical Level = "critical"
)

func LevelFor(percent float64) Level {
	switch {
	case percent >= 75:
		return LevelFull
	case percent >= 50:
		return LevelHigh
	case percent >= 25:
		return LevelMedium
	case percent >= 10:
		return LevelLow
	default:
		return LevelCritical
	}
}

func StatusLabel(d estimator.Direction) string {
	switch d {
	case estimator.Charging:
		return "Charging"
	case estimator.Discharging:
		return "Discharging"
	case estimator.Idle:
		return "Idle"
	default:
		return "Unknown"
	}
}

// FormatETA renders hours as "45m", "3h 20m" or "2d 5h".
func FormatETA(hours float64) string {
	switch {
	case hours < 1:
		return fmt.Sprintf("%dm", int(math.Round(hours*60)))
	case hours < 24:
		h := math.Floor(hours)
		m := math.Round((hours - h) * 60)
		return fmt.Sprintf("%dh %dm", int(h), int(m))
	default:
		d := math.Floor(hours / 24)
		h := math.Round(math.Mod(hours, 24))
		return fmt.Sprintf("%dd %dh", int(d), int(h))
	}
}

func formatRate(m api.Metric) string {
	if v, ok := m.Float(); ok {
		return fmt.Sprintf("%.2f%%/h", v)
	}
	if m.IsCalculating() {
		return api.StillCalculating
	}
	return "N/A"
}

func formatETAMetric(m api.Metric) string {
	if v, ok := m.Float(); ok {
		return FormatETA(v)
	}
	if m.IsCalculating() {
		return api.StillCalculating
	}
	return "N/A"
}

// Summary is the text printed by the status command.
func Summary(s *api.Status) string {
	eta := "Time left:"
	if s.Status == estimator.Charging {
		eta = "Until full:"
	}
	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "%-12s%s\n", label, value)
	}
	line("Battery:", fmt.Sprintf("%.1f%% (%s)", s.Percent, LevelFor(s.Percent)))
	line("Voltage:", fmt.Sprintf("%.2fV", s.Voltage))
	line("Status:", StatusLabel(s.Status))
	line("Rate:", formatRate(s.RatePerHour))
	line(eta, formatETAMetric(s.ETAHours))
	return b.String()
}
