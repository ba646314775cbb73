package estimator

type Direction string

const (
	Charging    Direction = "charging"
	Discharging Direction = "discharging"
	Idle        Direction = "idle"
)

// DirectionFromRates uses the sign of the mean rate. No rates means idle.
func DirectionFromRates(rates []float64) Direction {
	m, ok := mean(rates)
	switch {
	case !ok:
		return Idle
	case m > 0:
		return Charging
	case m < 0:
		return Discharging
	default:
		return Idle
	}
}

// EstimateETA returns the hours until the battery is empty (discharging) or
// full (charging). ratePerHour is the absolute mean rate. There is no
// estimate when idle or when the rate is not positive.
func EstimateETA(ratePerHour, percent float64, direction Direction) (float64, bool) {
	if ratePerHour <= 0 {
		return 0, false
	}
	switch direction {
	case Discharging:
		return percent / ratePerHour, true
	case Charging:
		return (100 - percent) / ratePerHour, true
	default:
		return 0, false
	}
}
