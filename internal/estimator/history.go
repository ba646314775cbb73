package estimator

// RateHistory keeps the most recent rate samples in a fixed size ring.
// Pushing onto a full history drops the oldest sample.
type RateHistory struct {
	buf   []float64
	start int
	size  int
}

// NewRateHistory returns an empty history holding at most capacity samples.
// A capacity below 1 is treated as 1.
func NewRateHistory(capacity int) *RateHistory {
	if capacity < 1 {
		capacity = 1
	}
	return &RateHistory{buf: make([]float64, capacity)}
}

func (h *RateHistory) Push(rate float64) {
	c := len(h.buf)
	if h.size < c {
		h.buf[(h.start+h.size)%c] = rate
		h.size++
		return
	}
	h.buf[h.start] = rate
	h.start = (h.start + 1) % c
}

func (h *RateHistory) Len() int { return h.size }

func (h *RateHistory) Cap() int { return len(h.buf) }

func (h *RateHistory) Full() bool { return h.size == len(h.buf) }

// Values returns a copy of the samples, oldest first.
func (h *RateHistory) Values() []float64 {
	out := make([]float64, h.size)
	for i := range out {
		out[i] = h.buf[(h.start+i)%len(h.buf)]
	}
	return out
}

// Mean returns the arithmetic mean of the samples, false when empty.
func (h *RateHistory) Mean() (float64, bool) {
	return mean(h.Values())
}

func mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}
