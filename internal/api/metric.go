package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// StillCalculating is sent in place of a number until the smoothing window
// has filled.
const StillCalculating = "still calculating"

type metricKind int

const (
	metricNone metricKind = iota
	metricValue
	metricCalculating
)

// Metric is a numeric field that may also be "still calculating" or absent.
// It encodes as a JSON number, the string "still calculating", or null.
type Metric struct {
	kind  metricKind
	value float64
}

func Value(v float64) Metric { return Metric{kind: metricValue, value: v} }

func Calculating() Metric { return Metric{kind: metricCalculating} }

func None() Metric { return Metric{} }

// Float returns the value and whether there is one.
func (m Metric) Float() (float64, bool) {
	return m.value, m.kind == metricValue
}

func (m Metric) IsCalculating() bool { return m.kind == metricCalculating }

func (m Metric) IsNone() bool { return m.kind == metricNone }

func (m Metric) MarshalJSON() ([]byte, error) {
	switch m.kind {
	case metricValue:
		return json.Marshal(m.value)
	case metricCalculating:
		return json.Marshal(StillCalculating)
	default:
		return []byte("null"), nil
	}
}

func (m *Metric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = None()
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s != StillCalculating {
			return fmt.Errorf("unexpected metric string %q", s)
		}
		*m = Calculating()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Value(v)
	return nil
}
