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

package gauge

import (
	"time"

	"github.com/TheCacophonyProject/battery-gauge/internal/estimator"
	"github.com/pkg/errors"
)

// MAX1704x fuel gauge registers.
const (
	DefaultAddress  = 0x36
	VoltageRegister = 0x02 // VCELL, 12 bits in 1.25mV steps
	PercentRegister = 0x04 // SOC, whole percent then 1/256ths
)

// Bus reads a block of registers from the gauge.
type Bus interface {
	ReadRegister(reg byte, n int) ([]byte, error)
}

// DecodeVoltage converts the VCELL register to volts.
func DecodeVoltage(b [2]byte) float64 {
	raw := uint16(b[0])<<4 | uint16(b[1]>>4)
	return float64(raw) * 1.25 / 1000
}

// DecodePercent converts the SOC register to a percentage.
func DecodePercent(b [2]byte) float64 {
	return float64(b[0]) + float64(b[1])/256
}

type Gauge struct {
	bus Bus

	// Now stamps readings, time.Now if nil.
	Now func() time.Time
}

func New(bus Bus) *Gauge {
	return &Gauge{bus: bus}
}

// Read takes a reading. It is stamped once both registers have been read.
func (g *Gauge) Read() (estimator.Reading, error) {
	p, err := g.readWord(PercentRegister, "percent")
	if err != nil {
		return estimator.Reading{}, err
	}
	v, err := g.readWord(VoltageRegister, "voltage")
	if err != nil {
		return estimator.Reading{}, err
	}
	return estimator.Reading{
		Voltage:   DecodeVoltage(v),
		Percent:   DecodePercent(p),
		Timestamp: g.now(),
	}, nil
}

func (g *Gauge) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

func (g *Gauge) readWord(reg byte, name string) ([2]byte, error) {
	data, err := g.bus.ReadRegister(reg, 2)
	if err != nil {
		return [2]byte{}, errors.Wrapf(err, "reading %s register 0x%02X", name, reg)
	}
	if len(data) < 2 {
		return [2]byte{}, errors.Errorf("reading %s register 0x%02X: got %d bytes, expected 2", name, reg, len(data))
	}
	return [2]byte{data[0], data[1]}, nil
}
