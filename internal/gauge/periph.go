package gauge

import (
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// PeriphBus talks to the gauge directly through the kernel I2C driver.
type PeriphBus struct {
	bus i2c.BusCloser
	dev *i2c.Dev
}

// OpenPeriph opens the named I2C bus, or the first one found when busName is
// empty.
func OpenPeriph(busName string, address uint16) (*PeriphBus, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "initializing host")
	}
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, errors.Wrapf(err, "opening I2C bus '%s'", busName)
	}
	return &PeriphBus{
		bus: bus,
		dev: &i2c.Dev{Bus: bus, Addr: address},
	}, nil
}

func (p *PeriphBus) ReadRegister(reg byte, n int) ([]byte, error) {
	read := make([]byte, n)
	if err := p.dev.Tx([]byte{reg}, read); err != nil {
		return nil, err
	}
	return read, nil
}

func (p *PeriphBus) Close() error {
	return p.bus.Close()
}
