package gauge

import (
	"time"

	"github.com/TheCacophonyProject/battery-gauge/i2crequest"
)

// DBusBus reads the gauge through the I2C D-Bus service, for when another
// daemon owns the bus.
type DBusBus struct {
	address byte
	timeout time.Duration
}

func NewDBusBus(address byte, timeout time.Duration) *DBusBus {
	return &DBusBus{address: address, timeout: timeout}
}

func (d *DBusBus) ReadRegister(reg byte, n int) ([]byte, error) {
	return i2crequest.Tx(d.address, []byte{reg}, n, int(d.timeout.Milliseconds()))
}

// Check makes sure the gauge responds on the bus.
func (d *DBusBus) Check() error {
	return i2crequest.CheckAddress(d.address, int(d.timeout.Milliseconds()))
}

func (d *DBusBus) Close() error {
	return nil
}
