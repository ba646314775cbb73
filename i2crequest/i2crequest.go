package i2crequest

import (
	"errors"
	"sync"

	"github.com/godbus/dbus"
)

const (
	dbusName = "org.cacophony.i2c"
	dbusPath = "/org/cacophony/i2c"
)

// TxResponse is a canned reply used in place of the D-Bus service.
type TxResponse struct {
	Response []byte
	Err      error
}

var (
	mockMu        sync.Mutex
	mockActive    bool
	mockResponses []TxResponse
)

var ErrNoMockResponse = errors.New("no mock Tx responses left")

// MockTxResponses makes Tx return the given responses in order instead of
// calling the I2C service. Once they are used up Tx returns ErrNoMockResponse.
func MockTxResponses(responses []TxResponse) {
	mockMu.Lock()
	defer mockMu.Unlock()
	mockActive = true
	mockResponses = append([]TxResponse(nil), responses...)
}

// StopMocking goes back to sending requests to the I2C service.
func StopMocking() {
	mockMu.Lock()
	defer mockMu.Unlock()
	mockActive = false
	mockResponses = nil
}

func nextMock() (TxResponse, bool) {
	mockMu.Lock()
	defer mockMu.Unlock()
	if !mockActive {
		return TxResponse{}, false
	}
	if len(mockResponses) == 0 {
		return TxResponse{Err: ErrNoMockResponse}, true
	}
	r := mockResponses[0]
	mockResponses = mockResponses[1:]
	return r, true
}

// Tx writes `write` to the device at `address` then reads `readLen` bytes,
// through the I2C service which serialises access to the bus.
// Timeout is in milliseconds.
func Tx(address byte, write []byte, readLen, timeout int) ([]byte, error) {
	if r, ok := nextMock(); ok {
		return r.Response, r.Err
	}

	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, err
	}
	obj := conn.Object(dbusName, dbusPath)

	var response []byte
	if err := obj.Call(dbusName+".Tx", 0, address, write, readLen, timeout).Store(&response); err != nil {
		return nil, err
	}

	return response, nil
}

func CheckAddress(address byte, timeout int) error {
	_, err := Tx(address, []byte{0x00}, 1, timeout)
	return err
}
