package monitor

import (
	"fmt"
	"time"

	"github.com/TheCacophonyProject/battery-gauge/internal/gauge"
	"github.com/TheCacophonyProject/go-utils/logging"
)

// RunRead takes readings from the gauge and prints them, for checking the
// wiring without starting the service.
func RunRead(inputArgs []string, ver string) error {
	version = ver
	args, err := procReadArgs(inputArgs)
	if err != nil {
		return fmt.Errorf("failed to parse args: %v", err)
	}
	log = logging.NewLogger(args.LogLevel)

	conf, err := args.config()
	if err != nil {
		return err
	}
	bus, err := openBus(conf)
	if err != nil {
		return err
	}
	defer bus.Close()

	g := gauge.New(bus)
	for i := 0; i < args.Count; i++ {
		if i > 0 {
			time.Sleep(time.Second)
		}
		r, err := g.Read()
		if err != nil {
			return err
		}
		fmt.Printf("%s  %.3fV  %.2f%%\n", r.Timestamp.Format("2006-01-02 15:04:05"), r.Voltage, r.Percent)
	}
	return nil
}
