package monitor

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/TheCacophonyProject/go-utils/logging"
	arg "github.com/alexflint/go-arg"
)

// DeviceArgs are shared by every subcommand that talks to the gauge.
// Pointer fields are only applied when given, so they override the config
// file.
type DeviceArgs struct {
	Config    string  `arg:"-c, --config" help:"YAML config file"`
	Address   *string `arg:"--address" help:"The address of the fuel gauge, in hex (0xnn)"`
	Bus       *string `arg:"--bus" help:"I2C bus name, the first bus is used if empty"`
	Transport *string `arg:"--transport" help:"How to reach the bus: periph or dbus"`
	logging.LogArgs
}

type ServiceArgs struct {
	DeviceArgs
	Interval     *time.Duration `arg:"--interval" help:"Time between readings"`
	Window       *int           `arg:"--window" help:"Number of rate samples to average"`
	MinDelta     *float64       `arg:"--min-delta" help:"Smallest percent change used for a rate sample"`
	Listen       *string        `arg:"--listen" help:"Address for the HTTP server"`
	Advertise    bool           `arg:"--advertise" help:"Advertise the HTTP server over mDNS"`
	ReportEvents bool           `arg:"--report-events" help:"Report direction changes to the event reporter"`
}

func (ServiceArgs) Version() string {
	return version
}

type ReadArgs struct {
	DeviceArgs
	Count int `arg:"-n, --count" help:"Number of readings to take"`
}

func (ReadArgs) Version() string {
	return version
}

func parse(dest interface{}, input []string) error {
	parser, err := arg.NewParser(arg.Config{}, dest)
	if err != nil {
		return err
	}
	err = parser.Parse(input)
	if errors.Is(err, arg.ErrHelp) {
		parser.WriteHelp(os.Stdout)
		os.Exit(0)
	}
	if errors.Is(err, arg.ErrVersion) {
		fmt.Println(version)
		os.Exit(0)
	}
	return err
}

func procServiceArgs(input []string) (ServiceArgs, error) {
	args := ServiceArgs{}
	err := parse(&args, input)
	return args, err
}

func procReadArgs(input []string) (ReadArgs, error) {
	args := ReadArgs{Count: 1}
	err := parse(&args, input)
	return args, err
}

func (a DeviceArgs) apply(c *Config) {
	if a.Address != nil {
		c.Address = *a.Address
	}
	if a.Bus != nil {
		c.Bus = *a.Bus
	}
	if a.Transport != nil {
		c.Transport = *a.Transport
	}
}

func (a ServiceArgs) apply(c *Config) {
	a.DeviceArgs.apply(c)
	if a.Interval != nil {
		c.Interval = *a.Interval
	}
	if a.Window != nil {
		c.Window = *a.Window
	}
	if a.MinDelta != nil {
		c.MinDelta = *a.MinDelta
	}
	if a.Listen != nil {
		c.Listen = *a.Listen
	}
	if a.Advertise {
		c.Advertise = true
	}
	if a.ReportEvents {
		c.ReportEvents = true
	}
}

// config loads the config file then applies any flags given.
func (a ServiceArgs) config() (Config, error) {
	c, err := LoadConfig(a.Config)
	if err != nil {
		return Config{}, err
	}
	a.apply(&c)
	return c, c.Validate()
}

func (a ReadArgs) config() (Config, error) {
	c, err := LoadConfig(a.Config)
	if err != nil {
		return Config{}, err
	}
	a.DeviceArgs.apply(&c)
	return c, c.Validate()
}
