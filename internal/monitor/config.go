package monitor

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/TheCacophonyProject/battery-gauge/internal/estimator"
	"gopkg.in/yaml.v3"
)

const (
	TransportPeriph = "periph"
	TransportDBus   = "dbus"
)

type Config struct {
	Address      string        `yaml:"address"`
	Bus          string        `yaml:"bus"`
	Transport    string        `yaml:"transport"`
	DBusTimeout  time.Duration `yaml:"dbus-timeout"`
	Interval     time.Duration `yaml:"interval"`
	Window       int           `yaml:"window"`
	MinDelta     float64       `yaml:"min-delta"`
	Listen       string        `yaml:"listen"`
	Advertise    bool          `yaml:"advertise"`
	ReportEvents bool          `yaml:"report-events"`
}

func DefaultConfig() Config {
	return Config{
		Address:     "0x36",
		Transport:   TransportPeriph,
		DBusTimeout: time.Second,
		Interval:    30 * time.Second,
		Window:      estimator.DefaultWindow,
		MinDelta:    estimator.DefaultMinDelta,
		Listen:      "0.0.0.0:5000",
	}
}

// LoadConfig reads a YAML config file over the defaults. Keys missing from
// the file keep their default. An empty path just returns the defaults.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return c, nil
}

func (c Config) Validate() error {
	if _, err := hexStringToByte(c.Address); err != nil {
		return fmt.Errorf("invalid address: %w", err)
	}
	if c.Transport != TransportPeriph && c.Transport != TransportDBus {
		return fmt.Errorf("unknown transport '%s', should be '%s' or '%s'", c.Transport, TransportPeriph, TransportDBus)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", c.Interval)
	}
	if c.Window < 1 {
		return fmt.Errorf("window must be at least 1, got %d", c.Window)
	}
	if c.MinDelta < 0 {
		return fmt.Errorf("min delta can not be negative, got %f", c.MinDelta)
	}
	return nil
}

func (c Config) EstimatorConfig() estimator.Config {
	return estimator.Config{Window: c.Window, MinDelta: c.MinDelta}
}

func hexStringToByte(hexStr string) (byte, error) {
	if len(hexStr) != 4 {
		return 0, fmt.Errorf("invalid hex string length: %d", len(hexStr))
	}
	if !strings.HasPrefix(hexStr, "0x") {
		return 0, fmt.Errorf("invalid hex string prefix, should be '0x': %s", hexStr)
	}
	val, err := strconv.ParseUint(hexStr[2:], 16, 8) // 16 for base, 8 for bit size
	if err != nil {
		return 0, err
	}
	return byte(val), nil
}
