package monitor

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/TheCacophonyProject/battery-gauge/internal/api"
	"github.com/grandcat/zeroconf"
)

const (
	serviceType   = "_battery._tcp"
	serviceDomain = "local."
)

// advertise registers the HTTP server over mDNS so clients on the local
// network can find it.
func advertise(listen string) (*zeroconf.Server, error) {
	port, err := listenPort(listen)
	if err != nil {
		return nil, err
	}
	hostname, err := os.Hostname()
	if err != nil {
		return nil, err
	}
	return zeroconf.Register(
		fmt.Sprintf("%s-battery", hostname),
		serviceType,
		serviceDomain,
		port,
		[]string{
			"path=" + api.BatteryPath,
			"version=" + version,
		},
		nil,
	)
}

func listenPort(listen string) (int, error) {
	_, portStr, err := net.SplitHostPort(listen)
	if err != nil {
		return 0, err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, fmt.Errorf("invalid port '%s': %w", portStr, err)
	}
	return port, nil
}
