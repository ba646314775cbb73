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

package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TheCacophonyProject/battery-gauge/internal/api"
	"github.com/TheCacophonyProject/battery-gauge/internal/estimator"
	"github.com/TheCacophonyProject/battery-gauge/internal/gauge"
	"github.com/TheCacophonyProject/go-utils/logging"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

var version = "<not set>"
var log = logging.NewLogger("info")

// Run starts the sampler and the HTTP server, and blocks until the process
// is signalled or the server fails. If the sampler stops because of a read
// error the server keeps serving the last state it had.
func Run(inputArgs []string, ver string) error {
	version = ver
	args, err := procServiceArgs(inputArgs)
	if err != nil {
		return fmt.Errorf("failed to parse args: %v", err)
	}
	log = logging.NewLogger(args.LogLevel)
	log.Info("Running version: ", version)

	conf, err := args.config()
	if err != nil {
		return err
	}
	log.Debugf("Config: %+v", conf)

	bus, err := openBus(conf)
	if err != nil {
		return err
	}
	defer bus.Close()

	est := estimator.New(conf.EstimatorConfig())
	sampler := &Sampler{
		Gauge:     gauge.New(bus),
		Estimator: est,
		Interval:  conf.Interval,
	}
	if conf.ReportEvents {
		sampler.OnDirectionChange = reportDirectionChange
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:    conf.Listen,
		Handler: api.NewRouter(est, requestLogger(args.LogLevel)),
	}
	serverErr := make(chan error, 1)
	go func() {
		log.Infof("HTTP server listening on %s", conf.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	if conf.Advertise {
		mdns, err := advertise(conf.Listen)
		if err != nil {
			log.Errorf("Failed to advertise over mDNS: %v", err)
		} else {
			defer mdns.Shutdown()
		}
	}

	go func() {
		log.Infof("Sampling every %s", conf.Interval)
		err := sampler.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Errorf("Battery sampler stopped, serving last known state: %v", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down")
	case err := <-serverErr:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// requestLogger is the logrus logger used for HTTP request logs, at the same
// level as the service log.
func requestLogger(level string) *logrus.Logger {
	l := logrus.StandardLogger()
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)
	return l
}

type gaugeBus interface {
	gauge.Bus
	io.Closer
}

func openBus(conf Config) (gaugeBus, error) {
	address, err := hexStringToByte(conf.Address)
	if err != nil {
		return nil, err
	}
	switch conf.Transport {
	case TransportDBus:
		log.Debugf("Using I2C service for gauge at 0x%02X", address)
		bus := gauge.NewDBusBus(address, conf.DBusTimeout)
		if err := bus.Check(); err != nil {
			return nil, fmt.Errorf("checking for gauge at 0x%02X: %w", address, err)
		}
		return bus, nil
	default:
		log.Debugf("Opening I2C bus '%s' for gauge at 0x%02X", conf.Bus, address)
		bus, err := gauge.OpenPeriph(conf.Bus, uint16(address))
		if err != nil {
			return nil, err
		}
		return bus, nil
	}
}
