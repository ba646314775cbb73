package main

import (
	"fmt"
	"os"

	"github.com/TheCacophonyProject/battery-gauge/internal/client"
	"github.com/TheCacophonyProject/go-utils/logging"
	"github.com/TheCacophonyProject/battery-gauge/internal/monitor"
)

var log *logging.Logger

func main() {
	err := runMain()
	if err != nil {
		log.Fatal(err)
	}
}

var version = "<not set>"

func runMain() error {
	log = logging.NewLogger("info")
	if len(os.Args) < 2 {
		log.Info("Usage: battery-gauge <service|read|status> [args]")
		return fmt.Errorf("no subcommand given")
	}

	subcommand := os.Args[1]
	args := os.Args[2:]

	var err error
	switch subcommand {
	case "service":
		err = monitor.Run(args, version)
	case "read":
		err = monitor.RunRead(args, version)
	case "status":
		err = client.Run(args, version)
	default:
		err = fmt.Errorf("unknown subcommand: %s", subcommand)
	}

	return err
}
