package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/TheCacophonyProject/go-utils/logging"
	arg "github.com/alexflint/go-arg"
)

var version = "<not set>"
var log = logging.NewLogger("info")

type Args struct {
	URL     string        `arg:"-u, --url" help:"Base URL of the battery service"`
	Timeout time.Duration `arg:"--timeout" help:"Request timeout"`
	JSON    bool          `arg:"--json" help:"Print the raw status as JSON"`
	logging.LogArgs
}

func (Args) Version() string {
	return version
}

var defaultArgs = Args{
	URL:     "http://localhost:5000",
	Timeout: 5 * time.Second,
}

func procArgs(input []string) (Args, error) {
	args := defaultArgs

	parser, err := arg.NewParser(arg.Config{}, &args)
	if err != nil {
		return Args{}, err
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
	return args, err
}

// Run prints the status of a running battery service.
func Run(inputArgs []string, ver string) error {
	version = ver
	args, err := procArgs(inputArgs)
	if err != nil {
		return fmt.Errorf("failed to parse args: %v", err)
	}
	log = logging.NewLogger(args.LogLevel)

	c := New(args.URL, args.Timeout, log)
	status, err := c.Status(context.Background())
	if err != nil {
		return err
	}

	if args.JSON {
		b, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	}
	fmt.Print(Summary(status))
	return nil
}
