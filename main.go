package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/nvkalinin/cal/cmd"
	"github.com/nvkalinin/cal/log"
)

type CLI struct {
	Cal cmd.Cal `group:"Calendar Options"`

	Serve cmd.Server `command:"serve" description:"Serve rendered calendars over HTTP."`
}

var errUsage = errors.New("unexpected arguments")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run returns the exit code. Any malformed command line prints the usage and exits with 0.
func run(args []string, stdout io.Writer) int {
	cli := &CLI{}
	cli.Cal.Out = stdout

	parser := flags.NewParser(cli, flags.HelpFlag)
	parser.Name = "cal"
	parser.Usage = "[-y num] [-m num] [-n num] [-w] [--color=when] | serve [serve-OPTIONS]"
	parser.SubcommandsOptional = true
	parser.CommandHandler = func(command flags.Commander, args []string) error {
		if len(args) > 0 {
			return errUsage
		}
		if command == nil {
			return cli.Cal.Execute(args)
		}
		return command.Execute(args)
	}

	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		switch {
		case errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp:
			fmt.Fprintln(stdout, flagsErr.Message)
			return 0
		case errors.As(err, &flagsErr), errors.Is(err, errUsage):
			parser.WriteHelp(stdout)
			return 0
		}

		log.Printf("[ERROR] %v", err)
		return 1
	}
	return 0
}
