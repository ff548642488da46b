package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[bascli] %v\n", err)
	os.Exit(1)
}

func main() {
	app := cli.NewApp()
	app.Name = "bascli"
	app.Usage = "Control plane of the bascule deposit ledger kept in an lbtcd home directory."
	app.Commands = append(app.Commands,
		depositIDCommand,
		initializeCommand,
		grantReporterCommand,
		addValidatorCommand,
		thresholdCommand,
		reportCommand,
		validateCommand,
		showCommand,
	)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}
