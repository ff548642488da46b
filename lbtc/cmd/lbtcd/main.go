package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[lbtcd] %v\n", err)
	os.Exit(1)
}

func main() {
	app := cli.NewApp()
	app.Name = "lbtcd"
	app.Usage = "LBTC Custody Program Daemon (lbtcd)."
	app.Commands = append(app.Commands,
		initCommand,
		startCommand,
		initializeCommand,
		showConfigCommand,
		payloadHashCommand,
		scriptCommand,
	)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}
