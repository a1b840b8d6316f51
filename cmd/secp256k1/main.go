package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "secp256k1",
		Usage: "sign and verify secp256k1 ECDSA signatures",
		Flags: []cli.Flag{
			configFlag,
			logLevelFlag,
			chainIDFlag,
			hashFlag,
		},
		Before: setupLogging,
		Commands: []*cli.Command{
			pubkeyCommand,
			signCommand,
			verifyCommand,
			verifyBatchCommand,
			dumpConfigCommand,
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
