// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"
	"os"

	_ "github.com/0xsoniclabs/bulletin/board/goboard"
	"github.com/urfave/cli/v2"
)

// Run using
//  go run ./cmd/boardtool <command> <flags>

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "YAML file providing the board parameters",
	}
	variantFlag = cli.StringFlag{
		Name:  "variant",
		Usage: "board variant to open, overrides the config file",
	}
	directoryFlag = cli.StringFlag{
		Name:  "directory",
		Usage: "directory of a persistent board, overrides the config file",
	}
	logFileFlag = cli.StringFlag{
		Name:  "log-file",
		Usage: "file to write rotated logs to, stderr if empty",
	}
	cpuProfileFlag = cli.StringFlag{
		Name:  "cpuprofile",
		Usage: "sets the target file for storing CPU profiles to, disabled if empty",
	}
	traceFlag = cli.StringFlag{
		Name:  "tracefile",
		Usage: "sets the target file for traces to, disabled if empty",
	}
)

var commands = []*cli.Command{
	&InfoCmd,
	&RootsCmd,
	&OrphansCmd,
	&GetCmd,
	&AddLeafCmd,
	&CombineCmd,
	&PublishCmd,
	&CensorCmd,
	&VerifyCmd,
	&ExportCmd,
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "boardtool",
		Usage:     "bulletin board toolbox",
		Copyright: "(c) 2025 Sonic Operations Ltd",
		Flags: []cli.Flag{
			&configFlag,
			&variantFlag,
			&directoryFlag,
			&logFileFlag,
			&cpuProfileFlag,
			&traceFlag,
		},
		Commands: commands,
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
