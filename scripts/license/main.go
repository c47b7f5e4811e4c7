// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Adds or checks the license header of all Go sources and go.mod files.
//
//	go run ./scripts/license --dir . [--check]
package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

//go:embed license_header.txt
var licenseText string

var (
	dirFlag = cli.StringFlag{
		Name:     "dir",
		Usage:    "root directory of the files to process",
		Required: true,
	}
	checkFlag = cli.BoolFlag{
		Name:  "check",
		Usage: "only report files with a missing header, do not modify them",
	}
)

func main() {
	app := &cli.App{
		Name:   "license",
		Usage:  "maintains the license headers of the repository",
		Flags:  []cli.Flag{&dirFlag, &checkFlag},
		Action: doLicense,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func doLicense(context *cli.Context) error {
	dir := context.String(dirFlag.Name)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("invalid target directory: %w", err)
	}
	files, err := collectFiles(dir)
	if err != nil {
		return err
	}
	header := commentHeader(licenseText)
	check := context.Bool(checkFlag.Name)

	var failed []string
	for _, file := range files {
		ok, err := hasHeader(file, header)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		if check {
			failed = append(failed, file)
			fmt.Fprintf(context.App.Writer, "missing or incorrect license header: %s\n", file)
			continue
		}
		if err := addHeader(file, header); err != nil {
			return err
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d files lack the license header", len(failed))
	}
	return nil
}
