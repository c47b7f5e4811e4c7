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
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"
	"runtime/trace"
	"strings"

	"github.com/0xsoniclabs/bulletin/board"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logMaxSizeMb   = 100
	logMaxAgeDays  = 28
	logMaxBackups  = 5
	defaultVariant = board.VariantLevelDb
)

// getParameters collects the board parameters from the config file and the
// command line; flags take precedence over the file.
func getParameters(context *cli.Context) (board.Parameters, error) {
	params := board.Parameters{Variant: defaultVariant}
	if path := context.String(configFlag.Name); path != "" {
		read, err := board.ReadParameters(path)
		if err != nil {
			return board.Parameters{}, err
		}
		params = read
	}
	if variant := context.String(variantFlag.Name); variant != "" {
		params.Variant = board.Variant(variant)
	}
	if dir := context.String(directoryFlag.Name); dir != "" {
		params.Directory = dir
	}
	return params, nil
}

// newLogger creates the logger of the tool, writing to a rotated log file if
// one is configured.
func newLogger(context *cli.Context) (*log.Logger, func() error) {
	path := context.String(logFileFlag.Name)
	if path == "" {
		return log.New(context.App.ErrWriter, "", log.LstdFlags), func() error { return nil }
	}
	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logMaxSizeMb,
		MaxAge:     logMaxAgeDays,
		MaxBackups: logMaxBackups,
	}
	return log.New(file, "", log.Ldate|log.Ltime|log.Lmicroseconds), file.Close
}

// env is the state shared by all board commands.
type env struct {
	board  board.Board
	params board.Parameters
	log    *log.Logger
	out    io.Writer
}

// withBoard wraps a command action such that it is run on an opened board.
// The board is closed and the logs flushed when the action is done.
func withBoard(action func(*cli.Context, *env) error) cli.ActionFunc {
	return withDiagnostics(func(context *cli.Context) (err error) {
		logger, closeLog := newLogger(context)
		defer func() {
			err = errors.Join(err, closeLog())
		}()

		params, err := getParameters(context)
		if err != nil {
			return err
		}
		b, err := board.NewBoard(params)
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, b.Flush(), b.Close())
		}()

		err = action(context, &env{
			board:  b,
			params: params,
			log:    logger,
			out:    context.App.Writer,
		})
		if err != nil {
			logger.Printf("%s failed: %v", context.Command.Name, err)
		}
		return err
	})
}

// withDiagnostics records a CPU profile and an execution trace of the action
// if requested by the corresponding flags.
func withDiagnostics(action cli.ActionFunc) cli.ActionFunc {
	return func(context *cli.Context) error {
		if name := strings.TrimSpace(context.String(cpuProfileFlag.Name)); name != "" {
			file, err := os.Create(name)
			if err != nil {
				return fmt.Errorf("could not create CPU profile: %w", err)
			}
			defer file.Close()
			if err := pprof.StartCPUProfile(file); err != nil {
				return fmt.Errorf("could not start CPU profile: %w", err)
			}
			defer pprof.StopCPUProfile()
		}
		if name := strings.TrimSpace(context.String(traceFlag.Name)); name != "" {
			file, err := os.Create(name)
			if err != nil {
				return fmt.Errorf("failed to create trace file: %w", err)
			}
			defer file.Close()
			if err := trace.Start(file); err != nil {
				return fmt.Errorf("failed to start trace: %w", err)
			}
			defer trace.Stop()
		}
		return action(context)
	}
}
