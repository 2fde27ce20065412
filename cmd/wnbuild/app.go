// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-wordnet/internal/config"
	"github.com/ianlewis/go-wordnet/internal/logging"
	"github.com/ianlewis/go-wordnet/pos"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrWnbuild is a parent error for all command errors.
var ErrWnbuild = errors.New("wnbuild")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrWnbuild)

// ErrNoOutput indicates that no output store was requested.
var ErrNoOutput = fmt.Errorf("%w: at least one of --table or --blob is required", ErrFlagParse)

var copyrightNames = []string{
	"2025 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// but we use our own help flag.
	//
	// This is done because `wnbuild --help foo` will display a
	// "command foo not found" error instead of the help.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

// Flags shared by more than one command. Flags are created per command
// because cli records parse state on them.
func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Usage:   "read settings from YAML `FILE`",
		Aliases: []string{"c"},
	}
}

func tableFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "table",
		Usage:   "table store (SQLite) at `PATH`",
		Aliases: []string{"t"},
	}
}

func blobFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "blob",
		Usage:   "blob store at `PATH`",
		Aliases: []string{"b"},
	}
}

// loadConfig reads the configuration file and environment and applies any
// flags set on the command line.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWnbuild, err)
	}

	if c.IsSet("wordnet") {
		cfg.SearchDir = c.String("wordnet")
	}
	if c.IsSet("table") {
		cfg.Table = c.String("table")
	}
	if c.IsSet("blob") {
		cfg.Blob = c.String("blob")
	}
	if c.Bool("verbose") {
		cfg.Log.Level = "debug"
	}
	if c.IsSet("log-format") {
		cfg.Log.Format = c.String("log-format")
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFlagParse, err)
		}
	}

	return cfg, nil
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	return logging.New(cfg.Log.Level, cfg.Log.Format, w)
}

// onUsageError marks errors from the flag parser so they exit with
// ExitCodeFlagParseError.
func onUsageError(_ *cli.Context, err error, _ bool) error {
	return fmt.Errorf("%w: %w", ErrFlagParse, err)
}

// parsePOS parses the values of the --pos flag. Repeated parts of speech
// are read once, at their first position.
func parsePOS(values []string) ([]pos.POS, error) {
	var parts []pos.POS
	for _, v := range values {
		for _, s := range strings.Split(v, ",") {
			p, err := pos.Parse(strings.TrimSpace(s))
			if err != nil {
				return nil, fmt.Errorf("%w: --pos: %w", ErrFlagParse, err)
			}
			if !slices.Contains(parts, p) {
				parts = append(parts, p)
			}
		}
	}
	return parts, nil
}

func newWnbuildApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Build key-value datasets from WordNet dictionary files.",
		Description: strings.Join([]string{
			"WordNet dataset builder written in Go.",
			"http://github.com/ianlewis/go-wordnet",
		}, "\n"),
		Flags: []cli.Flag{
			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		Writer:          os.Stdout,
		ErrWriter:       os.Stderr,
		OnUsageError:    onUsageError,
		HideHelp:        true,
		HideHelpCommand: true,
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			newBuildCommand(),
			newLookupCommand(),
			newVersionCommand(),
		},
	}
}
