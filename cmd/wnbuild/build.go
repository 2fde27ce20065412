// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"fmt"
	"os"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-wordnet"
	"github.com/ianlewis/go-wordnet/store/blob"
	"github.com/ianlewis/go-wordnet/store/sqlite"
)

func newBuildCommand() *cli.Command {
	return &cli.Command{
		Name:      "build",
		Usage:     "build the dataset from WordNet dictionary files",
		ArgsUsage: " ",
		Description: "Parses the index files, and the data files when a table " +
			"store is requested, and writes the merged dataset to the table " +
			"and blob stores.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "wordnet",
				Usage:   "read the WordNet dictionary in `DIR`",
				Aliases: []string{"w"},
			},
			&cli.StringSliceFlag{
				Name:  "pos",
				Usage: "only read parts of speech `POS` (adj, adv, noun, verb)",
			},
			tableFlag(),
			blobFlag(),
			configFlag(),
			&cli.BoolFlag{
				Name:               "verbose",
				Usage:              "log progress at debug level",
				Aliases:            []string{"v"},
				DisableDefaultText: true,
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log `FORMAT` (text or json)",
			},
		},
		OnUsageError: onUsageError,
		Action:       runBuild,
	}
}

func runBuild(c *cli.Context) error {
	if c.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments: %v", ErrFlagParse, c.Args().Slice())
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if cfg.Table == "" && cfg.Blob == "" {
		return ErrNoOutput
	}
	parts, err := parsePOS(c.StringSlice("pos"))
	if err != nil {
		return err
	}

	log := newLogger(cfg, c.App.ErrWriter)

	searchDirs := wordnetLocations()
	if cfg.SearchDir != "" {
		searchDirs = []string{cfg.SearchDir}
	}
	dir, err := wordnet.Locate(searchDirs...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWnbuild, err)
	}
	log.Info("found wordnet dictionary", "dir", dir)

	opts := &wordnet.Options{
		// Synsets are only stored in the table store.
		IncludeSynsets: cfg.Table != "",
		POS:            parts,
		Logger:         log,
	}
	if err := wordnet.CheckFiles(os.DirFS(dir), opts.POS, opts.IncludeSynsets); err != nil {
		return fmt.Errorf("%w: %w", ErrWnbuild, err)
	}

	ds, err := wordnet.Build(dir, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWnbuild, err)
	}

	var writers []wordnet.Writer
	if cfg.Table != "" {
		s, err := sqlite.Open(c.Context, cfg.Table)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWnbuild, err)
		}
		defer s.Close()
		writers = append(writers, s)
	}
	if cfg.Blob != "" {
		writers = append(writers, blob.New(cfg.Blob))
	}

	if err := ds.Write(c.Context, wordnet.MultiWriter(writers...)); err != nil {
		return fmt.Errorf("%w: %w", ErrWnbuild, err)
	}
	if cfg.Table != "" {
		log.Info("wrote table store", "path", cfg.Table)
	}
	if cfg.Blob != "" {
		log.Info("wrote blob store", "path", cfg.Blob)
	}

	printStats(c, ds)
	return nil
}

// printStats prints a per part of speech summary of the build.
func printStats(c *cli.Context, ds *wordnet.Dataset) {
	tbl := table.New("POS", "Index Lines", "New Lemmas", "Synsets").WithWriter(c.App.Writer)

	var lines, lemmas, synsets int
	for _, s := range ds.Stats.POS {
		tbl.AddRow(s.POS.String(), s.IndexLines, s.NewLemmas, s.Synsets)
		lines += s.IndexLines
		lemmas += s.NewLemmas
		synsets += s.Synsets
	}
	tbl.AddRow("total", lines, lemmas, synsets)
	tbl.Print()
}
