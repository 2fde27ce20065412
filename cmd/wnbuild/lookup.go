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
	"errors"
	"fmt"
	"strings"

	"github.com/k3a/html2text"
	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-wordnet/data"
	"github.com/ianlewis/go-wordnet/store/blob"
	"github.com/ianlewis/go-wordnet/store/sqlite"
)

// ErrNotFound indicates that a lookup matched nothing.
var ErrNotFound = fmt.Errorf("%w: not found", ErrWnbuild)

func newLookupCommand() *cli.Command {
	return &cli.Command{
		Name:      "lookup",
		Usage:     "look up a lemma in a built dataset",
		ArgsUsage: "LEMMA",
		Description: "Looks up LEMMA in the table store, printing each synset, " +
			"or in the blob store, printing the lemma's synset ids.",
		Flags: []cli.Flag{
			tableFlag(),
			blobFlag(),
			&cli.BoolFlag{
				Name:               "prefix",
				Usage:              "match lemmas starting with LEMMA (blob store only)",
				Aliases:            []string{"p"},
				DisableDefaultText: true,
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "print at most `N` prefix matches",
				Value: 20,
			},
			configFlag(),
		},
		OnUsageError: onUsageError,
		Action:       runLookup,
	}
}

func runLookup(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("%w: expected one LEMMA argument", ErrFlagParse)
	}
	query := c.Args().First()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	switch {
	case cfg.Table != "" && !c.Bool("prefix"):
		return lookupTable(c, cfg.Table, query)
	case cfg.Blob != "":
		return lookupBlob(c, cfg.Blob, query)
	case cfg.Table != "":
		return fmt.Errorf("%w: --prefix requires --blob", ErrFlagParse)
	default:
		return ErrNoOutput
	}
}

func lookupTable(c *cli.Context, path, query string) error {
	s, err := sqlite.Open(c.Context, path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWnbuild, err)
	}
	defer s.Close()

	lemma, err := s.Lemma(c.Context, query)
	if errors.Is(err, sqlite.ErrNotFound) {
		return fmt.Errorf("%w: %q", ErrNotFound, query)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWnbuild, err)
	}

	fmt.Fprintf(c.App.Writer, "%s (%s)\n\n", lemma.Lemma, strings.Join(lemma.TagSenseCounts, " "))

	tbl := table.New("Synset", "Words", "Gloss").WithWriter(c.App.Writer)
	for _, id := range lemma.SynsetIDs {
		syn, err := s.Synset(c.Context, id)
		if errors.Is(err, sqlite.ErrNotFound) {
			// Index-only builds have no synsets.
			tbl.AddRow(id, "", "")
			continue
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWnbuild, err)
		}
		tbl.AddRow(id, words(syn), glossText(syn.Gloss))
	}
	tbl.Print()

	return nil
}

// glossEscaper keeps angle brackets in glosses from being read as tags.
var glossEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// glossText renders a gloss for the terminal. Glosses are plain text, so
// only entities are decoded.
func glossText(gloss string) string {
	return html2text.HTML2Text(glossEscaper.Replace(gloss))
}

// words returns the synset's words without lexical ids.
func words(syn *data.Synset) string {
	ws := make([]string, len(syn.Words))
	for i, w := range syn.Words {
		word, _, _ := strings.Cut(w, ".")
		ws[i] = word
	}
	return strings.Join(ws, ", ")
}

func lookupBlob(c *cli.Context, path, query string) error {
	b, err := blob.Load(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWnbuild, err)
	}

	var entries []blob.Entry
	if c.Bool("prefix") {
		entries, err = b.Prefix(query, c.Int("limit"))
	} else {
		entries, err = b.Lookup(query)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWnbuild, err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, query)
	}

	tbl := table.New("Lemma", "Senses", "Synsets").WithWriter(c.App.Writer)
	for _, e := range entries {
		tbl.AddRow(e.Lemma,
			strings.Join(e.TagSenseCountList(), " "),
			strings.Join(e.SynsetIDList(), " "),
		)
	}
	tbl.Print()

	return nil
}
