// Copyright 2021 Google LLC
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

package wordnet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/ianlewis/go-wordnet/data"
	"github.com/ianlewis/go-wordnet/index"
	"github.com/ianlewis/go-wordnet/internal/logging"
	"github.com/ianlewis/go-wordnet/pos"
)

// ErrWrite wraps errors returned by a Writer.
var ErrWrite = errors.New("writing dataset")

// Writer persists a completed dataset. WriteDataset is called once per
// build, after every lemma and synset has been read.
type Writer interface {
	WriteDataset(ctx context.Context, lemmas map[string]*index.Lemma, synsets map[string]*data.Synset) error
}

// WriterFunc adapts a function to the Writer interface.
type WriterFunc func(ctx context.Context, lemmas map[string]*index.Lemma, synsets map[string]*data.Synset) error

// WriteDataset calls f.
func (f WriterFunc) WriteDataset(ctx context.Context, lemmas map[string]*index.Lemma, synsets map[string]*data.Synset) error {
	return f(ctx, lemmas, synsets)
}

// MultiWriter returns a Writer that writes to each of writers in order and
// stops at the first error.
func MultiWriter(writers ...Writer) Writer {
	return WriterFunc(func(ctx context.Context, lemmas map[string]*index.Lemma, synsets map[string]*data.Synset) error {
		for _, w := range writers {
			if err := w.WriteDataset(ctx, lemmas, synsets); err != nil {
				return err
			}
		}
		return nil
	})
}

// Options are options for Build.
type Options struct {
	// IncludeSynsets enables reading the data.{pos} files. Only the index
	// files are read when false.
	IncludeSynsets bool

	// POS lists the parts of speech to read. Defaults to pos.All.
	POS []pos.POS

	// Logger receives progress messages. Defaults to discarding them.
	Logger *slog.Logger
}

// DefaultOptions is the default options for Build.
var DefaultOptions = &Options{}

func (o *Options) parts() []pos.POS {
	if len(o.POS) == 0 {
		return pos.All
	}
	return o.POS
}

func (o *Options) logger() *slog.Logger {
	if o.Logger == nil {
		return logging.Discard()
	}
	return o.Logger
}

// POSStats counts what was read for one part of speech.
type POSStats struct {
	POS pos.POS

	// IndexLines is the number of index lines merged.
	IndexLines int

	// NewLemmas is the number of lemmas first seen in this part of speech.
	NewLemmas int

	// Synsets is the number of synsets read from the data file.
	Synsets int
}

// Stats summarizes a build.
type Stats struct {
	POS []POSStats
}

// Dataset is the result of a build.
type Dataset struct {
	// Lemmas maps each lemma to its merged record.
	Lemmas map[string]*index.Lemma

	// Synsets maps each qualified synset id to its record. It is empty
	// unless Options.IncludeSynsets was set.
	Synsets map[string]*data.Synset

	Stats Stats
}

// Write hands the dataset to w. Errors from w are wrapped with ErrWrite.
func (d *Dataset) Write(ctx context.Context, w Writer) error {
	if err := w.WriteDataset(ctx, d.Lemmas, d.Synsets); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// Build reads the WordNet dictionary in dir.
func Build(dir string, options *Options) (*Dataset, error) {
	return BuildFS(os.DirFS(dir), options)
}

// BuildFS reads the WordNet dictionary at the root of fsys. Parts of speech
// are processed one at a time, index file first, and each file is closed
// before the next is opened. The first malformed line aborts the build.
func BuildFS(fsys fs.FS, options *Options) (*Dataset, error) {
	if options == nil {
		options = DefaultOptions
	}
	log := options.logger()

	for _, p := range options.parts() {
		if !p.Valid() {
			return nil, fmt.Errorf("%w: %v", pos.ErrInvalid, p)
		}
	}

	idx := index.New()
	set := data.NewSet()
	var stats Stats
	for _, p := range options.parts() {
		ps := POSStats{POS: p}

		log.Debug("building indexes", slog.String("pos", p.String()))
		before := idx.Len()
		n, err := readFile(fsys, p.IndexFile(), func(r io.Reader, name string) (int, error) {
			return idx.Read(r, p, &index.ScannerOptions{Name: name})
		})
		if err != nil {
			return nil, err
		}
		ps.IndexLines = n
		ps.NewLemmas = idx.Len() - before

		if options.IncludeSynsets {
			log.Debug("building data", slog.String("pos", p.String()))
			n, err := readFile(fsys, p.DataFile(), func(r io.Reader, name string) (int, error) {
				return set.Read(r, p, &data.ScannerOptions{Name: name})
			})
			if err != nil {
				return nil, err
			}
			ps.Synsets = n
		}

		log.Debug("read part of speech",
			slog.String("pos", p.String()),
			slog.Int("index_lines", ps.IndexLines),
			slog.Int("new_lemmas", ps.NewLemmas),
			slog.Int("synsets", ps.Synsets),
		)
		stats.POS = append(stats.POS, ps)
	}

	log.Info("built dataset",
		slog.Int("lemmas", idx.Len()),
		slog.Int("synsets", set.Len()),
	)

	return &Dataset{
		Lemmas:  idx.Lemmas(),
		Synsets: set.Synsets(),
		Stats:   stats,
	}, nil
}

// readFile opens name, passes it to read and closes it again.
func readFile(fsys fs.FS, name string, read func(io.Reader, string) (int, error)) (n int, err error) {
	r, actual, err := openFile(fsys, name)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %q: %w", actual, cerr)
		}
	}()

	//nolint:wrapcheck // read wraps its errors with the file name.
	return read(r, actual)
}
