// Copyright 2026 Ian Lewis
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

// Package blob stores the lemma index as a single compressed file.
//
// The file holds a gob-encoded map from lemma to [Entry], compressed with
// dictzip. Synsets are not stored; use the table store for those.
package blob

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/go-wordnet/data"
	"github.com/ianlewis/go-wordnet/index"
	"github.com/ianlewis/go-wordnet/internal/folding"
	sorted "github.com/ianlewis/go-wordnet/internal/index"
)

// Separator joins list values in an Entry.
const Separator = "|"

// FileMode is the permission mode of written blob files.
const FileMode os.FileMode = 0o644

// ErrInvalidBlob indicates that a blob file could not be decoded.
var ErrInvalidBlob = errors.New("invalid blob")

// Entry is the stored form of a lemma.
type Entry struct {
	Lemma          string
	TagSenseCounts string
	SynsetIDs      string
}

// SynsetIDList returns the synset ids as a slice.
func (e Entry) SynsetIDList() []string {
	return split(e.SynsetIDs)
}

// TagSenseCountList returns the tagsense counts as a slice.
func (e Entry) TagSenseCountList() []string {
	return split(e.TagSenseCounts)
}

// Writer writes blob files. It implements the dataset writer interface.
type Writer struct {
	path string
}

// New returns a Writer that writes to path.
func New(path string) *Writer {
	return &Writer{path: path}
}

// WriteDataset writes the lemma mapping to the blob file. synsets is
// ignored. The file is written to a temporary file in the same directory
// and renamed into place so a failed write leaves any previous file intact.
func (w *Writer) WriteDataset(ctx context.Context, lemmas map[string]*index.Lemma, _ map[string]*data.Synset) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries := make(map[string]Entry, len(lemmas))
	for k, l := range lemmas {
		entries[k] = Entry{
			Lemma:          l.Lemma,
			TagSenseCounts: strings.Join(l.TagSenseCounts, Separator),
			SynsetIDs:      strings.Join(l.SynsetIDs, Separator),
		}
	}

	f, err := os.CreateTemp(filepath.Dir(w.path), "."+filepath.Base(w.path)+".*")
	if err != nil {
		return fmt.Errorf("creating blob: %w", err)
	}
	tmp := f.Name()
	if err := encode(f, entries); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing %q: %w", w.path, err)
	}
	// CreateTemp files are owner-only; published blobs are world readable.
	if err := f.Chmod(FileMode); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing %q: %w", w.path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing %q: %w", w.path, err)
	}
	if err := os.Rename(tmp, w.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing %q: %w", w.path, err)
	}
	return nil
}

func encode(w io.Writer, entries map[string]Entry) error {
	z, err := dictzip.NewWriter(w)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(z).Encode(entries); err != nil {
		z.Close()
		return err
	}
	return z.Close()
}

// record pairs an entry with its folded lookup key.
type record struct {
	Entry
	key string
}

func (r record) Key() string {
	return r.key
}

// Blob is a loaded blob file.
type Blob struct {
	entries map[string]Entry
	sorted  *sorted.Sorted[record]
}

// Load reads the blob file at path.
func Load(path string) (*Blob, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	z, err := dictzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidBlob, path, err)
	}
	if c, ok := any(z).(io.Closer); ok {
		defer c.Close()
	}

	var entries map[string]Entry
	if err := gob.NewDecoder(z).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidBlob, path, err)
	}

	// Lemmas that fold to the same key are ordered by their stored form.
	keys := slices.Sorted(maps.Keys(entries))
	records := make([]record, 0, len(entries))
	for _, k := range keys {
		e := entries[k]
		key, err := folding.String(e.Lemma)
		if err != nil {
			return nil, fmt.Errorf("%w: folding %q: %w", ErrInvalidBlob, e.Lemma, err)
		}
		records = append(records, record{Entry: e, key: key})
	}

	return &Blob{
		entries: entries,
		sorted:  sorted.NewSorted(records),
	}, nil
}

// Len returns the number of lemmas in the blob.
func (b *Blob) Len() int {
	return len(b.entries)
}

// Get returns the entry stored under the exact lemma key.
func (b *Blob) Get(lemma string) (Entry, bool) {
	e, ok := b.entries[lemma]
	return e, ok
}

// Lookup returns the entries whose lemma matches query after case and
// whitespace folding. "Big Cat" matches the lemma "big_cat".
func (b *Blob) Lookup(query string) ([]Entry, error) {
	key, err := folding.String(query)
	if err != nil {
		return nil, fmt.Errorf("folding %q: %w", query, err)
	}
	return entries(b.sorted.Search(key)), nil
}

// Prefix returns up to limit entries whose folded lemma starts with the
// folded prefix.
func (b *Blob) Prefix(prefix string, limit int) ([]Entry, error) {
	key, err := folding.String(prefix)
	if err != nil {
		return nil, fmt.Errorf("folding %q: %w", prefix, err)
	}
	return entries(b.sorted.Prefix(key, limit)), nil
}

func entries(rs []record) []Entry {
	if len(rs) == 0 {
		return nil
	}
	es := make([]Entry, len(rs))
	for i, r := range rs {
		es[i] = r.Entry
	}
	return es
}

func split(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, Separator)
}
