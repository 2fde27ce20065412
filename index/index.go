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

package index

import (
	"errors"
	"fmt"
	"io"

	"github.com/ianlewis/go-wordnet/pos"
)

// Lemma is the merged record for one lemma across all parts of speech.
type Lemma struct {
	Lemma string

	// SynsetIDs are qualified synset ids in the order they were read. Ids
	// from later index lines are appended and never deduplicated.
	SynsetIDs []string

	// TagSenseCounts holds one Entry.TagSense value per merged index line.
	TagSenseCounts []string
}

// Index is an in-memory lemma index built from one or more index files.
type Index struct {
	lemmas map[string]*Lemma
}

// New returns an empty Index.
func New() *Index {
	return &Index{
		lemmas: map[string]*Lemma{},
	}
}

// Add merges e into the index and returns the updated record. A new lemma
// gets a new record. An existing lemma has e's synset ids and tagged sense
// entry appended.
func (idx *Index) Add(e *Entry) *Lemma {
	l, ok := idx.lemmas[e.Lemma]
	if !ok {
		l = &Lemma{Lemma: e.Lemma}
		idx.lemmas[e.Lemma] = l
	}
	l.SynsetIDs = append(l.SynsetIDs, e.SynsetIDs...)
	l.TagSenseCounts = append(l.TagSenseCounts, e.TagSense())
	return l
}

// Read parses an index file for p from r and merges every line into the
// index. It returns the number of lines merged. Reading stops at the first
// malformed line; lines before it stay merged.
func (idx *Index) Read(r io.Reader, p pos.POS, options *ScannerOptions) (int, error) {
	s, err := NewScanner(r, p, options)
	if err != nil {
		return 0, err
	}

	n := 0
	for s.Scan() {
		idx.Add(s.Entry())
		n++
	}
	if err := s.Err(); err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			// Already names the file and line.
			return n, err
		}
		return n, fmt.Errorf("reading %s: %w", s.name, err)
	}
	return n, nil
}

// Lemma returns the record for lemma or nil.
func (idx *Index) Lemma(lemma string) *Lemma {
	return idx.lemmas[lemma]
}

// Lemmas returns the underlying lemma mapping. The map is owned by the
// index; callers must not modify it while still adding entries.
func (idx *Index) Lemmas() map[string]*Lemma {
	return idx.lemmas
}

// Len returns the number of distinct lemmas.
func (idx *Index) Len() int {
	return len(idx.lemmas)
}
