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

package data

import (
	"errors"
	"fmt"
	"io"

	"github.com/ianlewis/go-wordnet/pos"
)

// Set holds synsets keyed by their qualified id. Ids are unique across all
// four data files so records are only ever inserted.
type Set struct {
	synsets map[string]*Synset
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{
		synsets: map[string]*Synset{},
	}
}

// Add inserts syn. It fails with ErrDuplicateSynset if the id is present.
func (s *Set) Add(syn *Synset) error {
	if _, ok := s.synsets[syn.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSynset, syn.ID)
	}
	s.synsets[syn.ID] = syn
	return nil
}

// Read parses a data file for p from r and adds every synset to the set. It
// returns the number of synsets added before the first error.
func (s *Set) Read(r io.Reader, p pos.POS, options *ScannerOptions) (int, error) {
	sc, err := NewScanner(r, p, options)
	if err != nil {
		return 0, err
	}

	n := 0
	for sc.Scan() {
		syn := sc.Synset()
		if err := s.Add(syn); err != nil {
			return n, &ParseError{
				File: sc.name,
				POS:  p,
				Line: sc.Line(),
				ID:   syn.ID,
				Text: sc.s.Text(),
				Err:  err,
			}
		}
		n++
	}
	if err := sc.Err(); err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			// Already names the file and line.
			return n, err
		}
		return n, fmt.Errorf("reading %s: %w", sc.name, err)
	}
	return n, nil
}

// Synset returns the synset for id or nil.
func (s *Set) Synset(id string) *Synset {
	return s.synsets[id]
}

// Synsets returns the underlying synset mapping.
func (s *Set) Synsets() map[string]*Synset {
	return s.synsets
}

// Len returns the number of synsets.
func (s *Set) Len() int {
	return len(s.synsets)
}
