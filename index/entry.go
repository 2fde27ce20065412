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

	"github.com/ianlewis/go-wordnet/internal/fields"
	"github.com/ianlewis/go-wordnet/pos"
)

// ErrMalformedIndexLine indicates an index line whose fields do not match
// its declared counts.
var ErrMalformedIndexLine = errors.New("malformed index line")

// ParseError describes a malformed index line.
type ParseError struct {
	// File is the name of the index file, e.g. "index.noun".
	File string

	// POS is the part of speech of the file.
	POS pos.POS

	// Line is the 1-based line number, or zero if unknown.
	Line int

	// Lemma is the lemma of the line if it could be read.
	Lemma string

	// Text is the offending line.
	Text string

	Err error
}

func (e *ParseError) Error() string {
	loc := e.File
	if loc == "" {
		loc = e.POS.IndexFile()
	}
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, e.Line)
	}
	if e.Lemma != "" {
		return fmt.Sprintf("%s: lemma %q: %v: %q", loc, e.Lemma, e.Err, e.Text)
	}
	return fmt.Sprintf("%s: %v: %q", loc, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Entry is a single parsed index line.
type Entry struct {
	// Lemma is the headword exactly as written in the file.
	Lemma string

	// POS is the pos field as written on the line.
	POS string

	// SynsetCount is the declared number of synsets.
	SynsetCount int

	// PointerSymbols are the pointer symbols qualified with the file's tag.
	// They are validated but not carried into Lemma records.
	PointerSymbols []string

	// SenseCount is the sense_cnt field, kept verbatim.
	SenseCount string

	// TagSenseCount is the tagsense_cnt field, kept verbatim.
	TagSenseCount string

	// SynsetIDs are the synset offsets qualified with the file's tag.
	SynsetIDs []string
}

// TagSense returns the tagged sense entry recorded for this line: the pos
// field followed by the tagsense_cnt field. This is a textual concatenation
// ("n" + "1" == "n1"), not a sum, and existing datasets depend on it.
func (e *Entry) TagSense() string {
	return e.POS + e.TagSenseCount
}

// ParseLine parses a single index line from the index file for p. Offsets
// and pointer symbols are qualified with p's tag rather than the line's own
// pos field.
func ParseLine(line string, p pos.POS) (*Entry, error) {
	var e Entry
	if err := parseFields(&e, fields.Split(line), p); err != nil {
		return nil, &ParseError{
			POS:   p,
			Lemma: e.Lemma,
			Text:  line,
			Err:   fmt.Errorf("%w: %w", ErrMalformedIndexLine, err),
		}
	}
	return &e, nil
}

func parseFields(e *Entry, f *fields.Fields, p pos.POS) error {
	var err error
	if e.Lemma, err = f.Next("lemma"); err != nil {
		return err
	}
	if e.POS, err = f.Next("pos"); err != nil {
		return err
	}
	if e.SynsetCount, err = f.Count("synset_cnt", 10); err != nil {
		return err
	}
	pointerCount, err := f.Count("p_cnt", 10)
	if err != nil {
		return err
	}
	symbols, err := f.Take("ptr_symbol", pointerCount)
	if err != nil {
		return err
	}
	e.PointerSymbols = qualify(p, symbols)
	if e.SenseCount, err = f.Next("sense_cnt"); err != nil {
		return err
	}
	if e.TagSenseCount, err = f.Next("tagsense_cnt"); err != nil {
		return err
	}
	offsets, err := f.Take("synset_offset", e.SynsetCount)
	if err != nil {
		return err
	}
	e.SynsetIDs = qualify(p, offsets)
	return nil
}

func qualify(p pos.POS, toks []string) []string {
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = p.Qualify(tok)
	}
	return out
}
