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
	"strings"

	"github.com/ianlewis/go-wordnet/internal/fields"
	"github.com/ianlewis/go-wordnet/pos"
)

// GlossSeparator separates the fixed fields of a data line from its gloss.
const GlossSeparator = " | "

var (
	// ErrMalformedDataLine indicates a data line whose fields do not match
	// its declared counts.
	ErrMalformedDataLine = errors.New("malformed data line")

	// ErrDuplicateSynset indicates that a synset id was defined twice.
	ErrDuplicateSynset = errors.New("duplicate synset")

	errMissingGloss = errors.New("missing gloss separator")
	errBadFrame     = errors.New("bad verb frame")
)

// ParseError describes a data line that could not be read.
type ParseError struct {
	// File is the name of the data file, e.g. "data.noun".
	File string

	// POS is the part of speech of the file.
	POS pos.POS

	// Line is the 1-based line number, or zero if unknown.
	Line int

	// ID is the qualified synset id if it could be read.
	ID string

	// Text is the offending line.
	Text string

	Err error
}

func (e *ParseError) Error() string {
	loc := e.File
	if loc == "" {
		loc = e.POS.DataFile()
	}
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, e.Line)
	}
	if e.ID != "" {
		return fmt.Sprintf("%s: synset %s: %v: %q", loc, e.ID, e.Err, e.Text)
	}
	return fmt.Sprintf("%s: %v: %q", loc, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Synset is a single synset read from a data file.
type Synset struct {
	// ID is the synset offset qualified with the file's tag, e.g. "n02121620".
	ID string

	// LexFilenum is the two digit lexicographer file number, verbatim.
	LexFilenum string

	// Type is the ss_type field (n, v, a, s or r), verbatim.
	Type string

	// Words are "word.lex_id" pairs in file order.
	Words []string

	// Relations are "pointer_symbol.synset_offset.pos.source_target"
	// tuples in file order.
	Relations []string

	// Frames are "f_num.w_num" pairs. Only verb synsets have frames.
	Frames []string

	// Gloss is the text after the gloss separator with surrounding
	// whitespace removed.
	Gloss string
}

// ParseLine parses a single line from the data file for p.
func ParseLine(line string, p pos.POS) (*Synset, error) {
	var syn Synset
	if err := parse(&syn, line, p); err != nil {
		return nil, &ParseError{
			POS:  p,
			ID:   syn.ID,
			Text: line,
			Err:  fmt.Errorf("%w: %w", ErrMalformedDataLine, err),
		}
	}
	return &syn, nil
}

func parse(syn *Synset, line string, p pos.POS) error {
	fixed, gloss, found := strings.Cut(line, GlossSeparator)

	f := fields.Split(fixed)
	offset, err := f.Next("synset_offset")
	if err != nil {
		return err
	}
	syn.ID = p.Qualify(offset)

	if !found {
		return errMissingGloss
	}

	if syn.LexFilenum, err = f.Next("lex_filenum"); err != nil {
		return err
	}
	if syn.Type, err = f.Next("ss_type"); err != nil {
		return err
	}

	wordCount, err := f.Count("w_cnt", 16)
	if err != nil {
		return err
	}
	if syn.Words, err = f.Groups("word", wordCount, 2, "."); err != nil {
		return err
	}

	pointerCount, err := f.Count("p_cnt", 10)
	if err != nil {
		return err
	}
	if syn.Relations, err = f.Groups("ptr", pointerCount, 4, "."); err != nil {
		return err
	}

	if p == pos.Verb && f.Len() > 0 {
		if syn.Frames, err = parseFrames(f); err != nil {
			return err
		}
	}

	syn.Gloss = strings.TrimSpace(gloss)
	return nil
}

func parseFrames(f *fields.Fields) ([]string, error) {
	frameCount, err := f.Count("f_cnt", 10)
	if err != nil {
		return nil, err
	}
	spans, err := f.Spans("frame", frameCount, 3)
	if err != nil {
		return nil, err
	}
	frames := make([]string, 0, frameCount)
	for _, span := range spans {
		if span[0] != "+" {
			return nil, fmt.Errorf("%w: %q", errBadFrame, strings.Join(span, " "))
		}
		frames = append(frames, span[1]+"."+span[2])
	}
	return frames, nil
}
