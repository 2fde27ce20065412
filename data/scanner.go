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

	"github.com/ianlewis/go-wordnet/internal/linescan"
	"github.com/ianlewis/go-wordnet/pos"
)

// ScannerOptions are options for scanning a data file.
type ScannerOptions struct {
	// Name is the file name used in errors. Defaults to the POS's data file
	// name, e.g. "data.noun".
	Name string
}

// DefaultScannerOptions is the default options for a Scanner.
var DefaultScannerOptions = &ScannerOptions{}

// Scanner scans a data file from start to end.
type Scanner struct {
	s      *linescan.Scanner
	pos    pos.POS
	name   string
	synset *Synset
	err    error
}

// NewScanner returns a new Scanner that parses the data file for p from r.
// The caller remains responsible for closing r.
func NewScanner(r io.Reader, p pos.POS, options *ScannerOptions) (*Scanner, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %v", pos.ErrInvalid, p)
	}
	if options == nil {
		options = DefaultScannerOptions
	}

	name := options.Name
	if name == "" {
		name = p.DataFile()
	}

	return &Scanner{
		s:    linescan.NewScanner(r),
		pos:  p,
		name: name,
	}, nil
}

// Scan advances to the next synset. It returns false when the scan stops
// either at the end of the file or on an error.
func (s *Scanner) Scan() bool {
	if s.err != nil || !s.s.Scan() {
		return false
	}

	syn, err := ParseLine(s.s.Text(), s.pos)
	if err != nil {
		s.err = s.locate(err)
		s.synset = nil
		return false
	}
	s.synset = syn
	return true
}

// Synset returns the most recent synset read by Scan.
func (s *Scanner) Synset() *Synset {
	return s.synset
}

// Line returns the line number of the most recent synset.
func (s *Scanner) Line() int {
	return s.s.Line()
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	if s.err != nil {
		return s.err
	}
	//nolint:wrapcheck // error is already wrapped with the line number.
	return s.s.Err()
}

// locate fills in the file name and line number of a *ParseError.
func (s *Scanner) locate(err error) error {
	var perr *ParseError
	if errors.As(err, &perr) {
		perr.File = s.name
		perr.Line = s.s.Line()
	}
	return err
}
