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

package linescan

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ianlewis/go-wordnet/internal/fields"
)

// MaxLineSize is the longest line the scanner accepts. The longest lines in
// the WordNet 3.x data files are a few kilobytes.
const MaxLineSize = 1 << 20

// Scanner scans the records of a WordNet file from start to end, skipping
// license header lines.
type Scanner struct {
	s    *bufio.Scanner
	line int
}

// NewScanner returns a new Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	s := bufio.NewScanner(bufio.NewReader(r))
	s.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return &Scanner{s: s}
}

// Scan advances to the next non-header line. It returns false at the end of
// the input or on an error.
func (s *Scanner) Scan() bool {
	for s.s.Scan() {
		s.line++
		if fields.IsHeader(s.s.Text()) {
			continue
		}
		return true
	}
	return false
}

// Text returns the current line without its line ending.
func (s *Scanner) Text() string {
	return s.s.Text()
}

// Line returns the 1-based number of the current line in the file,
// counting header lines.
func (s *Scanner) Line() int {
	return s.line
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	if err := s.s.Err(); err != nil {
		return fmt.Errorf("reading line %d: %w", s.line+1, err)
	}
	return nil
}
