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

// Package fields implements the fixed-arity tokenizer shared by the index and
// data parsers. Every variable-length group is validated against the
// remaining token count before it is consumed so a bad count can never shift
// the fields that follow it.
package fields

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrShortLine indicates that a line ended before a declared field.
	ErrShortLine = errors.New("line too short")

	// ErrBadCount indicates a count field that is not a valid integer.
	ErrBadCount = errors.New("bad count")
)

// IsHeader reports whether line is part of the license header. WordNet
// marks header lines solely by a two space prefix.
func IsHeader(line string) bool {
	return strings.HasPrefix(line, "  ")
}

// Fields is a cursor over the whitespace separated tokens of a line.
type Fields struct {
	tokens []string
	next   int
}

// Split tokenizes s on runs of whitespace.
func Split(s string) *Fields {
	return &Fields{tokens: strings.Fields(s)}
}

// Len returns the number of unconsumed tokens.
func (f *Fields) Len() int {
	return len(f.tokens) - f.next
}

// Next consumes a single token. name identifies the field in errors.
func (f *Fields) Next(name string) (string, error) {
	if f.Len() < 1 {
		return "", fmt.Errorf("%w: missing %s", ErrShortLine, name)
	}
	tok := f.tokens[f.next]
	f.next++
	return tok, nil
}

// Take consumes exactly n tokens.
func (f *Fields) Take(name string, n int) ([]string, error) {
	if n < 0 || f.Len() < n {
		return nil, fmt.Errorf("%w: %s wants %d tokens, %d left", ErrShortLine, name, n, f.Len())
	}
	toks := f.tokens[f.next : f.next+n]
	f.next += n
	return toks, nil
}

// Count consumes a token and parses it as a non-negative integer in the
// given base.
func (f *Fields) Count(name string, base int) (int, error) {
	tok, err := f.Next(name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(tok, base, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q: %w", ErrBadCount, name, tok, err)
	}
	return int(n), nil
}

// Groups consumes n groups of size tokens and joins the tokens of each group
// with sep. The whole span is checked before anything is consumed.
func (f *Fields) Groups(name string, n, size int, sep string) ([]string, error) {
	spans, err := f.Spans(name, n, size)
	if err != nil {
		return nil, err
	}
	groups := make([]string, len(spans))
	for i, span := range spans {
		groups[i] = strings.Join(span, sep)
	}
	return groups, nil
}

// Spans consumes n groups of size tokens and returns the tokens of each
// group. The count is checked against the remaining tokens before n*size is
// computed so a huge count cannot overflow.
func (f *Fields) Spans(name string, n, size int) ([][]string, error) {
	if size <= 0 || n < 0 || n > f.Len()/size {
		return nil, fmt.Errorf("%w: %s wants %d groups of %d tokens, %d left", ErrShortLine, name, n, size, f.Len())
	}
	toks, err := f.Take(name, n*size)
	if err != nil {
		return nil, err
	}
	spans := make([][]string, 0, n)
	for i := 0; i < len(toks); i += size {
		spans = append(spans, toks[i:i+size])
	}
	return spans, nil
}
