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

// Package folding normalizes user queries into the form WordNet uses for
// lemmas: case folded, with no leading or trailing whitespace and with each
// internal whitespace span written as a single underscore.
package folding

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/transform"
)

// Separator replaces internal whitespace in lemmas.
const Separator = '_'

// SpaceFolder trims whitespace from the beginning and end of the input and
// replaces all internal whitespace spans with a single Separator rune.
type SpaceFolder struct {
	// notStart is true after encountering the first non-whitespace rune.
	notStart bool

	// wsSpan is true while inside an internal whitespace span.
	wsSpan bool
}

// Transform implements [transform.Transformer.Transform].
func (w *SpaceFolder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nSrc, nDst int
	for nSrc < len(src) {
		c, size := utf8.DecodeRune(src[nSrc:])
		if c == utf8.RuneError && !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}

		if unicode.IsSpace(c) {
			nSrc += size
			if w.notStart {
				w.wsSpan = true
			}
			continue
		}

		if w.wsSpan {
			if nDst+utf8.RuneLen(Separator) > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += utf8.EncodeRune(dst[nDst:], Separator)
			w.wsSpan = false
		}

		// NOTE: the length of utf8.RuneError is 3 even if size is 1.
		if nDst+utf8.RuneLen(c) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		w.notStart = true
		nSrc += size
		nDst += utf8.EncodeRune(dst[nDst:], c)
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (w *SpaceFolder) Reset() {
	*w = SpaceFolder{}
}

// Lemma returns a transformer that folds text into lemma form.
func Lemma() transform.Transformer {
	return transform.Chain(cases.Fold(), &SpaceFolder{})
}

// String folds s into lemma form.
func String(s string) (string, error) {
	folded, _, err := transform.String(Lemma(), s)
	//nolint:wrapcheck // transform errors are returned as is.
	return folded, err
}
