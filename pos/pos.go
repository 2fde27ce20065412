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

// Package pos defines the four WordNet parts of speech, the suffix used by
// their index and data files and the single letter tag used to qualify
// synset offsets.
package pos

import (
	"errors"
	"fmt"
)

// ErrInvalid indicates an unknown part of speech.
var ErrInvalid = errors.New("invalid part of speech")

// POS is a WordNet part of speech identified by its single letter tag.
type POS byte

const (
	// Adjective is stored in index.adj and data.adj.
	Adjective = POS('a')

	// Adverb is stored in index.adv and data.adv.
	Adverb = POS('r')

	// Noun is stored in index.noun and data.noun.
	Noun = POS('n')

	// Verb is stored in index.verb and data.verb.
	Verb = POS('v')
)

// All lists the parts of speech in the order their files are processed.
var All = []POS{Adjective, Adverb, Noun, Verb}

var suffixes = map[POS]string{
	Adjective: "adj",
	Adverb:    "adv",
	Noun:      "noun",
	Verb:      "verb",
}

// Parse returns the POS for either a file suffix ("noun") or a tag ("n").
func Parse(s string) (POS, error) {
	for p, suffix := range suffixes {
		if s == suffix || s == p.Tag() {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalid, s)
}

// Valid reports whether p is one of the four file parts of speech.
func (p POS) Valid() bool {
	_, ok := suffixes[p]
	return ok
}

// Tag returns the single letter tag, e.g. "n".
func (p POS) Tag() string {
	return string(rune(p))
}

// String returns the file suffix, e.g. "noun".
func (p POS) String() string {
	if s, ok := suffixes[p]; ok {
		return s
	}
	return fmt.Sprintf("POS(%q)", rune(p))
}

// Qualify prefixes id with the tag so that identifiers from different files
// never collide.
func (p POS) Qualify(id string) string {
	return p.Tag() + id
}

// IndexFile returns the name of the index file, e.g. "index.noun".
func (p POS) IndexFile() string {
	return "index." + p.String()
}

// DataFile returns the name of the data file, e.g. "data.noun".
func (p POS) DataFile() string {
	return "data." + p.String()
}
