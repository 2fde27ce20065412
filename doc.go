// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package wordnet builds a key-value dataset from the WordNet flat-file
// distribution in pure Go.
//
// A WordNet dictionary directory contains, for each of the parts of speech
// adj, adv, noun and verb:
//  1. An index.{pos} file with one line per lemma listing the synsets the
//     lemma belongs to.
//  2. A data.{pos} file with one line per synset holding its words,
//     pointers and gloss.
//
// Build reads the index files into one Lemma record per lemma, merged across
// parts of speech, and optionally the data files into one Synset record per
// synset. The resulting Dataset is handed to a Writer, such as the sqlite
// table store or the dictzip compressed blob in the store packages.
//
// Either file can be gzip (.gz) or dictzip (.dz) compressed.
//
// More info on the file formats can be found at this URL:
// https://wordnet.princeton.edu/documentation/wndb5wn
package wordnet
