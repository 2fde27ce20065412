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

// Package index implements reading WordNet index.{pos} files.
//
// Each non-header line of an index file describes one lemma for one part of
// speech as a sequence of space separated fields:
//
//	lemma pos synset_cnt p_cnt [ptr_symbol...] sense_cnt tagsense_cnt synset_offset [synset_offset...]
//
// p_cnt pointer symbols and synset_cnt synset offsets follow their counts.
// Lines starting with two spaces are license header lines and are skipped.
//
// An Index accumulates the lines of all four index files into one Lemma
// record per lemma string.
package index
