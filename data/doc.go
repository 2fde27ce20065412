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

// Package data implements reading WordNet data.{pos} files.
//
// Each non-header line of a data file describes one synset:
//
//	synset_offset lex_filenum ss_type w_cnt word lex_id [word lex_id...] p_cnt [ptr...] [frames...] | gloss
//
// w_cnt is a two digit hexadecimal number. p_cnt is a three digit decimal
// number followed by p_cnt pointers of four fields each (pointer_symbol,
// synset_offset, pos, source/target). Lines of data.verb additionally carry
// a frame count followed by "+ f_num w_num" triples. Everything after the
// first " | " is the gloss.
package data
