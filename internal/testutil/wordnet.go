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

// Package testutil builds WordNet dictionary directories for tests.
package testutil

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/ianlewis/go-dictzip"
)

// Header is a two line license header as found at the top of every WordNet
// index and data file.
const Header = "  1 This software and database is being provided to you, the LICENSEE, by  \n" +
	"  2 Princeton University under the following license.  By obtaining, using  \n"

// Compression selects how MakeTempDir writes files.
type Compression int

const (
	// None writes plain files.
	None Compression = iota

	// Gzip writes files with a .gz extension.
	Gzip

	// DictZip writes files with a .dz extension.
	DictZip
)

// MakeDirOptions are options for MakeTempDir.
type MakeDirOptions struct {
	// Compression is the compression applied to every file.
	Compression Compression

	// Subdir places the files in a subdirectory of the returned directory,
	// e.g. "dict".
	Subdir string
}

// MakeTempDir writes files, keyed by file name, into a new temporary
// directory and returns the directory.
func MakeTempDir(t *testing.T, files map[string]string, opts *MakeDirOptions) string {
	t.Helper()
	if opts == nil {
		opts = &MakeDirOptions{}
	}

	root := t.TempDir()
	dir := filepath.Join(root, opts.Subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	for name, content := range files {
		writeFile(t, filepath.Join(dir, name), []byte(content), opts.Compression)
	}

	return root
}

func writeFile(t *testing.T, path string, content []byte, c Compression) {
	t.Helper()

	switch c {
	case Gzip:
		path += ".gz"
	case DictZip:
		path += ".dz"
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	switch c {
	case Gzip:
		z := gzip.NewWriter(f)
		if _, err := z.Write(content); err != nil {
			t.Fatal(err)
		}
		if err := z.Close(); err != nil {
			t.Fatal(err)
		}
	case DictZip:
		z, err := dictzip.NewWriter(f)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := z.Write(content); err != nil {
			t.Fatal(err)
		}
		if err := z.Close(); err != nil {
			t.Fatal(err)
		}
	default:
		if _, err := f.Write(content); err != nil {
			t.Fatal(err)
		}
	}
}

// SampleFiles returns a small but complete WordNet dictionary. "cat" and
// "fast" appear under more than one part of speech.
func SampleFiles() map[string]string {
	return map[string]string{
		"index.adj": Header +
			"fast a 1 2 ! & 1 0 00976508  \n",
		"index.adv": Header +
			"fast r 1 0 1 0 00085811  \n",
		"index.noun": Header +
			"cat n 2 1 @ 0 1 02121620 00015388  \n" +
			"dog n 1 1 @ 1 1 02084071  \n",
		"index.verb": Header +
			"cat v 1 1 @ 1 0 01415872  \n" +
			"fast v 1 1 @ 1 0 01191645  \n",
		"data.adj": Header +
			"00976508 00 a 01 fast 0 001 ! 00980527 a 0101 | acting or moving or capable of acting or moving quickly  \n",
		"data.adv": Header +
			"00085811 02 r 01 fast 0 000 | quickly or rapidly  \n",
		"data.noun": Header +
			"00015388 03 n 04 animal 0 animate_being 0 beast 0 brute 0 000 | a living organism characterized by voluntary movement  \n" +
			"02084071 05 n 01 dog 0 001 @ 02083346 n 0000 | a member of the genus Canis  \n" +
			"02121620 05 n 01 cat 0 001 @ 02120997 n 0000 | feline mammal usually having thick soft fur  \n",
		"data.verb": Header +
			"01191645 34 v 01 fast 0 001 @ 01157517 v 0000 01 + 02 00 | abstain from eating  \n" +
			"01415872 35 v 01 cat 1 001 @ 01415256 v 0000 01 + 08 00 | beat with a cat-o'-nine-tails  \n",
	}
}
