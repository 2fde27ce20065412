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

package wordnet

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/go-wordnet/pos"
)

var (
	// ErrNotFound indicates that no WordNet dictionary directory was found.
	ErrNotFound = errors.New("wordnet dictionary not found")

	// ErrMissingFile indicates that a required index or data file is missing
	// or unreadable.
	ErrMissingFile = errors.New("missing wordnet file")
)

// probeFile is the file used to recognize a WordNet dictionary directory.
const probeFile = "data.noun"

// compressedExts are tried, in order, after the bare file name.
var compressedExts = []string{".gz", ".dz", ".GZ", ".DZ"}

// Locate returns the first WordNet dictionary directory found in dirs. A
// directory matches if it contains data.noun itself or has a "dict"
// subdirectory that does.
func Locate(dirs ...string) (string, error) {
	return locate(os.DirFS, dirs...)
}

func locate(dirFS func(string) fs.FS, dirs ...string) (string, error) {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		for _, candidate := range []string{dir, filepath.Join(dir, "dict")} {
			f, _, err := findFile(dirFS(candidate), probeFile)
			if err == nil {
				f.Close()
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("%w: searched %s", ErrNotFound, strings.Join(dirs, ", "))
}

// CheckFiles verifies that the index files and, if includeData is true, the
// data files for every part of speech in parts exist and can be opened. An
// empty parts checks every part of speech.
func CheckFiles(fsys fs.FS, parts []pos.POS, includeData bool) error {
	if len(parts) == 0 {
		parts = pos.All
	}

	var errs []error
	for _, p := range parts {
		names := []string{p.IndexFile()}
		if includeData {
			names = append(names, p.DataFile())
		}
		for _, name := range names {
			f, _, err := findFile(fsys, name)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			f.Close()
		}
	}
	return errors.Join(errs...)
}

// findFile opens name or its first compressed variant found in fsys and
// returns the opened file and its actual name.
func findFile(fsys fs.FS, name string) (fs.File, string, error) {
	for _, candidate := range append([]string{name}, withExts(name)...) {
		f, err := fsys.Open(candidate)
		if err == nil {
			return f, candidate, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: %s: %w", ErrMissingFile, candidate, err)
		}
	}
	return nil, "", fmt.Errorf("%w: %s", ErrMissingFile, name)
}

func withExts(name string) []string {
	names := make([]string, len(compressedExts))
	for i, ext := range compressedExts {
		names[i] = name + ext
	}
	return names
}

// openFile opens name from fsys, transparently decompressing gzip and
// dictzip files. The returned name is the name of the file that was opened.
func openFile(fsys fs.FS, name string) (io.ReadCloser, string, error) {
	f, actual, err := findFile(fsys, name)
	if err != nil {
		return nil, "", err
	}

	switch strings.ToLower(filepath.Ext(actual)) {
	case ".gz":
		z, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, "", fmt.Errorf("opening %q: %w", actual, err)
		}
		return &stackedReader{Reader: z, closers: []io.Closer{z, f}}, actual, nil
	case ".dz":
		rs, ok := f.(io.ReadSeeker)
		if !ok {
			f.Close()
			return nil, "", fmt.Errorf("opening %q: dictzip file is not seekable", actual)
		}
		z, err := dictzip.NewReader(rs)
		if err != nil {
			f.Close()
			return nil, "", fmt.Errorf("opening %q: %w", actual, err)
		}
		closers := []io.Closer{f}
		if c, ok := any(z).(io.Closer); ok {
			closers = []io.Closer{c, f}
		}
		return &stackedReader{Reader: z, closers: closers}, actual, nil
	default:
		return f, actual, nil
	}
}

// stackedReader reads from a decompressor and closes it along with the
// underlying file.
type stackedReader struct {
	io.Reader
	closers []io.Closer
}

func (r *stackedReader) Close() error {
	var errs []error
	for _, c := range r.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
