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

package wordnet

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-wordnet/data"
	"github.com/ianlewis/go-wordnet/index"
	"github.com/ianlewis/go-wordnet/internal/testutil"
	"github.com/ianlewis/go-wordnet/pos"
)

func sampleFS() fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, content := range testutil.SampleFiles() {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return fsys
}

// trackingFS counts the files opened through it that are not yet closed.
type trackingFS struct {
	fs.FS

	mu   sync.Mutex
	open int
}

func (t *trackingFS) Open(name string) (fs.File, error) {
	f, err := t.FS.Open(name)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	t.open++
	t.mu.Unlock()
	return &trackedFile{File: f, fsys: t}, nil
}

func (t *trackingFS) Unclosed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}

type trackedFile struct {
	fs.File
	fsys *trackingFS
	once sync.Once
}

func (f *trackedFile) Close() error {
	f.once.Do(func() {
		f.fsys.mu.Lock()
		f.fsys.open--
		f.fsys.mu.Unlock()
	})
	return f.File.Close()
}

// deniedFS fails to open the named files with fs.ErrPermission.
type deniedFS struct {
	fs.FS
	denied map[string]bool
}

func (d deniedFS) Open(name string) (fs.File, error) {
	if d.denied[name] {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}
	return d.FS.Open(name)
}

func TestBuild(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		compression testutil.Compression
	}{
		{name: "plain", compression: testutil.None},
		{name: "gzip", compression: testutil.Gzip},
		{name: "dictzip", compression: testutil.DictZip},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			dir := testutil.MakeTempDir(t, testutil.SampleFiles(), &testutil.MakeDirOptions{
				Compression: test.compression,
			})

			d, err := Build(dir, &Options{IncludeSynsets: true})
			if err != nil {
				t.Fatalf("Build: %v", err)
			}

			expectedLemmas := map[string]*index.Lemma{
				"cat": {
					Lemma:          "cat",
					SynsetIDs:      []string{"n02121620", "n00015388", "v01415872"},
					TagSenseCounts: []string{"n1", "v0"},
				},
				"dog": {
					Lemma:          "dog",
					SynsetIDs:      []string{"n02084071"},
					TagSenseCounts: []string{"n1"},
				},
				"fast": {
					Lemma:          "fast",
					SynsetIDs:      []string{"a00976508", "r00085811", "v01191645"},
					TagSenseCounts: []string{"a0", "r0", "v0"},
				},
			}
			if diff := cmp.Diff(expectedLemmas, d.Lemmas); diff != "" {
				t.Fatalf("Lemmas (-want, +got):\n%s", diff)
			}

			if want, got := 7, len(d.Synsets); want != got {
				t.Fatalf("len(Synsets); want: %d, got: %d", want, got)
			}
			expectedCat := &data.Synset{
				ID:         "v01415872",
				LexFilenum: "35",
				Type:       "v",
				Words:      []string{"cat.1"},
				Relations:  []string{"@.01415256.v.0000"},
				Frames:     []string{"08.00"},
				Gloss:      "beat with a cat-o'-nine-tails",
			}
			if diff := cmp.Diff(expectedCat, d.Synsets["v01415872"]); diff != "" {
				t.Fatalf("Synset (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestBuild_indexOnly(t *testing.T) {
	t.Parallel()

	fsys := sampleFS()
	// The data files are never opened.
	for _, p := range pos.All {
		delete(fsys, p.DataFile())
	}

	d, err := BuildFS(fsys, nil)
	if err != nil {
		t.Fatalf("BuildFS: %v", err)
	}
	if want, got := 3, len(d.Lemmas); want != got {
		t.Errorf("len(Lemmas); want: %d, got: %d", want, got)
	}
	if want, got := 0, len(d.Synsets); want != got {
		t.Errorf("len(Synsets); want: %d, got: %d", want, got)
	}
}

func TestBuild_stats(t *testing.T) {
	t.Parallel()

	d, err := BuildFS(sampleFS(), &Options{IncludeSynsets: true})
	if err != nil {
		t.Fatalf("BuildFS: %v", err)
	}

	expected := Stats{
		POS: []POSStats{
			{POS: pos.Adjective, IndexLines: 1, NewLemmas: 1, Synsets: 1},
			{POS: pos.Adverb, IndexLines: 1, NewLemmas: 0, Synsets: 1},
			{POS: pos.Noun, IndexLines: 2, NewLemmas: 2, Synsets: 3},
			{POS: pos.Verb, IndexLines: 2, NewLemmas: 0, Synsets: 2},
		},
	}
	if diff := cmp.Diff(expected, d.Stats); diff != "" {
		t.Fatalf("Stats (-want, +got):\n%s", diff)
	}
}

func TestBuild_subset(t *testing.T) {
	t.Parallel()

	d, err := BuildFS(sampleFS(), &Options{POS: []pos.POS{pos.Verb, pos.Noun}})
	if err != nil {
		t.Fatalf("BuildFS: %v", err)
	}

	// Files are merged in the order given.
	if diff := cmp.Diff([]string{"v0", "n1"}, d.Lemmas["cat"].TagSenseCounts); diff != "" {
		t.Fatalf("TagSenseCounts (-want, +got):\n%s", diff)
	}
	if _, ok := d.Lemmas["fast"]; !ok {
		t.Fatalf("expected lemma fast from index.verb")
	}

	if _, err := BuildFS(sampleFS(), &Options{POS: []pos.POS{pos.POS('s')}}); !errors.Is(err, pos.ErrInvalid) {
		t.Fatalf("BuildFS: want %v, got %v", pos.ErrInvalid, err)
	}
}

func TestBuild_malformed(t *testing.T) {
	t.Parallel()

	t.Run("index", func(t *testing.T) {
		t.Parallel()

		fsys := sampleFS()
		fsys["index.noun"] = &fstest.MapFile{Data: []byte(testutil.Header + "cat n 3 1 @ 0 1 02121620 00015388\n")}

		_, err := BuildFS(fsys, nil)
		if !errors.Is(err, index.ErrMalformedIndexLine) {
			t.Fatalf("BuildFS: want %v, got %v", index.ErrMalformedIndexLine, err)
		}
		var perr *index.ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("BuildFS: want *index.ParseError, got %T", err)
		}
		if want, got := "index.noun", perr.File; want != got {
			t.Errorf("File; want: %q, got: %q", want, got)
		}
		if want, got := 3, perr.Line; want != got {
			t.Errorf("Line; want: %d, got: %d", want, got)
		}
	})

	t.Run("data", func(t *testing.T) {
		t.Parallel()

		fsys := sampleFS()
		fsys["data.adv"] = &fstest.MapFile{Data: []byte("00085811 02 r 02 fast 0 000 | quickly or rapidly\n")}

		_, err := BuildFS(fsys, &Options{IncludeSynsets: true})
		if !errors.Is(err, data.ErrMalformedDataLine) {
			t.Fatalf("BuildFS: want %v, got %v", data.ErrMalformedDataLine, err)
		}

		// Without synsets the data file is never read.
		if _, err := BuildFS(fsys, nil); err != nil {
			t.Fatalf("BuildFS: %v", err)
		}
	})
}

func TestBuild_missingFile(t *testing.T) {
	t.Parallel()

	fsys := sampleFS()
	delete(fsys, "index.verb")

	if _, err := BuildFS(fsys, nil); !errors.Is(err, ErrMissingFile) {
		t.Fatalf("BuildFS: want %v, got %v", ErrMissingFile, err)
	}
}

func TestCheckFiles(t *testing.T) {
	t.Parallel()

	fsys := sampleFS()
	if err := CheckFiles(fsys, pos.All, true); err != nil {
		t.Fatalf("CheckFiles: %v", err)
	}

	delete(fsys, "data.noun")
	delete(fsys, "data.verb")
	if err := CheckFiles(fsys, pos.All, false); err != nil {
		t.Fatalf("CheckFiles without data: %v", err)
	}
	err := CheckFiles(fsys, pos.All, true)
	if !errors.Is(err, ErrMissingFile) {
		t.Fatalf("CheckFiles: want %v, got %v", ErrMissingFile, err)
	}

	// Files that exist but cannot be opened are reported too.
	denied := deniedFS{FS: sampleFS(), denied: map[string]bool{"index.adv": true}}
	err = CheckFiles(denied, pos.All, false)
	if !errors.Is(err, ErrMissingFile) || !errors.Is(err, fs.ErrPermission) {
		t.Fatalf("CheckFiles(denied): want %v and %v, got %v", ErrMissingFile, fs.ErrPermission, err)
	}

	// CheckFiles closes every file it opens.
	tracked := &trackingFS{FS: sampleFS()}
	if err := CheckFiles(tracked, pos.All, true); err != nil {
		t.Fatalf("CheckFiles(tracked): %v", err)
	}
	if want, got := 0, tracked.Unclosed(); want != got {
		t.Errorf("unclosed files; want: %d, got: %d", want, got)
	}

	// An empty part of speech list checks every file.
	if err := CheckFiles(fsys, nil, true); !errors.Is(err, ErrMissingFile) {
		t.Fatalf("CheckFiles(nil): want %v, got %v", ErrMissingFile, err)
	}
	if err := CheckFiles(fsys, []pos.POS{pos.Adjective}, true); err != nil {
		t.Fatalf("CheckFiles(adj): %v", err)
	}
}

func TestLocate(t *testing.T) {
	t.Parallel()

	flat := testutil.MakeTempDir(t, testutil.SampleFiles(), nil)
	nested := testutil.MakeTempDir(t, testutil.SampleFiles(), &testutil.MakeDirOptions{Subdir: "dict"})
	compressed := testutil.MakeTempDir(t, testutil.SampleFiles(), &testutil.MakeDirOptions{Compression: testutil.Gzip})
	empty := t.TempDir()

	tests := []struct {
		name     string
		dirs     []string
		expected string
		err      error
	}{
		{name: "flat", dirs: []string{flat}, expected: flat},
		{name: "dict subdirectory", dirs: []string{nested}, expected: filepath.Join(nested, "dict")},
		{name: "compressed", dirs: []string{compressed}, expected: compressed},
		{name: "first match wins", dirs: []string{"", empty, nested, flat}, expected: filepath.Join(nested, "dict")},
		{name: "not found", dirs: []string{empty, filepath.Join(empty, "missing")}, err: ErrNotFound},
		{name: "no dirs", err: ErrNotFound},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			dir, err := Locate(test.dirs...)
			if !errors.Is(err, test.err) {
				t.Fatalf("Locate: want %v, got %v", test.err, err)
			}
			if want, got := test.expected, dir; want != got {
				t.Fatalf("Locate; want: %q, got: %q", want, got)
			}
		})
	}
}

func TestLocate_closesProbe(t *testing.T) {
	t.Parallel()

	flat := testutil.MakeTempDir(t, testutil.SampleFiles(), nil)
	nested := testutil.MakeTempDir(t, testutil.SampleFiles(), &testutil.MakeDirOptions{
		Subdir:      "dict",
		Compression: testutil.DictZip,
	})

	var mu sync.Mutex
	var opened []*trackingFS
	dirFS := func(dir string) fs.FS {
		tfs := &trackingFS{FS: os.DirFS(dir)}
		mu.Lock()
		opened = append(opened, tfs)
		mu.Unlock()
		return tfs
	}

	for range 50 {
		for _, dir := range []string{flat, nested} {
			if _, err := locate(dirFS, t.TempDir(), dir); err != nil {
				t.Fatalf("locate(%q): %v", dir, err)
			}
		}
	}

	for _, tfs := range opened {
		if got := tfs.Unclosed(); got != 0 {
			t.Fatalf("locate left %d files open", got)
		}
	}
}

func TestBuildFS_closesFiles(t *testing.T) {
	t.Parallel()

	tracked := &trackingFS{FS: sampleFS()}
	if _, err := BuildFS(tracked, &Options{IncludeSynsets: true}); err != nil {
		t.Fatalf("BuildFS: %v", err)
	}
	if want, got := 0, tracked.Unclosed(); want != got {
		t.Errorf("unclosed files; want: %d, got: %d", want, got)
	}
}

func TestDataset_Write(t *testing.T) {
	t.Parallel()

	d, err := BuildFS(sampleFS(), &Options{IncludeSynsets: true})
	if err != nil {
		t.Fatalf("BuildFS: %v", err)
	}

	var calls []string
	record := func(name string, err error) Writer {
		return WriterFunc(func(_ context.Context, lemmas map[string]*index.Lemma, synsets map[string]*data.Synset) error {
			if len(lemmas) != 3 || len(synsets) != 7 {
				t.Errorf("%s: got %d lemmas and %d synsets", name, len(lemmas), len(synsets))
			}
			calls = append(calls, name)
			return err
		})
	}

	if err := d.Write(context.Background(), MultiWriter(record("table", nil), record("blob", nil))); err != nil {
		t.Fatalf("Write: %v", err)
	}

	errDisk := errors.New("disk full")
	err = d.Write(context.Background(), MultiWriter(record("table", errDisk), record("blob", nil)))
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("Write: want %v, got %v", ErrWrite, err)
	}
	if !errors.Is(err, errDisk) {
		t.Fatalf("Write: want %v, got %v", errDisk, err)
	}

	if diff := cmp.Diff([]string{"table", "blob", "table"}, calls); diff != "" {
		t.Fatalf("calls (-want, +got):\n%s", diff)
	}
}
