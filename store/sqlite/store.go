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

// Package sqlite stores WordNet datasets in a SQLite database with one table
// for lemmas and one for synsets. List fields are stored as a single column
// with items separated by "|".
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ianlewis/go-wordnet/data"
	"github.com/ianlewis/go-wordnet/index"
)

// Separator joins list items in a column.
const Separator = "|"

// ErrNotFound indicates that a key has no row.
var ErrNotFound = errors.New("not found")

//go:embed schema.sql
var schemaSQL string

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// InitSchema creates the tables if they do not exist.
func InitSchema(ctx context.Context, db execer) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return nil
}

// Store is a SQLite backed dataset store.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	s, err := New(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New returns a Store using db. The schema is applied to db. Closing the
// Store closes db.
func New(ctx context.Context, db *sql.DB) (*Store, error) {
	if err := InitSchema(ctx, db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	//nolint:wrapcheck // error should not be wrapped
	return s.db.Close()
}

// WriteDataset replaces the contents of the store with lemmas and synsets in
// a single transaction.
func (s *Store) WriteDataset(ctx context.Context, lemmas map[string]*index.Lemma, synsets map[string]*data.Synset) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range []string{"DELETE FROM lemmas", "DELETE FROM synsets"} {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clearing tables: %w", err)
		}
	}

	if err = insertLemmas(ctx, tx, lemmas); err != nil {
		return err
	}
	if err = insertSynsets(ctx, tx, synsets); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

func insertLemmas(ctx context.Context, tx *sql.Tx, lemmas map[string]*index.Lemma) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO lemmas (lemma, synset_ids, tagsense_counts) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing lemma insert: %w", err)
	}
	defer stmt.Close()

	for _, key := range sortedKeys(lemmas) {
		l := lemmas[key]
		if _, err := stmt.ExecContext(ctx, key, join(l.SynsetIDs), join(l.TagSenseCounts)); err != nil {
			return fmt.Errorf("inserting lemma %q: %w", key, err)
		}
	}
	return nil
}

func insertSynsets(ctx context.Context, tx *sql.Tx, synsets map[string]*data.Synset) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO synsets (synset_id, lexical_filenum, synset_type, words, relations, frames, gloss)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing synset insert: %w", err)
	}
	defer stmt.Close()

	for _, key := range sortedKeys(synsets) {
		syn := synsets[key]
		if _, err := stmt.ExecContext(ctx, key, syn.LexFilenum, syn.Type,
			join(syn.Words), join(syn.Relations), join(syn.Frames), syn.Gloss); err != nil {
			return fmt.Errorf("inserting synset %q: %w", key, err)
		}
	}
	return nil
}

// Lemma returns the record for lemma.
func (s *Store) Lemma(ctx context.Context, lemma string) (*index.Lemma, error) {
	var synsetIDs, tagsenseCounts string
	err := s.db.QueryRowContext(ctx,
		`SELECT synset_ids, tagsense_counts FROM lemmas WHERE lemma = ?`, lemma,
	).Scan(&synsetIDs, &tagsenseCounts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: lemma %q", ErrNotFound, lemma)
	}
	if err != nil {
		return nil, fmt.Errorf("querying lemma %q: %w", lemma, err)
	}

	return &index.Lemma{
		Lemma:          lemma,
		SynsetIDs:      split(synsetIDs),
		TagSenseCounts: split(tagsenseCounts),
	}, nil
}

// Synset returns the synset with the qualified id.
func (s *Store) Synset(ctx context.Context, id string) (*data.Synset, error) {
	var syn data.Synset
	var words, relations, frames string
	err := s.db.QueryRowContext(ctx,
		`SELECT synset_id, lexical_filenum, synset_type, words, relations, frames, gloss
		 FROM synsets WHERE synset_id = ?`, id,
	).Scan(&syn.ID, &syn.LexFilenum, &syn.Type, &words, &relations, &frames, &syn.Gloss)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: synset %q", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying synset %q: %w", id, err)
	}

	syn.Words = split(words)
	syn.Relations = split(relations)
	syn.Frames = split(frames)
	return &syn, nil
}

// Count returns the number of lemma and synset rows.
func (s *Store) Count(ctx context.Context) (lemmas, synsets int, err error) {
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lemmas`).Scan(&lemmas); err != nil {
		return 0, 0, fmt.Errorf("counting lemmas: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM synsets`).Scan(&synsets); err != nil {
		return 0, 0, fmt.Errorf("counting synsets: %w", err)
	}
	return lemmas, synsets, nil
}

func join(items []string) string {
	return strings.Join(items, Separator)
}

func split(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, Separator)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
