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

// Package index implements a generic sorted lookup table keyed by folded
// strings.
package index

import (
	"slices"
	"sort"
	"strings"
)

// Keyed is a value with a lookup key.
type Keyed interface {
	Key() string
}

// Sorted is a slice of values sorted by key.
type Sorted[V Keyed] struct {
	values []V
}

// NewSorted sorts a copy of values by key. Values with equal keys keep their
// relative order.
func NewSorted[V Keyed](values []V) *Sorted[V] {
	sorted := make([]V, len(values))
	copy(sorted, values)
	slices.SortStableFunc(sorted, func(a, b V) int {
		return strings.Compare(a.Key(), b.Key())
	})

	return &Sorted[V]{values: sorted}
}

// Len returns the number of values.
func (s *Sorted[V]) Len() int {
	return len(s.values)
}

// Search returns all values whose key equals key.
func (s *Sorted[V]) Search(key string) []V {
	i, found := sort.Find(len(s.values), func(i int) int {
		return strings.Compare(key, s.values[i].Key())
	})
	if !found {
		return nil
	}

	j := i
	for j < len(s.values) && s.values[j].Key() == key {
		j++
	}
	return s.values[i:j]
}

// Prefix returns up to limit values whose key starts with prefix, in key
// order. A limit of zero or less returns every match.
func (s *Sorted[V]) Prefix(prefix string, limit int) []V {
	i := sort.Search(len(s.values), func(i int) bool {
		return s.values[i].Key() >= prefix
	})

	j := i
	for j < len(s.values) && strings.HasPrefix(s.values[j].Key(), prefix) {
		if limit > 0 && j-i == limit {
			break
		}
		j++
	}
	if i == j {
		return nil
	}
	return s.values[i:j]
}
