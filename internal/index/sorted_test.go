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

package index

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type entry struct {
	key   string
	value int
}

func (e entry) Key() string {
	return e.key
}

var values = []entry{
	{"dog", 1},
	{"cat", 2},
	{"cat_burglar", 3},
	{"cat", 4},
	{"catch", 5},
	{"ant", 6},
}

func TestSorted_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		query    string
		expected []entry
	}{
		{
			name:     "single result",
			query:    "dog",
			expected: []entry{{"dog", 1}},
		},
		{
			name:     "multiple results keep order",
			query:    "cat",
			expected: []entry{{"cat", 2}, {"cat", 4}},
		},
		{
			name:     "no results",
			query:    "none",
			expected: nil,
		},
		{
			name:     "prefix is not a match",
			query:    "ca",
			expected: nil,
		},
	}

	s := NewSorted(values)
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := s.Search(test.query)
			if diff := cmp.Diff(test.expected, got, cmp.AllowUnexported(entry{})); diff != "" {
				t.Fatalf("Search (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestSorted_Prefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		prefix   string
		limit    int
		expected []entry
	}{
		{
			name:     "all matches",
			prefix:   "cat",
			expected: []entry{{"cat", 2}, {"cat", 4}, {"cat_burglar", 3}, {"catch", 5}},
		},
		{
			name:     "limited",
			prefix:   "cat",
			limit:    2,
			expected: []entry{{"cat", 2}, {"cat", 4}},
		},
		{
			name:     "empty prefix",
			prefix:   "",
			limit:    1,
			expected: []entry{{"ant", 6}},
		},
		{
			name:     "past the end",
			prefix:   "zebra",
			expected: nil,
		},
	}

	s := NewSorted(values)
	if want, got := len(values), s.Len(); want != got {
		t.Fatalf("Len; want: %d, got: %d", want, got)
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := s.Prefix(test.prefix, test.limit)
			if diff := cmp.Diff(test.expected, got, cmp.AllowUnexported(entry{})); diff != "" {
				t.Fatalf("Prefix (-want, +got):\n%s", diff)
			}
		})
	}
}
