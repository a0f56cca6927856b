// Copyright 2024 KNUST Chat Bot Backend Project
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

// Package fuzzy implements approximate programme-name matching. Scores are
// normalized to [0, 1] where 0 is a perfect match; the thresholds below
// partition scores into confident matches, disambiguation candidates and
// rejects.
package fuzzy

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/officialjwise/knust-chat-bot-backend/internal/catalog"
)

const (
	// MatchThreshold is the worst score Search will return at all.
	MatchThreshold = 0.4
	// AcceptThreshold is the worst score treated as a confident single match.
	AcceptThreshold = 0.3
	// SuggestThreshold is the worst score offered as a "did you mean" candidate.
	SuggestThreshold = 0.6
	// PositionTolerance controls how strongly a match deep inside a name is
	// penalized relative to one at the start.
	PositionTolerance = 100
)

// positionWeight scales the positional penalty relative to edit distance.
const positionWeight = 0.05

// Match pairs a programme with its score. Lower scores are better.
type Match struct {
	Program catalog.Program
	Score   float64
}

// Matcher searches the programme catalog by approximate name. It is immutable
// after construction and safe for concurrent use.
type Matcher struct {
	programs []catalog.Program
	keys     [][]string
}

// NewMatcher indexes the catalog for searching. Each programme is indexed
// under its full name and its degree-prefix-stripped name, so "computer
// science" scores as well as "bsc computer science".
func NewMatcher(c *catalog.Catalog) *Matcher {
	programs := c.Programs()
	m := &Matcher{
		programs: programs,
		keys:     make([][]string, len(programs)),
	}
	for i, p := range programs {
		keys := []string{strings.ToLower(p.Name)}
		if stripped, ok := catalog.StripDegreePrefix(p.Name); ok {
			keys = append(keys, strings.ToLower(stripped))
		}
		m.keys[i] = keys
	}
	return m
}

// Search returns programmes scoring at or below MatchThreshold, ordered by
// ascending score with catalog order breaking ties. limit <= 0 means no limit.
func (m *Matcher) Search(query string, limit int) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var matches []Match
	for i, p := range m.programs {
		best := 1.0
		for _, key := range m.keys[i] {
			if s := score(query, key); s < best {
				best = s
			}
		}
		if best <= MatchThreshold {
			matches = append(matches, Match{Program: p, Score: best})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score < matches[j].Score
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Best returns the single highest-ranked match at or below AcceptThreshold.
func (m *Matcher) Best(query string) (Match, bool) {
	matches := m.Search(query, 1)
	if len(matches) == 0 || matches[0].Score > AcceptThreshold {
		return Match{}, false
	}
	return matches[0], true
}

// score computes the best normalized edit distance between the shorter of
// the two strings and any similarly sized window of the longer one, plus a
// small penalty for windows that start deep inside it. Sliding the shorter
// string lets a whole-message query match a programme name buried inside it.
func score(query, candidate string) float64 {
	pattern := []rune(query)
	text := []rune(candidate)
	if len(pattern) == 0 || len(text) == 0 {
		return 1.0
	}
	if len(pattern) > len(text) {
		pattern, text = text, pattern
	}

	best := 1.0
	// Windows within one rune of the pattern length cover insertions and
	// deletions at the window boundary.
	minLen := len(pattern) - 1
	if minLen < 1 {
		minLen = 1
	}
	maxLen := len(pattern) + 1
	ps := string(pattern)
	for start := 0; start < len(text); start++ {
		for size := minLen; size <= maxLen; size++ {
			end := start + size
			if end > len(text) {
				break
			}
			d := levenshtein.ComputeDistance(ps, string(text[start:end]))
			s := float64(d) / float64(len(pattern))
			if s > 1.0 {
				s = 1.0
			}
			s += positionPenalty(start)
			if s < best {
				best = s
			}
		}
	}
	return best
}

func positionPenalty(start int) float64 {
	p := float64(start) / float64(PositionTolerance)
	if p > 1.0 {
		p = 1.0
	}
	return p * positionWeight
}
