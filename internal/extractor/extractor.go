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

// Package extractor resolves free-text messages to canonical programme names.
package extractor

import (
	"strings"

	"github.com/officialjwise/knust-chat-bot-backend/internal/catalog"
	"github.com/officialjwise/knust-chat-bot-backend/internal/fuzzy"
)

// DefaultMaxSuggestions caps the disambiguation list offered to the user.
const DefaultMaxSuggestions = 3

// Extractor resolves a message to zero or one programme name. Resolution
// tries, in strict order: special-case overrides, direct substring
// containment, prefix-stripped containment, then a fuzzy fallback. Safe for
// concurrent use.
type Extractor struct {
	catalog *catalog.Catalog
	matcher *fuzzy.Matcher
}

// New builds an extractor over the given catalog and matcher.
func New(c *catalog.Catalog, m *fuzzy.Matcher) *Extractor {
	return &Extractor{catalog: c, matcher: m}
}

// handleSpecialCases applies hand-authored overrides for a few high-traffic
// queries where naive matching under-performs.
func handleSpecialCases(message string) (string, bool) {
	lower := strings.ToLower(message)
	if strings.Contains(lower, "computer") &&
		(strings.Contains(lower, "science") || strings.Contains(lower, "program")) {
		return "BSc Computer Science", true
	}
	return "", false
}

// ExtractProgramName resolves the message to a canonical programme name. The
// boolean is false when nothing resolves; malformed input never causes an
// error, only a miss.
func (e *Extractor) ExtractProgramName(message string) (string, bool) {
	if strings.TrimSpace(message) == "" {
		return "", false
	}

	if name, ok := handleSpecialCases(message); ok {
		return name, true
	}

	lower := strings.ToLower(message)

	// Direct containment, first match in catalog order wins.
	for _, name := range e.catalog.Names() {
		if strings.Contains(lower, strings.ToLower(name)) {
			return name, true
		}
	}

	// Containment of the name without its degree qualifier.
	for _, name := range e.catalog.Names() {
		stripped, ok := catalog.StripDegreePrefix(name)
		if !ok {
			continue
		}
		if strings.Contains(lower, strings.ToLower(stripped)) {
			return name, true
		}
	}

	// Fuzzy last resort, top-1 only and only under the strict threshold.
	if match, ok := e.matcher.Best(message); ok {
		return match.Program.Name, true
	}
	return "", false
}

// SuggestProgramMatches returns candidate names for an ambiguous query. It
// returns either two-or-more suggestions or none at all: a single candidate
// is not worth a disambiguation round-trip, and the extractor would usually
// have resolved it already.
func (e *Extractor) SuggestProgramMatches(query string, maxSuggestions int) []string {
	if maxSuggestions <= 0 {
		maxSuggestions = DefaultMaxSuggestions
	}
	matches := e.matcher.Search(query, maxSuggestions*2)

	var good []string
	for _, m := range matches {
		if m.Score < fuzzy.SuggestThreshold {
			good = append(good, m.Program.Name)
		}
	}
	if len(good) < 2 {
		return nil
	}
	if len(good) > maxSuggestions {
		good = good[:maxSuggestions]
	}
	return good
}
