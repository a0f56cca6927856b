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

// Package guardrail post-processes language-model output so that the
// externally visible answer never names an institution or programme outside
// the KNUST catalog.
package guardrail

import (
	"regexp"
	"strings"

	"github.com/officialjwise/knust-chat-bot-backend/internal/catalog"
	"github.com/officialjwise/knust-chat-bot-backend/internal/fuzzy"
)

// Placeholders substituted for out-of-catalog mentions. They deliberately do
// not match the degree-prefix pattern or the blacklist, so a second filter
// pass leaves them untouched.
const (
	institutionPlaceholder = "another institution"
	programPlaceholder     = "a program offered at KNUST (please specify)"
)

// institutionBlacklist lists institutions the model must never name in an
// answer. Matched case-insensitively.
var institutionBlacklist = []string{
	"University of Ghana",
	"Legon",
	"University of Cape Coast",
	"UCC",
	"Ashesi University",
	"Ashesi",
	"Central University",
	"GIMPA",
	"University for Development Studies",
	"UPSA",
	"Valley View University",
}

// degreePattern captures degree-qualified programme mentions such as
// "BSc Computer Science" or "Doctor of Optometry". The name part stops at
// punctuation or a newline.
var degreePattern = regexp.MustCompile(
	`\b(?:BSc|BA|BFA|BEd|BHM|LLB|PharmD|DVM|BDS|Doctor of)\b(?:\.?\s+[A-Z][A-Za-z/()-]*(?:\s+(?:of|and|in|[A-Z][A-Za-z/()-]*))*)?`)

// Filter rewrites out-of-catalog mentions. Safe for concurrent use.
type Filter struct {
	catalog   *catalog.Catalog
	matcher   *fuzzy.Matcher
	blacklist []*regexp.Regexp
}

// New builds a filter over the given catalog and matcher.
func New(c *catalog.Catalog, m *fuzzy.Matcher) *Filter {
	f := &Filter{catalog: c, matcher: m}
	for _, name := range institutionBlacklist {
		f.blacklist = append(f.blacklist, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(name)+`\b`))
	}
	return f
}

// Apply runs both filter passes. It is idempotent: filtering already-filtered
// text changes nothing.
func (f *Filter) Apply(text string) string {
	out := f.replaceBlacklisted(text)
	return f.replaceUnknownPrograms(out)
}

func (f *Filter) replaceBlacklisted(text string) string {
	for _, re := range f.blacklist {
		text = re.ReplaceAllString(text, institutionPlaceholder)
	}
	return text
}

func (f *Filter) replaceUnknownPrograms(text string) string {
	return degreePattern.ReplaceAllStringFunc(text, func(mention string) string {
		if f.knownProgram(mention) {
			return mention
		}
		if match, ok := f.matcher.Best(mention); ok {
			return match.Program.Name
		}
		return programPlaceholder
	})
}

// knownProgram reports whether the mention corresponds to a catalog entry by
// containment in either direction, so both "BSc Computer Science at KNUST"
// fragments and bare prefixes like "BSc" pass.
func (f *Filter) knownProgram(mention string) bool {
	trimmed := strings.TrimSpace(mention)
	if trimmed == "" {
		return true
	}
	if f.catalog.Contains(trimmed) {
		return true
	}
	lowerMention := strings.ToLower(trimmed)
	for _, name := range f.catalog.Names() {
		lowerName := strings.ToLower(name)
		if strings.Contains(lowerMention, lowerName) || strings.Contains(lowerName, lowerMention) {
			return true
		}
	}
	return false
}
