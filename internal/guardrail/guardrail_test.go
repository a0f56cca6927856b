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

package guardrail

import (
	"strings"
	"testing"

	"github.com/officialjwise/knust-chat-bot-backend/internal/catalog"
	"github.com/officialjwise/knust-chat-bot-backend/internal/fuzzy"
)

func newTestFilter(t *testing.T) *Filter {
	t.Helper()
	c := catalog.Load()
	return New(c, fuzzy.NewMatcher(c))
}

func TestApplyBlacklistedInstitutions(t *testing.T) {
	f := newTestFilter(t)

	out := f.Apply("You could also consider the University of Ghana or Ashesi for this.")
	if strings.Contains(out, "University of Ghana") || strings.Contains(out, "Ashesi") {
		t.Errorf("blacklisted institutions leaked: %q", out)
	}
	if !strings.Contains(out, "another institution") {
		t.Errorf("expected institution placeholder: %q", out)
	}
}

func TestApplyKeepsExactNameAnyCase(t *testing.T) {
	f := newTestFilter(t)

	out := f.Apply("Consider BSc COMPUTER Science at KNUST.")
	if !strings.Contains(out, "BSc COMPUTER Science") {
		t.Errorf("exact catalog name in mixed case was rewritten: %q", out)
	}
}

func TestApplyKeepsCatalogPrograms(t *testing.T) {
	f := newTestFilter(t)

	in := "KNUST offers BSc Computer Science and Doctor of Optometry."
	out := f.Apply(in)
	if !strings.Contains(out, "BSc Computer Science") {
		t.Errorf("catalog programme was mangled: %q", out)
	}
	if !strings.Contains(out, "Doctor of Optometry") {
		t.Errorf("catalog programme was mangled: %q", out)
	}
}

func TestApplyReplacesUnknownProgram(t *testing.T) {
	f := newTestFilter(t)

	out := f.Apply("You should apply for BSc Underwater Basket Weaving instead.")
	if strings.Contains(out, "Underwater Basket Weaving") {
		t.Errorf("out-of-catalog programme leaked: %q", out)
	}
}

func TestApplyCorrectsNearMiss(t *testing.T) {
	f := newTestFilter(t)

	out := f.Apply("Consider BSc Compter Science at KNUST.")
	if !strings.Contains(out, "BSc Computer Science") {
		t.Errorf("near-miss programme name not corrected: %q", out)
	}
}

func TestApplyKeepsBarePrefix(t *testing.T) {
	f := newTestFilter(t)

	in := "A BSc takes four years at KNUST."
	if out := f.Apply(in); out != in {
		t.Errorf("bare degree prefix should pass through: %q", out)
	}
}

func TestApplyIdempotent(t *testing.T) {
	f := newTestFilter(t)

	inputs := []string{
		"You could consider the University of Ghana for BSc Underwater Basket Weaving.",
		"KNUST offers BSc Computer Science.",
		"Try Legon or UCC.",
		"Consider BSc Compter Science.",
		"No programmes mentioned here at all.",
	}
	for _, in := range inputs {
		once := f.Apply(in)
		twice := f.Apply(once)
		if once != twice {
			t.Errorf("filter not idempotent for %q:\n once: %q\ntwice: %q", in, once, twice)
		}
	}
}

func TestApplyDoesNotFireInsideWords(t *testing.T) {
	f := newTestFilter(t)

	in := "A Bachelor degree is rewarding."
	if out := f.Apply(in); out != in {
		t.Errorf("degree pattern fired inside a word: %q", out)
	}
}
