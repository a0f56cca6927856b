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

package respond

import (
	"strings"
	"testing"

	"github.com/officialjwise/knust-chat-bot-backend/internal/catalog"
)

func newTestGenerator(t *testing.T) (*Generator, *catalog.Catalog) {
	t.Helper()
	c := catalog.Load()
	return New(c), c
}

func mustLookup(t *testing.T, c *catalog.Catalog, name string) catalog.Program {
	t.Helper()
	p, ok := c.Lookup(name)
	if !ok {
		t.Fatalf("programme %q not in catalog", name)
	}
	return p
}

func TestDatasetResponseCutoff(t *testing.T) {
	g, c := newTestGenerator(t)
	p := mustLookup(t, c, "BSc Computer Science")

	resp := g.DatasetResponse("BSc Computer Science cut off", p)
	if !strings.Contains(resp, "**BSc Computer Science**") {
		t.Error("response missing programme header")
	}
	if !strings.Contains(resp, "Cut-off Point:** 08") {
		t.Errorf("response missing exact cutoff: %q", resp)
	}
	if !strings.Contains(resp, "College of Science") {
		t.Error("response missing college")
	}
	if !strings.Contains(resp, "Required SHS Subjects") {
		t.Error("cutoff response should include requirements")
	}
}

func TestDatasetResponseFees(t *testing.T) {
	g, c := newTestGenerator(t)
	p := mustLookup(t, c, "BSc Computer Science")

	resp := g.DatasetResponse("how much are the fees", p)
	if !strings.Contains(resp, "BSc Computer Science - Fees") {
		t.Error("missing fees header")
	}
	if !strings.Contains(resp, "Regular Freshers:** GHS 2154.00") {
		t.Errorf("missing regular fee amount: %q", resp)
	}
	if !strings.Contains(resp, "Residential Freshers:** GHS 3126.00") {
		t.Errorf("missing residential fee amount: %q", resp)
	}
}

func TestDatasetResponseRequirements(t *testing.T) {
	g, c := newTestGenerator(t)
	p := mustLookup(t, c, "BSc Civil Engineering")

	resp := g.DatasetResponse("what are the requirements", p)
	if !strings.Contains(resp, "Admission Requirements") {
		t.Error("missing requirements header")
	}
	if !strings.Contains(resp, "Elective Mathematics") {
		t.Error("missing mandatory subject")
	}
}

func TestDatasetResponseGeneral(t *testing.T) {
	g, c := newTestGenerator(t)
	p := mustLookup(t, c, "BSc Nursing")

	resp := g.DatasetResponse("BSc Nursing", p)
	if !strings.Contains(resp, "Cut-off Point:** Male: 10, Female: 11") {
		t.Errorf("missing gender-split cutoff: %q", resp)
	}
	if !strings.Contains(resp, "Fees:") {
		t.Error("general response should include fees")
	}
	if !strings.Contains(resp, "Choose one:") {
		t.Error("general response should render choice requirements")
	}
}

func TestDatasetResponseUnpublishedCutoff(t *testing.T) {
	g, c := newTestGenerator(t)
	p := mustLookup(t, c, "BFA Painting and Sculpture")

	resp := g.DatasetResponse("cut off for BFA", p)
	if !strings.Contains(resp, "Cut-off Point:** N/A") {
		t.Errorf("unpublished cutoff should render as N/A: %q", resp)
	}
}

func TestSimilarPrograms(t *testing.T) {
	g, _ := newTestGenerator(t)

	names := g.SimilarPrograms(8, 3, 4, "BSc Computer Science")
	if len(names) == 0 {
		t.Fatal("expected similar programmes around cutoff 8")
	}
	if len(names) > 4 {
		t.Errorf("max not respected: %v", names)
	}
	for _, n := range names {
		if n == "BSc Computer Science" {
			t.Error("excluded programme must never appear")
		}
	}
}

func TestSimilarProgramsSkipsUnpublished(t *testing.T) {
	g, c := newTestGenerator(t)

	unpublished := map[string]bool{}
	for _, p := range c.Programs() {
		if !p.Cutoff.Published() {
			unpublished[p.Name] = true
		}
	}
	if len(unpublished) == 0 {
		t.Skip("dataset has no unpublished cutoffs")
	}

	for target := 1; target <= 25; target++ {
		for _, n := range g.SimilarPrograms(target, 3, 100, "") {
			if unpublished[n] {
				t.Errorf("programme %q without published cutoff recommended at target %d", n, target)
			}
		}
	}
}

func TestSimilarProgramsOrderedByCloseness(t *testing.T) {
	g, c := newTestGenerator(t)

	names := g.SimilarPrograms(6, 3, 10, "")
	var prev int
	for i, n := range names {
		p := mustLookup(t, c, n)
		v, _ := p.Cutoff.Value()
		diff := v - 6
		if diff < 0 {
			diff = -diff
		}
		if i > 0 && diff < prev {
			t.Errorf("similar programmes not ordered by closeness: %v", names)
		}
		prev = diff
	}
}

func TestSimilarProgramsZeroTarget(t *testing.T) {
	g, _ := newTestGenerator(t)
	if names := g.SimilarPrograms(0, 3, 4, ""); names != nil {
		t.Errorf("expected nil for zero target, got %v", names)
	}
}

func TestEligibilityByBackground(t *testing.T) {
	g, _ := newTestGenerator(t)

	result, ok := g.EligibilityByBackground(
		"I studied elective mathematics, physics and chemistry at SHS", "BSc Computer Science")
	if !ok {
		t.Fatal("expected requirements for BSc Computer Science")
	}
	if !result.Eligible {
		t.Error("matching background should be eligible")
	}
	if len(result.MatchedSubjects) != 3 {
		t.Errorf("matched subjects = %v, want 3 entries", result.MatchedSubjects)
	}

	result, ok = g.EligibilityByBackground("I studied government and history", "BSc Computer Science")
	if !ok {
		t.Fatal("expected requirements lookup to succeed")
	}
	if result.Eligible {
		t.Error("arts background should not be eligible for computer science")
	}

	if _, ok := g.EligibilityByBackground("anything", "BA English"); ok {
		t.Error("programme without recorded requirements should report no result")
	}
}

func TestAppendAdmissionDetails(t *testing.T) {
	g, _ := newTestGenerator(t)

	appended := g.AppendAdmissionDetails("Computer science is a great choice.", "BSc Computer Science")
	if !strings.Contains(appended, "Admission Details") {
		t.Error("expected admission details block to be appended")
	}
	if !strings.Contains(appended, "Computer science is a great choice.") {
		t.Error("original response must be preserved")
	}

	already := "The cut-off for BSc Computer Science is 08."
	if got := g.AppendAdmissionDetails(already, "BSc Computer Science"); got != already {
		t.Error("response already mentioning a cutoff must not be modified")
	}

	unknown := "Some answer."
	if got := g.AppendAdmissionDetails(unknown, "BSc Astrology"); got != unknown {
		t.Error("unknown programme must leave the response unchanged")
	}
	if got := g.AppendAdmissionDetails(unknown, ""); got != unknown {
		t.Error("empty programme must leave the response unchanged")
	}
}

func TestSimilarBlock(t *testing.T) {
	g, c := newTestGenerator(t)
	p := mustLookup(t, c, "BSc Computer Science")

	block := g.SimilarBlock(p)
	if !strings.Contains(block, "Similar Cut-offs") {
		t.Errorf("missing similar header: %q", block)
	}
	if strings.Contains(block, "• BSc Computer Science (") {
		t.Error("similar block must not list the programme itself")
	}

	noCutoff := mustLookup(t, c, "BFA Painting and Sculpture")
	if block := g.SimilarBlock(noCutoff); block != "" {
		t.Errorf("programme without cutoff should produce no block, got %q", block)
	}
}

func TestDisambiguation(t *testing.T) {
	text := Disambiguation([]string{"BSc Computer Science", "BSc Computer Engineering"})
	if !strings.Contains(text, "1. BSc Computer Science") {
		t.Errorf("missing first suggestion: %q", text)
	}
	if !strings.Contains(text, "2. BSc Computer Engineering") {
		t.Errorf("missing second suggestion: %q", text)
	}
}
