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

// Package respond renders deterministic, template-based answers from the
// programme catalog. No language model is involved in any of these paths.
package respond

import (
	"fmt"
	"sort"
	"strings"

	"github.com/officialjwise/knust-chat-bot-backend/internal/catalog"
)

// Similar-programme recommendation defaults.
const (
	DefaultTolerance  = 3
	DefaultMaxSimilar = 4
)

// Generator renders catalog-backed responses. Safe for concurrent use.
type Generator struct {
	catalog *catalog.Catalog
}

// New builds a generator over the given catalog.
func New(c *catalog.Catalog) *Generator {
	return &Generator{catalog: c}
}

// DatasetResponse renders the answer for an admission question about a
// resolved programme. The query steers which template is used: cut-off,
// fees, requirements, or the general overview.
func (g *Generator) DatasetResponse(query string, p catalog.Program) string {
	lower := strings.ToLower(query)

	if strings.Contains(lower, "cut off") || strings.Contains(lower, "cutoff") || strings.Contains(lower, "aggregate") {
		var b strings.Builder
		fmt.Fprintf(&b, "**%s**\n\n", p.Name)
		fmt.Fprintf(&b, "🎯 **Cut-off Point:** %s\n", p.Cutoff)
		fmt.Fprintf(&b, "🏫 **College:** %s\n\n", p.College)
		writeRequirements(&b, p.Requirements)
		return b.String()
	}

	if strings.Contains(lower, "fee") {
		var b strings.Builder
		fmt.Fprintf(&b, "**%s - Fees**\n\n", p.Name)
		fmt.Fprintf(&b, "💰 **Regular Freshers:** GHS %.2f\n", p.Fees.Regular)
		fmt.Fprintf(&b, "💰 **Fee-Paying Freshers:** GHS %.2f\n", p.Fees.FeePaying)
		fmt.Fprintf(&b, "🏠 **Residential Freshers:** GHS %.2f\n", p.Fees.Residential)
		return b.String()
	}

	if strings.Contains(lower, "requirement") || strings.Contains(lower, "subject") || strings.Contains(lower, "elective") {
		var b strings.Builder
		fmt.Fprintf(&b, "**%s - Admission Requirements**\n\n", p.Name)
		fmt.Fprintf(&b, "🎯 **Cut-off Point:** %s\n\n", p.Cutoff)
		writeRequirements(&b, p.Requirements)
		return b.String()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n\n", p.Name)
	fmt.Fprintf(&b, "🎯 **Cut-off Point:** %s\n", p.Cutoff)
	fmt.Fprintf(&b, "🏫 **College:** %s\n\n", p.College)
	fmt.Fprintf(&b, "💰 **Fees:**\n")
	fmt.Fprintf(&b, "• Regular Freshers: GHS %.2f\n", p.Fees.Regular)
	fmt.Fprintf(&b, "• Fee-Paying Freshers: GHS %.2f\n", p.Fees.FeePaying)
	fmt.Fprintf(&b, "• Residential Freshers: GHS %.2f\n\n", p.Fees.Residential)
	writeRequirements(&b, p.Requirements)
	return b.String()
}

// writeRequirements appends the SHS subject block; absent requirements
// render as nothing rather than an empty header.
func writeRequirements(b *strings.Builder, reqs []catalog.Requirement) {
	if len(reqs) == 0 {
		return
	}
	b.WriteString("📚 **Required SHS Subjects:**\n")
	for _, r := range reqs {
		fmt.Fprintf(b, "• %s\n", r)
	}
}

// SimilarPrograms returns up to max programme names whose cut-off is within
// tolerance of target, ordered by closeness with catalog order breaking ties.
// Programmes without a published cut-off and the excluded name never appear.
func (g *Generator) SimilarPrograms(target, tolerance, max int, exclude string) []string {
	if target <= 0 {
		return nil
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	if max <= 0 {
		max = DefaultMaxSimilar
	}

	type candidate struct {
		name string
		diff int
	}
	var similar []candidate
	for _, p := range g.catalog.Programs() {
		if p.Name == exclude {
			continue
		}
		v, ok := p.Cutoff.Value()
		if !ok {
			continue
		}
		diff := v - target
		if diff < 0 {
			diff = -diff
		}
		if diff <= tolerance {
			similar = append(similar, candidate{name: p.Name, diff: diff})
		}
	}

	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].diff < similar[j].diff
	})
	if len(similar) > max {
		similar = similar[:max]
	}
	names := make([]string, len(similar))
	for i, c := range similar {
		names[i] = c.name
	}
	return names
}

// SimilarBlock renders a similar-programmes section for appending to a
// dataset response. Empty when nothing qualifies.
func (g *Generator) SimilarBlock(p catalog.Program) string {
	target, ok := p.Cutoff.Value()
	if !ok {
		return ""
	}
	names := g.SimilarPrograms(target, DefaultTolerance, DefaultMaxSimilar, p.Name)
	if len(names) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n\n🔍 **Programs with Similar Cut-offs:**\n")
	for _, name := range names {
		other, found := g.catalog.Lookup(name)
		if !found {
			continue
		}
		fmt.Fprintf(&b, "• %s (Cut-off: %s)\n", name, other.Cutoff)
	}
	return b.String()
}

// Eligibility is the result of matching a user's subject background against
// a programme's elective requirements.
type Eligibility struct {
	Eligible        bool
	MatchedSubjects []string
	Requirements    []catalog.Requirement
}

// EligibilityByBackground checks whether the stated background satisfies the
// programme's requirements. Matching one requirement entry is enough to be
// declared eligible; this leniency is retained deliberately. The boolean is
// false when the programme has no recorded requirements.
func (g *Generator) EligibilityByBackground(background, programName string) (Eligibility, bool) {
	p, ok := g.catalog.Lookup(programName)
	if !ok || len(p.Requirements) == 0 {
		return Eligibility{}, false
	}

	lower := strings.ToLower(background)
	result := Eligibility{Requirements: p.Requirements}
	for _, req := range p.Requirements {
		if req.IsChoice() {
			for _, subject := range req.Options {
				if strings.Contains(lower, strings.ToLower(subject)) {
					result.Eligible = true
					result.MatchedSubjects = append(result.MatchedSubjects, subject)
					break
				}
			}
			continue
		}
		if strings.Contains(lower, strings.ToLower(req.Subject)) {
			result.Eligible = true
			result.MatchedSubjects = append(result.MatchedSubjects, req.Subject)
		}
	}
	return result, true
}

// EligibilityBlock renders an eligibility section for appending to a dataset
// response. Empty when the programme has no recorded requirements.
func (g *Generator) EligibilityBlock(background string, p catalog.Program) string {
	result, ok := g.EligibilityByBackground(background, p.Name)
	if !ok {
		return ""
	}
	var b strings.Builder
	if result.Eligible {
		b.WriteString("\n\n✅ **Eligibility:** Your background matches ")
		b.WriteString(strings.Join(result.MatchedSubjects, ", "))
		fmt.Fprintf(&b, " required for %s.\n", p.Name)
	} else {
		fmt.Fprintf(&b, "\n\n⚠️ **Eligibility:** Your stated background does not appear to match the required subjects for %s.\n", p.Name)
	}
	writeRequirements(&b, result.Requirements)
	return b.String()
}

// AppendAdmissionDetails appends a cut-off, requirements and fees block to a
// response that does not already mention a cut-off. Used after free-form
// answers to guidance questions that name a resolvable programme.
func (g *Generator) AppendAdmissionDetails(response, programName string) string {
	if programName == "" {
		return response
	}
	p, ok := g.catalog.Lookup(programName)
	if !ok {
		return response
	}
	lower := strings.ToLower(response)
	if strings.Contains(lower, "cut-off") || strings.Contains(lower, "cutoff") {
		return response
	}

	var b strings.Builder
	b.WriteString(response)
	fmt.Fprintf(&b, "\n\n📋 **%s - Admission Details:**\n", p.Name)
	fmt.Fprintf(&b, "🎯 **Cut-off Point:** %s\n", p.Cutoff)
	fmt.Fprintf(&b, "🏫 **College:** %s\n", p.College)
	if len(p.Requirements) > 0 {
		b.WriteString("\n")
		writeRequirements(&b, p.Requirements)
	}
	b.WriteString("\n💰 **Fees:**\n")
	fmt.Fprintf(&b, "• Regular Freshers: GHS %.2f\n", p.Fees.Regular)
	fmt.Fprintf(&b, "• Fee-Paying Freshers: GHS %.2f\n", p.Fees.FeePaying)
	return b.String()
}

// Disambiguation renders a numbered list asking the user to pick one of the
// suggested programmes.
func Disambiguation(suggestions []string) string {
	var b strings.Builder
	b.WriteString("I found several programs that might match your question. Did you mean one of these?\n\n")
	for i, name := range suggestions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, name)
	}
	b.WriteString("\nPlease ask again with the full program name.")
	return b.String()
}
