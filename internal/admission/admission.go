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

// Package admission computes WASSCE aggregates and recommends programmes a
// candidate's grades qualify for.
package admission

import (
	"sort"
	"strings"

	"github.com/officialjwise/knust-chat-bot-backend/internal/catalog"
)

// MaxRecommendations caps the recommendation list.
const MaxRecommendations = 4

// gradeValues maps WASSCE grades to aggregate points. C4, C5 and C6 all
// count as 4.
var gradeValues = map[string]int{
	"A1": 1, "B2": 2, "B3": 3, "C4": 4, "C5": 4, "C6": 4, "D7": 7, "E8": 8, "F9": 9,
}

// ElectiveGrade is one elective subject with its grade.
type ElectiveGrade struct {
	Subject string `json:"subject"`
	Grade   string `json:"grade"`
}

// Grades is a candidate's WASSCE results.
type Grades struct {
	English           string          `json:"english"`
	Math              string          `json:"math"`
	IntegratedScience string          `json:"integratedScience"`
	Electives         []ElectiveGrade `json:"electives"`
}

// CalculateAggregate sums the best six recognized grades across core and
// elective subjects. Unknown or empty grade strings are skipped.
func CalculateAggregate(g Grades) int {
	var values []int
	for _, grade := range append([]string{g.English, g.Math, g.IntegratedScience}, electiveGrades(g.Electives)...) {
		if v, ok := gradeValues[grade]; ok {
			values = append(values, v)
		}
	}
	sort.Ints(values)
	if len(values) > 6 {
		values = values[:6]
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return sum
}

func electiveGrades(electives []ElectiveGrade) []string {
	grades := make([]string, len(electives))
	for i, e := range electives {
		grades[i] = e.Grade
	}
	return grades
}

// MatchesElectives reports whether the candidate's electives satisfy every
// requirement entry. Unlike the lenient chat eligibility check, all entries
// must be met: a mandatory subject by substring containment in any of the
// candidate's subjects, a choice group by any one of its options. A
// programme without recorded requirements matches any candidate.
func MatchesElectives(electives []ElectiveGrade, requirements []catalog.Requirement) bool {
	for _, req := range requirements {
		if req.IsChoice() {
			if !anyOptionMatches(electives, req.Options) {
				return false
			}
			continue
		}
		if req.Subject == "Any" {
			continue
		}
		if !subjectMatches(electives, req.Subject) {
			return false
		}
	}
	return true
}

func anyOptionMatches(electives []ElectiveGrade, options []string) bool {
	for _, opt := range options {
		if subjectMatches(electives, opt) {
			return true
		}
	}
	return false
}

func subjectMatches(electives []ElectiveGrade, subject string) bool {
	lower := strings.ToLower(subject)
	for _, e := range electives {
		if strings.Contains(strings.ToLower(e.Subject), lower) {
			return true
		}
	}
	return false
}

// Recommendation is one programme offered to a candidate.
type Recommendation struct {
	Name         string                `json:"name"`
	College      string                `json:"college"`
	Cutoff       catalog.Cutoff        `json:"cutoff"`
	Fees         catalog.Fees          `json:"fees"`
	Requirements []catalog.Requirement `json:"electiveRequirements,omitempty"`
}

// Result is the outcome of a recommendation request.
type Result struct {
	Aggregate       int              `json:"aggregate"`
	Recommendations []Recommendation `json:"recommendations"`
	Warnings        []string         `json:"warnings"`
}

// Recommender suggests programmes from the catalog. Safe for concurrent use.
type Recommender struct {
	catalog *catalog.Catalog
}

// NewRecommender builds a recommender over the given catalog.
func NewRecommender(c *catalog.Catalog) *Recommender {
	return &Recommender{catalog: c}
}

// Recommend returns up to MaxRecommendations programmes. Programmes whose
// published cut-off admits the candidate's aggregate and whose elective
// requirements are met come first, ordered by cut-off closeness. When fewer
// than the cap qualify, the list is padded with electives-compatible
// programmes ordered by competitiveness, regardless of the aggregate.
func (r *Recommender) Recommend(g Grades, gender string) Result {
	aggregate := CalculateAggregate(g)

	type scored struct {
		rec  Recommendation
		diff int
	}
	var qualified []scored
	taken := map[string]bool{}

	for _, p := range r.catalog.Programs() {
		cutoff, ok := p.Cutoff.ValueFor(gender)
		if !ok || aggregate > cutoff {
			continue
		}
		if !MatchesElectives(g.Electives, p.Requirements) {
			continue
		}
		diff := cutoff - aggregate
		if diff < 0 {
			diff = -diff
		}
		qualified = append(qualified, scored{rec: toRecommendation(p), diff: diff})
		taken[p.Name] = true
	}
	sort.SliceStable(qualified, func(i, j int) bool { return qualified[i].diff < qualified[j].diff })

	recs := make([]Recommendation, 0, MaxRecommendations)
	for _, s := range qualified {
		if len(recs) == MaxRecommendations {
			break
		}
		recs = append(recs, s.rec)
	}

	if len(recs) < MaxRecommendations {
		recs = append(recs, r.padding(g, taken, MaxRecommendations-len(recs))...)
	}

	var warnings []string
	for _, rec := range recs {
		if !rec.Cutoff.Published() {
			warnings = append(warnings, "Some programs have no specified cut-off for 2024/2025. Contact KNUST admissions for official cut-offs.")
			break
		}
	}

	return Result{Aggregate: aggregate, Recommendations: recs, Warnings: warnings}
}

// padding lists electives-compatible programmes not already recommended,
// most competitive first. Unpublished cut-offs sort last.
func (r *Recommender) padding(g Grades, taken map[string]bool, n int) []Recommendation {
	type scored struct {
		rec  Recommendation
		rank int
	}
	var extra []scored
	for _, p := range r.catalog.Programs() {
		if taken[p.Name] {
			continue
		}
		if !MatchesElectives(g.Electives, p.Requirements) {
			continue
		}
		rank, ok := p.Cutoff.Value()
		if !ok {
			rank = 999
		}
		extra = append(extra, scored{rec: toRecommendation(p), rank: rank})
	}
	sort.SliceStable(extra, func(i, j int) bool { return extra[i].rank < extra[j].rank })
	if len(extra) > n {
		extra = extra[:n]
	}
	recs := make([]Recommendation, len(extra))
	for i, s := range extra {
		recs[i] = s.rec
	}
	return recs
}

func toRecommendation(p catalog.Program) Recommendation {
	return Recommendation{
		Name:         p.Name,
		College:      p.College,
		Cutoff:       p.Cutoff,
		Fees:         p.Fees,
		Requirements: p.Requirements,
	}
}
