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

// Package classifier decides what kind of question an incoming chat message
// is. Classification runs along two independent axes: a small regex table of
// canned non-admission queries (identity questions, greetings), and
// keyword-based admission vs. career/academic intent. Career intent always
// suppresses the admission classification.
package classifier

import (
	"regexp"
	"strings"
)

// admissionKeywords flag admission intent. Matching is substring-based and
// case-insensitive with no tokenization, so "fee" also matches "coffee"; this
// is an accepted approximation of the historical behavior.
var admissionKeywords = []string{
	"cut off", "cutoff", "cut-off", "aggregate", "requirements", "admission", "fees", "fee",
	"college of science", "college of engineering", "college of agriculture", "college of health",
	"college of humanities", "college of art", "bsc", "ba", "llb", "pharmd", "dvm", "bds",
	"bhm", "bfa", "bed", "doctor of", "electives", "subjects", "shs", "wassce", "novdec",
	"entry", "apply", "application", "qualify", "eligible", "eligibility",
}

// careerAcademicKeywords flag career or curriculum intent, which takes
// precedence over admission intent.
var careerAcademicKeywords = []string{
	"career", "careers", "job", "jobs", "employment", "work", "profession", "professional",
	"opportunities", "opportunity", "future", "prospects", "salary", "income", "earning",
	"what can i do with", "what can you do with", "field", "industry", "sector",
	"graduate", "after graduation", "course content", "curriculum", "modules", "subjects covered",
	"learn", "study", "taught", "skills", "knowledge", "about the program", "about the course",
	"tell me about", "describe", "explain", "overview", "introduction to",
}

// cannedQuery maps message patterns to a fixed response returned without
// consulting the catalog or the language model.
type cannedQuery struct {
	patterns []*regexp.Regexp
	response string
}

var cannedQueries = []cannedQuery{
	{
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)who created you`),
			regexp.MustCompile(`(?i)who made you`),
			regexp.MustCompile(`(?i)who built you`),
			regexp.MustCompile(`(?i)who developed you`),
		},
		response: "I was created by Rockson Agyamaku to assist with KNUST admission information.",
	},
	{
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)what are you`),
			regexp.MustCompile(`(?i)who are you`),
		},
		response: "I am a KNUST Admission Bot created by Rockson Agyamaku to help prospective students with admission information, program details, and requirements.",
	},
	{
		// Greetings are word-bounded so "hi" does not fire inside words
		// like "which" or "history".
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bhello\b`),
			regexp.MustCompile(`(?i)\bhi\b`),
			regexp.MustCompile(`(?i)\bhey\b`),
			regexp.MustCompile(`(?i)\bgood morning\b`),
			regexp.MustCompile(`(?i)\bgood afternoon\b`),
			regexp.MustCompile(`(?i)\bgood evening\b`),
		},
		response: "Hello! I'm here to help you with KNUST admission information. You can ask me about program cut-offs, fees, admission requirements, or any other admission-related questions.",
	},
}

// Result is the per-message classification. It is recomputed fresh for every
// message and never cached.
type Result struct {
	Canned             string
	IsCanned           bool
	IsCareerAcademic   bool
	IsAdmissionRelated bool
}

// Classifier inspects raw messages. The zero value is not usable; construct
// with New. Safe for concurrent use.
type Classifier struct {
	admission []string
	career    []string
	canned    []cannedQuery
}

// New returns a classifier with the default keyword and canned-response
// tables.
func New() *Classifier {
	return &Classifier{
		admission: admissionKeywords,
		career:    careerAcademicKeywords,
		canned:    cannedQueries,
	}
}

// Classify evaluates all axes at once.
func (c *Classifier) Classify(message string) Result {
	r := Result{
		IsCareerAcademic: c.IsCareerAcademicQuery(message),
	}
	if canned, ok := c.CheckNonAdmissionQuery(message); ok {
		r.Canned = canned
		r.IsCanned = true
	}
	r.IsAdmissionRelated = c.IsAdmissionQuery(message)
	return r
}

// IsCareerAcademicQuery reports whether the message asks about careers,
// curriculum or programme content rather than admission.
func (c *Classifier) IsCareerAcademicQuery(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range c.career {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// IsAdmissionQuery reports whether the message is admission-related. A
// message that also reads as career/academic is never admission-related;
// the career check runs first and suppresses this one.
func (c *Classifier) IsAdmissionQuery(message string) bool {
	if c.IsCareerAcademicQuery(message) {
		return false
	}
	lower := strings.ToLower(message)
	for _, kw := range c.admission {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// CheckNonAdmissionQuery returns the canned response for identity questions
// and greetings. The boolean is false when no pattern matches.
func (c *Classifier) CheckNonAdmissionQuery(message string) (string, bool) {
	for _, q := range c.canned {
		for _, p := range q.patterns {
			if p.MatchString(message) {
				return q.response, true
			}
		}
	}
	return "", false
}
