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

// Package catalog holds the static KNUST undergraduate programme dataset:
// programme names, owning colleges, cut-off aggregates, fee schedules and
// elective requirements. The catalog is built once at startup and never
// mutated; components receive it by pointer rather than through a
// package-level singleton so they stay testable in isolation.
package catalog

import (
	"fmt"
	"strings"
)

// Cutoff is the published admission aggregate for a programme. Lower is more
// competitive. A programme either publishes a single Combined aggregate or a
// Male/Female pair; all-zero means the cut-off is not published ("N/A").
type Cutoff struct {
	Combined int `json:"combined,omitempty"`
	Male     int `json:"male,omitempty"`
	Female   int `json:"female,omitempty"`
}

// Published reports whether any cut-off figure exists for the programme.
func (c Cutoff) Published() bool {
	return c.Combined > 0 || c.Male > 0 || c.Female > 0
}

// Value returns a single numeric aggregate for comparisons. For gender-split
// cut-offs the less competitive (higher) figure is used, so similarity
// recommendations never overstate a candidate's chances. The second return is
// false for unpublished cut-offs.
func (c Cutoff) Value() (int, bool) {
	switch {
	case c.Combined > 0:
		return c.Combined, true
	case c.Male > 0 && c.Female > 0:
		if c.Male > c.Female {
			return c.Male, true
		}
		return c.Female, true
	case c.Male > 0:
		return c.Male, true
	case c.Female > 0:
		return c.Female, true
	default:
		return 0, false
	}
}

// ValueFor returns the aggregate applicable to the given gender ("male" or
// "female"), falling back to the combined figure.
func (c Cutoff) ValueFor(gender string) (int, bool) {
	switch strings.ToLower(gender) {
	case "male":
		if c.Male > 0 {
			return c.Male, true
		}
	case "female":
		if c.Female > 0 {
			return c.Female, true
		}
	}
	if c.Combined > 0 {
		return c.Combined, true
	}
	return c.Value()
}

// String renders the cut-off the way admission brochures do.
func (c Cutoff) String() string {
	switch {
	case c.Combined > 0:
		return fmt.Sprintf("%02d", c.Combined)
	case c.Male > 0 || c.Female > 0:
		return fmt.Sprintf("Male: %02d, Female: %02d", c.Male, c.Female)
	default:
		return "N/A"
	}
}

// Fees is the fresher fee schedule in Ghana cedis, resolved per college.
type Fees struct {
	Regular     float64 `json:"regular_freshers"`
	FeePaying   float64 `json:"fee_paying_freshers"`
	Residential float64 `json:"residential_freshers"`
}

// Requirement is one elective requirement entry: either a single mandatory
// subject (Options nil) or a choose-one-of set (Options non-empty, Subject
// empty). A tagged union, mirrored from the admission brochure structure.
type Requirement struct {
	Subject string   `json:"subject,omitempty"`
	Options []string `json:"options,omitempty"`
}

// IsChoice reports whether the entry is a choose-one-of set.
func (r Requirement) IsChoice() bool { return len(r.Options) > 0 }

// String renders the entry for user-facing responses.
func (r Requirement) String() string {
	if r.IsChoice() {
		return "Choose one: " + strings.Join(r.Options, " OR ")
	}
	return r.Subject
}

// Program is an immutable catalog entry. Cutoff and Requirements may be
// absent (missing data) but are never malformed; Fees falls back to the
// default schedule when the college has no entry.
type Program struct {
	Name         string        `json:"name"`
	College      string        `json:"college"`
	Cutoff       Cutoff        `json:"cutoff"`
	Fees         Fees          `json:"fees"`
	Requirements []Requirement `json:"requirements,omitempty"`
}

// Catalog is the read-only programme dataset.
type Catalog struct {
	programs []Program
	byLower  map[string]*Program
}

// Load builds the catalog from the embedded dataset tables.
func Load() *Catalog {
	c := &Catalog{
		byLower: make(map[string]*Program, len(validPrograms)),
	}
	c.programs = make([]Program, 0, len(validPrograms))
	for _, name := range validPrograms {
		college := programToCollege[name]
		fees, ok := collegeFees[college]
		if !ok {
			fees = defaultFees
		}
		p := Program{
			Name:         name,
			College:      college,
			Cutoff:       cutOffAggregates[name],
			Fees:         fees,
			Requirements: electiveRequirements[name],
		}
		c.programs = append(c.programs, p)
	}
	for i := range c.programs {
		c.byLower[strings.ToLower(c.programs[i].Name)] = &c.programs[i]
	}
	return c
}

// Programs returns all programmes in catalog iteration order.
func (c *Catalog) Programs() []Program {
	out := make([]Program, len(c.programs))
	copy(out, c.programs)
	return out
}

// Names returns all programme names in catalog iteration order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.programs))
	for i, p := range c.programs {
		names[i] = p.Name
	}
	return names
}

// Len returns the number of programmes.
func (c *Catalog) Len() int { return len(c.programs) }

// Lookup returns the programme with the given name, matched case-insensitively,
// then by prefix-stripped name (e.g. "Computer Science" resolves to
// "BSc Computer Science"). The boolean is false when nothing matches.
func (c *Catalog) Lookup(name string) (Program, bool) {
	if name == "" {
		return Program{}, false
	}
	if p, ok := c.byLower[strings.ToLower(name)]; ok {
		return *p, true
	}
	lower := strings.ToLower(name)
	for _, p := range c.programs {
		if stripped, ok := StripDegreePrefix(p.Name); ok && strings.ToLower(stripped) == lower {
			return p, true
		}
	}
	return Program{}, false
}

// Contains reports whether the exact name is in the catalog (case-insensitive).
func (c *Catalog) Contains(name string) bool {
	_, ok := c.byLower[strings.ToLower(name)]
	return ok
}

// StripDegreePrefix removes a leading degree qualifier ("BSc", "BA", "LLB",
// ...) from a multi-word programme name. The boolean is false for single-word
// names, which have nothing to strip.
func StripDegreePrefix(name string) (string, bool) {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return name, false
	}
	return strings.Join(parts[1:], " "), true
}
