// Package newsletter defines the canonical newsletter contract: the single
// validated document that the data pipeline hands to rendering. Types here
// mirror the versioned JSON Schema; the schema package is the contract's
// sole enforcement point.
package newsletter

import (
	"encoding/json"

	"github.com/agentstation/utc"
)

// SchemaVersion is the contract version this code emits.
const SchemaVersion = "1.0.0"

// TimeWindow bounds the reporting period of one edition.
type TimeWindow struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// Provenance records which pipeline run produced the document.
type Provenance struct {
	Pipeline string `json:"pipeline" yaml:"pipeline"`
	RunID    string `json:"runId" yaml:"runId"`
	Notes    string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Metadata is the document envelope.
type Metadata struct {
	GeneratedAt utc.Time   `json:"generatedAt" yaml:"generatedAt"`
	TimeWindow  TimeWindow `json:"timeWindow" yaml:"timeWindow"`
	Region      []string   `json:"region" yaml:"region"`
	Version     string     `json:"version" yaml:"version"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Provenance  Provenance `json:"provenance" yaml:"provenance"`
}

// Entities holds the canonical entity tables, keyed by role.
type Entities struct {
	Companies []Company `json:"companies" yaml:"companies"`
	People    []Person  `json:"people" yaml:"people"`
}

// BibliographyEntry maps a citation number to its source. Numbers are
// contiguous from 1 in first-appearance order across the rendered content.
type BibliographyEntry struct {
	Number int    `json:"number" yaml:"number"`
	Source Source `json:"source" yaml:"source"`
}

// Document is the root aggregate: the canonical contract. It is built once
// per pipeline run, validated, and never partially written.
type Document struct {
	Metadata     Metadata            `json:"metadata" yaml:"metadata"`
	Entities     Entities            `json:"entities" yaml:"entities"`
	Content      map[string][]Item   `json:"content" yaml:"content"`
	Bibliography []BibliographyEntry `json:"bibliography" yaml:"bibliography"`
}

// Company returns the company with the given id, or nil.
func (d *Document) Company(id string) *Company {
	for i := range d.Entities.Companies {
		if d.Entities.Companies[i].ID == id {
			return &d.Entities.Companies[i]
		}
	}
	return nil
}

// Person returns the person with the given id, or nil.
func (d *Document) Person(id string) *Person {
	for i := range d.Entities.People {
		if d.Entities.People[i].ID == id {
			return &d.Entities.People[i]
		}
	}
	return nil
}

// HasEntity reports whether an entity with the given id exists in either
// table.
func (d *Document) HasEntity(id string) bool {
	return d.Company(id) != nil || d.Person(id) != nil
}

// MarshalIndent serializes the document as pretty-printed JSON. Map keys
// marshal in sorted order, so identical documents produce identical bytes.
func (d *Document) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
