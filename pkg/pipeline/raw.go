package pipeline

import (
	"github.com/agentstation/newsroom/pkg/newsletter"
)

// RawPerson is a person mention attached to a raw record, before entity
// resolution.
type RawPerson struct {
	Name string `json:"name" yaml:"name"`
	Role string `json:"role,omitempty" yaml:"role,omitempty"`
}

// RawItem is the intermediate record shape the normalization adapters
// produce: one per-category record with required title, summary, and at
// least one source. Entity mentions are plain names here; the registry
// stage resolves them to canonical ids.
type RawItem struct {
	Category newsletter.Category `json:"category" yaml:"category"`
	Title    string              `json:"title" yaml:"title"`
	Summary  string              `json:"summary" yaml:"summary"`
	Date     string              `json:"date,omitempty" yaml:"date,omitempty"`

	Sources []newsletter.Source `json:"sources" yaml:"sources"`
	Tags    []string            `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Entity mentions.
	Company   string      `json:"company,omitempty" yaml:"company,omitempty"`
	Aliases   []string    `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Industry  []string    `json:"industry,omitempty" yaml:"industry,omitempty"`
	Investors []string    `json:"investors,omitempty" yaml:"investors,omitempty"`
	People    []RawPerson `json:"people,omitempty" yaml:"people,omitempty"`

	// Investment fields.
	Round  string `json:"round,omitempty" yaml:"round,omitempty"`
	Amount string `json:"amount,omitempty" yaml:"amount,omitempty"` // raw, e.g. "$10M", "undisclosed"

	// Event fields.
	StartDate       string   `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	EndDate         string   `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	Topics          []string `json:"topics,omitempty" yaml:"topics,omitempty"`
	Cost            string   `json:"cost,omitempty" yaml:"cost,omitempty"`
	RegistrationURL string   `json:"registrationUrl,omitempty" yaml:"registrationUrl,omitempty"`

	// Accelerator fields.
	Focus []string `json:"focus,omitempty" yaml:"focus,omitempty"`
	Terms string   `json:"terms,omitempty" yaml:"terms,omitempty"`

	// Shared location, used by events and accelerators and recorded as
	// the company location for investments.
	Location newsletter.Location `json:"location,omitempty" yaml:"location,omitempty"`
}
