package pipeline

import (
	"github.com/agentstation/newsroom/pkg/citation"
	"github.com/agentstation/newsroom/pkg/newsletter"
	"github.com/agentstation/newsroom/pkg/rank"
)

// Config is the static configuration the core receives at invocation. The
// core never reads files or environment itself; the caller assembles this
// from whatever configuration surface it owns.
type Config struct {
	// Region tags the edition, e.g. ["US", "NYC"].
	Region []string `yaml:"region"`

	// PrimaryCity boosts events and accelerator programs located there.
	PrimaryCity string `yaml:"primaryCity"`

	// Caps limits each category's item count after ranking.
	Caps map[newsletter.Category]int `yaml:"caps"`

	// RoundOrder overrides the round-type weight order, least significant
	// first. Empty means the canonical order.
	RoundOrder []string `yaml:"roundOrder"`

	// Presentation is the category order of the rendered newsletter,
	// which also fixes citation numbering. Empty means funding, events,
	// accelerators, articles, resources.
	Presentation []newsletter.Category `yaml:"presentation"`

	// ExtraCategories admits open-ended categories beyond the built-in
	// ranking table; they rank by first-encounter order.
	ExtraCategories []newsletter.Category `yaml:"extraCategories"`

	// Window bounds the reporting period recorded in metadata.
	Window newsletter.TimeWindow `yaml:"window"`

	// Description and Notes are free-text metadata fields.
	Description string `yaml:"description"`
	Notes       string `yaml:"notes"`
}

// DefaultConfig returns a configuration with no caps, no primary city, and
// the canonical orderings.
func DefaultConfig() Config {
	return Config{}
}

// rankConfig projects the pipeline configuration onto the ranker's.
func (c Config) rankConfig() rank.Config {
	cfg := rank.DefaultConfig()
	cfg.PrimaryCity = c.PrimaryCity
	cfg.Caps = c.Caps
	if len(c.RoundOrder) > 0 {
		cfg.RoundOrder = c.RoundOrder
	}
	return cfg
}

// presentation returns the effective category presentation order.
func (c Config) presentation() []newsletter.Category {
	if len(c.Presentation) > 0 {
		return c.Presentation
	}
	return citation.DefaultOrder
}
