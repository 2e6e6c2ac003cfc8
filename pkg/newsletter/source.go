package newsletter

import (
	"github.com/agentstation/utc"
)

// DefaultConfidence is assumed for sources that do not declare one.
const DefaultConfidence = 1.0

// Source records the provenance of a claim: where it was published and how
// much we trust it. A Source is immutable once attached to an Item.
type Source struct {
	URL         string   `json:"url" yaml:"url"`                                 // Unique within an item's source list
	Publisher   string   `json:"publisher,omitempty" yaml:"publisher,omitempty"` // Human-readable publisher name
	RetrievedAt utc.Time `json:"retrievedAt" yaml:"retrievedAt"`                 // When the claim was fetched
	Confidence  float64  `json:"confidence,omitempty" yaml:"confidence,omitempty"`
}

// EffectiveConfidence returns the source confidence, substituting the
// default for sources that never declared one.
func (s Source) EffectiveConfidence() float64 {
	if s.Confidence <= 0 {
		return DefaultConfidence
	}
	return s.Confidence
}
