package pipeline

import (
	"github.com/agentstation/utc"

	"github.com/agentstation/newsroom/pkg/dedupe"
	"github.com/agentstation/newsroom/pkg/entities"
	"github.com/agentstation/newsroom/pkg/errors"
)

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithRegistry seeds the pipeline with a pre-populated entity registry
// instead of an empty one.
func WithRegistry(registry *entities.Registry) Option {
	return func(p *Pipeline) error {
		if registry == nil {
			return &errors.ValidationError{Field: "registry", Message: "cannot be nil"}
		}
		p.registry = registry
		return nil
	}
}

// WithClock overrides the time source used for metadata timestamps.
// Fixing the clock makes two runs over identical input byte-identical.
func WithClock(now func() utc.Time) Option {
	return func(p *Pipeline) error {
		if now == nil {
			return &errors.ValidationError{Field: "clock", Message: "cannot be nil"}
		}
		p.now = now
		return nil
	}
}

// WithRunID pins the provenance run id instead of generating a fresh UUID.
func WithRunID(id string) Option {
	return func(p *Pipeline) error {
		if id == "" {
			return &errors.ValidationError{Field: "runId", Message: "cannot be empty"}
		}
		p.runID = id
		return nil
	}
}

// WithSimilarity injects an approximate-match predicate into the
// deduplicator. The default pipeline matches on exact keys only.
func WithSimilarity(predicate dedupe.Predicate) Option {
	return func(p *Pipeline) error {
		p.similar = predicate
		return nil
	}
}
