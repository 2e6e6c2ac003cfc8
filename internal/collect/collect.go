// Package collect is the ingestion boundary: adapters that fetch
// upstream sources and emit raw per-category records for the pipeline.
// Everything past this package is source-agnostic.
package collect

import (
	"context"
	"fmt"
	"time"

	"github.com/agentstation/newsroom/pkg/newsletter"
	"github.com/agentstation/newsroom/pkg/pipeline"
)

// Collector fetches raw records from one backing source.
type Collector interface {
	// Name identifies the adapter in logs and reports.
	Name() string

	// Collect fetches raw records published inside the window.
	Collect(ctx context.Context, window newsletter.TimeWindow) ([]pipeline.RawItem, error)
}

// Source selects a collection adapter.
type Source string

const (
	// SourceMock serves the built-in sample dataset. Default mode for
	// development and demos.
	SourceMock Source = "mock"

	// SourceLive fetches the configured RSS feeds.
	SourceLive Source = "live"
)

// Feed is one live RSS/Atom feed to poll.
type Feed struct {
	URL       string              `json:"url" yaml:"url"`
	Publisher string              `json:"publisher" yaml:"publisher"`
	Category  newsletter.Category `json:"category" yaml:"category"`
}

// Config selects and parameterizes the adapter.
type Config struct {
	Source  Source        `json:"source" yaml:"source"`
	Feeds   []Feed        `json:"feeds,omitempty" yaml:"feeds,omitempty"`
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// New returns the collector the config selects.
func New(cfg Config) (Collector, error) {
	switch cfg.Source {
	case SourceMock, "":
		return NewMock(), nil
	case SourceLive:
		return NewFeeds(cfg.Feeds, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown collection source %q", cfg.Source)
	}
}
