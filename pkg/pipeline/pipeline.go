// Package pipeline orchestrates the newsletter build: raw collected
// records are resolved against the entity registry, deduplicated,
// ranked, cited, and validated into a single contract document.
package pipeline

import (
	"context"

	"github.com/agentstation/utc"
	"github.com/google/uuid"

	"github.com/agentstation/newsroom/pkg/citation"
	"github.com/agentstation/newsroom/pkg/dedupe"
	"github.com/agentstation/newsroom/pkg/entities"
	"github.com/agentstation/newsroom/pkg/logging"
	"github.com/agentstation/newsroom/pkg/newsletter"
	"github.com/agentstation/newsroom/pkg/rank"
	"github.com/agentstation/newsroom/pkg/schema"
)

// PipelineName identifies this builder in document provenance.
const PipelineName = "newsroom"

// Pipeline builds a newsletter document from raw collected records.
// One Pipeline handles one run; the registry it carries accumulates
// entities across all items of that run.
type Pipeline struct {
	cfg      Config
	registry *entities.Registry
	now      func() utc.Time
	runID    string
	similar  dedupe.Predicate
}

// New creates a pipeline for the given configuration.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		cfg:      cfg,
		registry: entities.New(),
		now:      utc.Now,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	if p.runID == "" {
		p.runID = uuid.NewString()
	}
	return p, nil
}

// Run executes the full build. The returned report is always populated,
// including on error. A schema violation on the assembled document
// aborts the run and surfaces as the returned error.
func (p *Pipeline) Run(ctx context.Context, raw []RawItem) (*newsletter.Document, *Report, error) {
	log := logging.FromContext(ctx)
	report := NewReport()
	report.RawCount = len(raw)

	// Resolve each record independently; a bad record is skipped and
	// reported, never fatal to the run.
	stage := logging.WithStage(ctx, "resolve")
	items := make([]newsletter.Item, 0, len(raw))
	for i := range raw {
		item, err := p.resolve(&raw[i], report)
		if err != nil {
			report.skip(&raw[i], err)
			logging.Ctx(stage).Warn().
				Str("category", string(raw[i].Category)).
				Str("title", raw[i].Title).
				Err(err).
				Msg("Skipping unresolvable item")
			continue
		}
		items = append(items, item)
	}
	report.ResolvedCount = len(items)

	merged := dedupe.New(dedupe.WithSimilarity(p.similar)).Dedupe(items)
	report.MergedCount = len(merged)
	log.Debug().
		Int("resolved", len(items)).
		Int("merged", len(merged)).
		Msg("Deduplication complete")

	// Rank per category in first-appearance order. An unknown category
	// skips its items, not the run.
	stage = logging.WithStage(ctx, "rank")
	ranker := rank.New(p.cfg.rankConfig(), rank.WithPassthrough(p.cfg.ExtraCategories...))
	content := make(map[string][]newsletter.Item)
	for _, cat := range categoryOrder(merged) {
		group := filterCategory(merged, cat)
		ranked, err := ranker.Rank(cat, group)
		if err != nil {
			for i := range group {
				report.Skipped = append(report.Skipped, SkippedItem{
					Category: cat,
					Title:    group[i].Title,
					Reason:   err.Error(),
				})
			}
			logging.Ctx(stage).Warn().
				Str("category", string(cat)).
				Int("items", len(group)).
				Msg("Skipping unrecognized category")
			continue
		}
		if dropped := len(group) - len(ranked); dropped > 0 {
			report.DroppedByCap[cat] = dropped
		}
		report.RankedCount += len(ranked)
		content[cat.Section()] = ranked
	}

	bibliography, err := citation.New(p.cfg.presentation()).Assign(content)
	if err != nil {
		return nil, report, err
	}

	report.Conflicts = p.registry.Conflicts()
	doc := &newsletter.Document{
		Metadata: newsletter.Metadata{
			GeneratedAt: p.now(),
			TimeWindow:  p.cfg.Window,
			Region:      p.cfg.Region,
			Version:     newsletter.SchemaVersion,
			Description: p.cfg.Description,
			Provenance: newsletter.Provenance{
				Pipeline: PipelineName,
				RunID:    p.runID,
				Notes:    p.cfg.Notes,
			},
		},
		Entities: newsletter.Entities{
			Companies: p.registry.Companies(),
			People:    p.registry.People(),
		},
		Content:      content,
		Bibliography: bibliography,
	}

	if violations := schema.New().Validate(doc); violations != nil {
		log.Error().
			Int("violations", len(violations)).
			Msg("Assembled document fails contract validation")
		return nil, report, violations
	}

	log.Info().
		Int("raw", report.RawCount).
		Int("published", report.RankedCount).
		Int("entities", len(doc.Entities.Companies)+len(doc.Entities.People)).
		Int("citations", len(bibliography)).
		Str("run_id", p.runID).
		Msg("Newsletter build complete")
	return doc, report, nil
}

// Registry exposes the entity registry backing this run.
func (p *Pipeline) Registry() *entities.Registry { return p.registry }

// categoryOrder lists distinct categories in first-appearance order.
func categoryOrder(items []newsletter.Item) []newsletter.Category {
	var order []newsletter.Category
	seen := make(map[newsletter.Category]bool)
	for i := range items {
		if !seen[items[i].Type] {
			seen[items[i].Type] = true
			order = append(order, items[i].Type)
		}
	}
	return order
}

func filterCategory(items []newsletter.Item, cat newsletter.Category) []newsletter.Item {
	var group []newsletter.Item
	for i := range items {
		if items[i].Type == cat {
			group = append(group, items[i])
		}
	}
	return group
}
