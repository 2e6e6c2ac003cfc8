// Package dedupe merges content items that report the same real-world
// fact. Matching is exact-key only: items collide when they share a
// category and a normalized title, or (for investments) the same primary
// company and announcement date. Fuzzy matching is not built in; a
// similarity predicate can be injected as an optional extension point.
package dedupe

import (
	"github.com/agentstation/newsroom/internal/normalize"
	"github.com/agentstation/newsroom/pkg/logging"
	"github.com/agentstation/newsroom/pkg/newsletter"
)

// Predicate reports whether two same-category items describe the same
// fact. It runs in addition to the exact keys, never instead of them.
type Predicate func(a, b *newsletter.Item) bool

// Option configures a Deduper.
type Option func(*Deduper)

// WithSimilarity injects an approximate-match predicate. The default
// Deduper uses none.
func WithSimilarity(p Predicate) Option {
	return func(d *Deduper) {
		d.similar = p
	}
}

// Deduper merges duplicate content items while preserving first-encounter
// order of the survivors.
type Deduper struct {
	similar Predicate
}

// New creates a Deduper with options.
func New(opts ...Option) *Deduper {
	d := &Deduper{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dedupe collapses duplicates in an ordered item sequence. Input items
// must already be entity-resolved and structurally valid; unmatched items
// pass through unchanged. The returned slice is freshly allocated and
// never aliases the input.
func (d *Deduper) Dedupe(items []newsletter.Item) []newsletter.Item {
	out := make([]newsletter.Item, 0, len(items))

	titleIdx := make(map[string]int)
	invIdx := make(map[string]int)

	// bestNarrative tracks, per survivor, the highest single-source
	// confidence seen so far; the summary always comes from that item.
	bestNarrative := make(map[int]float64)

	merged := 0
	for _, item := range items {
		tKey := titleKey(&item)
		iKey := investmentKey(&item)

		idx, dup := titleIdx[tKey]
		if !dup && iKey != "" {
			idx, dup = invIdx[iKey]
		}
		if !dup && d.similar != nil {
			for i := range out {
				if out[i].Type == item.Type && d.similar(&out[i], &item) {
					idx, dup = i, true
					break
				}
			}
		}

		if dup {
			merge(&out[idx], &item, bestNarrative, idx)
			merged++
			// A merged item may widen the survivor's key set.
			titleIdx[tKey] = idx
			if iKey != "" {
				invIdx[iKey] = idx
			}
			continue
		}

		idx = len(out)
		out = append(out, copyItem(item))
		titleIdx[tKey] = idx
		if iKey != "" {
			invIdx[iKey] = idx
		}
		bestNarrative[idx] = bestSourceConfidence(&item)
	}

	if merged > 0 {
		logging.Info().
			Int("input", len(items)).
			Int("merged", merged).
			Int("surviving", len(out)).
			Msg("Deduplicated content items")
	}
	return out
}

// titleKey is the primary duplicate key: category plus normalized title.
func titleKey(item *newsletter.Item) string {
	return string(item.Type) + "|" + normalize.TitleKey(item.Title)
}

// investmentKey is the secondary key for investments: primary company plus
// exact announcement date. Sources may title the same round differently.
func investmentKey(item *newsletter.Item) string {
	if item.Type != newsletter.CategoryInvestment {
		return ""
	}
	company := item.EntityRefs.Primary()
	if company == "" || item.Date == "" {
		return ""
	}
	return company + "|" + item.Date
}

// merge folds dup into the surviving base item.
func merge(base *newsletter.Item, dup *newsletter.Item, bestNarrative map[int]float64, idx int) {
	for _, s := range dup.Sources {
		if !base.HasSource(s.URL) {
			base.Sources = append(base.Sources, s)
		}
	}

	base.Tags = unionStrings(base.Tags, dup.Tags)
	base.EntityRefs.Companies = unionStrings(base.EntityRefs.Companies, dup.EntityRefs.Companies)
	base.EntityRefs.People = unionStrings(base.EntityRefs.People, dup.EntityRefs.People)
	base.EntityRefs.Investors = unionStrings(base.EntityRefs.Investors, dup.EntityRefs.Investors)

	// Narrative fields follow the highest-confidence contributor; ties
	// keep the first-encountered text.
	if c := bestSourceConfidence(dup); c > bestNarrative[idx] {
		if dup.Summary != "" {
			base.Summary = dup.Summary
		}
		bestNarrative[idx] = c
	}

	// Fill structural gaps from the duplicate.
	if base.Date == "" {
		base.Date = dup.Date
	}
	if base.Investment != nil && dup.Investment != nil {
		if base.Investment.Amount.Undisclosed() && !dup.Investment.Amount.Undisclosed() {
			base.Investment.Amount = dup.Investment.Amount
		}
		if base.Investment.Round == normalize.RoundUnknown && dup.Investment.Round != normalize.RoundUnknown {
			base.Investment.Round = dup.Investment.Round
		}
	}

	// Corroboration raises trust: confidence becomes the maximum across
	// all contributing sources.
	max := 0.0
	for _, s := range base.Sources {
		if c := s.EffectiveConfidence(); c > max {
			max = c
		}
	}
	base.Confidence = max
	base.LowConfidence = base.LowConfidence && dup.LowConfidence

	logging.Debug().
		Str("base", base.ID).
		Str("merged", dup.ID).
		Int("sources", len(base.Sources)).
		Msg("Merged duplicate content item")
}

// bestSourceConfidence returns the highest single-source confidence of an
// item, 0 when it has no sources.
func bestSourceConfidence(item *newsletter.Item) float64 {
	best := 0.0
	for _, s := range item.Sources {
		if c := s.EffectiveConfidence(); c > best {
			best = c
		}
	}
	return best
}

// copyItem deep-copies the slices an item owns so later merges never
// mutate the caller's input.
func copyItem(item newsletter.Item) newsletter.Item {
	out := item
	out.Sources = append([]newsletter.Source(nil), item.Sources...)
	out.Tags = append([]string(nil), item.Tags...)
	out.EntityRefs.Companies = append([]string(nil), item.EntityRefs.Companies...)
	out.EntityRefs.People = append([]string(nil), item.EntityRefs.People...)
	out.EntityRefs.Investors = append([]string(nil), item.EntityRefs.Investors...)
	if item.Investment != nil {
		inv := *item.Investment
		out.Investment = &inv
	}
	if item.Event != nil {
		ev := *item.Event
		out.Event = &ev
	}
	if item.Accelerator != nil {
		acc := *item.Accelerator
		out.Accelerator = &acc
	}
	return out
}

// unionStrings appends values not already present, preserving first-seen
// order.
func unionStrings(base, add []string) []string {
	out := base
	for _, v := range add {
		if v == "" {
			continue
		}
		found := false
		for _, have := range out {
			if have == v {
				found = true
				break
			}
		}
		if !found {
			out = append(out, v)
		}
	}
	return out
}
