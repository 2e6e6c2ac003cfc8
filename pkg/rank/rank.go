// Package rank imposes a deterministic total order on each content
// category for presentation. Sorting is stable: ties preserve the
// deduplicator's output order. After ranking, each category is cut down to
// its configured cap; dropped items never reach the citation pass.
package rank

import (
	"sort"
	"strings"
	"time"

	"github.com/agentstation/newsroom/internal/normalize"
	"github.com/agentstation/newsroom/pkg/errors"
	"github.com/agentstation/newsroom/pkg/logging"
	"github.com/agentstation/newsroom/pkg/newsletter"
)

// Config is the static ranking configuration supplied at invocation.
type Config struct {
	// PrimaryCity boosts events and accelerators located there.
	PrimaryCity string

	// Caps limits each category's item count after ranking. A missing or
	// non-positive cap means unlimited.
	Caps map[newsletter.Category]int

	// RoundOrder is the round-type weight order, least significant first.
	// Defaults to the canonical pre-seed < seed < series-a < series-b <
	// series-c+ < growth order. "unknown" always weighs least.
	RoundOrder []string
}

// DefaultConfig returns a configuration with the canonical round order and
// no caps.
func DefaultConfig() Config {
	return Config{
		RoundOrder: append([]string(nil), normalize.RoundOrder...),
	}
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithPassthrough registers an extra category ranked by first-encounter
// order. Built-in categories cannot be overridden.
func WithPassthrough(categories ...newsletter.Category) Option {
	return func(r *Ranker) {
		for _, c := range categories {
			if _, builtin := r.rules[c]; !builtin {
				r.rules[c] = func(*Ranker, []newsletter.Item) {}
			}
		}
	}
}

// rule sorts one category's items in place.
type rule func(*Ranker, []newsletter.Item)

// Ranker orders content items per category.
type Ranker struct {
	cfg     Config
	weights map[string]int
	rules   map[newsletter.Category]rule
}

// New creates a Ranker for the given configuration.
func New(cfg Config, opts ...Option) *Ranker {
	order := cfg.RoundOrder
	if len(order) == 0 {
		order = normalize.RoundOrder
	}
	weights := make(map[string]int, len(order))
	for i, round := range order {
		weights[round] = i + 1 // unknown implicitly 0
	}

	r := &Ranker{
		cfg:     cfg,
		weights: weights,
		rules: map[newsletter.Category]rule{
			newsletter.CategoryInvestment:  (*Ranker).rankInvestments,
			newsletter.CategoryEvent:       (*Ranker).rankEvents,
			newsletter.CategoryAccelerator: (*Ranker).rankAccelerators,
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rank orders a single category and applies its cap. The input slice is
// not modified; the result is freshly allocated.
func (r *Ranker) Rank(category newsletter.Category, items []newsletter.Item) ([]newsletter.Item, error) {
	sorter, ok := r.rules[category]
	if !ok {
		return nil, &errors.CategoryError{Category: string(category)}
	}

	ranked := append([]newsletter.Item(nil), items...)
	sorter(r, ranked)

	if limit, ok := r.cfg.Caps[category]; ok && limit > 0 && len(ranked) > limit {
		logging.Info().
			Str("category", string(category)).
			Int("ranked", len(ranked)).
			Int("cap", limit).
			Msg("Dropping items beyond category cap")
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// rankInvestments sorts by amount descending (Undisclosed last), then
// round weight descending, then announcement date descending.
func (r *Ranker) rankInvestments(items []newsletter.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := amountOf(&items[i]), amountOf(&items[j])
		if a != b {
			return a > b
		}
		wa, wb := r.roundWeight(&items[i]), r.roundWeight(&items[j])
		if wa != wb {
			return wa > wb
		}
		// ISO dates compare lexically; an absent date sorts last.
		return items[i].Date > items[j].Date
	})
}

// rankEvents puts primary-city events first, then sorts by start date
// ascending with undated events after all dated ones.
func (r *Ranker) rankEvents(items []newsletter.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		mi, mj := r.matchesPrimaryCity(eventLocation(&items[i])), r.matchesPrimaryCity(eventLocation(&items[j]))
		if mi != mj {
			return mi
		}
		ti, oki := eventStart(&items[i])
		tj, okj := eventStart(&items[j])
		if oki != okj {
			return oki // dated before undated
		}
		if oki && okj {
			return ti.Before(tj)
		}
		return false
	})
}

// rankAccelerators puts primary-city programs first and otherwise keeps
// first-encounter order.
func (r *Ranker) rankAccelerators(items []newsletter.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		mi, mj := r.matchesPrimaryCity(acceleratorLocation(&items[i])), r.matchesPrimaryCity(acceleratorLocation(&items[j]))
		return mi && !mj
	})
}

func (r *Ranker) roundWeight(item *newsletter.Item) int {
	if item.Investment == nil {
		return 0
	}
	return r.weights[item.Investment.Round]
}

// matchesPrimaryCity reports whether a location names the configured
// primary city, in its city or state field.
func (r *Ranker) matchesPrimaryCity(loc *newsletter.Location) bool {
	if r.cfg.PrimaryCity == "" || loc == nil {
		return false
	}
	city := strings.ToLower(r.cfg.PrimaryCity)
	return strings.Contains(strings.ToLower(loc.City), city) ||
		strings.Contains(strings.ToLower(loc.State), city)
}

func amountOf(item *newsletter.Item) float64 {
	if item.Investment == nil || item.Investment.Amount.Undisclosed() {
		return 0 // Undisclosed sorts below every disclosed amount
	}
	return item.Investment.Amount.Value
}

func eventLocation(item *newsletter.Item) *newsletter.Location {
	if item.Event == nil {
		return nil
	}
	return &item.Event.Location
}

func acceleratorLocation(item *newsletter.Item) *newsletter.Location {
	if item.Accelerator == nil {
		return nil
	}
	return &item.Accelerator.Location
}

// eventStart parses an event's start timestamp. Items without a parseable
// date sort after all dated items.
func eventStart(item *newsletter.Item) (time.Time, bool) {
	if item.Event == nil || item.Event.StartDate == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, item.Event.StartDate); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
