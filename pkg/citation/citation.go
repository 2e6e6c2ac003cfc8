// Package citation assigns stable citation numbers to unique sources and
// builds the deduplicated bibliography. Numbering is a pure function of
// presentation order: categories in their configured order, items in rank
// order, each item's sources in stored order. The first appearance of a
// url gets the next number starting at 1.
package citation

import (
	"sort"

	"github.com/agentstation/newsroom/pkg/errors"
	"github.com/agentstation/newsroom/pkg/logging"
	"github.com/agentstation/newsroom/pkg/newsletter"
)

// DefaultOrder is the category presentation order of the newsletter:
// funding first, then events, then accelerators, then everything else.
var DefaultOrder = []newsletter.Category{
	newsletter.CategoryInvestment,
	newsletter.CategoryEvent,
	newsletter.CategoryAccelerator,
	newsletter.CategoryArticle,
	newsletter.CategoryResource,
}

// Assigner numbers sources across the final rendered content order.
type Assigner struct {
	order []newsletter.Category
}

// New creates an Assigner with the given category presentation order,
// falling back to DefaultOrder when none is supplied.
func New(order []newsletter.Category) *Assigner {
	if len(order) == 0 {
		order = DefaultOrder
	}
	return &Assigner{order: append([]newsletter.Category(nil), order...)}
}

// Assign walks the ranked content, records each item's citation numbers in
// source order, and returns the bibliography. Content sections absent from
// the configured order are visited last, in lexical section order, so the
// walk stays deterministic for open-ended categories.
//
// Assign mutates the items' Citations field and nothing else. It fails
// only on a source with no url, which earlier stages must have rejected.
func (a *Assigner) Assign(content map[string][]newsletter.Item) ([]newsletter.BibliographyEntry, error) {
	numbers := make(map[string]int)
	var bibliography []newsletter.BibliographyEntry

	for _, section := range a.sections(content) {
		items := content[section]
		for i := range items {
			item := &items[i]
			item.Citations = make([]int, 0, len(item.Sources))
			for _, src := range item.Sources {
				if src.URL == "" {
					return nil, &errors.SourceError{ItemID: item.ID}
				}
				n, seen := numbers[src.URL]
				if !seen {
					n = len(bibliography) + 1
					numbers[src.URL] = n
					bibliography = append(bibliography, newsletter.BibliographyEntry{
						Number: n,
						Source: src,
					})
				}
				item.Citations = append(item.Citations, n)
			}
		}
	}

	logging.Debug().
		Int("sources", len(bibliography)).
		Msg("Assigned citation numbers")
	return bibliography, nil
}

// sections resolves the walk order over the content map's section keys.
func (a *Assigner) sections(content map[string][]newsletter.Item) []string {
	ordered := make([]string, 0, len(content))
	seen := make(map[string]bool, len(content))

	for _, category := range a.order {
		section := category.Section()
		if _, ok := content[section]; ok {
			ordered = append(ordered, section)
			seen[section] = true
		}
	}

	var rest []string
	for section := range content {
		if !seen[section] {
			rest = append(rest, section)
		}
	}
	sort.Strings(rest)
	return append(ordered, rest...)
}
