// Package entities implements the entity registry: it resolves company and
// person mentions from heterogeneous sources into canonical records with
// stable, deterministic identifiers. Exactly one entity exists per
// normalized name slug within a registry instance.
package entities

import (
	"fmt"

	"github.com/agentstation/newsroom/internal/normalize"
	"github.com/agentstation/newsroom/pkg/errors"
	"github.com/agentstation/newsroom/pkg/logging"
	"github.com/agentstation/newsroom/pkg/newsletter"
)

// Conflict records a scalar attribute that arrived with a different value
// after the first registration. First write wins; the losing value is
// surfaced here instead of being silently discarded.
type Conflict struct {
	EntityID string
	Field    string
	Kept     string
	Ignored  string
}

// String renders the conflict for the end-of-run report.
func (c Conflict) String() string {
	return fmt.Sprintf("%s.%s: kept %q, ignored later value %q", c.EntityID, c.Field, c.Kept, c.Ignored)
}

// CompanyAttrs are the optional attributes supplied with a company
// registration.
type CompanyAttrs struct {
	Aliases  []string
	Industry []string
	Location string
	Links    []string
	Sources  []newsletter.Source
}

// PersonAttrs are the optional attributes supplied with a person
// registration.
type PersonAttrs struct {
	Role         string
	Affiliations []string
	Socials      map[string]string
	Sources      []newsletter.Source
}

// Registry collects and deduplicates companies and people by slug.
// Lookups are O(1); iteration order is first-created order so re-running
// the pipeline on identical input yields an identical entity table.
type Registry struct {
	companies map[string]*newsletter.Company // slug -> record
	people    map[string]*newsletter.Person

	companyOrder []string
	peopleOrder  []string

	conflicts []Conflict
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		companies: make(map[string]*newsletter.Company),
		people:    make(map[string]*newsletter.Person),
	}
}

// RegisterCompany resolves a company name to its canonical id, creating
// the record on first sight and merging attributes on every later one.
func (r *Registry) RegisterCompany(name string, attrs CompanyAttrs) (string, error) {
	slug := normalize.Slug(name)
	if slug == "" {
		return "", &errors.EntityNameError{Kind: string(newsletter.KindCompany), Name: name}
	}
	id := newsletter.KindCompany.ID(slug)

	existing, ok := r.companies[slug]
	if !ok {
		r.companies[slug] = &newsletter.Company{
			ID:       id,
			Name:     normalize.CollapseWhitespace(name),
			Aliases:  unionStrings(nil, attrs.Aliases),
			Industry: unionStrings(nil, attrs.Industry),
			Location: attrs.Location,
			Links:    unionStrings(nil, attrs.Links),
			Sources:  unionSources(nil, attrs.Sources),
		}
		r.companyOrder = append(r.companyOrder, slug)
		return id, nil
	}

	existing.Aliases = unionStrings(existing.Aliases, attrs.Aliases)
	existing.Industry = unionStrings(existing.Industry, attrs.Industry)
	existing.Links = unionStrings(existing.Links, attrs.Links)
	existing.Sources = unionSources(existing.Sources, attrs.Sources)
	r.mergeScalar(id, "location", &existing.Location, attrs.Location)
	return id, nil
}

// RegisterPerson resolves a person name to its canonical id, creating the
// record on first sight and merging attributes on every later one.
func (r *Registry) RegisterPerson(name string, attrs PersonAttrs) (string, error) {
	slug := normalize.Slug(name)
	if slug == "" {
		return "", &errors.EntityNameError{Kind: string(newsletter.KindPerson), Name: name}
	}
	id := newsletter.KindPerson.ID(slug)

	existing, ok := r.people[slug]
	if !ok {
		p := &newsletter.Person{
			ID:           id,
			Name:         normalize.CollapseWhitespace(name),
			Role:         attrs.Role,
			Affiliations: unionStrings(nil, attrs.Affiliations),
			Sources:      unionSources(nil, attrs.Sources),
		}
		if len(attrs.Socials) > 0 {
			p.Socials = make(map[string]string, len(attrs.Socials))
			for k, v := range attrs.Socials {
				p.Socials[k] = v
			}
		}
		r.people[slug] = p
		r.peopleOrder = append(r.peopleOrder, slug)
		return id, nil
	}

	existing.Affiliations = unionStrings(existing.Affiliations, attrs.Affiliations)
	existing.Sources = unionSources(existing.Sources, attrs.Sources)
	for k, v := range attrs.Socials {
		if existing.Socials == nil {
			existing.Socials = make(map[string]string)
		}
		if _, seen := existing.Socials[k]; !seen {
			existing.Socials[k] = v
		}
	}
	r.mergeScalar(id, "role", &existing.Role, attrs.Role)
	return id, nil
}

// mergeScalar applies the first-write-wins policy: an empty field takes
// the incoming value, a differing later value is recorded as a conflict.
func (r *Registry) mergeScalar(id, field string, dst *string, incoming string) {
	if incoming == "" || incoming == *dst {
		return
	}
	if *dst == "" {
		*dst = incoming
		return
	}
	conflict := Conflict{EntityID: id, Field: field, Kept: *dst, Ignored: incoming}
	r.conflicts = append(r.conflicts, conflict)
	logging.Debug().
		Str("entity", id).
		Str("field", field).
		Str("ignored", incoming).
		Msg("Conflicting scalar attribute, first write wins")
}

// Has reports whether an entity with the given id exists.
func (r *Registry) Has(id string) bool {
	kind, ok := newsletter.KindOf(id)
	if !ok {
		return false
	}
	slug := id[len(kind.IDPrefix()):]
	if kind == newsletter.KindCompany {
		_, ok = r.companies[slug]
	} else {
		_, ok = r.people[slug]
	}
	return ok
}

// Companies returns the company table in first-created order.
func (r *Registry) Companies() []newsletter.Company {
	out := make([]newsletter.Company, 0, len(r.companyOrder))
	for _, slug := range r.companyOrder {
		out = append(out, *r.companies[slug])
	}
	return out
}

// People returns the person table in first-created order.
func (r *Registry) People() []newsletter.Person {
	out := make([]newsletter.Person, 0, len(r.peopleOrder))
	for _, slug := range r.peopleOrder {
		out = append(out, *r.people[slug])
	}
	return out
}

// Conflicts returns every first-write-wins decision made so far, for the
// end-of-run report.
func (r *Registry) Conflicts() []Conflict {
	return r.conflicts
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

// unionSources appends sources whose url is not already present.
func unionSources(base, add []newsletter.Source) []newsletter.Source {
	out := base
	for _, s := range add {
		if s.URL == "" {
			continue
		}
		found := false
		for _, have := range out {
			if have.URL == s.URL {
				found = true
				break
			}
		}
		if !found {
			out = append(out, s)
		}
	}
	return out
}
