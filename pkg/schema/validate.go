// Package schema enforces the versioned, additive-only newsletter
// contract. The validator checks structure only (required fields, entity
// reference integrity, id prefixes, bibliography numbering) and accepts
// unknown extra fields at any level without stripping them. It reports
// every violation found in a single pass and never mutates the document.
package schema

import (
	"fmt"
	"strings"

	"github.com/agentstation/newsroom/pkg/errors"
	"github.com/agentstation/newsroom/pkg/newsletter"
)

// RecognizedVersions are the contract versions this validator understands.
var RecognizedVersions = []string{newsletter.SchemaVersion}

// Option configures a Validator.
type Option func(*Validator)

// WithVersions replaces the set of recognized schema versions.
func WithVersions(versions ...string) Option {
	return func(v *Validator) {
		v.versions = make(map[string]bool, len(versions))
		for _, version := range versions {
			v.versions[version] = true
		}
	}
}

// Validator checks assembled documents against the contract.
type Validator struct {
	versions map[string]bool
}

// New creates a Validator with options.
func New(opts ...Option) *Validator {
	v := &Validator{versions: make(map[string]bool, len(RecognizedVersions))}
	for _, version := range RecognizedVersions {
		v.versions[version] = true
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate returns every contract violation in the document, or nil when
// the document is valid. The caller decides whether to abort the run.
func (v *Validator) Validate(doc *newsletter.Document) errors.SchemaViolations {
	var out errors.SchemaViolations
	add := func(path, format string, args ...any) {
		out = append(out, errors.Violation{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	if doc == nil {
		add("", "document is nil")
		return out
	}

	v.metadata(doc, add)
	v.entities(doc, add)
	v.content(doc, add)
	v.bibliography(doc, add)

	if len(out) == 0 {
		return nil
	}
	return out
}

type addFunc func(path, format string, args ...any)

func (v *Validator) metadata(doc *newsletter.Document, add addFunc) {
	meta := doc.Metadata
	if meta.Version == "" {
		add("metadata", "missing 'version'")
	} else if !v.versions[meta.Version] {
		add("metadata.version", "unrecognized schema version %q", meta.Version)
	}
	if meta.GeneratedAt.IsZero() {
		add("metadata", "missing 'generatedAt'")
	}
}

func (v *Validator) entities(doc *newsletter.Document, add addFunc) {
	for i, c := range doc.Entities.Companies {
		path := fmt.Sprintf("entities.companies[%d]", i)
		if !strings.HasPrefix(c.ID, newsletter.KindCompany.IDPrefix()) {
			add(path, "id must start with %q", newsletter.KindCompany.IDPrefix())
		}
		if c.Name == "" {
			add(path, "missing 'name'")
		}
	}
	for i, p := range doc.Entities.People {
		path := fmt.Sprintf("entities.people[%d]", i)
		if !strings.HasPrefix(p.ID, newsletter.KindPerson.IDPrefix()) {
			add(path, "id must start with %q", newsletter.KindPerson.IDPrefix())
		}
		if p.Name == "" {
			add(path, "missing 'name'")
		}
	}
}

// prefixed are the id prefixes the contract pins down. Items of open-ended
// extra categories may use any id scheme.
var prefixed = map[newsletter.Category]bool{
	newsletter.CategoryInvestment:  true,
	newsletter.CategoryEvent:       true,
	newsletter.CategoryAccelerator: true,
}

func (v *Validator) content(doc *newsletter.Document, add addFunc) {
	for section, items := range doc.Content {
		for i := range items {
			item := &items[i]
			path := fmt.Sprintf("content.%s[%d]", section, i)

			if item.ID == "" {
				add(path, "missing 'id'")
			}
			if item.Type == "" {
				add(path, "missing 'type'")
			} else if item.Type.Section() != section {
				add(path, "type %q does not belong in section %q", item.Type, section)
			}
			if item.Title == "" {
				add(path, "missing 'title'")
			}
			if item.Summary == "" {
				add(path, "missing 'summary'")
			}
			if len(item.Sources) == 0 {
				add(path+".sources", "must have at least 1 source")
			}
			for j, src := range item.Sources {
				if src.URL == "" {
					add(fmt.Sprintf("%s.sources[%d]", path, j), "missing 'url'")
				}
			}

			if item.ID != "" && prefixed[item.Type] && !strings.HasPrefix(item.ID, item.Type.IDPrefix()) {
				add(path+".id", "id must start with %q", item.Type.IDPrefix())
			}

			for _, ref := range item.EntityRefs.All() {
				if _, known := newsletter.KindOf(ref); !known {
					add(path+".entityRefs", "reference %q has no recognized entity prefix", ref)
				} else if !doc.HasEntity(ref) {
					add(path+".entityRefs", "reference %q does not resolve to a registered entity", ref)
				}
			}
		}
	}
}

func (v *Validator) bibliography(doc *newsletter.Document, add addFunc) {
	seen := make(map[string]int, len(doc.Bibliography))
	cited := make(map[int]bool)

	for i, entry := range doc.Bibliography {
		path := fmt.Sprintf("bibliography[%d]", i)
		if entry.Number != i+1 {
			add(path, "numbers must be contiguous from 1, got %d at position %d", entry.Number, i)
		}
		if entry.Source.URL == "" {
			add(path, "missing source url")
		} else if prev, dup := seen[entry.Source.URL]; dup {
			add(path, "url already assigned number %d", prev)
		} else {
			seen[entry.Source.URL] = entry.Number
		}
	}

	for section, items := range doc.Content {
		for i := range items {
			for _, n := range items[i].Citations {
				if n < 1 || n > len(doc.Bibliography) {
					add(fmt.Sprintf("content.%s[%d].citations", section, i),
						"citation %d is not in the bibliography", n)
					continue
				}
				cited[n] = true
			}
		}
	}

	for _, entry := range doc.Bibliography {
		if entry.Number >= 1 && entry.Number <= len(doc.Bibliography) && !cited[entry.Number] {
			add(fmt.Sprintf("bibliography[%d]", entry.Number-1),
				"entry %d is cited by no content item", entry.Number)
		}
	}
}
