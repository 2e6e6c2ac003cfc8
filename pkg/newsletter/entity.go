package newsletter

import (
	"strings"
)

// EntityKind discriminates the two entity tables.
type EntityKind string

// Entity kinds.
const (
	KindCompany EntityKind = "company"
	KindPerson  EntityKind = "person"
)

// IDPrefix returns the prefix entity ids of this kind must carry,
// e.g. "company:".
func (k EntityKind) IDPrefix() string {
	return string(k) + ":"
}

// ID builds a canonical entity id from a kind and a slug.
func (k EntityKind) ID(slug string) string {
	return k.IDPrefix() + slug
}

// Company is a canonical organization record: a startup, investor,
// accelerator, or any other org referenced by content.
type Company struct {
	ID       string   `json:"id" yaml:"id"` // company:<slug>
	Name     string   `json:"name" yaml:"name"`
	Aliases  []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Industry []string `json:"industry,omitempty" yaml:"industry,omitempty"`
	Location string   `json:"location,omitempty" yaml:"location,omitempty"`
	Links    []string `json:"links,omitempty" yaml:"links,omitempty"`
	Sources  []Source `json:"sources,omitempty" yaml:"sources,omitempty"`
}

// Person is a canonical person record. Affiliations are back-references
// to company ids, never embedded copies.
type Person struct {
	ID           string            `json:"id" yaml:"id"` // person:<slug>
	Name         string            `json:"name" yaml:"name"`
	Role         string            `json:"role,omitempty" yaml:"role,omitempty"`
	Affiliations []string          `json:"affiliations,omitempty" yaml:"affiliations,omitempty"`
	Socials      map[string]string `json:"socials,omitempty" yaml:"socials,omitempty"`
	Sources      []Source          `json:"sources,omitempty" yaml:"sources,omitempty"`
}

// EntityRefs are typed pointers from a content item to the entity tables,
// grouped by the role the entity plays in the story.
type EntityRefs struct {
	Companies []string `json:"companies" yaml:"companies"`
	People    []string `json:"people" yaml:"people"`
	Investors []string `json:"investors,omitempty" yaml:"investors,omitempty"`
}

// All returns every referenced entity id across all roles.
func (r EntityRefs) All() []string {
	ids := make([]string, 0, len(r.Companies)+len(r.People)+len(r.Investors))
	ids = append(ids, r.Companies...)
	ids = append(ids, r.People...)
	ids = append(ids, r.Investors...)
	return ids
}

// Primary returns the first referenced company id, or "" when the item
// references no company. Investment dedup keys off this.
func (r EntityRefs) Primary() string {
	if len(r.Companies) == 0 {
		return ""
	}
	return r.Companies[0]
}

// KindOf reports the entity kind encoded in an id prefix, and whether the
// prefix is one we recognize.
func KindOf(id string) (EntityKind, bool) {
	switch {
	case strings.HasPrefix(id, KindCompany.IDPrefix()):
		return KindCompany, true
	case strings.HasPrefix(id, KindPerson.IDPrefix()):
		return KindPerson, true
	}
	return "", false
}
