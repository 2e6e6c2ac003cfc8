package pipeline

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/agentstation/newsroom/internal/normalize"
	"github.com/agentstation/newsroom/pkg/entities"
	"github.com/agentstation/newsroom/pkg/errors"
	"github.com/agentstation/newsroom/pkg/newsletter"
)

// resolve turns one raw record into an entity-resolved content item,
// filling documented defaults for missing optional fields and failing on
// missing required ones.
func (p *Pipeline) resolve(raw *RawItem, report *Report) (newsletter.Item, error) {
	var zero newsletter.Item

	if raw.Category == "" {
		return zero, &errors.ContentItemError{Field: "category"}
	}
	if raw.Title == "" {
		return zero, &errors.ContentItemError{Field: "title"}
	}
	if raw.Summary == "" {
		return zero, &errors.ContentItemError{ItemID: itemID(raw), Field: "summary"}
	}
	if len(raw.Sources) == 0 {
		return zero, &errors.ContentItemError{ItemID: itemID(raw), Field: "sources"}
	}
	seen := make(map[string]bool, len(raw.Sources))
	for _, src := range raw.Sources {
		if src.URL == "" {
			return zero, &errors.SourceError{ItemID: itemID(raw)}
		}
		if seen[src.URL] {
			return zero, &errors.ContentItemError{ItemID: itemID(raw), Field: "sources"}
		}
		seen[src.URL] = true
	}

	item := newsletter.Item{
		ID:      itemID(raw),
		Type:    raw.Category,
		Title:   normalize.CollapseWhitespace(raw.Title),
		Summary: raw.Summary,
		Date:    raw.Date,
		Sources: append([]newsletter.Source(nil), raw.Sources...),
		Tags:    append([]string(nil), raw.Tags...),
	}

	switch raw.Category {
	case newsletter.CategoryInvestment:
		if err := p.resolveInvestment(raw, &item, report); err != nil {
			return zero, err
		}
	case newsletter.CategoryEvent:
		p.resolveEvent(raw, &item, report)
	case newsletter.CategoryAccelerator:
		p.resolveAccelerator(raw, &item, report)
	default:
		// Open-ended categories carry the shared base contract only;
		// entity mentions still resolve.
		if raw.Company != "" {
			if id, err := p.registerCompany(raw); err == nil {
				item.EntityRefs.Companies = append(item.EntityRefs.Companies, id)
			}
		}
	}

	item.DeriveConfidence()
	return item, nil
}

func (p *Pipeline) resolveInvestment(raw *RawItem, item *newsletter.Item, report *Report) error {
	company := raw.Company
	if company == "" {
		company = normalize.CompanyFromTitle(raw.Title)
		if company == "" {
			return &errors.ContentItemError{ItemID: item.ID, Field: "company"}
		}
		item.LowConfidence = true
		report.infer(item.ID, "company", company, "inferred from title")
	}

	companyID, err := p.registry.RegisterCompany(company, entities.CompanyAttrs{
		Aliases:  raw.Aliases,
		Industry: raw.Industry,
		Location: locationString(raw.Location),
	})
	if err != nil {
		return err
	}
	item.EntityRefs.Companies = append(item.EntityRefs.Companies, companyID)

	for _, investor := range raw.Investors {
		id, err := p.registry.RegisterCompany(investor, entities.CompanyAttrs{})
		if err != nil {
			report.infer(item.ID, "investors", investor, "unresolvable investor name dropped")
			continue
		}
		item.EntityRefs.Investors = append(item.EntityRefs.Investors, id)
	}
	p.resolvePeople(raw, item, companyID, report)

	round := normalize.NormalizeRound(raw.Round)
	if raw.Round == "" {
		round = normalize.InferRound(raw.Title + " " + raw.Summary)
		report.infer(item.ID, "round", round, "inferred from title/summary keywords")
	}

	amount := normalize.ParseAmount(raw.Amount)
	if amount.Undisclosed() && raw.Amount == "" {
		report.infer(item.ID, "amount", newsletter.UndisclosedAmount, "no amount reported")
	}

	if item.Date == "" {
		if date := normalize.DateFromURL(raw.Sources[0].URL); date != "" {
			item.Date = date
			report.infer(item.ID, "date", date, "extracted from source url")
		}
	}

	item.Investment = &newsletter.Investment{Round: round, Amount: amount}
	return nil
}

func (p *Pipeline) resolveEvent(raw *RawItem, item *newsletter.Item, report *Report) {
	if raw.Company != "" {
		if id, err := p.registerCompany(raw); err == nil {
			item.EntityRefs.Companies = append(item.EntityRefs.Companies, id)
			p.resolvePeople(raw, item, id, report)
		}
	} else {
		p.resolvePeople(raw, item, "", report)
	}

	item.Event = &newsletter.Event{
		StartDate:       raw.StartDate,
		EndDate:         raw.EndDate,
		Location:        raw.Location,
		Topics:          append([]string(nil), raw.Topics...),
		Cost:            raw.Cost,
		RegistrationURL: raw.RegistrationURL,
	}
}

func (p *Pipeline) resolveAccelerator(raw *RawItem, item *newsletter.Item, report *Report) {
	if raw.Company != "" {
		if id, err := p.registerCompany(raw); err == nil {
			item.EntityRefs.Companies = append(item.EntityRefs.Companies, id)
			p.resolvePeople(raw, item, id, report)
		}
	} else {
		p.resolvePeople(raw, item, "", report)
	}

	item.Accelerator = &newsletter.Accelerator{
		Location: raw.Location,
		Focus:    append([]string(nil), raw.Focus...),
		Terms:    raw.Terms,
	}
}

// registerCompany registers the raw record's company mention with its
// attributes.
func (p *Pipeline) registerCompany(raw *RawItem) (string, error) {
	return p.registry.RegisterCompany(raw.Company, entities.CompanyAttrs{
		Aliases:  raw.Aliases,
		Industry: raw.Industry,
		Location: locationString(raw.Location),
	})
}

// resolvePeople registers person mentions, affiliated with the given
// company when one resolved.
func (p *Pipeline) resolvePeople(raw *RawItem, item *newsletter.Item, companyID string, report *Report) {
	for _, person := range raw.People {
		attrs := entities.PersonAttrs{Role: person.Role}
		if companyID != "" {
			attrs.Affiliations = []string{companyID}
		}
		id, err := p.registry.RegisterPerson(person.Name, attrs)
		if err != nil {
			report.infer(item.ID, "people", person.Name, "unresolvable person name dropped")
			continue
		}
		item.EntityRefs.People = append(item.EntityRefs.People, id)
	}
}

// itemID derives the deterministic item id: category prefix plus title
// slug, falling back to a short hash when the title has no sluggable
// content.
func itemID(raw *RawItem) string {
	slug := normalize.Slug(raw.Title)
	if slug == "" {
		h := fnv.New32a()
		fmt.Fprintf(h, "%s|%s", raw.Category, raw.Title)
		if len(raw.Sources) > 0 {
			fmt.Fprintf(h, "|%s", raw.Sources[0].URL)
		}
		slug = fmt.Sprintf("%08x", h.Sum32())
	}
	return raw.Category.IDPrefix() + slug
}

// locationString flattens a structured location into the display string
// entity records carry, e.g. "Brooklyn, NY".
func locationString(loc newsletter.Location) string {
	parts := make([]string, 0, 2)
	if loc.City != "" {
		parts = append(parts, loc.City)
	}
	if loc.State != "" {
		parts = append(parts, loc.State)
	}
	return strings.Join(parts, ", ")
}
