package newsletter

import (
	"encoding/json"
)

// The wire contract keeps category payload fields at the top level of each
// item (round and amount next to title, not nested under "investment").
// The codec below flattens payloads on marshal and rebuilds the tagged
// variant on unmarshal. Keys it does not own are kept in Extra and
// re-emitted untouched, keeping the contract additive-only.

// MarshalJSON implements json.Marshaler.
func (i Item) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, 16+len(i.Extra))
	for k, v := range i.Extra {
		m[k] = v
	}

	m["id"] = i.ID
	m["type"] = i.Type
	m["title"] = i.Title
	m["summary"] = i.Summary
	if i.Date != "" {
		m["date"] = i.Date
	}
	sources := i.Sources
	if sources == nil {
		sources = []Source{}
	}
	m["sources"] = sources
	m["entityRefs"] = i.EntityRefs
	if len(i.Tags) > 0 {
		m["tags"] = i.Tags
	}
	if i.Confidence > 0 {
		m["confidence"] = i.Confidence
	}
	if i.LowConfidence {
		m["lowConfidence"] = true
	}
	if len(i.Citations) > 0 {
		m["citations"] = i.Citations
	}

	switch {
	case i.Investment != nil:
		m["round"] = i.Investment.Round
		m["amount"] = i.Investment.Amount
	case i.Event != nil:
		if i.Event.StartDate != "" {
			m["startDate"] = i.Event.StartDate
		}
		if i.Event.EndDate != "" {
			m["endDate"] = i.Event.EndDate
		}
		m["location"] = i.Event.Location
		if len(i.Event.Topics) > 0 {
			m["topics"] = i.Event.Topics
		}
		if i.Event.Cost != "" {
			m["cost"] = i.Event.Cost
		}
		if i.Event.RegistrationURL != "" {
			m["registrationUrl"] = i.Event.RegistrationURL
		}
	case i.Accelerator != nil:
		m["location"] = i.Accelerator.Location
		if len(i.Accelerator.Focus) > 0 {
			m["focus"] = i.Accelerator.Focus
		}
		if i.Accelerator.Terms != "" {
			m["terms"] = i.Accelerator.Terms
		}
	}

	return json.Marshal(m)
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *Item) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	take := func(key string, dst any) error {
		v, ok := raw[key]
		if !ok {
			return nil
		}
		delete(raw, key)
		return json.Unmarshal(v, dst)
	}

	for key, dst := range map[string]any{
		"id": &i.ID, "type": &i.Type, "title": &i.Title,
		"summary": &i.Summary, "date": &i.Date, "sources": &i.Sources,
		"entityRefs": &i.EntityRefs, "tags": &i.Tags,
		"confidence": &i.Confidence, "lowConfidence": &i.LowConfidence,
		"citations": &i.Citations,
	} {
		if err := take(key, dst); err != nil {
			return err
		}
	}

	var err error
	switch i.Type {
	case CategoryInvestment:
		inv := &Investment{}
		if e := take("round", &inv.Round); e != nil {
			err = e
		}
		if e := take("amount", &inv.Amount); e != nil {
			err = e
		}
		i.Investment = inv
	case CategoryEvent:
		ev := &Event{}
		for key, dst := range map[string]any{
			"startDate": &ev.StartDate, "endDate": &ev.EndDate,
			"location": &ev.Location, "topics": &ev.Topics,
			"cost": &ev.Cost, "registrationUrl": &ev.RegistrationURL,
		} {
			if e := take(key, dst); e != nil {
				err = e
			}
		}
		i.Event = ev
	case CategoryAccelerator:
		acc := &Accelerator{}
		for key, dst := range map[string]any{
			"location": &acc.Location, "focus": &acc.Focus,
			"terms": &acc.Terms,
		} {
			if e := take(key, dst); e != nil {
				err = e
			}
		}
		i.Accelerator = acc
	}
	if err != nil {
		return err
	}

	if len(raw) > 0 {
		i.Extra = make(map[string]any, len(raw))
		for k, v := range raw {
			var val any
			if err := json.Unmarshal(v, &val); err != nil {
				return err
			}
			i.Extra[k] = val
		}
	}
	return nil
}
