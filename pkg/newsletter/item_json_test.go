package newsletter

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestItemMarshalFlattensPayload(t *testing.T) {
	item := Item{
		ID:      "investment:acme-ai-raises-15m",
		Type:    CategoryInvestment,
		Title:   "Acme AI raises $15M",
		Summary: "Acme AI raised $15M.",
		Date:    "2026-02-05",
		Sources: []Source{{URL: "https://techcrunch.com/a", Publisher: "TechCrunch"}},
		Investment: &Investment{
			Round:  "series-a",
			Amount: Amount{Value: 15_000_000, Currency: "USD", Display: "$15M"},
		},
	}

	data, err := json.Marshal(item)
	if err != nil {
		t.Fatal(err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}

	// Payload fields sit at the top level, not under "investment".
	if _, nested := m["investment"]; nested {
		t.Error("payload must not nest under 'investment'")
	}
	if m["round"] != "series-a" {
		t.Errorf("round = %v", m["round"])
	}
	amount, ok := m["amount"].(map[string]any)
	if !ok || amount["display"] != "$15M" {
		t.Errorf("amount = %v", m["amount"])
	}
}

func TestItemRoundTripPreservesUnknownFields(t *testing.T) {
	in := []byte(`{
		"id": "investment:acme",
		"type": "investment",
		"title": "Acme raises $15M",
		"summary": "s",
		"sources": [{"url": "https://t.co/a", "publisher": "T"}],
		"entityRefs": {"companies": ["company:acme"], "people": []},
		"round": "series-a",
		"amount": {"value": 15000000, "currency": "USD", "display": "$15M"},
		"futureField": {"nested": [1, 2, 3]},
		"anotherOne": "kept"
	}`)

	var item Item
	if err := json.Unmarshal(in, &item); err != nil {
		t.Fatal(err)
	}

	if item.Investment == nil || item.Investment.Round != "series-a" {
		t.Fatalf("payload not rebuilt: %+v", item.Investment)
	}
	if len(item.Extra) != 2 {
		t.Fatalf("unknown fields not captured: %v", item.Extra)
	}

	out, err := json.Marshal(item)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatal(err)
	}
	if m["anotherOne"] != "kept" {
		t.Error("unknown scalar field dropped on re-marshal")
	}
	if _, ok := m["futureField"]; !ok {
		t.Error("unknown object field dropped on re-marshal")
	}
}

func TestItemRoundTripEvent(t *testing.T) {
	item := Item{
		ID:      "event:meetup",
		Type:    CategoryEvent,
		Title:   "Meetup",
		Summary: "s",
		Sources: []Source{{URL: "https://g.com/e", Publisher: "G"}},
		Event: &Event{
			StartDate: "2026-02-15T18:00:00",
			Location:  Location{City: "New York", State: "NY", Venue: "The Yard"},
			Cost:      "Free",
		},
	}

	data, err := json.Marshal(item)
	if err != nil {
		t.Fatal(err)
	}
	var back Item
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(item.Event, back.Event); diff != "" {
		t.Errorf("event payload round trip (-want +got):\n%s", diff)
	}
	if back.Extra != nil {
		t.Errorf("known keys leaked into Extra: %v", back.Extra)
	}
}

func TestDeriveConfidence(t *testing.T) {
	item := Item{Sources: []Source{
		{URL: "https://a.com", Confidence: 0.9},
		{URL: "https://b.com", Confidence: 0.6},
		{URL: "https://c.com"}, // defaults to 1.0
	}}
	item.DeriveConfidence()
	if item.Confidence != 0.6 {
		t.Errorf("confidence = %v, want weakest source 0.6", item.Confidence)
	}

	item.Sources = nil
	item.DeriveConfidence()
	if item.Confidence != 0 {
		t.Errorf("sourceless confidence = %v", item.Confidence)
	}
}

func TestCategorySectionAndPrefix(t *testing.T) {
	if CategoryInvestment.Section() != "investments" {
		t.Error("section name")
	}
	if CategoryEvent.IDPrefix() != "event:" {
		t.Error("id prefix")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		id   string
		kind EntityKind
		ok   bool
	}{
		{"company:acme-ai", KindCompany, true},
		{"person:jane-deaux", KindPerson, true},
		{"investment:acme", "", false},
		{"acme", "", false},
	}
	for _, tt := range tests {
		kind, ok := KindOf(tt.id)
		if ok != tt.ok || (ok && kind != tt.kind) {
			t.Errorf("KindOf(%q) = %v, %v", tt.id, kind, ok)
		}
	}
}
