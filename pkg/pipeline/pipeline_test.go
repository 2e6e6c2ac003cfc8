package pipeline

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/google/go-cmp/cmp"

	"github.com/agentstation/newsroom/pkg/newsletter"
)

var testClock = func() utc.Time {
	return utc.Time{Time: time.Date(2026, 2, 6, 12, 0, 0, 0, time.UTC)}
}

func testPipeline(t *testing.T, cfg Config, opts ...Option) *Pipeline {
	t.Helper()
	opts = append([]Option{WithClock(testClock), WithRunID("test-run")}, opts...)
	p, err := New(cfg, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func rawInvestment(title, company, date, amount string, urls ...string) RawItem {
	sources := make([]newsletter.Source, len(urls))
	for i, u := range urls {
		sources[i] = newsletter.Source{URL: u, Publisher: "TechCrunch"}
	}
	return RawItem{
		Category: newsletter.CategoryInvestment,
		Title:    title,
		Summary:  "Summary: " + title,
		Date:     date,
		Company:  company,
		Round:    "series-a",
		Amount:   amount,
		Sources:  sources,
	}
}

func sampleRaw() []RawItem {
	return []RawItem{
		rawInvestment("Acme AI raises $15M Series A", "Acme AI", "2026-02-05", "$15M",
			"https://techcrunch.com/2026/02/05/acme-ai"),
		// Second wire story for the same round: same company and date,
		// different headline and source.
		rawInvestment("Acme AI lands $15M from Venture Partners", "Acme AI", "2026-02-05", "$15M",
			"https://alleywatch.com/2026/02/acme-ai"),
		rawInvestment("PayFlow secures $8M seed round", "PayFlow", "2026-02-04", "$8M",
			"https://alleywatch.com/2026/02/04/payflow"),
		{
			Category:  newsletter.CategoryEvent,
			Title:     "NYC Founders Meetup",
			Summary:   "Monthly founder networking.",
			StartDate: "2026-02-15T18:00:00",
			Location:  newsletter.Location{City: "New York", State: "NY"},
			Sources:   []newsletter.Source{{URL: "https://garysguide.com/events/meetup", Publisher: "Gary's Guide"}},
		},
		{
			Category: newsletter.CategoryAccelerator,
			Title:    "TechStars NYC",
			Summary:  "13-week mentorship-driven program.",
			Company:  "TechStars NYC",
			Location: newsletter.Location{City: "New York", State: "NY"},
			Sources:  []newsletter.Source{{URL: "https://openvc.app/accelerators/techstars-nyc", Publisher: "OpenVC"}},
		},
	}
}

func TestRunEndToEnd(t *testing.T) {
	p := testPipeline(t, Config{PrimaryCity: "New York"})

	doc, report, err := p.Run(context.Background(), sampleRaw())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.RawCount != 5 || report.ResolvedCount != 5 {
		t.Errorf("counts: raw %d resolved %d", report.RawCount, report.ResolvedCount)
	}
	if report.MergedCount != 4 {
		t.Errorf("duplicate round not merged, merged count %d", report.MergedCount)
	}
	if len(report.Skipped) != 0 {
		t.Errorf("unexpected skips: %v", report.Skipped)
	}
	if !report.Clean() {
		t.Errorf("fully specified input must produce a clean report: %+v", report)
	}

	investments := doc.Content["investments"]
	if len(investments) != 2 {
		t.Fatalf("investments = %d, want 2", len(investments))
	}

	// The merged Acme round carries both sources and cites both.
	acme := investments[0]
	if acme.Title != "Acme AI raises $15M Series A" {
		t.Fatalf("expected merged Acme item first, got %q", acme.Title)
	}
	if len(acme.Sources) != 2 {
		t.Errorf("merged item sources = %d, want 2", len(acme.Sources))
	}
	if diff := cmp.Diff([]int{1, 2}, acme.Citations); diff != "" {
		t.Errorf("citations (-want +got):\n%s", diff)
	}

	// Entity tables carry everything the items reference.
	if doc.Company("company:acme-ai") == nil || doc.Company("company:payflow") == nil {
		t.Error("companies missing from entity table")
	}
	if doc.Company("company:techstars-nyc") == nil {
		t.Error("accelerator company missing from entity table")
	}

	if len(doc.Bibliography) != 5 {
		t.Errorf("bibliography entries = %d, want 5", len(doc.Bibliography))
	}
	for i, entry := range doc.Bibliography {
		if entry.Number != i+1 {
			t.Fatalf("bibliography numbering broken: %v", doc.Bibliography)
		}
	}

	if doc.Metadata.Provenance.RunID != "test-run" {
		t.Errorf("run id = %q", doc.Metadata.Provenance.RunID)
	}
	if doc.Metadata.Version != newsletter.SchemaVersion {
		t.Errorf("version = %q", doc.Metadata.Version)
	}
}

func TestRunDeterministic(t *testing.T) {
	run := func() []byte {
		p := testPipeline(t, Config{PrimaryCity: "New York"})
		doc, _, err := p.Run(context.Background(), sampleRaw())
		if err != nil {
			t.Fatal(err)
		}
		data, err := doc.MarshalIndent()
		if err != nil {
			t.Fatal(err)
		}
		return data
	}

	first := run()
	for i := 0; i < 3; i++ {
		if !bytes.Equal(first, run()) {
			t.Fatal("identical input and fixed clock/run id must produce identical bytes")
		}
	}
}

func TestRunSkipsInvalidItems(t *testing.T) {
	raw := sampleRaw()
	raw = append(raw,
		RawItem{Category: newsletter.CategoryInvestment, Summary: "no title",
			Sources: []newsletter.Source{{URL: "https://x.com/1"}}},
		RawItem{Category: newsletter.CategoryEvent, Title: "No sources", Summary: "s"},
		RawItem{Category: newsletter.CategoryEvent, Title: "Bad source", Summary: "s",
			Sources: []newsletter.Source{{Publisher: "nowhere"}}},
	)

	p := testPipeline(t, Config{})
	doc, report, err := p.Run(context.Background(), raw)
	if err != nil {
		t.Fatalf("bad items must not fail the run: %v", err)
	}

	if len(report.Skipped) != 3 {
		t.Fatalf("skipped = %v, want 3 entries", report.Skipped)
	}
	if report.ResolvedCount != 5 {
		t.Errorf("resolved = %d", report.ResolvedCount)
	}
	// Skipped items never surface in content.
	for _, items := range doc.Content {
		for _, item := range items {
			if item.Title == "No sources" || item.Title == "Bad source" {
				t.Errorf("skipped item leaked into content: %s", item.Title)
			}
		}
	}
}

func TestRunCapDropsBeforeCitations(t *testing.T) {
	var raw []RawItem
	urls := []string{
		"https://techcrunch.com/a", "https://techcrunch.com/b",
		"https://techcrunch.com/c", "https://techcrunch.com/d",
	}
	titles := []string{
		"Alpha raises $40M Series B",
		"Beta raises $30M Series A",
		"Gamma raises $20M Series A",
		"Delta raises $10M seed",
	}
	companies := []string{"Alpha", "Beta", "Gamma", "Delta"}
	amounts := []string{"$40M", "$30M", "$20M", "$10M"}
	for i := range titles {
		raw = append(raw, rawInvestment(titles[i], companies[i], "2026-02-0"+string(rune('1'+i)), amounts[i], urls[i]))
	}

	cfg := Config{Caps: map[newsletter.Category]int{newsletter.CategoryInvestment: 2}}
	p := testPipeline(t, cfg)

	doc, report, err := p.Run(context.Background(), raw)
	if err != nil {
		t.Fatal(err)
	}

	if got := len(doc.Content["investments"]); got != 2 {
		t.Fatalf("cap not applied, got %d items", got)
	}
	if report.DroppedByCap[newsletter.CategoryInvestment] != 2 {
		t.Errorf("dropped count = %d", report.DroppedByCap[newsletter.CategoryInvestment])
	}

	// Dropped items contribute nothing to the bibliography.
	if len(doc.Bibliography) != 2 {
		t.Fatalf("bibliography = %d entries, want 2", len(doc.Bibliography))
	}
	for _, entry := range doc.Bibliography {
		if entry.Source.URL == "https://techcrunch.com/c" || entry.Source.URL == "https://techcrunch.com/d" {
			t.Errorf("dropped item cited: %s", entry.Source.URL)
		}
	}
}

func TestRunUnknownCategorySkipped(t *testing.T) {
	raw := []RawItem{{
		Category: newsletter.Category("podcast"),
		Title:    "Founder stories, episode 12",
		Summary:  "Interview with a founder.",
		Sources:  []newsletter.Source{{URL: "https://pod.example.com/12", Publisher: "Pod"}},
	}}

	// Without registration the category is reported and dropped.
	p := testPipeline(t, Config{})
	doc, report, err := p.Run(context.Background(), raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Skipped) != 1 {
		t.Fatalf("expected skip report, got %v", report.Skipped)
	}
	if len(doc.Content) != 0 {
		t.Errorf("unexpected content: %v", doc.Content)
	}

	// Registered as an extra category it passes through.
	p = testPipeline(t, Config{ExtraCategories: []newsletter.Category{"podcast"}})
	doc, report, err = p.Run(context.Background(), raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Skipped) != 0 {
		t.Errorf("unexpected skips: %v", report.Skipped)
	}
	if len(doc.Content["podcasts"]) != 1 {
		t.Errorf("podcast item missing: %v", doc.Content)
	}
}

func TestRunInfersMissingFields(t *testing.T) {
	raw := []RawItem{{
		Category: newsletter.CategoryInvestment,
		Title:    "Velora Raises Series A funding",
		Summary:  "Velora announced new funding to expand.",
		// No company, round, amount, or date.
		Sources: []newsletter.Source{{URL: "https://techcrunch.com/2026/02/05/velora-funding", Publisher: "TechCrunch"}},
	}}

	p := testPipeline(t, Config{})
	doc, report, err := p.Run(context.Background(), raw)
	if err != nil {
		t.Fatal(err)
	}

	items := doc.Content["investments"]
	if len(items) != 1 {
		t.Fatalf("items = %d", len(items))
	}
	got := items[0]

	if !got.LowConfidence {
		t.Error("company inferred from title must flag low confidence")
	}
	if diff := cmp.Diff([]string{"company:velora"}, got.EntityRefs.Companies); diff != "" {
		t.Errorf("company ref (-want +got):\n%s", diff)
	}
	if got.Investment.Round != "series-a" {
		t.Errorf("round = %q, want inferred series-a", got.Investment.Round)
	}
	if !got.Investment.Amount.Undisclosed() {
		t.Error("missing amount must become Undisclosed")
	}
	if got.Date != "2026-02-05" {
		t.Errorf("date = %q, want extracted from url", got.Date)
	}

	if report.Clean() {
		t.Error("inferences must mark the report as not clean")
	}
	fields := make(map[string]bool)
	for _, inf := range report.Inferred {
		fields[inf.Field] = true
	}
	for _, field := range []string{"company", "round", "amount", "date"} {
		if !fields[field] {
			t.Errorf("inference of %q not reported: %v", field, report.Inferred)
		}
	}
}

func TestRunRecordsEntityConflicts(t *testing.T) {
	raw := []RawItem{
		rawInvestment("Acme AI raises $15M", "Acme AI", "2026-02-05", "$15M", "https://t.co/a"),
		rawInvestment("Acme AI expands with $2M", "Acme AI", "2026-02-20", "$2M", "https://t.co/b"),
	}
	raw[0].Location = newsletter.Location{City: "Brooklyn", State: "NY"}
	raw[1].Location = newsletter.Location{City: "Manhattan", State: "NY"}

	p := testPipeline(t, Config{})
	doc, report, err := p.Run(context.Background(), raw)
	if err != nil {
		t.Fatal(err)
	}

	if got := doc.Company("company:acme-ai").Location; got != "Brooklyn, NY" {
		t.Errorf("location = %q, want first write kept", got)
	}
	if len(report.Conflicts) != 1 {
		t.Fatalf("conflicts = %v", report.Conflicts)
	}
	if report.Conflicts[0].Ignored != "Manhattan, NY" {
		t.Errorf("conflict = %+v", report.Conflicts[0])
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	if _, err := New(Config{}, WithRunID("")); err == nil {
		t.Error("empty run id must be rejected")
	}
	if _, err := New(Config{}, WithClock(nil)); err == nil {
		t.Error("nil clock must be rejected")
	}
	if _, err := New(Config{}, WithRegistry(nil)); err == nil {
		t.Error("nil registry must be rejected")
	}
}
