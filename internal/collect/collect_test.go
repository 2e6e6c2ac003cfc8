package collect

import (
	"context"
	"testing"

	"github.com/agentstation/newsroom/pkg/newsletter"
)

func TestNewSelectsAdapter(t *testing.T) {
	tests := []struct {
		source   Source
		wantName string
		wantErr  bool
	}{
		{SourceMock, "mock", false},
		{Source(""), "mock", false},
		{SourceLive, "live", false},
		{Source("carrier-pigeon"), "", true},
	}
	for _, tt := range tests {
		c, err := New(Config{Source: tt.source})
		if tt.wantErr {
			if err == nil {
				t.Errorf("New(%q) should fail", tt.source)
			}
			continue
		}
		if err != nil {
			t.Errorf("New(%q): %v", tt.source, err)
			continue
		}
		if c.Name() != tt.wantName {
			t.Errorf("New(%q).Name() = %q, want %q", tt.source, c.Name(), tt.wantName)
		}
	}
}

func TestMockDataset(t *testing.T) {
	items, err := NewMock().Collect(context.Background(), newsletter.TimeWindow{})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 15 {
		t.Fatalf("sample dataset size = %d, want 15", len(items))
	}

	counts := make(map[newsletter.Category]int)
	for _, item := range items {
		counts[item.Category]++

		if item.Title == "" || item.Summary == "" {
			t.Errorf("sample item %q missing required fields", item.Title)
		}
		if len(item.Sources) == 0 {
			t.Errorf("sample item %q has no sources", item.Title)
		}
		for _, src := range item.Sources {
			if src.URL == "" || src.Publisher == "" || src.RetrievedAt.IsZero() {
				t.Errorf("sample item %q has incomplete source %+v", item.Title, src)
			}
		}
	}

	if counts[newsletter.CategoryInvestment] != 5 ||
		counts[newsletter.CategoryEvent] != 5 ||
		counts[newsletter.CategoryAccelerator] != 5 {
		t.Errorf("category counts = %v", counts)
	}
}

func TestMockDeterministic(t *testing.T) {
	first, err := NewMock().Collect(context.Background(), newsletter.TimeWindow{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := NewMock().Collect(context.Background(), newsletter.TimeWindow{})
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatal("sample dataset must be stable")
	}
	for i := range first {
		if first[i].Title != second[i].Title {
			t.Fatalf("order changed at %d: %q vs %q", i, first[i].Title, second[i].Title)
		}
	}
}

func TestOutsideWindow(t *testing.T) {
	window := newsletter.TimeWindow{Start: "2026-02-01", End: "2026-02-07"}
	tests := []struct {
		date string
		want bool
	}{
		{"2026-02-03", false},
		{"2026-02-01", false},
		{"2026-02-07", false},
		{"2026-01-31", true},
		{"2026-02-08", true},
	}
	for _, tt := range tests {
		if got := outsideWindow(tt.date, window); got != tt.want {
			t.Errorf("outsideWindow(%q) = %v, want %v", tt.date, got, tt.want)
		}
	}

	if outsideWindow("1999-01-01", newsletter.TimeWindow{}) {
		t.Error("open window must accept everything")
	}
}
