package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/agentstation/newsroom/internal/collect"
	"github.com/agentstation/newsroom/pkg/newsletter"
)

func TestLoadMissingDefaultPath(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	file, err := Load("")
	if err != nil {
		t.Fatalf("missing default config must not fail: %v", err)
	}
	if file.Search.PrimaryCity != "New York" {
		t.Errorf("defaults not applied: %+v", file.Search)
	}
	if file.Collect.Source != collect.SourceMock {
		t.Errorf("default source = %q", file.Collect.Source)
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("explicit missing path must fail")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "newsroom.yaml")
	content := `
newsletter:
  title: Austin Weekly
  region: [US, ATX]
search:
  primary_city: Austin
limits:
  investments: 3
  events: 0
window:
  start: "2026-02-01"
  end: "2026-02-07"
collect:
  source: live
  feeds:
    - url: https://example.com/feed.xml
      publisher: Example
      category: investment
extra_categories: [podcast]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	file, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if file.Newsletter.Title != "Austin Weekly" {
		t.Errorf("title = %q", file.Newsletter.Title)
	}
	if file.Collect.Source != collect.SourceLive {
		t.Errorf("source = %q", file.Collect.Source)
	}
	if len(file.Collect.Feeds) != 1 || file.Collect.Feeds[0].Category != newsletter.CategoryInvestment {
		t.Errorf("feeds = %+v", file.Collect.Feeds)
	}

	cfg := file.Pipeline()
	if cfg.PrimaryCity != "Austin" {
		t.Errorf("primary city = %q", cfg.PrimaryCity)
	}
	wantCaps := map[newsletter.Category]int{
		newsletter.CategoryInvestment: 3,
		// events cap 0 means uncapped and must not appear
		newsletter.CategoryAccelerator: 5,
	}
	if diff := cmp.Diff(wantCaps, cfg.Caps); diff != "" {
		t.Errorf("caps (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]newsletter.Category{"podcast"}, cfg.ExtraCategories); diff != "" {
		t.Errorf("extra categories (-want +got):\n%s", diff)
	}
	if cfg.Window.Start != "2026-02-01" || cfg.Window.End != "2026-02-07" {
		t.Errorf("window = %+v", cfg.Window)
	}
}

func TestPipelineProjectionDefaults(t *testing.T) {
	cfg := Default().Pipeline()
	if diff := cmp.Diff([]string{"US", "NYC"}, cfg.Region); diff != "" {
		t.Errorf("region (-want +got):\n%s", diff)
	}
	want := map[newsletter.Category]int{
		newsletter.CategoryInvestment:  10,
		newsletter.CategoryEvent:       10,
		newsletter.CategoryAccelerator: 5,
	}
	if diff := cmp.Diff(want, cfg.Caps); diff != "" {
		t.Errorf("caps (-want +got):\n%s", diff)
	}
}
