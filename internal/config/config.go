// Package config loads the newsroom configuration file and projects it
// onto the pipeline and collector configurations. The file is YAML;
// every section has a working default so a missing file still builds
// the sample edition.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/newsroom/internal/collect"
	"github.com/agentstation/newsroom/pkg/newsletter"
	"github.com/agentstation/newsroom/pkg/pipeline"
)

// DefaultPath is where the CLI looks for configuration unless told
// otherwise.
const DefaultPath = "newsroom.yaml"

// Newsletter holds edition-level metadata.
type Newsletter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Region      []string `yaml:"region"`
	Notes       string   `yaml:"notes"`
}

// Search tunes geographic relevance.
type Search struct {
	PrimaryCity string `yaml:"primary_city"`
}

// Limits caps each section's published item count. Zero means no cap.
type Limits struct {
	Investments  int `yaml:"investments"`
	Events       int `yaml:"events"`
	Accelerators int `yaml:"accelerators"`
}

// File is the full configuration document.
type File struct {
	Newsletter Newsletter            `yaml:"newsletter"`
	Search     Search                `yaml:"search"`
	Limits     Limits                `yaml:"limits"`
	Window     newsletter.TimeWindow `yaml:"window"`
	Collect    collect.Config        `yaml:"collect"`

	// Extra admits open-ended categories beyond the built-in three.
	Extra []newsletter.Category `yaml:"extra_categories"`

	// Output is where build artifacts are written.
	Output string `yaml:"output"`
}

// Default returns the configuration used when no file exists: the NYC
// sample edition from mock data.
func Default() File {
	return File{
		Newsletter: Newsletter{
			Title:       "NYC Startup Week in Review",
			Description: "Weekly digest of NYC startup funding, events, and accelerator programs",
			Region:      []string{"US", "NYC"},
		},
		Search: Search{PrimaryCity: "New York"},
		Limits: Limits{Investments: 10, Events: 10, Accelerators: 5},
		Collect: collect.Config{Source: collect.SourceMock},
		Output:  "dist",
	}
}

// Load reads the file at path, layered over defaults. A missing file at
// the default path is not an error; a missing explicit path is.
func Load(path string) (File, error) {
	file := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return file, nil
		}
		return file, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return file, nil
}

// Pipeline projects the file onto the pipeline configuration.
func (f File) Pipeline() pipeline.Config {
	caps := make(map[newsletter.Category]int)
	if f.Limits.Investments > 0 {
		caps[newsletter.CategoryInvestment] = f.Limits.Investments
	}
	if f.Limits.Events > 0 {
		caps[newsletter.CategoryEvent] = f.Limits.Events
	}
	if f.Limits.Accelerators > 0 {
		caps[newsletter.CategoryAccelerator] = f.Limits.Accelerators
	}
	return pipeline.Config{
		Region:          f.Newsletter.Region,
		PrimaryCity:     f.Search.PrimaryCity,
		Caps:            caps,
		ExtraCategories: f.Extra,
		Window:          f.Window,
		Description:     f.Newsletter.Description,
		Notes:           f.Newsletter.Notes,
	}
}
