package collect

import (
	"context"
	"net/http"
	"time"

	"github.com/agentstation/utc"
	"github.com/mmcdole/gofeed"

	"github.com/agentstation/newsroom/internal/normalize"
	"github.com/agentstation/newsroom/pkg/logging"
	"github.com/agentstation/newsroom/pkg/newsletter"
	"github.com/agentstation/newsroom/pkg/pipeline"
)

const (
	defaultFeedTimeout = 15 * time.Second
	feedUserAgent      = "newsroom-collector"
	summaryWordLimit   = 60
)

// Feeds polls configured RSS/Atom feeds and maps entries to raw
// records. One slow or broken feed is logged and skipped, never fatal
// to the run.
type Feeds struct {
	feeds  []Feed
	client *http.Client
}

// NewFeeds creates the live collector. A zero timeout uses the default.
func NewFeeds(feeds []Feed, timeout time.Duration) *Feeds {
	if timeout <= 0 {
		timeout = defaultFeedTimeout
	}
	return &Feeds{
		feeds:  feeds,
		client: &http.Client{Timeout: timeout},
	}
}

// Name implements Collector.
func (f *Feeds) Name() string { return "live" }

// Collect implements Collector. Entries outside the window are dropped
// when the feed carries a parseable publication time.
func (f *Feeds) Collect(ctx context.Context, window newsletter.TimeWindow) ([]pipeline.RawItem, error) {
	log := logging.FromContext(ctx)

	parser := gofeed.NewParser()
	parser.UserAgent = feedUserAgent
	parser.Client = f.client

	var items []pipeline.RawItem
	for _, feed := range f.feeds {
		parsed, err := parser.ParseURLWithContext(feed.URL, ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Warn().
				Str("feed", feed.URL).
				Err(err).
				Msg("Skipping unreachable feed")
			continue
		}
		retrieved := utc.Now()
		kept := 0
		for _, entry := range parsed.Items {
			item, ok := rawFromEntry(feed, entry, retrieved, window)
			if !ok {
				continue
			}
			items = append(items, item)
			kept++
		}
		log.Debug().
			Str("feed", feed.URL).
			Int("entries", len(parsed.Items)).
			Int("kept", kept).
			Msg("Feed collected")
	}
	return items, nil
}

// rawFromEntry maps one feed entry to a raw record. Field inference
// (company names, rounds, amounts) is left to the pipeline's resolve
// stage; this only reshapes what the feed states.
func rawFromEntry(feed Feed, entry *gofeed.Item, retrieved utc.Time, window newsletter.TimeWindow) (pipeline.RawItem, bool) {
	var zero pipeline.RawItem
	if entry.Link == "" || entry.Title == "" {
		return zero, false
	}

	date := ""
	if entry.PublishedParsed != nil {
		date = entry.PublishedParsed.UTC().Format("2006-01-02")
		if outsideWindow(date, window) {
			return zero, false
		}
	}

	summary := entry.Description
	if summary == "" {
		summary = entry.Content
	}
	summary = normalize.TruncateSnippet(normalize.CollapseWhitespace(summary), summaryWordLimit)
	if summary == "" {
		summary = entry.Title
	}

	return pipeline.RawItem{
		Category: feed.Category,
		Title:    entry.Title,
		Summary:  summary,
		Date:     date,
		Tags:     entry.Categories,
		Sources: []newsletter.Source{{
			URL:         entry.Link,
			Publisher:   feed.Publisher,
			RetrievedAt: retrieved,
		}},
	}, true
}

// outsideWindow reports whether an ISO date falls outside a bounded
// window. Open window edges accept everything.
func outsideWindow(date string, window newsletter.TimeWindow) bool {
	if window.Start != "" && date < window.Start {
		return true
	}
	if window.End != "" && date > window.End {
		return true
	}
	return false
}
