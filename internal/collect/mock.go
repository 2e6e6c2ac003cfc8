package collect

import (
	"context"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/newsroom/pkg/newsletter"
	"github.com/agentstation/newsroom/pkg/pipeline"
)

// mockRetrievedAt pins the sample dataset's retrieval timestamp so mock
// runs produce byte-identical documents.
var mockRetrievedAt = utc.Time{Time: time.Date(2026, 2, 6, 12, 0, 0, 0, time.UTC)}

// Mock serves a built-in sample week of NYC startup news. It needs no
// network and always returns the same records.
type Mock struct{}

// NewMock creates the sample-data collector.
func NewMock() *Mock { return &Mock{} }

// Name implements Collector.
func (m *Mock) Name() string { return "mock" }

// Collect implements Collector. The window is ignored; the sample data
// describes a fixed week.
func (m *Mock) Collect(_ context.Context, _ newsletter.TimeWindow) ([]pipeline.RawItem, error) {
	items := make([]pipeline.RawItem, 0, 15)
	items = append(items, mockInvestments()...)
	items = append(items, mockEvents()...)
	items = append(items, mockAccelerators()...)
	return items, nil
}

func mockSource(url, publisher string) newsletter.Source {
	return newsletter.Source{URL: url, Publisher: publisher, RetrievedAt: mockRetrievedAt}
}

func mockInvestments() []pipeline.RawItem {
	return []pipeline.RawItem{
		{
			Category: newsletter.CategoryInvestment,
			Title:    "Acme AI raises $15M Series A to build autonomous agents",
			Summary:  "Acme AI raised $15 million in Series A funding led by Venture Partners to build autonomous AI agents for enterprise automation and expand its engineering team.",
			Date:     "2026-02-05",
			Company:  "Acme AI",
			Industry: []string{"AI/ML"},
			Round:    "series-a",
			Amount:   "$15M",
			Investors: []string{
				"Venture Partners",
				"Tech Fund",
				"Angel Investors",
			},
			Location: newsletter.Location{City: "New York", State: "NY"},
			Sources: []newsletter.Source{
				mockSource("https://techcrunch.com/2026/02/05/acme-ai-raises-15m-series-a", "TechCrunch"),
				mockSource("https://alleywatch.com/2026/02/acme-ai-funding", "AlleyWatch"),
			},
			Tags: []string{"ai-ml"},
		},
		{
			Category: newsletter.CategoryInvestment,
			Title:    "PayFlow secures $8M seed round for fintech platform",
			Summary:  "Brooklyn-based PayFlow raised $8 million in seed funding led by NYC Ventures to develop next-generation payment infrastructure for small businesses.",
			Date:     "2026-02-04",
			Company:  "PayFlow",
			Industry: []string{"Fintech"},
			Round:    "seed",
			Amount:   "$8M",
			Investors: []string{
				"NYC Ventures",
				"Fintech Capital",
			},
			Location: newsletter.Location{City: "Brooklyn", State: "NY"},
			Sources: []newsletter.Source{
				mockSource("https://alleywatch.com/2026/02/04/payflow-seed-funding", "AlleyWatch"),
			},
			Tags: []string{"fintech"},
		},
		{
			Category: newsletter.CategoryInvestment,
			Title:    "HealthTech startup MediCare raises $20M Series B",
			Summary:  "MediCare announced a $20 million Series B round led by Health Ventures to expand its telemedicine platform to underserved communities nationwide.",
			Date:     "2026-02-03",
			Company:  "MediCare",
			Industry: []string{"Health"},
			Round:    "series-b",
			Amount:   "$20M",
			Investors: []string{
				"Health Ventures",
				"Impact Capital",
				"Strategic Investors",
			},
			Location: newsletter.Location{City: "Manhattan", State: "NY"},
			Sources: []newsletter.Source{
				mockSource("https://techcrunch.com/2026/02/03/medicare-series-b-20m", "TechCrunch"),
			},
			Tags: []string{"health"},
		},
		{
			Category: newsletter.CategoryInvestment,
			Title:    "EdTech platform LearnNow raises $5M seed",
			Summary:  "LearnNow raised a $5 million seed round from Education Fund and Angel Network to build an AI-powered personalized learning platform for K-12 students.",
			Date:     "2026-02-02",
			Company:  "LearnNow",
			Industry: []string{"Edtech"},
			Round:    "seed",
			Amount:   "$5M",
			Investors: []string{
				"Education Fund",
				"Angel Network",
			},
			Location: newsletter.Location{City: "New York", State: "NY"},
			Sources: []newsletter.Source{
				mockSource("https://techcrunch.com/2026/02/02/learnnow-seed-round", "TechCrunch"),
			},
			Tags: []string{"edtech"},
		},
		{
			Category: newsletter.CategoryInvestment,
			Title:    "CyberShield raises $12M Series A for cybersecurity platform",
			Summary:  "CyberShield announced a $12 million Series A led by Security Ventures to develop an AI-powered threat detection and response platform for enterprises.",
			Date:     "2026-02-01",
			Company:  "CyberShield",
			Industry: []string{"Cybersecurity"},
			Round:    "series-a",
			Amount:   "$12M",
			Investors: []string{
				"Security Ventures",
				"Tech Capital",
				"Industry Investors",
			},
			Location: newsletter.Location{City: "New York", State: "NY"},
			Sources: []newsletter.Source{
				mockSource("https://techcrunch.com/2026/02/01/cybershield-series-a", "TechCrunch"),
			},
			Tags: []string{"cybersecurity"},
		},
	}
}

func mockEvents() []pipeline.RawItem {
	return []pipeline.RawItem{
		{
			Category:        newsletter.CategoryEvent,
			Title:           "NYC Founders & Funders Meetup",
			Summary:         "Monthly networking event for NYC tech founders and investors at The Yard, Lower East Side.",
			StartDate:       "2026-02-15T18:00:00",
			Cost:            "Free",
			RegistrationURL: "https://garysguide.com/events/founders-meetup-feb",
			Topics:          []string{"networking", "fundraising"},
			Location:        newsletter.Location{City: "New York", State: "NY", Venue: "The Yard - Lower East Side"},
			Sources: []newsletter.Source{
				mockSource("https://garysguide.com/events/founders-meetup-feb", "Gary's Guide"),
			},
		},
		{
			Category:        newsletter.CategoryEvent,
			Title:           "AI Agents Summit 2026",
			Summary:         "Full-day conference on building autonomous AI agent companies, for AI builders, investors, and founders.",
			StartDate:       "2026-02-20T09:00:00",
			Cost:            "$295",
			RegistrationURL: "https://garysguide.com/events/ai-summit-2026",
			Topics:          []string{"ai", "agents"},
			Location:        newsletter.Location{City: "Manhattan", State: "NY", Venue: "Convene - 117 West 46th St"},
			Sources: []newsletter.Source{
				mockSource("https://garysguide.com/events/ai-summit-2026", "Gary's Guide"),
			},
		},
		{
			Category:  newsletter.CategoryEvent,
			Title:     "FinTech Happy Hour",
			Summary:   "Casual networking for the Brooklyn fintech community at Industry City.",
			StartDate: "2026-02-18T17:30:00",
			Cost:      "Free",
			Topics:    []string{"fintech", "networking"},
			Location:  newsletter.Location{City: "Brooklyn", State: "NY", Venue: "Industry City"},
			Sources: []newsletter.Source{
				mockSource("https://garysguide.com/events/fintech-happy-hour", "Gary's Guide"),
			},
		},
		{
			Category:  newsletter.CategoryEvent,
			Title:     "Demo Day: TechStars NYC Winter 2026",
			Summary:   "TechStars Winter 2026 cohort presenting to investors and press. Invite only.",
			StartDate: "2026-02-25T15:00:00",
			Cost:      "Invite Only",
			Company:   "TechStars NYC",
			Topics:    []string{"demo-day", "accelerator"},
			Location:  newsletter.Location{City: "Manhattan", State: "NY", Venue: "TechStars Office"},
			Sources: []newsletter.Source{
				mockSource("https://garysguide.com/events/techstars-demo-day", "Gary's Guide"),
			},
		},
		{
			// Recurring, no single start date. Exercises undated-last
			// ordering.
			Category:        newsletter.CategoryEvent,
			Title:           "Office Hours with NYC VCs",
			Summary:         "Weekly office hours with rotating NYC venture capital partners, for pre-seed and seed stage founders. Online via Zoom.",
			Cost:            "Free",
			RegistrationURL: "https://garysguide.com/events/vc-office-hours",
			Topics:          []string{"office-hours", "fundraising"},
			Location:        newsletter.Location{IsOnline: true},
			Sources: []newsletter.Source{
				mockSource("https://garysguide.com/events/vc-office-hours", "Gary's Guide"),
			},
		},
	}
}

func mockAccelerators() []pipeline.RawItem {
	return []pipeline.RawItem{
		{
			Category: newsletter.CategoryAccelerator,
			Title:    "TechStars NYC",
			Summary:  "World's most active pre-seed investor. 13-week mentorship-driven program.",
			Company:  "TechStars NYC",
			Focus:    []string{"General Tech"},
			Location: newsletter.Location{City: "New York", State: "NY"},
			Sources: []newsletter.Source{
				mockSource("https://openvc.app/accelerators/techstars-nyc", "OpenVC"),
			},
		},
		{
			Category: newsletter.CategoryAccelerator,
			Title:    "Y Combinator",
			Summary:  "3-month program ending in Demo Day. Accepts NYC startups.",
			Company:  "Y Combinator",
			Focus:    []string{"All sectors"},
			Terms:    "$500K for 7% equity",
			Location: newsletter.Location{City: "Mountain View", State: "CA"},
			Sources: []newsletter.Source{
				mockSource("https://openvc.app/accelerators/yc", "OpenVC"),
			},
		},
		{
			Category: newsletter.CategoryAccelerator,
			Title:    "Entrepreneur First NYC",
			Summary:  "Pre-team accelerator for exceptional individuals building deep tech companies.",
			Company:  "Entrepreneur First NYC",
			Focus:    []string{"Deep tech", "AI"},
			Location: newsletter.Location{City: "New York", State: "NY"},
			Sources: []newsletter.Source{
				mockSource("https://openvc.app/accelerators/ef-nyc", "OpenVC"),
			},
		},
		{
			Category: newsletter.CategoryAccelerator,
			Title:    "ERA (Entrepreneur Roundtable Accelerator)",
			Summary:  "NYC's largest accelerator for B2B, SaaS, and marketplace startups.",
			Company:  "ERA",
			Focus:    []string{"B2B", "SaaS", "Marketplaces"},
			Terms:    "$100K investment for 6% equity",
			Location: newsletter.Location{City: "New York", State: "NY"},
			Sources: []newsletter.Source{
				mockSource("https://openvc.app/accelerators/era", "OpenVC"),
			},
		},
		{
			Category: newsletter.CategoryAccelerator,
			Title:    "Columbia Startup Lab",
			Summary:  "Free office space and mentorship for Columbia-affiliated founders.",
			Company:  "Columbia Startup Lab",
			Focus:    []string{"Columbia-affiliated founders"},
			Location: newsletter.Location{City: "New York", State: "NY"},
			Sources: []newsletter.Source{
				mockSource("https://openvc.app/accelerators/columbia", "OpenVC"),
			},
		},
	}
}
