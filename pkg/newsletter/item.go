package newsletter

// Category discriminates content item variants. Categories are open-ended:
// the contract allows sections beyond the built-in three, as long as items
// carry the shared base fields.
type Category string

// Built-in content categories.
const (
	CategoryInvestment  Category = "investment"
	CategoryEvent       Category = "event"
	CategoryAccelerator Category = "accelerator"
	CategoryArticle     Category = "article"
	CategoryResource    Category = "resource"
)

// Section returns the content-map key for this category, e.g.
// "investments" for CategoryInvestment.
func (c Category) Section() string {
	return string(c) + "s"
}

// IDPrefix returns the prefix item ids of this category must carry.
func (c Category) IDPrefix() string {
	return string(c) + ":"
}

// Location describes where an event happens or a program is based.
type Location struct {
	City     string `json:"city,omitempty" yaml:"city,omitempty"`
	State    string `json:"state,omitempty" yaml:"state,omitempty"`
	Country  string `json:"country,omitempty" yaml:"country,omitempty"`
	Venue    string `json:"venue,omitempty" yaml:"venue,omitempty"`
	IsOnline bool   `json:"isOnline,omitempty" yaml:"isOnline,omitempty"`
}

// UndisclosedAmount is the rendered value for rounds whose size was never
// reported. It sorts below every disclosed amount.
const UndisclosedAmount = "Undisclosed"

// Amount is a funding amount. A zero Value means the round size was not
// disclosed; Display then carries the Undisclosed sentinel.
type Amount struct {
	Value       float64 `json:"value" yaml:"value"`
	Currency    string  `json:"currency" yaml:"currency"`
	Approximate bool    `json:"approximate,omitempty" yaml:"approximate,omitempty"`
	Display     string  `json:"display" yaml:"display"` // "$63M", "Undisclosed", ...
}

// Undisclosed reports whether the amount was never disclosed.
func (a Amount) Undisclosed() bool {
	return a.Value <= 0
}

// Investment holds the funding-specific payload of an item.
type Investment struct {
	Round  string `json:"round" yaml:"round"` // pre-seed, seed, series-a, ..., unknown
	Amount Amount `json:"amount" yaml:"amount"`
}

// Event holds the event-specific payload of an item.
type Event struct {
	StartDate       string   `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	EndDate         string   `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	Location        Location `json:"location" yaml:"location"`
	Topics          []string `json:"topics,omitempty" yaml:"topics,omitempty"`
	Cost            string   `json:"cost,omitempty" yaml:"cost,omitempty"`
	RegistrationURL string   `json:"registrationUrl,omitempty" yaml:"registrationUrl,omitempty"`
}

// Accelerator holds the accelerator-specific payload of an item.
type Accelerator struct {
	Location Location `json:"location" yaml:"location"`
	Focus    []string `json:"focus,omitempty" yaml:"focus,omitempty"`
	Terms    string   `json:"terms,omitempty" yaml:"terms,omitempty"`
}

// Item is a single fact to report: one funding round, one event, one
// accelerator program. It is a tagged variant over a shared base
// contract: Type selects which payload pointer is populated.
//
// The contract is additive-only: fields this version of the code does not
// know about survive an unmarshal/marshal round trip via Extra.
type Item struct {
	ID      string   `json:"id" yaml:"id"` // <category>:<slug-or-hash>
	Type    Category `json:"type" yaml:"type"`
	Title   string   `json:"title" yaml:"title"`
	Summary string   `json:"summary" yaml:"summary"`
	Date    string   `json:"date,omitempty" yaml:"date,omitempty"` // ISO date, optional

	Sources    []Source   `json:"sources" yaml:"sources"` // insertion order = discovery order
	EntityRefs EntityRefs `json:"entityRefs" yaml:"entityRefs"`
	Tags       []string   `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Confidence is derived from the item's sources, never set directly.
	Confidence    float64 `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	LowConfidence bool    `json:"lowConfidence,omitempty" yaml:"lowConfidence,omitempty"`

	// Citations holds the bibliography numbers assigned to Sources, in the
	// same order. Populated by the citation pass; empty before it.
	Citations []int `json:"citations,omitempty" yaml:"citations,omitempty"`

	// Category payloads. Exactly one is non-nil for the built-in
	// categories; all are nil for open-ended extra categories.
	Investment  *Investment  `json:"investment,omitempty" yaml:"investment,omitempty"`
	Event       *Event       `json:"event,omitempty" yaml:"event,omitempty"`
	Accelerator *Accelerator `json:"accelerator,omitempty" yaml:"accelerator,omitempty"`

	// Extra carries contract fields unknown to this version of the code.
	// They are emitted on marshal exactly as received.
	Extra map[string]any `json:"-" yaml:"-"`
}

// HasSource reports whether the item already cites the given url.
func (i *Item) HasSource(url string) bool {
	for _, s := range i.Sources {
		if s.URL == url {
			return true
		}
	}
	return false
}

// DeriveConfidence recomputes the item confidence as the minimum
// confidence across its own sources: a single claim is only as strong as
// its weakest link. Merging corroborating items raises confidence instead;
// see the dedupe package.
func (i *Item) DeriveConfidence() {
	if len(i.Sources) == 0 {
		i.Confidence = 0
		return
	}
	min := i.Sources[0].EffectiveConfidence()
	for _, s := range i.Sources[1:] {
		if c := s.EffectiveConfidence(); c < min {
			min = c
		}
	}
	i.Confidence = min
}
