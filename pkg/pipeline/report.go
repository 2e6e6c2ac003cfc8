package pipeline

import (
	"github.com/agentstation/newsroom/pkg/entities"
	"github.com/agentstation/newsroom/pkg/newsletter"
)

// InferredField records a default or inference applied to an incomplete
// record instead of failing it.
type InferredField struct {
	ItemID string
	Field  string
	Value  string
	Note   string
}

// SkippedItem records a raw record that was rejected before reaching the
// canonical contract, with the error that rejected it.
type SkippedItem struct {
	Title    string
	Category newsletter.Category
	Reason   string
}

// Report is the end-of-run account of everything the pipeline decided on
// the caller's behalf. Nothing here is silently dropped: every inferred
// field, skipped record, merge conflict, and cap cut is listed.
type Report struct {
	Inferred  []InferredField
	Skipped   []SkippedItem
	Conflicts []entities.Conflict

	// DroppedByCap counts items cut by each category's cap.
	DroppedByCap map[newsletter.Category]int

	// Counts per stage, for the run summary line.
	RawCount      int
	ResolvedCount int
	MergedCount   int
	RankedCount   int
}

// NewReport returns an empty report ready for a run.
func NewReport() *Report {
	return &Report{DroppedByCap: make(map[newsletter.Category]int)}
}

// Clean reports whether the run completed without inferences, skips, or
// conflicts.
func (r *Report) Clean() bool {
	return len(r.Inferred) == 0 && len(r.Skipped) == 0 && len(r.Conflicts) == 0
}

func (r *Report) infer(itemID, field, value, note string) {
	r.Inferred = append(r.Inferred, InferredField{ItemID: itemID, Field: field, Value: value, Note: note})
}

func (r *Report) skip(raw *RawItem, reason error) {
	r.Skipped = append(r.Skipped, SkippedItem{
		Title:    raw.Title,
		Category: raw.Category,
		Reason:   reason.Error(),
	})
}
