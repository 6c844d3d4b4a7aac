package model

import "time"

// Thought is one accepted step in a thinking session. The caller supplies
// the content, its own ordinal and the continuation flag; the ledger stamps
// AbsoluteNumber and SequenceNumber on acceptance.
type Thought struct {
	Thought           string   `json:"thought"`
	ThoughtNumber     int      `json:"thoughtNumber"`
	TotalThoughts     int      `json:"totalThoughts"`
	NextThoughtNeeded bool     `json:"nextThoughtNeeded"`
	Strategy          Strategy `json:"strategy,omitempty"`
	CurrentStage      string   `json:"currentStage,omitempty"`

	IsRevision        bool   `json:"isRevision,omitempty"`
	RevisesThought    int    `json:"revisesThought,omitempty"`
	BranchFromThought int    `json:"branchFromThought,omitempty"`
	BranchID          string `json:"branchId,omitempty"`

	// AbsoluteNumber is unique and strictly increasing across the whole
	// session. SequenceNumber restarts at 1 whenever a new branch begins.
	AbsoluteNumber int `json:"absoluteNumber"`
	SequenceNumber int `json:"sequenceNumber"`

	// Extra holds the strategy-specific fields (action, observation,
	// subQuestion, ...) keyed by wire name. The engine treats them
	// opaquely; they only matter as evidence for action resolution.
	Extra map[string]any `json:"extra,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// IsBranchStart reports whether this thought opens a new branch.
func (t *Thought) IsBranchStart() bool {
	return t.BranchFromThought > 0 && t.BranchID != ""
}
