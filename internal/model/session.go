package model

import "time"

// Session is the aggregate root persisted to storage. Thoughts are kept in
// insertion order, which is also absolute order. Branches is a secondary
// view mapping branch id to the absolute numbers of its member thoughts.
type Session struct {
	ID           string           `json:"id"`
	Strategy     Strategy         `json:"strategy"`
	Purpose      string           `json:"sessionPurpose,omitempty"`
	Quality      map[string]int   `json:"qualityRating,omitempty"`
	CurrentStage string           `json:"currentStage"`
	StageHistory []string         `json:"stageHistory,omitempty"`
	Completed    bool             `json:"completed"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
	Thoughts     []Thought        `json:"thoughtHistory"`
	Branches     map[string][]int `json:"branches"`
}

// SessionSummary is the lightweight listing view of a stored session.
type SessionSummary struct {
	ID           string    `json:"id"`
	Strategy     Strategy  `json:"strategy"`
	Purpose      string    `json:"sessionPurpose,omitempty"`
	ThoughtCount int       `json:"thoughtCount"`
	BranchCount  int       `json:"branchCount"`
	Completed    bool      `json:"completed"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SessionMetrics are the automatically derived quality numbers for a
// stored session.
type SessionMetrics struct {
	ThoughtCount     int     `json:"thoughtCount"`
	BranchCount      int     `json:"branchCount"`
	RevisionCount    int     `json:"revisionCount"`
	AvgThoughtLength float64 `json:"avgThoughtLength"`
	FinalStage       string  `json:"finalStage,omitempty"`
	Completed        bool    `json:"completed"`
}
