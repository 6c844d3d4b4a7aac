package model

// Response status values. Error responses carry StatusFailed; a submit
// before any strategy selection carries StatusWaitingForStrategy.
const (
	StatusFailed             = "failed"
	StatusWaitingForStrategy = "waiting_for_strategy"
)

// ActionInfo describes one semantic action reachable from the current
// stage, as advertised to the caller.
type ActionInfo struct {
	Description    string            `json:"description"`
	RequiredInputs []string          `json:"requiredInputs,omitempty"`
	OptionalInputs []string          `json:"optionalInputs,omitempty"`
	Hints          map[string]string `json:"hints,omitempty"`
	NextStage      string            `json:"nextStage,omitempty"`
	IsGlobal       bool              `json:"isGlobal,omitempty"`
}

// RoutingResponse is the outward-facing result of a submitted step. Error
// and waiting shapes reuse the same type with Status set, so the tool
// surface always returns one JSON object.
type RoutingResponse struct {
	CurrentStage      string                `json:"currentStage,omitempty"`
	StageDescription  string                `json:"stageDescription,omitempty"`
	SessionID         string                `json:"sessionId,omitempty"`
	Strategy          Strategy              `json:"strategy,omitempty"`
	AvailableActions  map[string]ActionInfo `json:"availableActions,omitempty"`
	CanSwitchStrategy bool                  `json:"canSwitchStrategy"`
	LedgerLength      int                   `json:"thoughtHistoryLength"`

	ThoughtNumber     int  `json:"thoughtNumber,omitempty"`
	TotalThoughts     int  `json:"totalThoughts,omitempty"`
	NextThoughtNeeded bool `json:"nextThoughtNeeded"`

	SessionSaved bool   `json:"sessionSaved,omitempty"`
	SaveError    string `json:"saveError,omitempty"`

	Error               string     `json:"error,omitempty"`
	Status              string     `json:"status,omitempty"`
	AvailableStrategies []Strategy `json:"availableStrategies,omitempty"`
}

// IsError reports whether the response describes a failure.
func (r *RoutingResponse) IsError() bool {
	return r.Status == StatusFailed
}
