package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/aaronsb/think-strategies/internal/engine"
)

// ThinkArgs is the input of the think-strategies tool. The core fields
// are shared by every strategy; the rest are strategy-specific and the
// engine matches them against the current stage's declared actions.
type ThinkArgs struct {
	Thought           string `json:"thought,omitempty" jsonschema:"The content of the current thinking step"`
	ThoughtNumber     int    `json:"thoughtNumber,omitempty" jsonschema:"Current thought number within the sequence, starting at 1"`
	TotalThoughts     int    `json:"totalThoughts,omitempty" jsonschema:"Estimated total thoughts needed; adjusted upward automatically if exceeded"`
	NextThoughtNeeded *bool  `json:"nextThoughtNeeded,omitempty" jsonschema:"Whether another thought step follows; false triggers a final save"`
	Strategy          string `json:"strategy,omitempty" jsonschema:"Reasoning strategy to use; supplying it on thought 1 starts a fresh session, supplying it later switches strategy"`
	CurrentStage      string `json:"currentStage,omitempty" jsonschema:"Explicit target stage, bypassing action inference (legacy path)"`

	IsRevision        bool   `json:"isRevision,omitempty" jsonschema:"Whether this thought revises a previous one"`
	RevisesThought    int    `json:"revisesThought,omitempty" jsonschema:"Absolute number of the thought being revised"`
	BranchFromThought int    `json:"branchFromThought,omitempty" jsonschema:"Absolute number of the thought this branch forks from"`
	BranchID          string `json:"branchId,omitempty" jsonschema:"Identifier of the branch this thought belongs to"`
	PreserveHistory   bool   `json:"preserveHistory,omitempty" jsonschema:"Keep the thought history when switching strategy mid-session"`
	SessionPurpose    string `json:"sessionPurpose,omitempty" jsonschema:"Free-text purpose attached to the session"`
	NeedsMoreThoughts bool   `json:"needsMoreThoughts,omitempty" jsonschema:"Request an extension of the thought budget"`

	// react
	Action      string   `json:"action,omitempty" jsonschema:"Action to plan or execute (react)"`
	Observation string   `json:"observation,omitempty" jsonschema:"Observation after carrying out an action (react)"`
	ToolCalls   []string `json:"toolCalls,omitempty" jsonschema:"External tool invocations planned for this step (rewoo)"`

	// rewoo / scratchpad
	StateVariables map[string]any `json:"stateVariables,omitempty" jsonschema:"Named intermediate values tracked across steps (scratchpad, rewoo)"`

	// self_ask
	SubQuestion       string `json:"subQuestion,omitempty" jsonschema:"Sub-question decomposed from the main question (self_ask)"`
	SubQuestionNumber int    `json:"subQuestionNumber,omitempty" jsonschema:"Ordinal of the sub-question (self_ask)"`
	SubQuestionAnswer string `json:"subQuestionAnswer,omitempty" jsonschema:"Answer to the current sub-question (self_ask)"`

	// self_consistency
	ReasoningPathID string         `json:"reasoningPathId,omitempty" jsonschema:"Identifier of an independent reasoning path (self_consistency)"`
	PathAnswers     map[string]any `json:"pathAnswers,omitempty" jsonschema:"Answers collected per reasoning path (self_consistency)"`

	// step_back
	GeneralPrinciple string `json:"generalPrinciple,omitempty" jsonschema:"Abstracted principle derived before solving (step_back)"`

	// tree_of_thoughts
	Approaches      []string `json:"approaches,omitempty" jsonschema:"Candidate approaches under exploration (tree_of_thoughts)"`
	ApproachID      string   `json:"approachId,omitempty" jsonschema:"Identifier of the approach being developed (tree_of_thoughts)"`
	EvaluationScore *float64 `json:"evaluationScore,omitempty" jsonschema:"Score from 0 to 10 evaluating the current approach (tree_of_thoughts)"`

	// trilemma
	Objectives         []string       `json:"objectives,omitempty" jsonschema:"The three competing objectives to balance (trilemma)"`
	TradeOffMatrix     map[string]any `json:"tradeOffMatrix,omitempty" jsonschema:"Pairwise trade-off assessment between objectives (trilemma)"`
	IterationNumber    int            `json:"iterationNumber,omitempty" jsonschema:"Current iteration of the satisficing loop (trilemma)"`
	EquilibriumReached bool           `json:"equilibriumReached,omitempty" jsonschema:"Whether an acceptable balance across objectives was reached (trilemma)"`

	// chain_of_thought / others
	Hypothesis  string `json:"hypothesis,omitempty" jsonschema:"Working hypothesis being tested"`
	FinalAnswer string `json:"finalAnswer,omitempty" jsonschema:"The concluding answer, moving the session to final_response"`
}

// extraFields collects the strategy-specific fields that were actually
// supplied, for the engine's action matching. Zero values are absent.
func (a *ThinkArgs) extraFields() map[string]any {
	extra := make(map[string]any)
	putStr := func(k, v string) {
		if v != "" {
			extra[k] = v
		}
	}
	putStr("action", a.Action)
	putStr("observation", a.Observation)
	putStr("subQuestion", a.SubQuestion)
	putStr("subQuestionAnswer", a.SubQuestionAnswer)
	putStr("reasoningPathId", a.ReasoningPathID)
	putStr("generalPrinciple", a.GeneralPrinciple)
	putStr("approachId", a.ApproachID)
	putStr("hypothesis", a.Hypothesis)
	putStr("finalAnswer", a.FinalAnswer)

	if len(a.ToolCalls) > 0 {
		extra["toolCalls"] = a.ToolCalls
	}
	if len(a.StateVariables) > 0 {
		extra["stateVariables"] = a.StateVariables
	}
	if a.SubQuestionNumber > 0 {
		extra["subQuestionNumber"] = a.SubQuestionNumber
	}
	if len(a.PathAnswers) > 0 {
		extra["pathAnswers"] = a.PathAnswers
	}
	if len(a.Approaches) > 0 {
		extra["approaches"] = a.Approaches
	}
	if a.EvaluationScore != nil {
		extra["evaluationScore"] = *a.EvaluationScore
	}
	if len(a.Objectives) > 0 {
		extra["objectives"] = a.Objectives
	}
	if len(a.TradeOffMatrix) > 0 {
		extra["tradeOffMatrix"] = a.TradeOffMatrix
	}
	if a.IterationNumber > 0 {
		extra["iterationNumber"] = a.IterationNumber
	}
	if a.EquilibriumReached {
		extra["equilibriumReached"] = true
	}
	if a.NeedsMoreThoughts {
		extra["needsMoreThoughts"] = true
	}
	if len(extra) == 0 {
		return nil
	}
	return extra
}

func (s *Server) handleThink(ctx context.Context, req *mcp.CallToolRequest, args ThinkArgs) (*mcp.CallToolResult, any, error) {
	submit := &engine.SubmitRequest{
		Thought:           args.Thought,
		ThoughtNumber:     args.ThoughtNumber,
		TotalThoughts:     args.TotalThoughts,
		NextThoughtNeeded: args.NextThoughtNeeded,
		Strategy:          args.Strategy,
		CurrentStage:      args.CurrentStage,
		IsRevision:        args.IsRevision,
		RevisesThought:    args.RevisesThought,
		BranchFromThought: args.BranchFromThought,
		BranchID:          args.BranchID,
		PreserveHistory:   args.PreserveHistory,
		Purpose:           args.SessionPurpose,
		Extra:             args.extraFields(),
	}

	resp := s.coord.Submit(ctx, submit)
	if resp.IsError() {
		s.log.Warn("step rejected", zap.String("error", resp.Error))
	}
	return nil, resp, nil
}
