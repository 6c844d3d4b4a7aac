package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aaronsb/think-strategies/internal/config"
	"github.com/aaronsb/think-strategies/internal/model"
	"github.com/aaronsb/think-strategies/internal/storage"
)

func boolPtr(v bool) *bool { return &v }

func step(n int, thought string) *SubmitRequest {
	return &SubmitRequest{
		Thought:           thought,
		ThoughtNumber:     n,
		TotalThoughts:     3,
		NextThoughtNeeded: boolPtr(true),
	}
}

func newReactCoordinator(t *testing.T) *Coordinator {
	t.Helper()
	c := NewCoordinator(config.Default(), nil, nil)
	resp := c.Submit(context.Background(), &SubmitRequest{
		Thought:       "t1",
		ThoughtNumber: 1,
		TotalThoughts: 3,
		Strategy:      "react",
	})
	if resp.IsError() {
		t.Fatalf("selection failed: %s", resp.Error)
	}
	return c
}

func TestWaitingForStrategy(t *testing.T) {
	c := NewCoordinator(config.Default(), nil, nil)

	resp := c.Submit(context.Background(), step(1, "no strategy yet"))
	if resp.Status != model.StatusWaitingForStrategy {
		t.Fatalf("expected waiting_for_strategy, got %q", resp.Status)
	}
	if len(resp.AvailableStrategies) != len(model.ValidStrategies) {
		t.Errorf("expected %d strategies listed, got %d", len(model.ValidStrategies), len(resp.AvailableStrategies))
	}
	if c.LedgerLen() != 0 {
		t.Error("ledger should stay empty")
	}
}

func TestStrategySelection(t *testing.T) {
	c := newReactCoordinator(t)

	if c.Strategy() != model.StrategyReact {
		t.Errorf("expected react, got %s", c.Strategy())
	}
	if c.Stage() != "problem_reception" {
		t.Errorf("expected problem_reception, got %s", c.Stage())
	}
	// The selection step itself is not appended.
	if c.LedgerLen() != 0 {
		t.Errorf("expected empty ledger after selection, got %d", c.LedgerLen())
	}
	if !strings.HasPrefix(c.SessionID(), "react-session-") {
		t.Errorf("unexpected session id %q", c.SessionID())
	}
}

func TestUnknownStrategy(t *testing.T) {
	c := NewCoordinator(config.Default(), nil, nil)

	resp := c.Submit(context.Background(), &SubmitRequest{
		Thought:       "t1",
		ThoughtNumber: 1,
		Strategy:      "telepathy",
	})
	if !resp.IsError() {
		t.Fatal("expected a failed response")
	}
	if len(resp.AvailableStrategies) == 0 {
		t.Error("failed selection should list the valid strategies")
	}
	if c.Initialized() {
		t.Error("coordinator should stay uninitialized")
	}
}

func TestActionDrivenTransitions(t *testing.T) {
	c := newReactCoordinator(t)
	ctx := context.Background()

	// Base-only step takes the default advance into initial_reasoning.
	resp := c.Submit(ctx, step(2, "what do I know so far"))
	if resp.IsError() {
		t.Fatalf("step rejected: %s", resp.Error)
	}
	if resp.CurrentStage != "initial_reasoning" {
		t.Fatalf("expected initial_reasoning, got %s", resp.CurrentStage)
	}

	// Supplying the action field resolves plan_action into action_planning.
	req := step(3, "search the docs for the flag")
	req.Extra = map[string]any{"action": "search docs"}
	resp = c.Submit(ctx, req)
	if resp.IsError() {
		t.Fatalf("step rejected: %s", resp.Error)
	}
	if resp.CurrentStage != "action_planning" {
		t.Errorf("expected action_planning, got %s", resp.CurrentStage)
	}
	if resp.LedgerLength != 2 {
		t.Errorf("expected 2 accepted steps, got %d", resp.LedgerLength)
	}
	if _, ok := resp.AvailableActions["record_observation"]; !ok {
		t.Error("response should advertise the actions of the new stage")
	}
}

func TestClampTotalThoughtsUpward(t *testing.T) {
	c := newReactCoordinator(t)

	req := step(10, "turns out there is more to this")
	req.TotalThoughts = 3
	resp := c.Submit(context.Background(), req)
	if resp.IsError() {
		t.Fatalf("step rejected: %s", resp.Error)
	}
	if resp.TotalThoughts != 10 {
		t.Errorf("expected totalThoughts clamped to 10, got %d", resp.TotalThoughts)
	}
}

func TestValidationLeavesStateUnchanged(t *testing.T) {
	c := newReactCoordinator(t)
	ctx := context.Background()

	cases := []*SubmitRequest{
		{ThoughtNumber: 2, TotalThoughts: 3, NextThoughtNeeded: boolPtr(true)},              // no thought
		{Thought: "x", ThoughtNumber: 0, TotalThoughts: 3, NextThoughtNeeded: boolPtr(true)}, // bad ordinal
		{Thought: "x", ThoughtNumber: 2, TotalThoughts: 0, NextThoughtNeeded: boolPtr(true)}, // bad total
		{Thought: "x", ThoughtNumber: 2, TotalThoughts: 3},                                   // missing flag
	}
	for i, req := range cases {
		resp := c.Submit(ctx, req)
		if !resp.IsError() {
			t.Errorf("case %d: expected validation failure", i)
		}
	}
	if c.LedgerLen() != 0 {
		t.Errorf("ledger mutated by rejected steps: %d", c.LedgerLen())
	}
	if c.Stage() != "problem_reception" {
		t.Errorf("stage mutated by rejected steps: %s", c.Stage())
	}
}

func TestExplicitStageTransition(t *testing.T) {
	c := newReactCoordinator(t)
	ctx := context.Background()

	// Legal explicit target.
	req := step(2, "moving on")
	req.CurrentStage = "initial_reasoning"
	resp := c.Submit(ctx, req)
	if resp.IsError() {
		t.Fatalf("legal explicit transition rejected: %s", resp.Error)
	}
	if resp.CurrentStage != "initial_reasoning" {
		t.Errorf("expected initial_reasoning, got %s", resp.CurrentStage)
	}

	// Illegal explicit target: reported, nothing appended.
	before := c.LedgerLen()
	req = step(3, "jumping ahead")
	req.CurrentStage = "observation_phase"
	resp = c.Submit(ctx, req)
	if !resp.IsError() {
		t.Fatal("expected failure for illegal explicit transition")
	}
	if c.LedgerLen() != before {
		t.Error("ledger mutated by rejected transition")
	}
	if c.Stage() != "initial_reasoning" {
		t.Errorf("stage mutated by rejected transition: %s", c.Stage())
	}
}

func TestReselectionResetsSession(t *testing.T) {
	c := newReactCoordinator(t)
	ctx := context.Background()

	c.Submit(ctx, step(2, "some progress"))
	if c.LedgerLen() != 1 {
		t.Fatalf("expected 1 step, got %d", c.LedgerLen())
	}

	resp := c.Submit(ctx, &SubmitRequest{
		Thought:       "starting over",
		ThoughtNumber: 1,
		Strategy:      "react",
		Purpose:       "retry with a cleaner framing",
	})
	if resp.IsError() {
		t.Fatalf("reselection failed: %s", resp.Error)
	}
	if c.LedgerLen() != 0 {
		t.Errorf("reselection should clear the ledger, got %d", c.LedgerLen())
	}
	if got := c.Snapshot().Purpose; got != "retry with a cleaner framing" {
		t.Errorf("purpose did not survive the reset: %q", got)
	}
}

func TestSwitchStrategyPreservesHistoryOnRequest(t *testing.T) {
	c := newReactCoordinator(t)
	ctx := context.Background()

	c.Submit(ctx, step(2, "react step"))

	req := step(3, "continuing linearly")
	req.Strategy = "linear"
	req.PreserveHistory = true
	resp := c.Submit(ctx, req)
	if resp.IsError() {
		t.Fatalf("switch failed: %s", resp.Error)
	}
	if resp.Strategy != model.StrategyLinear {
		t.Errorf("expected linear, got %s", resp.Strategy)
	}
	if c.LedgerLen() != 2 {
		t.Errorf("preserved history lost: ledger %d", c.LedgerLen())
	}

	// Without the opt-in the switch clears the ledger.
	req = step(4, "yet another angle")
	req.Strategy = "react"
	resp = c.Submit(ctx, req)
	if resp.IsError() {
		t.Fatalf("switch failed: %s", resp.Error)
	}
	if c.LedgerLen() != 1 {
		t.Errorf("expected cleared ledger plus new step, got %d", c.LedgerLen())
	}
}

func TestCreateBranch(t *testing.T) {
	c := newReactCoordinator(t)
	ctx := context.Background()

	c.Submit(ctx, step(2, "main line"))
	c.Submit(ctx, step(3, "more main line"))

	resp := c.CreateBranch(ctx, 1, "alt", "what if the premise is wrong")
	if resp.IsError() {
		t.Fatalf("branch rejected: %s", resp.Error)
	}
	if resp.LedgerLength != 3 {
		t.Errorf("expected 3 steps, got %d", resp.LedgerLength)
	}
	branches := c.Snapshot().Branches
	if len(branches["alt"]) != 1 || branches["alt"][0] != 3 {
		t.Errorf("branch index wrong: %v", branches)
	}

	// Branching from a nonexistent absolute number is a user-facing error.
	resp = c.CreateBranch(ctx, 99, "ghost", "nothing here")
	if !resp.IsError() {
		t.Fatal("expected failure for unknown absolute number")
	}
}

func TestResumeRestoresStageAndCounters(t *testing.T) {
	c := NewCoordinator(config.Default(), nil, nil)

	sess := &model.Session{
		ID:           "react-session-20260831-120000",
		Strategy:     model.StrategyReact,
		CurrentStage: "observation_phase",
		StageHistory: []string{"problem_reception", "initial_reasoning", "action_planning"},
		Thoughts: []model.Thought{
			{Thought: "t1", AbsoluteNumber: 5, SequenceNumber: 1},
			{Thought: "t2", AbsoluteNumber: 6, SequenceNumber: 2},
			{Thought: "t3", AbsoluteNumber: 7, SequenceNumber: 3, CurrentStage: "observation_phase"},
		},
	}
	if err := c.Resume(sess); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if c.Stage() != "observation_phase" {
		t.Errorf("expected observation_phase, got %s", c.Stage())
	}

	resp := c.Submit(context.Background(), step(4, "interpreting the result"))
	if resp.IsError() {
		t.Fatalf("post-resume step rejected: %s", resp.Error)
	}
	thoughts := c.Snapshot().Thoughts
	last := thoughts[len(thoughts)-1]
	if last.AbsoluteNumber != 8 {
		t.Errorf("expected next absolute 8, got %d", last.AbsoluteNumber)
	}
}

// failingStore rejects every save so the non-fatal persistence path can
// be observed.
type failingStore struct{}

func (failingStore) SaveSession(ctx context.Context, s *model.Session) error {
	return errors.New("disk full")
}
func (failingStore) LoadSession(ctx context.Context, id string) (*model.Session, error) {
	return nil, storage.ErrNotFound
}
func (failingStore) ListSessions(ctx context.Context, p storage.ListParams) ([]model.SessionSummary, error) {
	return nil, nil
}
func (failingStore) SessionMetrics(ctx context.Context, id string) (*model.SessionMetrics, error) {
	return nil, storage.ErrNotFound
}
func (failingStore) SetEnhancements(ctx context.Context, id, purpose string, quality map[string]int) error {
	return nil
}
func (failingStore) Close() error { return nil }

func TestPersistenceFailureIsNonFatal(t *testing.T) {
	c := NewCoordinator(config.Default(), failingStore{}, nil)
	ctx := context.Background()

	c.Submit(ctx, &SubmitRequest{Thought: "t1", ThoughtNumber: 1, Strategy: "linear"})

	resp := c.Submit(ctx, step(2, "still thinking"))
	if resp.IsError() {
		t.Fatalf("step should be accepted despite save failure: %s", resp.Error)
	}
	if resp.SessionSaved {
		t.Error("expected sessionSaved=false")
	}
	if resp.SaveError == "" {
		t.Error("expected the save error reported")
	}
	if c.LedgerLen() != 1 {
		t.Errorf("in-memory state should keep the step, got %d", c.LedgerLen())
	}
}
