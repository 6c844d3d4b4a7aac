package engine

import (
	"testing"

	"github.com/aaronsb/think-strategies/internal/config"
	"github.com/aaronsb/think-strategies/internal/model"
)

const probeStrategy = model.Strategy("probe")

// testTable is a small synthetic routing table exercising the matching
// rules without depending on the shipped strategy definitions.
func testTable() *config.Table {
	return &config.Table{
		Strategies: map[model.Strategy]*config.StrategyFlow{
			probeStrategy: {
				Description: "synthetic flow for tests",
				Stages: []config.Stage{
					{
						Name:              "start",
						Description:       "entry stage",
						Transitions:       []string{"work"},
						CanSwitchStrategy: true,
						Actions: []config.Action{
							{Name: "note_detail", RequiredInputs: []string{"detail"}, NextStage: "work"},
							{Name: "advance", RequiredInputs: []string{"thought"}, NextStage: "work"},
						},
					},
					{
						Name:        "work",
						Description: "main stage",
						Transitions: []string{"work", "wrap", "final_response"},
						Actions: []config.Action{
							{Name: "first_clue", RequiredInputs: []string{"clue"}, NextStage: "wrap"},
							{Name: "second_clue", RequiredInputs: []string{"clue"}, NextStage: "work"},
							{Name: "keep_working", RequiredInputs: []string{"thought"}, NextStage: "work"},
						},
					},
					{
						Name:        "wrap",
						Description: "closing stage",
						Transitions: []string{"final_response"},
						Actions: []config.Action{
							{Name: "finish", RequiredInputs: []string{"finalAnswer"}, NextStage: "final_response"},
						},
					},
					{Name: "final_response", Description: "done"},
				},
			},
		},
		Globals: []config.GlobalAction{
			{
				Action:        config.Action{Name: "escape_hatch", RequiredInputs: []string{"escape"}, NextStage: "wrap"},
				AvailableFrom: []string{"any"},
			},
			{
				Action:        config.Action{Name: "scoped_global", RequiredInputs: []string{"scopedField"}},
				AvailableFrom: []string{"wrap"},
			},
		},
	}
}

func TestStageMachineStartsAtFirstStage(t *testing.T) {
	m := NewStageMachine(testTable(), probeStrategy)
	if m.CurrentStage() != "start" {
		t.Errorf("expected start, got %s", m.CurrentStage())
	}
	if !m.IsFirstStage() {
		t.Error("expected IsFirstStage before any transition")
	}
}

func TestStageMachineUnknownStrategy(t *testing.T) {
	m := NewStageMachine(testTable(), "bogus")
	if m.CurrentStage() != "" {
		t.Errorf("expected empty stage for unknown strategy, got %s", m.CurrentStage())
	}
	if succ := m.LegalSuccessors(); len(succ) != 0 {
		t.Errorf("expected no successors, got %v", succ)
	}
}

func TestTransition(t *testing.T) {
	m := NewStageMachine(testTable(), probeStrategy)

	if err := m.Transition("work"); err != nil {
		t.Fatalf("legal transition failed: %v", err)
	}
	if m.CurrentStage() != "work" {
		t.Errorf("expected work, got %s", m.CurrentStage())
	}
	if len(m.History()) != 1 || m.History()[0] != "start" {
		t.Errorf("unexpected history %v", m.History())
	}
}

func TestIllegalTransitionLeavesStateUnchanged(t *testing.T) {
	m := NewStageMachine(testTable(), probeStrategy)

	err := m.Transition("final_response")
	if err == nil {
		t.Fatal("expected error for illegal transition")
	}
	if m.CurrentStage() != "start" {
		t.Errorf("stage mutated on failed transition: %s", m.CurrentStage())
	}
	if len(m.History()) != 0 {
		t.Errorf("history mutated on failed transition: %v", m.History())
	}
}

func TestSelfTransition(t *testing.T) {
	m := NewStageMachine(testTable(), probeStrategy)
	if err := m.Transition("work"); err != nil {
		t.Fatal(err)
	}
	if err := m.Transition("work"); err != nil {
		t.Errorf("self-transition should be legal at work: %v", err)
	}
}

func TestTerminal(t *testing.T) {
	m := NewStageMachine(testTable(), probeStrategy)
	m.ForceStage("final_response")
	if !m.IsTerminal() {
		t.Error("expected terminal at final_response")
	}
}

func TestForceAndRestore(t *testing.T) {
	m := NewStageMachine(testTable(), probeStrategy)
	m.ForceStage("wrap")
	m.RestoreHistory([]string{"start", "work"})

	if m.CurrentStage() != "wrap" {
		t.Errorf("expected wrap, got %s", m.CurrentStage())
	}
	if len(m.History()) != 2 {
		t.Errorf("expected restored history of 2, got %v", m.History())
	}
	if m.IsFirstStage() {
		t.Error("restored machine should not report first stage")
	}
}
