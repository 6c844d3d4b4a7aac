package config

import (
	"testing"

	"github.com/aaronsb/think-strategies/internal/model"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default table invalid: %v", err)
	}
}

func TestDefaultCoversAllStrategies(t *testing.T) {
	table := Default()
	for name := range model.ValidStrategies {
		flow, ok := table.Flow(name)
		if !ok {
			t.Errorf("strategy %s has no flow", name)
			continue
		}
		if len(flow.Stages) == 0 {
			t.Errorf("strategy %s has no stages", name)
		}
		last := flow.Stages[len(flow.Stages)-1]
		found := false
		for _, s := range flow.Stages {
			if s.Name == model.StageFinalResponse {
				found = true
			}
		}
		if !found {
			t.Errorf("strategy %s has no %s stage (last stage: %s)", name, model.StageFinalResponse, last.Name)
		}
	}
}

// Every action's target stage must also be reachable as a legal
// transition from its declaring stage, so the resolver's verdict never
// asks the stage machine for something it will refuse.
func TestDefaultActionTargetsAreLegalTransitions(t *testing.T) {
	table := Default()
	for strategy, flow := range table.Strategies {
		for _, stage := range flow.Stages {
			for _, a := range stage.Actions {
				if a.NextStage == "" || a.NextStage == stage.Name {
					continue
				}
				legal := false
				for _, target := range stage.Transitions {
					if target == a.NextStage {
						legal = true
						break
					}
				}
				if !legal {
					t.Errorf("%s/%s: action %s targets %s which is not a declared transition",
						strategy, stage.Name, a.Name, a.NextStage)
				}
			}
		}
	}
}

func TestFirstStage(t *testing.T) {
	table := Default()

	first, ok := table.FirstStage(model.StrategyReact)
	if !ok {
		t.Fatal("react has no first stage")
	}
	if first != "problem_reception" {
		t.Errorf("expected problem_reception, got %s", first)
	}

	if _, ok := table.FirstStage(model.Strategy("bogus")); ok {
		t.Error("expected no first stage for unknown strategy")
	}
}

func TestSuccessorsFailClosed(t *testing.T) {
	table := Default()
	if succ := table.Successors(model.Strategy("bogus"), "anywhere"); succ != nil {
		t.Errorf("expected nil successors for unknown strategy, got %v", succ)
	}
	if succ := table.Successors(model.StrategyReact, "no_such_stage"); succ != nil {
		t.Errorf("expected nil successors for unknown stage, got %v", succ)
	}
}

func TestStageDescriptionFallback(t *testing.T) {
	table := Default()
	if d := table.StageDescription(model.StrategyLinear, "no_such_stage"); d != "No description available" {
		t.Errorf("unexpected fallback description: %q", d)
	}
}

func TestGlobalAvailability(t *testing.T) {
	any := GlobalAction{
		Action:        Action{Name: "g"},
		AvailableFrom: []string{"any"},
	}
	if !any.AvailableAt("whatever") {
		t.Error("'any' global should be available everywhere")
	}

	scoped := GlobalAction{
		Action:        Action{Name: "g"},
		AvailableFrom: []string{"alpha", "beta"},
	}
	if !scoped.AvailableAt("beta") {
		t.Error("scoped global should be available at a listed stage")
	}
	if scoped.AvailableAt("gamma") {
		t.Error("scoped global should not be available at an unlisted stage")
	}
}

func TestValidateRejectsDanglingTransition(t *testing.T) {
	table := &Table{
		Strategies: map[model.Strategy]*StrategyFlow{
			"broken": {
				Stages: []Stage{
					{Name: "start", Transitions: []string{"missing"}},
				},
			},
		},
	}
	if err := table.Validate(); err == nil {
		t.Error("expected validation error for dangling transition")
	}
}

func TestValidateRejectsDanglingActionTarget(t *testing.T) {
	table := &Table{
		Strategies: map[model.Strategy]*StrategyFlow{
			"broken": {
				Stages: []Stage{
					{Name: "start", Actions: []Action{{Name: "go", NextStage: "missing"}}},
				},
			},
		},
	}
	if err := table.Validate(); err == nil {
		t.Error("expected validation error for dangling action target")
	}
}

func TestStrategyNamesSorted(t *testing.T) {
	names := Default().StrategyNames()
	if len(names) != len(model.ValidStrategies) {
		t.Fatalf("expected %d strategies, got %d", len(model.ValidStrategies), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %s before %s", names[i-1], names[i])
		}
	}
}
