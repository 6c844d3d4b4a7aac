// Package config holds the routing table that drives stage transitions:
// per-strategy stage lists, adjacency, descriptions and the ordered
// semantic action declarations the resolver matches against. The table is
// plain data so the engine can be tested against synthetic tables and a
// deployment can override the built-in defaults from a JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/aaronsb/think-strategies/internal/model"
)

// Action is a named semantic transition rule. Declaration order within a
// stage is the resolver's matching order; keep more specific actions ahead
// of catch-alls.
type Action struct {
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	RequiredInputs []string          `json:"requiredInputs,omitempty"`
	OptionalInputs []string          `json:"optionalInputs,omitempty"`
	Hints          map[string]string `json:"hints,omitempty"`
	NextStage      string            `json:"nextStage,omitempty"`
}

// GlobalAction is an action available outside a single stage. AvailableFrom
// is either the single element "any" or an explicit stage list.
type GlobalAction struct {
	Action
	AvailableFrom []string `json:"availableFrom"`
}

// AvailableAt reports whether the global action can be taken from stage.
func (g *GlobalAction) AvailableAt(stage string) bool {
	for _, from := range g.AvailableFrom {
		if from == "any" || from == stage {
			return true
		}
	}
	return false
}

// Stage is one node in a strategy's flow graph.
type Stage struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Transitions       []string `json:"transitions,omitempty"`
	CanSwitchStrategy bool     `json:"canSwitchStrategy,omitempty"`
	Actions           []Action `json:"actions,omitempty"`
}

// StrategyFlow is the full stage graph of one strategy. Stages[0] is the
// initial stage.
type StrategyFlow struct {
	Description string  `json:"description"`
	Stages      []Stage `json:"stages"`
}

// Table is the injected routing configuration.
type Table struct {
	Strategies map[model.Strategy]*StrategyFlow `json:"strategies"`
	Globals    []GlobalAction                   `json:"globalActions,omitempty"`
}

// Flow returns the stage graph for a strategy, fail-closed.
func (t *Table) Flow(strategy model.Strategy) (*StrategyFlow, bool) {
	f, ok := t.Strategies[strategy]
	return f, ok
}

// Stage returns one stage of a strategy by name, fail-closed.
func (t *Table) Stage(strategy model.Strategy, name string) (*Stage, bool) {
	f, ok := t.Strategies[strategy]
	if !ok {
		return nil, false
	}
	for i := range f.Stages {
		if f.Stages[i].Name == name {
			return &f.Stages[i], true
		}
	}
	return nil, false
}

// FirstStage returns the initial stage of a strategy, or false when the
// strategy has no configured stages (a configuration defect, reported by
// the caller rather than crashed on).
func (t *Table) FirstStage(strategy model.Strategy) (string, bool) {
	f, ok := t.Strategies[strategy]
	if !ok || len(f.Stages) == 0 {
		return "", false
	}
	return f.Stages[0].Name, true
}

// Successors returns the legal successor stages of stage, or nil when the
// strategy or stage is unknown.
func (t *Table) Successors(strategy model.Strategy, stage string) []string {
	s, ok := t.Stage(strategy, stage)
	if !ok {
		return nil
	}
	return s.Transitions
}

// StageDescription returns the human description of a stage.
func (t *Table) StageDescription(strategy model.Strategy, stage string) string {
	s, ok := t.Stage(strategy, stage)
	if !ok {
		return "No description available"
	}
	return s.Description
}

// CanSwitchStrategy reports whether strategy switching is permitted from
// the given stage.
func (t *Table) CanSwitchStrategy(strategy model.Strategy, stage string) bool {
	s, ok := t.Stage(strategy, stage)
	return ok && s.CanSwitchStrategy
}

// StrategyNames returns the configured strategies in stable order.
func (t *Table) StrategyNames() []model.Strategy {
	names := make([]model.Strategy, 0, len(t.Strategies))
	for name := range t.Strategies {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Validate checks referential integrity: every transition target and every
// action's next stage must be a declared stage of the same strategy.
func (t *Table) Validate() error {
	for strategy, flow := range t.Strategies {
		if len(flow.Stages) == 0 {
			return fmt.Errorf("strategy %s has no stages", strategy)
		}
		declared := make(map[string]bool, len(flow.Stages))
		for _, s := range flow.Stages {
			declared[s.Name] = true
		}
		for _, s := range flow.Stages {
			for _, target := range s.Transitions {
				if !declared[target] {
					return fmt.Errorf("strategy %s: stage %s transitions to undeclared stage %s", strategy, s.Name, target)
				}
			}
			for _, a := range s.Actions {
				if a.NextStage != "" && !declared[a.NextStage] {
					return fmt.Errorf("strategy %s: action %s targets undeclared stage %s", strategy, a.Name, a.NextStage)
				}
			}
		}
	}
	return nil
}

// Load reads a routing table override from a JSON file.
func Load(path string) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read routing table: %w", err)
	}
	var t Table
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("parse routing table: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("validate routing table: %w", err)
	}
	return &t, nil
}
