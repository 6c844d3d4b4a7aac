package engine

import (
	"fmt"

	"github.com/aaronsb/think-strategies/internal/config"
	"github.com/aaronsb/think-strategies/internal/model"
)

// StageMachine owns the current stage for one strategy and records the
// stages passed through. It fails closed: an unknown strategy or stage
// yields no legal successors rather than an error.
type StageMachine struct {
	table    *config.Table
	strategy model.Strategy
	current  string
	history  []string
}

// NewStageMachine starts a machine at the strategy's first configured
// stage. When the strategy has no stages the current stage stays empty;
// that is a configuration defect the caller reports, not a crash.
func NewStageMachine(table *config.Table, strategy model.Strategy) *StageMachine {
	m := &StageMachine{table: table, strategy: strategy}
	if first, ok := table.FirstStage(strategy); ok {
		m.current = first
	}
	return m
}

// CurrentStage returns the current stage name, empty when uninitialized.
func (m *StageMachine) CurrentStage() string {
	return m.current
}

// History returns the stages passed through, oldest first.
func (m *StageMachine) History() []string {
	return m.history
}

// LegalSuccessors returns the stages reachable from the current stage.
func (m *StageMachine) LegalSuccessors() []string {
	return m.table.Successors(m.strategy, m.current)
}

// CanTransition reports whether target is a legal successor right now.
func (m *StageMachine) CanTransition(target string) bool {
	for _, s := range m.LegalSuccessors() {
		if s == target {
			return true
		}
	}
	return false
}

// Transition moves to target, pushing the current stage onto history.
// State is unchanged on failure.
func (m *StageMachine) Transition(target string) error {
	if !m.CanTransition(target) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, m.current, target)
	}
	m.history = append(m.history, m.current)
	m.current = target
	return nil
}

// ForceStage sets the current stage without legality checks. Used when
// resuming a stored session at its last recorded stage.
func (m *StageMachine) ForceStage(stage string) {
	m.current = stage
}

// RestoreHistory replaces the stage history, used on resume.
func (m *StageMachine) RestoreHistory(history []string) {
	m.history = append([]string(nil), history...)
}

// IsFirstStage reports whether no transition has happened yet.
func (m *StageMachine) IsFirstStage() bool {
	return len(m.history) == 0
}

// IsTerminal reports whether the machine sits at the terminal stage.
func (m *StageMachine) IsTerminal() bool {
	return m.current == model.StageFinalResponse
}
