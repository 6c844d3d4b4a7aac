package engine

import (
	"github.com/aaronsb/think-strategies/internal/config"
	"github.com/aaronsb/think-strategies/internal/model"
)

// baseFields are always present on a step and never count as evidence of
// a specific semantic action.
var baseFields = map[string]bool{
	"thought":           true,
	"thoughtNumber":     true,
	"totalThoughts":     true,
	"nextThoughtNeeded": true,
	"strategy":          true,
}

// Resolution is the resolver's verdict: which named action the supplied
// fields amount to, and where it leads.
type Resolution struct {
	ActionName string
	NextStage  string
	IsGlobal   bool
}

// candidate pairs an action with its global flag, in matching order.
type candidate struct {
	action   config.Action
	isGlobal bool
}

// ActionResolver decides which semantic action a step's fields represent.
// It is a pure function of the table and its inputs; it never mutates the
// stage machine.
type ActionResolver struct {
	table *config.Table
}

// NewActionResolver returns a resolver over the given routing table.
func NewActionResolver(table *config.Table) *ActionResolver {
	return &ActionResolver{table: table}
}

// candidates returns the actions available at (strategy, stage): the
// stage-local declarations in order, then every global action whose
// availability set covers the stage. Nil when the stage is unknown.
func (r *ActionResolver) candidates(strategy model.Strategy, stage string) []candidate {
	s, ok := r.table.Stage(strategy, stage)
	if !ok {
		return nil
	}
	out := make([]candidate, 0, len(s.Actions)+len(r.table.Globals))
	for _, a := range s.Actions {
		out = append(out, candidate{action: a})
	}
	for _, g := range r.table.Globals {
		if g.AvailableAt(stage) {
			out = append(out, candidate{action: g.Action, isGlobal: true})
		}
	}
	return out
}

// Resolve determines the action taken given the full field set of a step.
// Matching is two-pass: first the actions with non-base required inputs,
// in declaration order, taken when every such input is present and
// non-nil; then the default advance, the first non-global action whose
// required inputs are all base fields. Nil means nothing matched and the
// caller should stay in place.
func (r *ActionResolver) Resolve(strategy model.Strategy, stage string, fields map[string]any) *Resolution {
	cands := r.candidates(strategy, stage)

	for _, c := range cands {
		nonBase := nonBaseInputs(c.action.RequiredInputs)
		if len(nonBase) == 0 {
			continue
		}
		if allPresent(fields, nonBase) {
			return &Resolution{
				ActionName: c.action.Name,
				NextStage:  c.action.NextStage,
				IsGlobal:   c.isGlobal,
			}
		}
	}

	for _, c := range cands {
		if c.isGlobal || len(nonBaseInputs(c.action.RequiredInputs)) > 0 {
			continue
		}
		return &Resolution{
			ActionName: c.action.Name,
			NextStage:  c.action.NextStage,
		}
	}

	return nil
}

// ActionInfos builds the advertised action map for a routing response.
// Nil when the stage is unknown, which the coordinator reports as an
// empty action set.
func (r *ActionResolver) ActionInfos(strategy model.Strategy, stage string) map[string]model.ActionInfo {
	cands := r.candidates(strategy, stage)
	if cands == nil {
		return nil
	}
	infos := make(map[string]model.ActionInfo, len(cands))
	for _, c := range cands {
		infos[c.action.Name] = model.ActionInfo{
			Description:    c.action.Description,
			RequiredInputs: c.action.RequiredInputs,
			OptionalInputs: c.action.OptionalInputs,
			Hints:          c.action.Hints,
			NextStage:      c.action.NextStage,
			IsGlobal:       c.isGlobal,
		}
	}
	return infos
}

func nonBaseInputs(required []string) []string {
	var out []string
	for _, name := range required {
		if !baseFields[name] {
			out = append(out, name)
		}
	}
	return out
}

func allPresent(fields map[string]any, names []string) bool {
	for _, name := range names {
		v, ok := fields[name]
		if !ok || v == nil {
			return false
		}
	}
	return true
}
