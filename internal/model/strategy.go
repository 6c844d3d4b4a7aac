// Package model defines the session, thought and routing data types.
package model

// Strategy identifies a reasoning protocol with its own stage graph.
type Strategy string

const (
	StrategyLinear          Strategy = "linear"
	StrategyChainOfThought  Strategy = "chain_of_thought"
	StrategyReact           Strategy = "react"
	StrategyReWOO           Strategy = "rewoo"
	StrategyScratchpad      Strategy = "scratchpad"
	StrategySelfAsk         Strategy = "self_ask"
	StrategySelfConsistency Strategy = "self_consistency"
	StrategyStepBack        Strategy = "step_back"
	StrategyTreeOfThoughts  Strategy = "tree_of_thoughts"
	StrategyTrilemma        Strategy = "trilemma"
)

// ValidStrategies are the strategies the engine knows how to route.
var ValidStrategies = map[Strategy]bool{
	StrategyLinear:          true,
	StrategyChainOfThought:  true,
	StrategyReact:           true,
	StrategyReWOO:           true,
	StrategyScratchpad:      true,
	StrategySelfAsk:         true,
	StrategySelfConsistency: true,
	StrategyStepBack:        true,
	StrategyTreeOfThoughts:  true,
	StrategyTrilemma:        true,
}

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	return ValidStrategies[s]
}

// StageFinalResponse is the universally terminal stage name.
const StageFinalResponse = "final_response"
