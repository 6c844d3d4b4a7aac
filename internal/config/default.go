package config

import "github.com/aaronsb/think-strategies/internal/model"

// Default returns the built-in routing table for the ten shipped
// strategies. Action order within a stage is deliberate: specific
// field-triggered actions come before the base-fields-only advance.
func Default() *Table {
	return &Table{
		Globals: []GlobalAction{
			{
				Action: Action{
					Name:           "switch_strategy",
					Description:    "Abandon the current strategy and restart the session with another one",
					RequiredInputs: []string{"strategy"},
					OptionalInputs: []string{"preserveHistory"},
					Hints: map[string]string{
						"strategy": "Name of the strategy to switch to",
					},
				},
				AvailableFrom: []string{"any"},
			},
			{
				Action: Action{
					Name:           "request_more_thoughts",
					Description:    "Raise the estimated total because the problem needs more steps",
					RequiredInputs: []string{"needsMoreThoughts"},
				},
				AvailableFrom: []string{"any"},
			},
		},
		Strategies: map[model.Strategy]*StrategyFlow{
			model.StrategyLinear: {
				Description: "Exploratory thinking with manual progression control",
				Stages: []Stage{
					{
						Name:              "framing",
						Description:       "State the problem and what a good answer looks like",
						Transitions:       []string{"exploration"},
						CanSwitchStrategy: true,
						Actions: []Action{
							{Name: "explore", Description: "Begin exploring the problem space", RequiredInputs: []string{"thought"}, NextStage: "exploration"},
						},
					},
					{
						Name:              "exploration",
						Description:       "Work through the problem one step at a time",
						Transitions:       []string{"exploration", "synthesis"},
						CanSwitchStrategy: true,
						Actions: []Action{
							{
								Name:           "form_hypothesis",
								Description:    "Commit to a candidate answer and move to synthesis",
								RequiredInputs: []string{"hypothesis"},
								NextStage:      "synthesis",
								Hints:          map[string]string{"hypothesis": "Your current best answer"},
							},
							{Name: "continue_exploration", Description: "Keep thinking at this stage", RequiredInputs: []string{"thought"}, NextStage: "exploration"},
						},
					},
					{
						Name:        "synthesis",
						Description: "Assemble the findings into a final answer",
						Transitions: []string{"exploration", "synthesis", "final_response"},
						Actions: []Action{
							{
								Name:           "provide_final_answer",
								Description:    "Deliver the final answer",
								RequiredInputs: []string{"finalAnswer"},
								NextStage:      "final_response",
							},
							{Name: "refine_synthesis", Description: "Keep refining the draft answer", RequiredInputs: []string{"thought"}, NextStage: "synthesis"},
						},
					},
					{Name: "final_response", Description: "The final answer has been delivered", Transitions: []string{"synthesis"}},
				},
			},
			model.StrategyChainOfThought: {
				Description: "Sequential reasoning steps from problem to conclusion",
				Stages: []Stage{
					{
						Name:              "problem_statement",
						Description:       "Restate the problem in your own words",
						Transitions:       []string{"reasoning_chain"},
						CanSwitchStrategy: true,
						Actions: []Action{
							{Name: "begin_chain", Description: "Start the reasoning chain", RequiredInputs: []string{"thought"}, NextStage: "reasoning_chain"},
						},
					},
					{
						Name:        "reasoning_chain",
						Description: "Add the next link in the reasoning chain",
						Transitions: []string{"reasoning_chain", "conclusion"},
						Actions: []Action{
							{
								Name:           "conclude",
								Description:    "Close the chain with a verified hypothesis",
								RequiredInputs: []string{"hypothesis"},
								NextStage:      "conclusion",
							},
							{Name: "continue_chain", Description: "Add another reasoning step", RequiredInputs: []string{"thought"}, NextStage: "reasoning_chain"},
						},
					},
					{
						Name:        "conclusion",
						Description: "Present the conclusion that follows from the chain",
						Transitions: []string{"reasoning_chain", "final_response"},
						Actions: []Action{
							{Name: "provide_final_answer", Description: "Deliver the final answer", RequiredInputs: []string{"finalAnswer"}, NextStage: "final_response"},
							{Name: "revisit_chain", Description: "Return to the chain to patch a gap", RequiredInputs: []string{"thought"}, NextStage: "reasoning_chain"},
						},
					},
					{Name: "final_response", Description: "The final answer has been delivered", Transitions: []string{"conclusion"}},
				},
			},
			model.StrategyReact: {
				Description: "Interleaved reasoning and tool actions with observation cycles",
				Stages: []Stage{
					{
						Name:              "problem_reception",
						Description:       "Take in the problem and decide what information is needed",
						Transitions:       []string{"initial_reasoning"},
						CanSwitchStrategy: true,
						Actions: []Action{
							{Name: "begin_reasoning", Description: "Start reasoning about the problem", RequiredInputs: []string{"thought"}, NextStage: "initial_reasoning"},
						},
					},
					{
						Name:              "initial_reasoning",
						Description:       "Reason about what is known and what to do next",
						Transitions:       []string{"initial_reasoning", "action_planning", "final_response"},
						CanSwitchStrategy: true,
						Actions: []Action{
							{
								Name:           "plan_action",
								Description:    "Plan a concrete action to gather information",
								RequiredInputs: []string{"action"},
								NextStage:      "action_planning",
								Hints:          map[string]string{"action": "The specific action to take, e.g. a search or tool call"},
							},
							{
								Name:           "provide_final_answer",
								Description:    "Answer directly from what is already known",
								RequiredInputs: []string{"finalAnswer"},
								NextStage:      "final_response",
							},
							{Name: "continue_reasoning", Description: "Keep reasoning without acting yet", RequiredInputs: []string{"thought"}, NextStage: "initial_reasoning"},
						},
					},
					{
						Name:        "action_planning",
						Description: "Carry out the planned action and capture its result",
						Transitions: []string{"action_planning", "observation_phase"},
						Actions: []Action{
							{
								Name:           "record_observation",
								Description:    "Record what the action produced",
								RequiredInputs: []string{"observation"},
								NextStage:      "observation_phase",
								Hints:          map[string]string{"observation": "What the action returned, verbatim where possible"},
							},
							{Name: "refine_action", Description: "Adjust the action before executing", RequiredInputs: []string{"thought"}, NextStage: "action_planning"},
						},
					},
					{
						Name:        "observation_phase",
						Description: "Interpret the observation and fold it into the reasoning",
						Transitions: []string{"initial_reasoning", "final_response"},
						Actions: []Action{
							{
								Name:           "provide_final_answer",
								Description:    "The observation settles the question",
								RequiredInputs: []string{"finalAnswer"},
								NextStage:      "final_response",
							},
							{Name: "continue_reasoning", Description: "Cycle back to reasoning with the new information", RequiredInputs: []string{"thought"}, NextStage: "initial_reasoning"},
						},
					},
					{Name: "final_response", Description: "The final answer has been delivered", Transitions: []string{"initial_reasoning"}},
				},
			},
			model.StrategyReWOO: {
				Description: "Plan all tool use up front, execute, then solve",
				Stages: []Stage{
					{
						Name:              "planning",
						Description:       "Lay out every tool call the solution will need",
						Transitions:       []string{"planning", "working"},
						CanSwitchStrategy: true,
						Actions: []Action{
							{
								Name:           "commit_plan",
								Description:    "Commit the tool plan and start executing",
								RequiredInputs: []string{"toolCalls"},
								NextStage:      "working",
								Hints:          map[string]string{"toolCalls": "Ordered list of {tool, input} pairs"},
							},
							{Name: "continue_planning", Description: "Keep shaping the plan", RequiredInputs: []string{"thought"}, NextStage: "planning"},
						},
					},
					{
						Name:        "working",
						Description: "Execute the planned calls and collect evidence",
						Transitions: []string{"working", "solving"},
						Actions: []Action{
							{
								Name:           "record_evidence",
								Description:    "Record the collected tool outputs",
								RequiredInputs: []string{"observation"},
								NextStage:      "solving",
							},
							{Name: "continue_working", Description: "Keep executing planned calls", RequiredInputs: []string{"thought"}, NextStage: "working"},
						},
					},
					{
						Name:        "solving",
						Description: "Combine plan and evidence into the answer",
						Transitions: []string{"final_response"},
						Actions: []Action{
							{Name: "provide_final_answer", Description: "Deliver the final answer", RequiredInputs: []string{"finalAnswer"}, NextStage: "final_response"},
						},
					},
					{Name: "final_response", Description: "The final answer has been delivered", Transitions: []string{"solving"}},
				},
			},
			model.StrategyScratchpad: {
				Description: "Iterative calculation with explicit state tracking",
				Stages: []Stage{
					{
						Name:              "problem_setup",
						Description:       "Define the quantities to track and their starting values",
						Transitions:       []string{"calculation"},
						CanSwitchStrategy: true,
						Actions: []Action{
							{Name: "begin_calculation", Description: "Start calculating", RequiredInputs: []string{"thought"}, NextStage: "calculation"},
						},
					},
					{
						Name:        "calculation",
						Description: "Apply one calculation step and update the tracked state",
						Transitions: []string{"calculation", "verification"},
						Actions: []Action{
							{
								Name:           "update_state",
								Description:    "Record the new values of the tracked variables",
								RequiredInputs: []string{"stateVariables"},
								NextStage:      "calculation",
								Hints:          map[string]string{"stateVariables": "Map of variable name to current value"},
							},
							{
								Name:           "verify_result",
								Description:    "Move to verification with a candidate result",
								RequiredInputs: []string{"hypothesis"},
								NextStage:      "verification",
							},
							{Name: "continue_calculation", Description: "Work the next step", RequiredInputs: []string{"thought"}, NextStage: "calculation"},
						},
					},
					{
						Name:        "verification",
						Description: "Check the candidate result against the tracked state",
						Transitions: []string{"calculation", "final_response"},
						Actions: []Action{
							{Name: "provide_final_answer", Description: "Deliver the verified answer", RequiredInputs: []string{"finalAnswer"}, NextStage: "final_response"},
							{Name: "recalculate", Description: "Verification failed, go back", RequiredInputs: []string{"thought"}, NextStage: "calculation"},
						},
					},
					{Name: "final_response", Description: "The final answer has been delivered", Transitions: []string{"verification"}},
				},
			},
			model.StrategySelfAsk: {
				Description: "Decompose the question into sub-questions answered in turn",
				Stages: []Stage{
					{
						Name:              "main_question",
						Description:       "State the main question precisely",
						Transitions:       []string{"decomposition"},
						CanSwitchStrategy: true,
						Actions: []Action{
							{
								Name:           "ask_sub_question",
								Description:    "Pose the first sub-question",
								RequiredInputs: []string{"subQuestion"},
								NextStage:      "decomposition",
							},
							{Name: "begin_decomposition", Description: "Start breaking the question down", RequiredInputs: []string{"thought"}, NextStage: "decomposition"},
						},
					},
					{
						Name:        "decomposition",
						Description: "Answer the open sub-question or pose the next one",
						Transitions: []string{"decomposition", "synthesis"},
						Actions: []Action{
							{
								Name:           "answer_sub_question",
								Description:    "Record the answer to the current sub-question",
								RequiredInputs: []string{"subQuestionAnswer"},
								NextStage:      "decomposition",
							},
							{
								Name:           "ask_sub_question",
								Description:    "Pose another sub-question",
								RequiredInputs: []string{"subQuestion"},
								NextStage:      "decomposition",
							},
							{
								Name:           "synthesize",
								Description:    "All sub-questions answered, combine them",
								RequiredInputs: []string{"hypothesis"},
								NextStage:      "synthesis",
							},
							{Name: "continue_decomposition", Description: "Think about the decomposition itself", RequiredInputs: []string{"thought"}, NextStage: "decomposition"},
						},
					},
					{
						Name:        "synthesis",
						Description: "Combine the sub-answers into the final answer",
						Transitions: []string{"decomposition", "final_response"},
						Actions: []Action{
							{Name: "provide_final_answer", Description: "Deliver the final answer", RequiredInputs: []string{"finalAnswer"}, NextStage: "final_response"},
							{Name: "revisit_decomposition", Description: "A sub-answer needs rework", RequiredInputs: []string{"thought"}, NextStage: "decomposition"},
						},
					},
					{Name: "final_response", Description: "The final answer has been delivered", Transitions: []string{"synthesis"}},
				},
			},
			model.StrategySelfConsistency: {
				Description: "Explore several reasoning paths and take the consensus",
				Stages: []Stage{
					{
						Name:              "problem_statement",
						Description:       "State the problem to be solved along multiple paths",
						Transitions:       []string{"path_exploration"},
						CanSwitchStrategy: true,
						Actions: []Action{
							{
								Name:           "open_path",
								Description:    "Open the first reasoning path",
								RequiredInputs: []string{"reasoningPathId"},
								NextStage:      "path_exploration",
							},
							{Name: "begin_exploration", Description: "Start exploring", RequiredInputs: []string{"thought"}, NextStage: "path_exploration"},
						},
					},
					{
						Name:        "path_exploration",
						Description: "Develop the current path or open another",
						Transitions: []string{"path_exploration", "consensus"},
						Actions: []Action{
							{
								Name:           "compare_paths",
								Description:    "All paths have answers, compare them",
								RequiredInputs: []string{"pathAnswers"},
								NextStage:      "consensus",
								Hints:          map[string]string{"pathAnswers": "List of {pathId, answer} pairs"},
							},
							{
								Name:           "open_path",
								Description:    "Open another reasoning path",
								RequiredInputs: []string{"reasoningPathId"},
								NextStage:      "path_exploration",
							},
							{Name: "continue_path", Description: "Develop the current path", RequiredInputs: []string{"thought"}, NextStage: "path_exploration"},
						},
					},
					{
						Name:        "consensus",
						Description: "Pick the most consistent answer across paths",
						Transitions: []string{"path_exploration", "final_response"},
						Actions: []Action{
							{Name: "provide_final_answer", Description: "Deliver the consensus answer", RequiredInputs: []string{"finalAnswer"}, NextStage: "final_response"},
							{Name: "explore_more", Description: "The paths disagree, explore further", RequiredInputs: []string{"thought"}, NextStage: "path_exploration"},
						},
					},
					{Name: "final_response", Description: "The final answer has been delivered", Transitions: []string{"consensus"}},
				},
			},
			model.StrategyStepBack: {
				Description: "Abstract to a general principle before solving the specific case",
				Stages: []Stage{
					{
						Name:              "problem_reception",
						Description:       "Take in the specific problem",
						Transitions:       []string{"abstraction"},
						CanSwitchStrategy: true,
						Actions: []Action{
							{Name: "step_back", Description: "Step back to look for the general principle", RequiredInputs: []string{"thought"}, NextStage: "abstraction"},
						},
					},
					{
						Name:        "abstraction",
						Description: "Identify the general principle behind the problem",
						Transitions: []string{"abstraction", "application"},
						Actions: []Action{
							{
								Name:           "state_principle",
								Description:    "State the governing principle",
								RequiredInputs: []string{"generalPrinciple"},
								NextStage:      "application",
							},
							{Name: "continue_abstraction", Description: "Keep searching for the right abstraction", RequiredInputs: []string{"thought"}, NextStage: "abstraction"},
						},
					},
					{
						Name:        "application",
						Description: "Apply the principle to the specific case",
						Transitions: []string{"abstraction", "final_response"},
						Actions: []Action{
							{Name: "provide_final_answer", Description: "Deliver the derived answer", RequiredInputs: []string{"finalAnswer"}, NextStage: "final_response"},
							{Name: "revisit_principle", Description: "The principle does not fit, step back again", RequiredInputs: []string{"thought"}, NextStage: "abstraction"},
						},
					},
					{Name: "final_response", Description: "The final answer has been delivered", Transitions: []string{"application"}},
				},
			},
			model.StrategyTreeOfThoughts: {
				Description: "Generate multiple approaches, evaluate them and follow the best",
				Stages: []Stage{
					{
						Name:              "problem_definition",
						Description:       "Define the problem and the success criteria",
						Transitions:       []string{"approach_generation"},
						CanSwitchStrategy: true,
						Actions: []Action{
							{Name: "generate_approaches", Description: "Start generating candidate approaches", RequiredInputs: []string{"thought"}, NextStage: "approach_generation"},
						},
					},
					{
						Name:        "approach_generation",
						Description: "Propose candidate approaches to explore",
						Transitions: []string{"approach_generation", "approach_evaluation"},
						Actions: []Action{
							{
								Name:           "list_approaches",
								Description:    "Record the candidate approaches",
								RequiredInputs: []string{"approaches"},
								NextStage:      "approach_evaluation",
								Hints:          map[string]string{"approaches": "List of {id, description} candidates"},
							},
							{Name: "continue_generation", Description: "Brainstorm further candidates", RequiredInputs: []string{"thought"}, NextStage: "approach_generation"},
						},
					},
					{
						Name:        "approach_evaluation",
						Description: "Score the promise of each approach",
						Transitions: []string{"approach_generation", "approach_evaluation", "path_selection"},
						Actions: []Action{
							{
								Name:           "select_path",
								Description:    "Commit to the most promising approach",
								RequiredInputs: []string{"approachId"},
								NextStage:      "path_selection",
							},
							{
								Name:           "score_approach",
								Description:    "Record an evaluation score for the current branch",
								RequiredInputs: []string{"evaluationScore"},
								NextStage:      "approach_evaluation",
							},
							{Name: "generate_more", Description: "None look promising, generate more", RequiredInputs: []string{"thought"}, NextStage: "approach_generation"},
						},
					},
					{
						Name:        "path_selection",
						Description: "Develop the selected approach to its conclusion",
						Transitions: []string{"approach_generation", "path_selection", "final_response"},
						Actions: []Action{
							{Name: "provide_final_answer", Description: "Deliver the answer from the chosen path", RequiredInputs: []string{"finalAnswer"}, NextStage: "final_response"},
							{Name: "develop_path", Description: "Keep developing the chosen path", RequiredInputs: []string{"thought"}, NextStage: "path_selection"},
						},
					},
					{Name: "final_response", Description: "The final answer has been delivered", Transitions: []string{"path_selection"}},
				},
			},
			model.StrategyTrilemma: {
				Description: "Balance three competing objectives through satisficing iterations",
				Stages: []Stage{
					{
						Name:              "objective_definition",
						Description:       "Define the three objectives, their scores and thresholds",
						Transitions:       []string{"objective_definition", "trade_off_analysis"},
						CanSwitchStrategy: true,
						Actions: []Action{
							{
								Name:           "define_objectives",
								Description:    "Record the three competing objectives",
								RequiredInputs: []string{"objectives"},
								NextStage:      "trade_off_analysis",
								Hints:          map[string]string{"objectives": "Exactly three {id, name, currentScore, threshold} entries"},
							},
							{Name: "continue_definition", Description: "Keep sharpening the objectives", RequiredInputs: []string{"thought"}, NextStage: "objective_definition"},
						},
					},
					{
						Name:        "trade_off_analysis",
						Description: "Map how improving one objective affects the others",
						Transitions: []string{"trade_off_analysis", "satisficing_iteration"},
						Actions: []Action{
							{
								Name:           "record_trade_offs",
								Description:    "Record the trade-off matrix",
								RequiredInputs: []string{"tradeOffMatrix"},
								NextStage:      "satisficing_iteration",
							},
							{Name: "continue_analysis", Description: "Keep analyzing interactions", RequiredInputs: []string{"thought"}, NextStage: "trade_off_analysis"},
						},
					},
					{
						Name:        "satisficing_iteration",
						Description: "Adjust the configuration until every threshold is met",
						Transitions: []string{"satisficing_iteration", "equilibrium_check"},
						Actions: []Action{
							{
								Name:           "check_equilibrium",
								Description:    "Test whether all objectives meet their thresholds",
								RequiredInputs: []string{"equilibriumReached"},
								NextStage:      "equilibrium_check",
							},
							{
								Name:           "iterate",
								Description:    "Run another satisficing iteration",
								RequiredInputs: []string{"iterationNumber"},
								NextStage:      "satisficing_iteration",
							},
							{Name: "continue_iteration", Description: "Reason about the next adjustment", RequiredInputs: []string{"thought"}, NextStage: "satisficing_iteration"},
						},
					},
					{
						Name:        "equilibrium_check",
						Description: "Confirm the equilibrium or iterate again",
						Transitions: []string{"satisficing_iteration", "final_response"},
						Actions: []Action{
							{Name: "provide_final_answer", Description: "Deliver the balanced solution", RequiredInputs: []string{"finalAnswer"}, NextStage: "final_response"},
							{Name: "iterate_again", Description: "A threshold is still unmet", RequiredInputs: []string{"thought"}, NextStage: "satisficing_iteration"},
						},
					},
					{Name: "final_response", Description: "The final answer has been delivered", Transitions: []string{"equilibrium_check"}},
				},
			},
		},
	}
}
