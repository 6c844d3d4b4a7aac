package server

// strategyDocumentation is served as the documentation resource.
const strategyDocumentation = `# Thinking Strategies

Select a strategy by submitting a step with the ` + "`strategy`" + ` field set and
` + "`thoughtNumber: 1`" + `. Every response lists the actions available from the
current stage with their required and optional inputs; supplying the
required inputs of an action triggers its stage transition.

## Core fields

- ` + "`thought`" + ` - the content of the current step (required)
- ` + "`thoughtNumber`" + ` / ` + "`totalThoughts`" + ` - position and estimated length;
  the total adjusts upward automatically if exceeded
- ` + "`nextThoughtNeeded`" + ` - false ends the session and saves it
- ` + "`isRevision`" + ` / ` + "`revisesThought`" + ` - mark a step as revising a prior one
- ` + "`branchFromThought`" + ` / ` + "`branchId`" + ` - fork an alternate line of thought;
  branch steps get their own sequence numbering while keeping a
  session-wide absolute number

## Strategies

### linear
Flexible exploration with revisions and branches. Good default for
open-ended problems where the path is unclear.

### chain_of_thought
Straight sequential reasoning from problem to conclusion, no branching.
Use for problems that decompose cleanly into consecutive steps.

### react
Reason, act, observe, repeat. Supply ` + "`action`" + ` to plan a tool use and
` + "`observation`" + ` to feed its result back in. Use when external information
gathering drives the reasoning.

### rewoo
Plan all tool calls up front (` + "`toolCalls`" + `), then work through the
evidence. Separates planning from execution.

### scratchpad
Iterative calculation with explicit ` + "`stateVariables`" + ` tracked across
steps. Use for arithmetic or algorithmic state tracking.

### self_ask
Decompose the main question into ` + "`subQuestion`" + `s, answer each with
` + "`subQuestionAnswer`" + `, then integrate.

### self_consistency
Run several independent reasoning paths (` + "`reasoningPathId`" + `), collect
` + "`pathAnswers`" + `, and pick the consensus. Use when reliability matters
more than speed.

### step_back
Abstract the ` + "`generalPrinciple`" + ` first, then apply it to the specific
problem. Use when the specific question hides a general pattern.

### tree_of_thoughts
Generate multiple ` + "`approaches`" + `, develop and score them with
` + "`evaluationScore`" + ` (0-10), prune and refine. Use for search-like
problems with distinct solution candidates.

### trilemma
Balance three competing ` + "`objectives`" + ` through iterative satisficing:
assess the ` + "`tradeOffMatrix`" + `, adjust, and stop once
` + "`equilibriumReached`" + ` - acceptable on all three axes rather than
optimal on one.

## Global actions

- ` + "`switch_strategy`" + ` - supply a different ` + "`strategy`" + ` mid-session;
  ` + "`preserveHistory: true`" + ` keeps the accumulated thoughts
- ` + "`request_more_thoughts`" + ` - supply ` + "`needsMoreThoughts`" + ` to extend the
  thought budget

## Sessions

Every accepted step is persisted. Use the ` + "`think-session-manager`" + ` tool
to list, inspect and resume stored sessions, and ` + "`think-tools`" + ` to fork
branches or check server status.
`
