package engine

import (
	"fmt"
	"time"

	"github.com/aaronsb/think-strategies/internal/model"
)

// ThoughtLedger is the append-only record of a session's accepted steps.
// It maintains the dual numbering: absolute (session-unique, strictly
// increasing) and sequence (branch-local, restarting at 1 on each branch
// start). The branch index is a secondary view over the same thoughts.
type ThoughtLedger struct {
	thoughts    []*model.Thought
	branches    map[string][]*model.Thought
	branchOrder []string
	absolute    int
	sequence    int
}

// NewThoughtLedger returns an empty ledger.
func NewThoughtLedger() *ThoughtLedger {
	return &ThoughtLedger{branches: make(map[string][]*model.Thought)}
}

// Append stamps the thought with absolute and sequence numbers and
// records it. A thought carrying both branch markers starts (or extends)
// a branch, resetting the sequence counter to 1; any other thought
// increments it. The absolute counter always advances.
func (l *ThoughtLedger) Append(t *model.Thought) *model.Thought {
	l.absolute++
	if t.IsBranchStart() {
		l.sequence = 1
		if _, ok := l.branches[t.BranchID]; !ok {
			l.branches[t.BranchID] = nil
			l.branchOrder = append(l.branchOrder, t.BranchID)
		}
		l.branches[t.BranchID] = append(l.branches[t.BranchID], t)
	} else {
		l.sequence++
	}
	t.AbsoluteNumber = l.absolute
	t.SequenceNumber = l.sequence
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	l.thoughts = append(l.thoughts, t)
	return t
}

// Reset clears the ledger, the branch index and both counters. Invoked
// only on strategy (re)selection, never mid-strategy.
func (l *ThoughtLedger) Reset() {
	l.thoughts = nil
	l.branches = make(map[string][]*model.Thought)
	l.branchOrder = nil
	l.absolute = 0
	l.sequence = 0
}

// Len returns the number of accepted thoughts.
func (l *ThoughtLedger) Len() int {
	return len(l.thoughts)
}

// Thoughts returns the ledger in absolute order.
func (l *ThoughtLedger) Thoughts() []*model.Thought {
	return l.thoughts
}

// BranchIDs returns the branch ids in creation order.
func (l *ThoughtLedger) BranchIDs() []string {
	return l.branchOrder
}

// BranchIndex returns the branch view as absolute numbers per branch id.
func (l *ThoughtLedger) BranchIndex() map[string][]int {
	out := make(map[string][]int, len(l.branches))
	for id, members := range l.branches {
		nums := make([]int, len(members))
		for i, t := range members {
			nums[i] = t.AbsoluteNumber
		}
		out[id] = nums
	}
	return out
}

// FindByAbsolute returns the thought with the given absolute number.
func (l *ThoughtLedger) FindByAbsolute(n int) (*model.Thought, error) {
	for _, t := range l.thoughts {
		if t.AbsoluteNumber == n {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: no thought with absolute number %d", ErrNotFound, n)
}

// Counters returns the current absolute and sequence counter values.
func (l *ThoughtLedger) Counters() (absolute, sequence int) {
	return l.absolute, l.sequence
}

// Restore replaces the ledger contents from stored thoughts, rebuilding
// the branch index from the thoughts' own branch markers and reseeding
// both counters from the last stamped step.
func (l *ThoughtLedger) Restore(thoughts []model.Thought) {
	l.Reset()
	for i := range thoughts {
		t := thoughts[i]
		p := &t
		l.thoughts = append(l.thoughts, p)
		if p.IsBranchStart() {
			if _, ok := l.branches[p.BranchID]; !ok {
				l.branches[p.BranchID] = nil
				l.branchOrder = append(l.branchOrder, p.BranchID)
			}
			l.branches[p.BranchID] = append(l.branches[p.BranchID], p)
		}
	}
	if n := len(l.thoughts); n > 0 {
		last := l.thoughts[n-1]
		l.absolute = last.AbsoluteNumber
		l.sequence = last.SequenceNumber
	}
}
