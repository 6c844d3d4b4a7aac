package engine

import (
	"errors"
	"testing"

	"github.com/aaronsb/think-strategies/internal/model"
)

func TestAppendStampsAbsoluteNumbers(t *testing.T) {
	l := NewThoughtLedger()

	for i := 1; i <= 5; i++ {
		got := l.Append(&model.Thought{Thought: "step", ThoughtNumber: i})
		if got.AbsoluteNumber != i {
			t.Errorf("step %d: expected absolute %d, got %d", i, i, got.AbsoluteNumber)
		}
		if got.SequenceNumber != i {
			t.Errorf("step %d: expected sequence %d, got %d", i, i, got.SequenceNumber)
		}
		if got.CreatedAt.IsZero() {
			t.Error("expected CreatedAt stamped")
		}
	}
	if l.Len() != 5 {
		t.Errorf("expected 5 thoughts, got %d", l.Len())
	}
}

func TestBranchResetsSequence(t *testing.T) {
	l := NewThoughtLedger()

	l.Append(&model.Thought{Thought: "a"})
	l.Append(&model.Thought{Thought: "b"})
	l.Append(&model.Thought{Thought: "c"})

	b1 := l.Append(&model.Thought{Thought: "alt", BranchFromThought: 2, BranchID: "alt-path"})
	if b1.AbsoluteNumber != 4 {
		t.Errorf("branch start: expected absolute 4, got %d", b1.AbsoluteNumber)
	}
	if b1.SequenceNumber != 1 {
		t.Errorf("branch start: expected sequence 1, got %d", b1.SequenceNumber)
	}

	b2 := l.Append(&model.Thought{Thought: "alt 2"})
	if b2.AbsoluteNumber != 5 || b2.SequenceNumber != 2 {
		t.Errorf("branch continuation: got A%d S%d", b2.AbsoluteNumber, b2.SequenceNumber)
	}
}

func TestBranchIndexIsSecondaryView(t *testing.T) {
	l := NewThoughtLedger()

	l.Append(&model.Thought{Thought: "main"})
	l.Append(&model.Thought{Thought: "fork a", BranchFromThought: 1, BranchID: "a"})
	l.Append(&model.Thought{Thought: "fork b", BranchFromThought: 1, BranchID: "b"})
	l.Append(&model.Thought{Thought: "fork a again", BranchFromThought: 1, BranchID: "a"})

	idx := l.BranchIndex()
	if len(idx["a"]) != 2 || idx["a"][0] != 2 || idx["a"][1] != 4 {
		t.Errorf("branch a index wrong: %v", idx["a"])
	}
	if len(idx["b"]) != 1 || idx["b"][0] != 3 {
		t.Errorf("branch b index wrong: %v", idx["b"])
	}

	// Every branch member sits in the main ledger at its absolute slot.
	for id, nums := range idx {
		for _, n := range nums {
			got, err := l.FindByAbsolute(n)
			if err != nil {
				t.Fatalf("branch %s member %d missing from ledger: %v", id, n, err)
			}
			if got.BranchID != id {
				t.Errorf("thought %d: expected branch %s, got %s", n, id, got.BranchID)
			}
		}
	}

	ids := l.BranchIDs()
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("branch ids not in creation order: %v", ids)
	}
}

func TestFindByAbsoluteNotFound(t *testing.T) {
	l := NewThoughtLedger()
	l.Append(&model.Thought{Thought: "only"})

	if _, err := l.FindByAbsolute(9); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReset(t *testing.T) {
	l := NewThoughtLedger()
	l.Append(&model.Thought{Thought: "x", BranchFromThought: 1, BranchID: "b"})
	l.Reset()

	if l.Len() != 0 {
		t.Errorf("expected empty ledger, got %d", l.Len())
	}
	abs, seq := l.Counters()
	if abs != 0 || seq != 0 {
		t.Errorf("expected zeroed counters, got %d/%d", abs, seq)
	}
	first := l.Append(&model.Thought{Thought: "fresh"})
	if first.AbsoluteNumber != 1 {
		t.Errorf("post-reset append should restart at 1, got %d", first.AbsoluteNumber)
	}
}

func TestRestoreReseedsCounters(t *testing.T) {
	l := NewThoughtLedger()
	l.Restore([]model.Thought{
		{Thought: "a", AbsoluteNumber: 1, SequenceNumber: 1},
		{Thought: "b", AbsoluteNumber: 2, SequenceNumber: 2},
		{Thought: "fork", AbsoluteNumber: 3, SequenceNumber: 1, BranchFromThought: 2, BranchID: "side"},
	})

	if l.Len() != 3 {
		t.Fatalf("expected 3 restored thoughts, got %d", l.Len())
	}
	abs, seq := l.Counters()
	if abs != 3 || seq != 1 {
		t.Errorf("counters not reseeded: abs %d seq %d", abs, seq)
	}
	idx := l.BranchIndex()
	if len(idx["side"]) != 1 || idx["side"][0] != 3 {
		t.Errorf("branch index not rebuilt: %v", idx)
	}

	next := l.Append(&model.Thought{Thought: "continue"})
	if next.AbsoluteNumber != 4 || next.SequenceNumber != 2 {
		t.Errorf("continuation after restore: got A%d S%d", next.AbsoluteNumber, next.SequenceNumber)
	}
}
