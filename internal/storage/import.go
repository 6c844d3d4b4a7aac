package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aaronsb/think-strategies/internal/model"
)

// legacySession mirrors the session.json layout written by the original
// per-directory JSON storage.
type legacySession struct {
	ID             string                      `json:"id"`
	Timestamp      string                      `json:"timestamp"`
	Strategy       string                      `json:"strategy"`
	SessionPurpose string                      `json:"sessionPurpose"`
	ThoughtHistory []legacyThought             `json:"thoughtHistory"`
	Branches       map[string][]legacyThought  `json:"branches"`
	QualityRating  map[string]int              `json:"qualityRating"`
}

type legacyThought struct {
	Thought           string `json:"thought"`
	ThoughtNumber     int    `json:"thoughtNumber"`
	TotalThoughts     int    `json:"totalThoughts"`
	NextThoughtNeeded bool   `json:"nextThoughtNeeded"`
	CurrentStage      string `json:"currentStage"`
	IsRevision        bool   `json:"isRevision"`
	RevisesThought    int    `json:"revisesThought"`
	BranchFromThought int    `json:"branchFromThought"`
	BranchID          string `json:"branchId"`
	AbsoluteNumber    int    `json:"absoluteNumber"`
	SequenceNumber    int    `json:"sequenceNumber"`
}

// ImportStats summarizes an ImportAll run.
type ImportStats struct {
	Total    int      `json:"total"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// ImportSessionDir reads one legacy session directory (containing
// session.json) and stores it. Absolute and sequence numbers are taken
// verbatim; legacy files written before dual numbering get them
// reconstructed in insertion order.
func (s *SQLiteStore) ImportSessionDir(ctx context.Context, dir string) (*model.Session, error) {
	b, err := os.ReadFile(filepath.Join(dir, "session.json"))
	if err != nil {
		return nil, fmt.Errorf("read session.json: %w", err)
	}

	var legacy legacySession
	if err := json.Unmarshal(b, &legacy); err != nil {
		return nil, fmt.Errorf("parse session.json: %w", err)
	}
	if legacy.ID == "" {
		return nil, fmt.Errorf("session.json has no id")
	}

	sess := &model.Session{
		ID:       legacy.ID,
		Strategy: model.Strategy(legacy.Strategy),
		Purpose:  legacy.SessionPurpose,
		Quality:  legacy.QualityRating,
		Branches: make(map[string][]int),
	}
	if ts, err := time.Parse(time.RFC3339, legacy.Timestamp); err == nil {
		sess.CreatedAt = ts
	}

	seq := 0
	for i, lt := range legacy.ThoughtHistory {
		t := model.Thought{
			Thought:           lt.Thought,
			ThoughtNumber:     lt.ThoughtNumber,
			TotalThoughts:     lt.TotalThoughts,
			NextThoughtNeeded: lt.NextThoughtNeeded,
			Strategy:          sess.Strategy,
			CurrentStage:      lt.CurrentStage,
			IsRevision:        lt.IsRevision,
			RevisesThought:    lt.RevisesThought,
			BranchFromThought: lt.BranchFromThought,
			BranchID:          lt.BranchID,
			AbsoluteNumber:    lt.AbsoluteNumber,
			SequenceNumber:    lt.SequenceNumber,
		}
		if t.AbsoluteNumber == 0 {
			t.AbsoluteNumber = i + 1
		}
		if t.SequenceNumber == 0 {
			if t.IsBranchStart() {
				seq = 1
			} else {
				seq++
			}
			t.SequenceNumber = seq
		} else {
			seq = t.SequenceNumber
		}
		sess.Thoughts = append(sess.Thoughts, t)
		if t.IsBranchStart() {
			sess.Branches[t.BranchID] = append(sess.Branches[t.BranchID], t.AbsoluteNumber)
		}
	}

	if n := len(sess.Thoughts); n > 0 {
		last := sess.Thoughts[n-1]
		sess.CurrentStage = last.CurrentStage
		sess.Completed = !last.NextThoughtNeeded
	}

	if err := s.SaveSession(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// ImportAll walks a legacy storage root (one directory per session) and
// imports every session.json found. Directories without one are skipped.
func (s *SQLiteStore) ImportAll(ctx context.Context, root string) (*ImportStats, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read storage root: %w", err)
	}

	stats := &ImportStats{}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(root, e.Name())
		if _, err := os.Stat(filepath.Join(dir, "session.json")); err != nil {
			stats.Skipped++
			continue
		}
		stats.Total++
		if _, err := s.ImportSessionDir(ctx, dir); err != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("%s: %v", e.Name(), err))
			continue
		}
		stats.Imported++
	}
	return stats, nil
}
