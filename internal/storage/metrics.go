package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaronsb/think-strategies/internal/model"
)

// SessionMetrics derives the automatic quality numbers for a stored
// session straight from SQL aggregates.
func (s *SQLiteStore) SessionMetrics(ctx context.Context, id string) (*model.SessionMetrics, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions WHERE id = ?`, id).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	m := &model.SessionMetrics{}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COUNT(DISTINCT branch_id),
		        COALESCE(SUM(is_revision), 0),
		        COALESCE(AVG(LENGTH(content)), 0)
		 FROM thoughts WHERE session_id = ?`, id).
		Scan(&m.ThoughtCount, &m.BranchCount, &m.RevisionCount, &m.AvgThoughtLength)
	if err != nil {
		return nil, err
	}

	var stage sql.NullString
	var next int
	err = s.db.QueryRowContext(ctx,
		`SELECT current_stage, next_thought_needed FROM thoughts
		 WHERE session_id = ? ORDER BY absolute_number DESC LIMIT 1`, id).
		Scan(&stage, &next)
	if err == nil {
		if stage.Valid {
			m.FinalStage = stage.String
		}
		m.Completed = next == 0
	} else if err != sql.ErrNoRows {
		return nil, err
	}

	return m, nil
}
