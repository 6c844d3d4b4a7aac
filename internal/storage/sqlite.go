package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/aaronsb/think-strategies/internal/model"
)

// SQLiteStore implements Store using SQLite. The branch index is not
// stored separately: it is rebuilt from the thoughts' own branch markers
// on load, so it can never diverge from the ledger.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id            TEXT PRIMARY KEY,
		strategy      TEXT NOT NULL,
		purpose       TEXT,
		quality       TEXT,
		current_stage TEXT,
		stage_history TEXT,
		completed     INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_strategy ON sessions(strategy);
	CREATE INDEX IF NOT EXISTS idx_sessions_updated ON sessions(updated_at DESC);

	CREATE TABLE IF NOT EXISTS thoughts (
		id                  TEXT PRIMARY KEY,
		session_id          TEXT NOT NULL REFERENCES sessions(id),
		absolute_number     INTEGER NOT NULL,
		sequence_number     INTEGER NOT NULL,
		thought_number      INTEGER NOT NULL,
		total_thoughts      INTEGER NOT NULL,
		content             TEXT NOT NULL,
		next_thought_needed INTEGER NOT NULL,
		current_stage       TEXT,
		is_revision         INTEGER NOT NULL DEFAULT 0,
		revises_thought     INTEGER,
		branch_from         INTEGER,
		branch_id           TEXT,
		extra               TEXT,
		created_at          TEXT NOT NULL,
		UNIQUE(session_id, absolute_number)
	);
	CREATE INDEX IF NOT EXISTS idx_thoughts_session ON thoughts(session_id, absolute_number);
	CREATE INDEX IF NOT EXISTS idx_thoughts_branch ON thoughts(session_id, branch_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveSession upserts the session row and every thought in one
// transaction. Thought rows are keyed by (session, absolute number) so a
// per-step save after each accepted thought is an idempotent upsert.
func (s *SQLiteStore) SaveSession(ctx context.Context, sess *model.Session) error {
	now := time.Now().UTC()

	var qualityJSON *string
	if len(sess.Quality) > 0 {
		b, _ := json.Marshal(sess.Quality)
		str := string(b)
		qualityJSON = &str
	}
	var historyJSON *string
	if len(sess.StageHistory) > 0 {
		b, _ := json.Marshal(sess.StageHistory)
		str := string(b)
		historyJSON = &str
	}

	createdAt := sess.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, strategy, purpose, quality, current_stage, stage_history, completed, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   strategy = excluded.strategy,
		   purpose = COALESCE(excluded.purpose, sessions.purpose),
		   quality = COALESCE(excluded.quality, sessions.quality),
		   current_stage = excluded.current_stage,
		   stage_history = excluded.stage_history,
		   completed = excluded.completed,
		   updated_at = excluded.updated_at`,
		sess.ID, string(sess.Strategy), nullableString(sess.Purpose), qualityJSON,
		sess.CurrentStage, historyJSON, boolToInt(sess.Completed),
		createdAt.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}

	for i := range sess.Thoughts {
		t := &sess.Thoughts[i]

		var extraJSON *string
		if len(t.Extra) > 0 {
			b, _ := json.Marshal(t.Extra)
			str := string(b)
			extraJSON = &str
		}

		thoughtCreated := t.CreatedAt
		if thoughtCreated.IsZero() {
			thoughtCreated = now
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO thoughts (id, session_id, absolute_number, sequence_number, thought_number, total_thoughts,
			                       content, next_thought_needed, current_stage, is_revision, revises_thought,
			                       branch_from, branch_id, extra, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(session_id, absolute_number) DO UPDATE SET
			   sequence_number = excluded.sequence_number,
			   thought_number = excluded.thought_number,
			   total_thoughts = excluded.total_thoughts,
			   content = excluded.content,
			   next_thought_needed = excluded.next_thought_needed,
			   current_stage = excluded.current_stage,
			   is_revision = excluded.is_revision,
			   revises_thought = excluded.revises_thought,
			   branch_from = excluded.branch_from,
			   branch_id = excluded.branch_id,
			   extra = excluded.extra`,
			s.newID(), sess.ID, t.AbsoluteNumber, t.SequenceNumber, t.ThoughtNumber, t.TotalThoughts,
			t.Thought, boolToInt(t.NextThoughtNeeded), t.CurrentStage, boolToInt(t.IsRevision),
			nullableInt(t.RevisesThought), nullableInt(t.BranchFromThought), nullableString(t.BranchID),
			extraJSON, thoughtCreated.Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("upsert thought A%d: %w", t.AbsoluteNumber, err)
		}
	}

	return tx.Commit()
}

// LoadSession reads a session and its thoughts in absolute order,
// rebuilding the branch index from branch markers.
func (s *SQLiteStore) LoadSession(ctx context.Context, id string) (*model.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, strategy, purpose, quality, current_stage, stage_history, completed, created_at, updated_at
		 FROM sessions WHERE id = ?`, id)

	sess := &model.Session{Branches: make(map[string][]int)}
	var purpose, quality, stage, history sql.NullString
	var completed int
	var createdAt, updatedAt string
	var strategy string

	err := row.Scan(&sess.ID, &strategy, &purpose, &quality, &stage, &history, &completed, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	sess.Strategy = model.Strategy(strategy)
	sess.Completed = completed != 0
	sess.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	sess.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	if purpose.Valid {
		sess.Purpose = purpose.String
	}
	if stage.Valid {
		sess.CurrentStage = stage.String
	}
	if quality.Valid {
		json.Unmarshal([]byte(quality.String), &sess.Quality)
	}
	if history.Valid {
		json.Unmarshal([]byte(history.String), &sess.StageHistory)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT absolute_number, sequence_number, thought_number, total_thoughts, content, next_thought_needed,
		        current_stage, is_revision, revises_thought, branch_from, branch_id, extra, created_at
		 FROM thoughts WHERE session_id = ? ORDER BY absolute_number`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		t, err := scanThought(rows)
		if err != nil {
			return nil, err
		}
		t.Strategy = sess.Strategy
		sess.Thoughts = append(sess.Thoughts, t)
		if t.IsBranchStart() {
			sess.Branches[t.BranchID] = append(sess.Branches[t.BranchID], t.AbsoluteNumber)
		}
	}
	return sess, rows.Err()
}

// ListSessions returns session summaries, newest first.
func (s *SQLiteStore) ListSessions(ctx context.Context, p ListParams) ([]model.SessionSummary, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	where := []string{"1=1"}
	args := []interface{}{}
	if p.Strategy != "" {
		where = append(where, "s.strategy = ?")
		args = append(args, p.Strategy)
	}
	if p.Completed != nil {
		where = append(where, "s.completed = ?")
		args = append(args, boolToInt(*p.Completed))
	}

	query := fmt.Sprintf(`
		SELECT s.id, s.strategy, s.purpose, s.completed, s.created_at, s.updated_at,
		       (SELECT COUNT(*) FROM thoughts t WHERE t.session_id = s.id),
		       (SELECT COUNT(DISTINCT t.branch_id) FROM thoughts t WHERE t.session_id = s.id AND t.branch_id IS NOT NULL)
		FROM sessions s
		WHERE %s
		ORDER BY s.updated_at DESC
		LIMIT ?`, strings.Join(where, " AND "))
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []model.SessionSummary
	for rows.Next() {
		var sum model.SessionSummary
		var purpose sql.NullString
		var completed int
		var createdAt, updatedAt, strategy string
		if err := rows.Scan(&sum.ID, &strategy, &purpose, &completed, &createdAt, &updatedAt, &sum.ThoughtCount, &sum.BranchCount); err != nil {
			return nil, err
		}
		sum.Strategy = model.Strategy(strategy)
		sum.Completed = completed != 0
		sum.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		sum.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		if purpose.Valid {
			sum.Purpose = purpose.String
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// SetEnhancements attaches purpose and quality metadata to a session.
func (s *SQLiteStore) SetEnhancements(ctx context.Context, id, purpose string, quality map[string]int) error {
	var qualityJSON *string
	if len(quality) > 0 {
		b, _ := json.Marshal(quality)
		str := string(b)
		qualityJSON = &str
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET
		   purpose = COALESCE(?, purpose),
		   quality = COALESCE(?, quality),
		   updated_at = ?
		 WHERE id = ?`,
		nullableString(purpose), qualityJSON, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanThought(row scanner) (model.Thought, error) {
	var t model.Thought
	var stage, branchID, extra sql.NullString
	var revises, branchFrom sql.NullInt64
	var next, revision int
	var createdAt string

	err := row.Scan(
		&t.AbsoluteNumber, &t.SequenceNumber, &t.ThoughtNumber, &t.TotalThoughts,
		&t.Thought, &next, &stage, &revision, &revises, &branchFrom, &branchID,
		&extra, &createdAt,
	)
	if err != nil {
		return t, err
	}

	t.NextThoughtNeeded = next != 0
	t.IsRevision = revision != 0
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if stage.Valid {
		t.CurrentStage = stage.String
	}
	if revises.Valid {
		t.RevisesThought = int(revises.Int64)
	}
	if branchFrom.Valid {
		t.BranchFromThought = int(branchFrom.Int64)
	}
	if branchID.Valid {
		t.BranchID = branchID.String
	}
	if extra.Valid {
		json.Unmarshal([]byte(extra.String), &t.Extra)
	}
	return t, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullableInt(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
