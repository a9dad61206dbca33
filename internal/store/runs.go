package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrRunNotFound is returned when a run id does not exist.
var ErrRunNotFound = errors.New("run not found")

// Run is one invocation of the planner.
type Run struct {
	RunID      string `json:"run_id"`
	CreatedAt  int64  `json:"created_at"` // unix nanoseconds
	SceneName  string `json:"scene_name,omitempty"`
	LayerCount int    `json:"layer_count"`
	ConfigJSON string `json:"config_json"`
}

// RunStore provides persistence for runs.
type RunStore struct {
	db *sql.DB
}

// NewRunStore creates a new RunStore.
func NewRunStore(db *sql.DB) *RunStore {
	return &RunStore{db: db}
}

// Insert creates a run. If run.RunID is empty a new UUID is generated; a
// zero CreatedAt is set to now.
func (s *RunStore) Insert(ctx context.Context, run *Run) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = time.Now().UnixNano()
	}
	if run.ConfigJSON == "" {
		run.ConfigJSON = "{}"
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO plan_runs (run_id, created_at, scene_name, layer_count, config_json)
		VALUES (?, ?, ?, ?, ?)
	`, run.RunID, run.CreatedAt, nullString(run.SceneName), run.LayerCount, run.ConfigJSON)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Get returns the run with the given id.
func (s *RunStore) Get(ctx context.Context, runID string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT run_id, created_at, scene_name, layer_count, config_json
		FROM plan_runs
		WHERE run_id = ?
	`, runID)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// List returns all runs, newest first.
func (s *RunStore) List(ctx context.Context) ([]*Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, created_at, scene_name, layer_count, config_json
		FROM plan_runs
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Delete removes a run and its moves.
func (s *RunStore) Delete(ctx context.Context, runID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM plan_runs WHERE run_id = ?`, runID)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scanner) (*Run, error) {
	run := &Run{}
	var sceneName sql.NullString
	if err := row.Scan(&run.RunID, &run.CreatedAt, &sceneName, &run.LayerCount, &run.ConfigJSON); err != nil {
		return nil, err
	}
	if sceneName.Valid {
		run.SceneName = sceneName.String
	}
	return run, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
