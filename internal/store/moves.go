package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/banshee-data/zhop/internal/obstacle"
	"github.com/banshee-data/zhop/internal/planner"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
)

// Move is one persisted travel move.
type Move struct {
	MoveID         string
	RunID          string
	LayerIndex     int
	EmissionIndex  int
	PrintZ         float64
	FromX, FromY   float64
	ToX, ToY       float64
	Length         float64
	LiftHeight     float64
	SlopeEnd       float64
	BlendWidth     float64
	ParabolaPoints int
	// ObstacleDistance is nil when no obstacle was found.
	ObstacleDistance *float64
	Lifted           bool
	Elevated         bool
	Points           []r3.Vec
}

// MoveStore provides persistence for travel moves.
type MoveStore struct {
	db *sql.DB
}

// NewMoveStore creates a new MoveStore.
func NewMoveStore(db *sql.DB) *MoveStore {
	return &MoveStore{db: db}
}

// MovesFromLayer converts a planned layer into moves of the given run.
func MovesFromLayer(runID string, res planner.LayerResult) []*Move {
	moves := make([]*Move, 0, len(res.Moves))
	for _, m := range res.Moves {
		mv := &Move{
			RunID:          runID,
			LayerIndex:     res.LayerIndex,
			EmissionIndex:  m.Emission,
			PrintZ:         res.PrintZ,
			FromX:          m.From.X,
			FromY:          m.From.Y,
			ToX:            m.To.X,
			ToY:            m.To.Y,
			Length:         m.Plan.Length,
			LiftHeight:     m.Plan.Params.LiftHeight,
			SlopeEnd:       m.Plan.Params.SlopeEnd,
			BlendWidth:     m.Plan.Params.BlendWidth,
			ParabolaPoints: m.Plan.Params.ParabolaPointsCount,
			Lifted:         m.Plan.Lifted,
			Elevated:       m.Plan.Elevated,
			Points:         m.Plan.Points,
		}
		if d := m.Plan.ObstacleDistance; d != obstacle.NoObstacle {
			mv.ObstacleDistance = &d
		}
		moves = append(moves, mv)
	}
	return moves
}

// InsertBatch stores moves in one transaction. Moves without an id get a
// new UUID.
func (s *MoveStore) InsertBatch(ctx context.Context, moves []*Move) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin move batch: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO plan_moves (
			move_id, run_id, layer_index, emission_index, print_z,
			from_x, from_y, to_x, to_y, length,
			lift_height, slope_end, blend_width, parabola_points,
			obstacle_distance, lifted, elevated, points_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare move insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range moves {
		if m.MoveID == "" {
			m.MoveID = uuid.New().String()
		}
		points, err := encodePoints(m.Points)
		if err != nil {
			return fmt.Errorf("encode move %s points: %w", m.MoveID, err)
		}
		_, err = stmt.ExecContext(ctx,
			m.MoveID, m.RunID, m.LayerIndex, m.EmissionIndex, m.PrintZ,
			m.FromX, m.FromY, m.ToX, m.ToY, m.Length,
			m.LiftHeight, m.SlopeEnd, m.BlendWidth, m.ParabolaPoints,
			nullFloat64(m.ObstacleDistance), m.Lifted, m.Elevated, points,
		)
		if err != nil {
			return fmt.Errorf("insert move: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit move batch: %w", err)
	}
	return nil
}

// ListByRun returns the moves of a run ordered by layer and emission.
// A negative layer returns every layer.
func (s *MoveStore) ListByRun(ctx context.Context, runID string, layer int) ([]*Move, error) {
	query := `
		SELECT move_id, run_id, layer_index, emission_index, print_z,
		       from_x, from_y, to_x, to_y, length,
		       lift_height, slope_end, blend_width, parabola_points,
		       obstacle_distance, lifted, elevated, points_json
		FROM plan_moves
		WHERE run_id = ? AND (? < 0 OR layer_index = ?)
		ORDER BY layer_index, emission_index
	`
	rows, err := s.db.QueryContext(ctx, query, runID, layer, layer)
	if err != nil {
		return nil, fmt.Errorf("list moves: %w", err)
	}
	defer rows.Close()

	var moves []*Move
	for rows.Next() {
		m := &Move{}
		var obstacleDist sql.NullFloat64
		var points string
		err := rows.Scan(
			&m.MoveID, &m.RunID, &m.LayerIndex, &m.EmissionIndex, &m.PrintZ,
			&m.FromX, &m.FromY, &m.ToX, &m.ToY, &m.Length,
			&m.LiftHeight, &m.SlopeEnd, &m.BlendWidth, &m.ParabolaPoints,
			&obstacleDist, &m.Lifted, &m.Elevated, &points,
		)
		if err != nil {
			return nil, fmt.Errorf("scan move: %w", err)
		}
		if obstacleDist.Valid {
			m.ObstacleDistance = &obstacleDist.Float64
		}
		if m.Points, err = decodePoints(points); err != nil {
			return nil, fmt.Errorf("decode move %s points: %w", m.MoveID, err)
		}
		moves = append(moves, m)
	}
	return moves, rows.Err()
}

// CountByRun returns the number of moves stored for a run.
func (s *MoveStore) CountByRun(ctx context.Context, runID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM plan_moves WHERE run_id = ?`, runID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count moves: %w", err)
	}
	return n, nil
}

func encodePoints(pts []r3.Vec) (string, error) {
	raw := make([][3]float64, len(pts))
	for i, p := range pts {
		raw[i] = [3]float64{p.X, p.Y, p.Z}
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodePoints(s string) ([]r3.Vec, error) {
	var raw [][3]float64
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, err
	}
	pts := make([]r3.Vec, len(raw))
	for i, p := range raw {
		pts[i] = r3.Vec{X: p[0], Y: p[1], Z: p[2]}
	}
	return pts, nil
}

func nullFloat64(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
