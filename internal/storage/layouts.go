package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-rope/internal/core"
	"github.com/vovakirdan/tui-rope/internal/rope"
)

// LayoutInfo summarizes a saved layout.
type LayoutInfo struct {
	ID          int64
	Name        string
	SceneID     string // scene the layout was saved from
	Points      int
	Constraints int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SavedLayout is a layout together with its metadata.
type SavedLayout struct {
	Info   LayoutInfo
	Layout rope.Layout
}

// SaveLayout stores a layout under name, replacing any layout with the
// same name. Returns the layout's row ID.
func (s *Store) SaveLayout(name, sceneID string, l rope.Layout) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("storage: layout name is empty")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var id int64
	err = tx.QueryRow("SELECT id FROM layouts WHERE name = ?", name).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, err := tx.Exec(
			"INSERT INTO layouts (name, scene_id, min_points, max_points) VALUES (?, ?, ?, ?)",
			name, sceneID, l.MinPoints, l.MaxPoints,
		)
		if err != nil {
			return 0, fmt.Errorf("storage: cannot save layout: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
		}
	case err != nil:
		return 0, fmt.Errorf("storage: cannot query layout: %w", err)
	default:
		if _, err := tx.Exec(
			`UPDATE layouts SET scene_id = ?, min_points = ?, max_points = ?, updated_at = CURRENT_TIMESTAMP
			 WHERE id = ?`,
			sceneID, l.MinPoints, l.MaxPoints, id,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot update layout: %w", err)
		}
		if err := deleteLayoutRows(tx, id); err != nil {
			return 0, err
		}
	}

	if err := insertLayoutRows(tx, id, l); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit layout: %w", err)
	}
	return id, nil
}

func insertLayoutRows(tx *sql.Tx, id int64, l rope.Layout) error {
	pointStmt, err := tx.Prepare(
		"INSERT INTO layout_points (layout_id, seq, point_id, x, y, mass, locked) VALUES (?, ?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare point insert: %w", err)
	}
	defer pointStmt.Close()

	for i, p := range l.Points {
		if _, err := pointStmt.Exec(id, i, int64(p.ID), p.Position.X, p.Position.Y, p.Mass, p.Locked); err != nil {
			return fmt.Errorf("storage: cannot save point %d: %w", p.ID, err)
		}
	}

	conStmt, err := tx.Prepare(
		"INSERT INTO layout_constraints (layout_id, seq, point_a, point_b, rest_length) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare constraint insert: %w", err)
	}
	defer conStmt.Close()

	for i, c := range l.Constraints {
		if _, err := conStmt.Exec(id, i, int64(c.A), int64(c.B), c.RestLength); err != nil {
			return fmt.Errorf("storage: cannot save constraint %d-%d: %w", c.A, c.B, err)
		}
	}
	return nil
}

func deleteLayoutRows(tx *sql.Tx, id int64) error {
	if _, err := tx.Exec("DELETE FROM layout_points WHERE layout_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot clear layout points: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM layout_constraints WHERE layout_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot clear layout constraints: %w", err)
	}
	return nil
}

// LoadLayout retrieves a layout by name.
// Returns ErrNotFound if no layout has that name.
func (s *Store) LoadLayout(name string) (*SavedLayout, error) {
	var saved SavedLayout
	var createdAt, updatedAt any

	err := s.db.QueryRow(
		`SELECT id, name, scene_id, min_points, max_points, created_at, updated_at
		 FROM layouts WHERE name = ?`,
		name,
	).Scan(
		&saved.Info.ID,
		&saved.Info.Name,
		&saved.Info.SceneID,
		&saved.Layout.MinPoints,
		&saved.Layout.MaxPoints,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: layout %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query layout: %w", err)
	}
	saved.Info.CreatedAt = parseTime(createdAt)
	saved.Info.UpdatedAt = parseTime(updatedAt)

	if saved.Layout.Points, err = s.layoutPoints(saved.Info.ID); err != nil {
		return nil, err
	}
	if saved.Layout.Constraints, err = s.layoutConstraints(saved.Info.ID); err != nil {
		return nil, err
	}
	saved.Info.Points = len(saved.Layout.Points)
	saved.Info.Constraints = len(saved.Layout.Constraints)

	return &saved, nil
}

func (s *Store) layoutPoints(id int64) ([]rope.LayoutPoint, error) {
	rows, err := s.db.Query(
		`SELECT point_id, x, y, mass, locked FROM layout_points
		 WHERE layout_id = ? ORDER BY seq`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query layout points: %w", err)
	}
	defer rows.Close()

	var points []rope.LayoutPoint
	for rows.Next() {
		var (
			pointID int64
			x, y    float64
			p       rope.LayoutPoint
		)
		if err := rows.Scan(&pointID, &x, &y, &p.Mass, &p.Locked); err != nil {
			return nil, fmt.Errorf("storage: cannot scan point row: %w", err)
		}
		p.ID = rope.PointID(pointID)
		p.Position = core.V(x, y)
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return points, nil
}

func (s *Store) layoutConstraints(id int64) ([]rope.LayoutConstraint, error) {
	rows, err := s.db.Query(
		`SELECT point_a, point_b, rest_length FROM layout_constraints
		 WHERE layout_id = ? ORDER BY seq`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query layout constraints: %w", err)
	}
	defer rows.Close()

	var constraints []rope.LayoutConstraint
	for rows.Next() {
		var a, b int64
		var c rope.LayoutConstraint
		if err := rows.Scan(&a, &b, &c.RestLength); err != nil {
			return nil, fmt.Errorf("storage: cannot scan constraint row: %w", err)
		}
		c.A, c.B = rope.PointID(a), rope.PointID(b)
		constraints = append(constraints, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return constraints, nil
}

// ListLayouts returns every saved layout, most recently updated first.
func (s *Store) ListLayouts() ([]LayoutInfo, error) {
	rows, err := s.db.Query(
		`SELECT l.id, l.name, l.scene_id,
		        (SELECT COUNT(*) FROM layout_points p WHERE p.layout_id = l.id),
		        (SELECT COUNT(*) FROM layout_constraints c WHERE c.layout_id = l.id),
		        l.created_at, l.updated_at
		 FROM layouts l
		 ORDER BY l.updated_at DESC, l.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query layouts: %w", err)
	}
	defer rows.Close()

	var infos []LayoutInfo
	for rows.Next() {
		var info LayoutInfo
		var createdAt, updatedAt any
		if err := rows.Scan(
			&info.ID, &info.Name, &info.SceneID,
			&info.Points, &info.Constraints,
			&createdAt, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan layout row: %w", err)
		}
		info.CreatedAt = parseTime(createdAt)
		info.UpdatedAt = parseTime(updatedAt)
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return infos, nil
}

// DeleteLayout removes a layout by name.
// Returns ErrNotFound if no layout has that name.
func (s *Store) DeleteLayout(name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var id int64
	err = tx.QueryRow("SELECT id FROM layouts WHERE name = ?", name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: layout %q", ErrNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot query layout: %w", err)
	}

	if err := deleteLayoutRows(tx, id); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM layouts WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete layout: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}
