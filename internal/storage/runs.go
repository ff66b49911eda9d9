package storage

import (
	"fmt"
	"time"
)

// RunEntry records one finished sandbox session.
type RunEntry struct {
	ID          int64
	SceneID     string
	Frames      int64
	Edits       int
	Points      int // point count when the run ended
	Constraints int
	Duration    time.Duration
	CreatedAt   time.Time
}

// SceneStats contains aggregated run statistics for a scene.
type SceneStats struct {
	SceneID     string
	Runs        int
	TotalFrames int64
	TotalEdits  int64
	LastRun     time.Time
}

// RecordRun stores a finished run. Returns the ID of the inserted record.
func (s *Store) RecordRun(e RunEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (scene_id, frames, edits, points, constraints, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.SceneID, e.Frames, e.Edits, e.Points, e.Constraints, e.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentRuns retrieves the most recent runs, newest first. An empty
// sceneID matches every scene.
func (s *Store) RecentRuns(sceneID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, scene_id, frames, edits, points, constraints, duration_ms, created_at
		 FROM runs
		 WHERE ? = '' OR scene_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		sceneID, sceneID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var durationMS int64
		var createdAt any
		if err := rows.Scan(
			&e.ID, &e.SceneID, &e.Frames, &e.Edits,
			&e.Points, &e.Constraints, &durationMS, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// RunCount returns how many runs were recorded for a scene.
func (s *Store) RunCount(sceneID string) (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM runs WHERE scene_id = ?", sceneID).Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count runs: %w", err)
	}
	return n, nil
}

// AllSceneStats retrieves run statistics for every scene that has been run.
func (s *Store) AllSceneStats() (map[string]*SceneStats, error) {
	rows, err := s.db.Query(
		`SELECT scene_id, COUNT(*), SUM(frames), SUM(edits), MAX(created_at)
		 FROM runs
		 GROUP BY scene_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scene stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*SceneStats)
	for rows.Next() {
		var st SceneStats
		var lastRun any
		if err := rows.Scan(&st.SceneID, &st.Runs, &st.TotalFrames, &st.TotalEdits, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastRun = parseTime(lastRun)
		stats[st.SceneID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
