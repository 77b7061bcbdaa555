package store

import (
	"fmt"
	"time"

	"github.com/footprint-tools/gshell/internal/domain"
	"github.com/footprint-tools/gshell/internal/log"
)

// AppendHistory records one executed line.
func (s *Store) AppendHistory(e domain.HistoryEntry) error {
	if e.ExecutedAt.IsZero() {
		e.ExecutedAt = time.Now()
	}
	_, err := s.db.Exec(`
		INSERT INTO history (session_id, line, status, exit_code, duration_ms, executed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		e.SessionID,
		e.Line,
		e.Status,
		e.ExitCode,
		e.Duration.Milliseconds(),
		e.ExecutedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		log.Error("store: append history failed: %v", err)
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

// RecentHistory returns up to limit entries, oldest first. A limit of zero
// or less returns everything.
func (s *Store) RecentHistory(limit int) ([]domain.HistoryEntry, error) {
	query := `
		SELECT id, session_id, line, status, exit_code, duration_ms, executed_at
		FROM history
		ORDER BY id DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("recent history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []domain.HistoryEntry
	for rows.Next() {
		var (
			e          domain.HistoryEntry
			durationMS int64
			ts         string
		)
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Line, &e.Status, &e.ExitCode, &durationMS, &ts); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse executed_at %q: %w", ts, err)
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.ExecutedAt = t
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// ClearHistory deletes every recorded line.
func (s *Store) ClearHistory() error {
	if _, err := s.db.Exec(`DELETE FROM history`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// TrimHistory keeps only the newest keep entries.
func (s *Store) TrimHistory(keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	result, err := s.db.Exec(`
		DELETE FROM history
		WHERE id NOT IN (SELECT id FROM history ORDER BY id DESC LIMIT ?)
	`, keep)
	if err != nil {
		return 0, fmt.Errorf("trim history: %w", err)
	}
	return result.RowsAffected()
}
