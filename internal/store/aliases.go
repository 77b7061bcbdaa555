package store

import "fmt"

// ListAliases returns every stored alias keyed by name.
func (s *Store) ListAliases() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT name, target FROM aliases ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list aliases: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string]string)
	for rows.Next() {
		var name, target string
		if err := rows.Scan(&name, &target); err != nil {
			return nil, err
		}
		out[name] = target
	}
	return out, rows.Err()
}

// PutAlias creates or replaces an alias.
func (s *Store) PutAlias(name, target string) error {
	_, err := s.db.Exec(`
		INSERT INTO aliases (name, target) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET
			target = excluded.target,
			updated_at = datetime('now')
	`, name, target)
	if err != nil {
		return fmt.Errorf("put alias %s: %w", name, err)
	}
	return nil
}

// DeleteAlias removes an alias. Deleting a missing alias is not an error.
func (s *Store) DeleteAlias(name string) error {
	if _, err := s.db.Exec(`DELETE FROM aliases WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete alias %s: %w", name, err)
	}
	return nil
}
