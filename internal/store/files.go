package store

import (
	"database/sql"
	"fmt"
)

// --- File operations ---

func (s *Store) FileByPath(path string) (*File, error) {
	f := &File{}
	err := s.db.QueryRow(
		"SELECT id, path, hash, include_count, scanned_at FROM files WHERE path = ?", path,
	).Scan(&f.ID, &f.Path, &f.Hash, &f.IncludeCount, &f.ScannedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file by path: %w", err)
	}
	return f, nil
}

// FileCount returns the number of cached files.
func (s *Store) FileCount() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM files").Scan(&n); err != nil {
		return 0, fmt.Errorf("file count: %w", err)
	}
	return n, nil
}

// ReplaceFile stores f and its include targets, replacing whatever was
// cached for the same path. The write is a single transaction.
func (s *Store) ReplaceFile(f *File, targets []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("replace file: begin: %w", err)
	}
	defer tx.Rollback()

	var oldID int64
	err = tx.QueryRow("SELECT id FROM files WHERE path = ?", f.Path).Scan(&oldID)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return fmt.Errorf("replace file: lookup %q: %w", f.Path, err)
	default:
		for _, q := range []string{
			"DELETE FROM includes WHERE file_id = ?",
			"DELETE FROM files WHERE id = ?",
		} {
			if _, err := tx.Exec(q, oldID); err != nil {
				return fmt.Errorf("replace file: delete %q: %w", f.Path, err)
			}
		}
	}

	f.IncludeCount = len(targets)
	res, err := tx.Exec(
		"INSERT INTO files (path, hash, include_count, scanned_at) VALUES (?, ?, ?, ?)",
		f.Path, f.Hash, f.IncludeCount, f.ScannedAt,
	)
	if err != nil {
		return fmt.Errorf("replace file: insert %q: %w", f.Path, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("replace file: last insert id: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO includes (file_id, ordinal, target) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("replace file: prepare: %w", err)
	}
	defer stmt.Close()
	for i, t := range targets {
		if _, err := stmt.Exec(id, i, t); err != nil {
			return fmt.Errorf("replace file: include %q: %w", t, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace file: commit: %w", err)
	}
	f.ID = id
	return nil
}

// --- Include operations ---

// IncludesByFile returns the include targets of a file in scan order.
func (s *Store) IncludesByFile(fileID int64) ([]string, error) {
	rows, err := s.db.Query(
		"SELECT target FROM includes WHERE file_id = ? ORDER BY ordinal", fileID,
	)
	if err != nil {
		return nil, fmt.Errorf("includes by file: %w", err)
	}
	defer rows.Close()
	var targets []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan include: %w", err)
		}
		targets = append(targets, t)
	}
	return targets, rows.Err()
}

// FilesIncluding returns the paths of cached files that include target, sorted.
func (s *Store) FilesIncluding(target string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT DISTINCT f.path FROM includes i
		 JOIN files f ON f.id = i.file_id
		 WHERE i.target = ? ORDER BY f.path`, target,
	)
	if err != nil {
		return nil, fmt.Errorf("files including: %w", err)
	}
	defer rows.Close()
	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan path: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}
