package bookmarks

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	s := &Store{writeDB: writeDB}
	// Schema must exist before a read-only handle can see it.
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}

	readDB, err := sql.Open("sqlite", "file:"+dbPath+"?mode=ro")
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}
	s.readDB = readDB
	return s, nil
}

func (s *Store) init() error {
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS bookmarks (
			url         TEXT NOT NULL,
			kind        TEXT NOT NULL,
			title       TEXT NOT NULL,
			source      TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			image       TEXT NOT NULL DEFAULT '',
			published   TEXT NOT NULL DEFAULT '',
			saved_at    DATETIME NOT NULL,
			PRIMARY KEY (url, kind)
		);
		CREATE INDEX IF NOT EXISTS idx_bookmarks_saved ON bookmarks(saved_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// Save inserts or refreshes a bookmark. SavedAt defaults to now.
func (s *Store) Save(b Bookmark) error {
	if b.URL == "" {
		return fmt.Errorf("bookmark url is required")
	}
	if _, ok := ParseKind(string(b.Kind)); !ok {
		return fmt.Errorf("unknown bookmark kind %q", b.Kind)
	}
	if b.SavedAt.IsZero() {
		b.SavedAt = time.Now()
	}
	_, err := s.writeDB.Exec(`
		INSERT INTO bookmarks (url, kind, title, source, description, image, published, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url, kind) DO UPDATE SET
			title = excluded.title,
			source = excluded.source,
			description = excluded.description,
			image = excluded.image,
			published = excluded.published
	`, b.URL, string(b.Kind), b.Title, b.Source, b.Description, b.Image, b.Published, b.SavedAt)
	if err != nil {
		return fmt.Errorf("saving bookmark %s: %w", b.URL, err)
	}
	return nil
}

func (s *Store) Remove(url string, kind Kind) error {
	_, err := s.writeDB.Exec("DELETE FROM bookmarks WHERE url = ? AND kind = ?", url, string(kind))
	if err != nil {
		return fmt.Errorf("removing bookmark %s: %w", url, err)
	}
	return nil
}

// Toggle saves b if it is not on its list yet, otherwise removes it.
// It reports whether the article is saved afterwards.
func (s *Store) Toggle(b Bookmark) (bool, error) {
	var exists int
	err := s.writeDB.QueryRow(
		"SELECT COUNT(*) FROM bookmarks WHERE url = ? AND kind = ?", b.URL, string(b.Kind),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking bookmark: %w", err)
	}
	if exists > 0 {
		return false, s.Remove(b.URL, b.Kind)
	}
	return true, s.Save(b)
}

// MarkSet returns the lists every saved URL is on.
func (s *Store) MarkSet() (map[string]Marks, error) {
	rows, err := s.readDB.Query("SELECT url, kind FROM bookmarks")
	if err != nil {
		return nil, fmt.Errorf("querying marks: %w", err)
	}
	defer rows.Close()

	marks := make(map[string]Marks)
	for rows.Next() {
		var url, kind string
		if err := rows.Scan(&url, &kind); err != nil {
			return nil, fmt.Errorf("scanning mark: %w", err)
		}
		m := marks[url]
		switch Kind(kind) {
		case KindReadLater:
			m.ReadLater = true
		case KindFavorite:
			m.Favorite = true
		}
		marks[url] = m
	}
	return marks, rows.Err()
}

func (s *Store) List(opts QueryOpts) ([]Bookmark, error) {
	var (
		where []string
		args  []interface{}
	)

	if opts.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, string(opts.Kind))
	}

	if opts.Search != "" {
		where = append(where, "(title LIKE ? OR description LIKE ? OR source LIKE ?)")
		term := "%" + opts.Search + "%"
		args = append(args, term, term, term)
	}

	query := "SELECT url, kind, title, source, description, image, published, saved_at FROM bookmarks"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY saved_at DESC"

	limit := opts.Limit
	if limit <= 0 {
		limit = 500
	}
	query += fmt.Sprintf(" LIMIT %d", limit)

	rows, err := s.readDB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying bookmarks: %w", err)
	}
	defer rows.Close()

	var out []Bookmark
	for rows.Next() {
		var (
			b    Bookmark
			kind string
		)
		if err := rows.Scan(&b.URL, &kind, &b.Title, &b.Source, &b.Description, &b.Image, &b.Published, &b.SavedAt); err != nil {
			return nil, fmt.Errorf("scanning bookmark: %w", err)
		}
		b.Kind = Kind(kind)
		out = append(out, b)
	}
	return out, rows.Err()
}

// Prune deletes bookmarks saved longer ago than olderThan.
func (s *Store) Prune(olderThan time.Duration) (int64, error) {
	res, err := s.writeDB.Exec("DELETE FROM bookmarks WHERE saved_at < ?", time.Now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("pruning bookmarks: %w", err)
	}
	return res.RowsAffected()
}

// Stats returns per-kind counts and the database file size.
func (s *Store) Stats(dbPath string) (map[Kind]int, int64, error) {
	rows, err := s.readDB.Query("SELECT kind, COUNT(*) FROM bookmarks GROUP BY kind")
	if err != nil {
		return nil, 0, fmt.Errorf("counting bookmarks: %w", err)
	}
	defer rows.Close()

	counts := make(map[Kind]int)
	for rows.Next() {
		var (
			kind string
			n    int
		)
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, 0, err
		}
		counts[Kind(kind)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	info, err := os.Stat(dbPath)
	if err != nil {
		return nil, 0, fmt.Errorf("stat %s: %w", dbPath, err)
	}
	return counts, info.Size(), nil
}
