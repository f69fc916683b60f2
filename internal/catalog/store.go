// Package catalog provides the storage layer for focal.
//
// Imported profiles are kept in a SQLite database (WAL mode) so captured
// runs can be listed and reopened across sessions. The call tree itself is
// stored as a JSON payload next to the metadata used for listings; a tree
// is written once at import time and read back whole, never updated.
package catalog

import (
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/focal-dev/focal/internal/proftree"
)

//go:embed schema.sql
var schemaFS embed.FS

// Store defines the interface for profile persistence. The abstraction
// allows for mocking in tests and potential future backends beyond SQLite.
type Store interface {
	// SaveProfile persists a profile's metadata and serialized tree.
	SaveProfile(meta *ProfileMeta, tree *proftree.Node) error
	// GetProfile loads a profile's tree by ID.
	GetProfile(profileID string) (*ProfileMeta, *proftree.Node, error)
	// ListProfiles returns profiles matching the filter, newest first.
	ListProfiles(filter ProfileFilter) ([]*ProfileMeta, error)
	// DeleteProfile removes a profile and its tree.
	DeleteProfile(profileID string) error

	// Close gracefully shuts down the database connection.
	Close() error
}

// ProfileMeta describes one imported profile.
type ProfileMeta struct {
	ProfileID  string  `json:"profile_id"`
	Name       string  `json:"name"`
	SourcePath string  `json:"source_path"`
	CapturedAt int64   `json:"captured_at"` // Unix nanoseconds
	ImportedAt int64   `json:"imported_at"` // Unix nanoseconds
	NodeCount  int     `json:"node_count"`
	TotalTime  float64 `json:"total_time"`
	TotalAlloc float64 `json:"total_alloc"`
}

// ProfileFilter defines query parameters for profile listing.
type ProfileFilter struct {
	Name   *string `json:"name,omitempty"`
	Since  *int64  `json:"since,omitempty"` // Unix nanoseconds, imported_at
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

// ErrProfileNotFound is returned when a profile ID is unknown.
var ErrProfileNotFound = fmt.Errorf("profile not found")

// ============================================================
// DBService Implementation
// ============================================================

// DBService implements the Store interface using SQLite. It manages the
// connection, prepared statements, and thread-safe access through a
// read-write mutex.
type DBService struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string

	stmtInsertProfile *sql.Stmt
	stmtInsertTree    *sql.Stmt
	stmtDelete        *sql.Stmt
}

// NewDBService creates a new catalog service, initializes the schema, and
// prepares frequently-used statements.
//
// Use ":memory:" for in-memory databases (useful for testing).
func NewDBService(path string) (*DBService, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=ON", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening catalog at %s: %w", path, err)
	}

	// SQLite supports one writer at a time; WAL handles the rest.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	svc := &DBService{db: db, path: path}

	if err := svc.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	if err := svc.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing statements: %w", err)
	}

	return svc, nil
}

func (s *DBService) initSchema() error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("reading embedded schema: %w", err)
	}
	if _, err := s.db.Exec(string(schema)); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}
	return nil
}

func (s *DBService) prepareStatements() error {
	var err error

	s.stmtInsertProfile, err = s.db.Prepare(`
		INSERT INTO profiles (profile_id, name, source_path, captured_at, imported_at,
			node_count, total_time, total_alloc)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(profile_id) DO UPDATE SET
			name = excluded.name,
			source_path = excluded.source_path,
			imported_at = excluded.imported_at,
			node_count = excluded.node_count,
			total_time = excluded.total_time,
			total_alloc = excluded.total_alloc
	`)
	if err != nil {
		return fmt.Errorf("preparing InsertProfile: %w", err)
	}

	s.stmtInsertTree, err = s.db.Prepare(`
		INSERT INTO trees (profile_id, payload) VALUES (?, ?)
		ON CONFLICT(profile_id) DO UPDATE SET payload = excluded.payload
	`)
	if err != nil {
		return fmt.Errorf("preparing InsertTree: %w", err)
	}

	s.stmtDelete, err = s.db.Prepare(`DELETE FROM profiles WHERE profile_id = ?`)
	if err != nil {
		return fmt.Errorf("preparing Delete: %w", err)
	}

	return nil
}

// SaveProfile persists a profile's metadata and serialized tree within a
// single transaction. An existing profile with the same ID is replaced.
func (s *DBService) SaveProfile(meta *ProfileMeta, tree *proftree.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("marshaling tree for profile %s: %w", meta.ProfileID, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.Stmt(s.stmtInsertProfile).Exec(
		meta.ProfileID, meta.Name, meta.SourcePath, meta.CapturedAt, meta.ImportedAt,
		meta.NodeCount, meta.TotalTime, meta.TotalAlloc,
	); err != nil {
		return fmt.Errorf("inserting profile %s: %w", meta.ProfileID, err)
	}

	if _, err := tx.Stmt(s.stmtInsertTree).Exec(meta.ProfileID, payload); err != nil {
		return fmt.Errorf("inserting tree for profile %s: %w", meta.ProfileID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing profile %s: %w", meta.ProfileID, err)
	}
	return nil
}

// GetProfile loads a profile's metadata and tree by ID.
func (s *DBService) GetProfile(profileID string) (*ProfileMeta, *proftree.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meta := &ProfileMeta{}
	var payload []byte
	err := s.db.QueryRow(`
		SELECT p.profile_id, p.name, p.source_path, p.captured_at, p.imported_at,
			p.node_count, p.total_time, p.total_alloc, t.payload
		FROM profiles p
		INNER JOIN trees t ON p.profile_id = t.profile_id
		WHERE p.profile_id = ?
	`, profileID).Scan(
		&meta.ProfileID, &meta.Name, &meta.SourcePath, &meta.CapturedAt, &meta.ImportedAt,
		&meta.NodeCount, &meta.TotalTime, &meta.TotalAlloc, &payload,
	)
	if err == sql.ErrNoRows {
		return nil, nil, fmt.Errorf("%w: %s", ErrProfileNotFound, profileID)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("querying profile %s: %w", profileID, err)
	}

	tree := &proftree.Node{}
	if err := json.Unmarshal(payload, tree); err != nil {
		return nil, nil, fmt.Errorf("unmarshaling tree for profile %s: %w", profileID, err)
	}
	return meta, tree, nil
}

// ListProfiles returns profiles matching the filter, ordered by import
// time descending (most recent first).
func (s *DBService) ListProfiles(filter ProfileFilter) ([]*ProfileMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT profile_id, name, source_path, captured_at, imported_at,
		node_count, total_time, total_alloc FROM profiles WHERE 1=1`
	args := make([]interface{}, 0)

	if filter.Name != nil {
		query += ` AND name = ?`
		args = append(args, *filter.Name)
	}
	if filter.Since != nil {
		query += ` AND imported_at >= ?`
		args = append(args, *filter.Since)
	}

	query += ` ORDER BY imported_at DESC`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	} else {
		query += ` LIMIT 100`
	}
	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	var metas []*ProfileMeta
	for rows.Next() {
		m := &ProfileMeta{}
		if err := rows.Scan(
			&m.ProfileID, &m.Name, &m.SourcePath, &m.CapturedAt, &m.ImportedAt,
			&m.NodeCount, &m.TotalTime, &m.TotalAlloc,
		); err != nil {
			return nil, fmt.Errorf("scanning profile row: %w", err)
		}
		metas = append(metas, m)
	}
	return metas, rows.Err()
}

// DeleteProfile removes a profile; the tree row cascades.
func (s *DBService) DeleteProfile(profileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.stmtDelete.Exec(profileID)
	if err != nil {
		return fmt.Errorf("deleting profile %s: %w", profileID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, profileID)
	}
	return nil
}

// Close gracefully shuts down the database, closing prepared statements
// and the underlying connection.
func (s *DBService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, stmt := range []*sql.Stmt{s.stmtInsertProfile, s.stmtInsertTree, s.stmtDelete} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return s.db.Close()
}

// NowNano returns the current time as Unix nanoseconds, the timestamp unit
// used throughout the catalog.
func NowNano() int64 {
	return time.Now().UnixNano()
}
