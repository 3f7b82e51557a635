package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	mdwerror "github.com/msto63/fragment/foundation/core/error"
	mdwast "github.com/msto63/fragment/foundation/fragment/ast"
)

// Kinds of recorded rows
const (
	KindDefinition = "definition"
	KindExtern     = "extern"
	KindExpression = "expression"
	KindError      = "error"
)

// Entry is one parsed construct or one parse failure
type Entry struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"session_id"`
	Timestamp    time.Time `json:"timestamp"`
	Source       string    `json:"source"`
	Line         int       `json:"line"`
	Kind         string    `json:"kind"`
	Name         string    `json:"name,omitempty"`
	Params       []string  `json:"params,omitempty"`
	Rendered     string    `json:"rendered,omitempty"`
	ErrorCode    string    `json:"error_code,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

// Filter defines criteria for querying history
type Filter struct {
	Source     string
	SessionID  string
	Kind       string
	ErrorsOnly bool
	Since      time.Time
	Limit      int
	Offset     int
}

// Stats summarises the stored history
type Stats struct {
	Total     int64
	Sessions  int64
	Sources   int64
	ByKind    map[string]int64
	LastEntry time.Time
}

// Store defines the interface for parse history persistence
type Store interface {
	Record(ctx context.Context, entry *Entry) error
	RecordUnit(ctx context.Context, sessionID, source string, nodes []mdwast.Node, parseErr error) (int, error)
	Query(ctx context.Context, filter Filter) ([]*Entry, error)
	Stats(ctx context.Context) (*Stats, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Close() error
}

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// Config holds configuration for the SQLite store
type Config struct {
	Path string
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Path: "./data/history.db",
	}
}

func dbError(err error, message string) error {
	return mdwerror.Wrap(err, message).
		WithCode(mdwerror.CodeDatabaseError).
		WithOperation("history")
}

// NewSQLiteStore opens or creates the history database
func NewSQLiteStore(cfg Config) (*SQLiteStore, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, dbError(err, "failed to create directory")
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, dbError(err, "failed to open database")
	}

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, dbError(err, "failed to initialize schema")
	}

	return store, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS parses (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		timestamp DATETIME NOT NULL,
		source TEXT NOT NULL,
		line INTEGER NOT NULL,
		kind TEXT NOT NULL,
		name TEXT,
		params TEXT,
		rendered TEXT,
		error_code TEXT,
		error_message TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_parses_timestamp ON parses(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_parses_source ON parses(source);
	CREATE INDEX IF NOT EXISTS idx_parses_session ON parses(session_id);
	CREATE INDEX IF NOT EXISTS idx_parses_kind ON parses(kind);
	`

	_, err := s.db.Exec(schema)
	return err
}

const insertEntry = `
	INSERT INTO parses (id, session_id, timestamp, source, line, kind, name, params, rendered, error_code, error_message)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func insert(ctx context.Context, db execer, entry *Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	var paramsJSON []byte
	if entry.Params != nil {
		paramsJSON, _ = json.Marshal(entry.Params)
	}

	_, err := db.ExecContext(ctx, insertEntry,
		entry.ID, entry.SessionID, entry.Timestamp.UTC(), entry.Source, entry.Line, entry.Kind,
		entry.Name, paramsJSON, entry.Rendered, entry.ErrorCode, entry.ErrorMessage)
	return err
}

// Record stores a single entry
func (s *SQLiteStore) Record(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := insert(ctx, s.db, entry); err != nil {
		return dbError(err, "failed to insert history entry")
	}
	return nil
}

// RecordUnit stores one row per parsed construct and, when parseErr is
// set, one error row. It returns the number of rows written.
func (s *SQLiteStore) RecordUnit(ctx context.Context, sessionID, source string, nodes []mdwast.Node, parseErr error) (int, error) {
	entries := EntriesFor(sessionID, source, nodes, parseErr)

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, dbError(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	for _, entry := range entries {
		if err := insert(ctx, tx, entry); err != nil {
			return 0, dbError(err, "failed to insert history entry")
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, dbError(err, "failed to commit transaction")
	}
	return len(entries), nil
}

// EntriesFor converts parse results into history entries
func EntriesFor(sessionID, source string, nodes []mdwast.Node, parseErr error) []*Entry {
	now := time.Now().UTC()
	entries := make([]*Entry, 0, len(nodes)+1)

	for _, n := range nodes {
		entry := &Entry{
			SessionID: sessionID,
			Timestamp: now,
			Source:    source,
			Line:      n.Position().Line,
			Rendered:  n.String(),
		}
		switch v := n.(type) {
		case *mdwast.FunctionPrototype:
			entry.Kind = KindExtern
			entry.Name = v.Name
			entry.Params = v.Params
		case *mdwast.FunctionDefinition:
			entry.Kind = KindDefinition
			if v.IsAnonymous() {
				entry.Kind = KindExpression
			}
			if v.Prototype != nil {
				entry.Name = v.Prototype.Name
				entry.Params = v.Prototype.Params
			}
		default:
			entry.Kind = mdwast.KindOf(n)
		}
		entries = append(entries, entry)
	}

	if parseErr != nil {
		entry := &Entry{
			SessionID:    sessionID,
			Timestamp:    now,
			Source:       source,
			Kind:         KindError,
			ErrorCode:    string(mdwerror.GetCode(parseErr)),
			ErrorMessage: parseErr.Error(),
		}
		if _, line, ok := mdwerror.GetLocation(parseErr); ok {
			entry.Line = line
		}
		entries = append(entries, entry)
	}
	return entries
}

// Query retrieves entries matching filter, newest first
func (s *SQLiteStore) Query(ctx context.Context, filter Filter) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, session_id, timestamp, source, line, kind, name, params, rendered, error_code, error_message
		FROM parses WHERE 1=1`
	var args []interface{}

	if filter.Source != "" {
		query += " AND source = ?"
		args = append(args, filter.Source)
	}
	if filter.SessionID != "" {
		query += " AND session_id = ?"
		args = append(args, filter.SessionID)
	}
	if filter.Kind != "" {
		query += " AND kind = ?"
		args = append(args, filter.Kind)
	}
	if filter.ErrorsOnly {
		query += " AND kind = ?"
		args = append(args, KindError)
	}
	if !filter.Since.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.Since.UTC())
	}

	query += " ORDER BY timestamp DESC, rowid DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	} else if filter.Offset > 0 {
		query += " LIMIT -1"
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "failed to query history")
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var entry Entry
		var name, params, rendered, code, message sql.NullString

		if err := rows.Scan(&entry.ID, &entry.SessionID, &entry.Timestamp, &entry.Source, &entry.Line,
			&entry.Kind, &name, &params, &rendered, &code, &message); err != nil {
			return nil, dbError(err, "failed to scan history entry")
		}

		entry.Name = name.String
		entry.Rendered = rendered.String
		entry.ErrorCode = code.String
		entry.ErrorMessage = message.String
		if params.Valid && params.String != "" {
			json.Unmarshal([]byte(params.String), &entry.Params)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "failed to read history")
	}

	return entries, nil
}

// Stats returns counts over the whole history
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{ByKind: make(map[string]int64)}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT session_id), COUNT(DISTINCT source) FROM parses`).
		Scan(&stats.Total, &stats.Sessions, &stats.Sources)
	if err != nil {
		return nil, dbError(err, "failed to count history")
	}

	rows, err := s.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM parses GROUP BY kind`)
	if err != nil {
		return nil, dbError(err, "failed to group history")
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var count int64
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, dbError(err, "failed to scan history counts")
		}
		stats.ByKind[kind] = count
	}

	if stats.Total > 0 {
		var last Entry
		err := s.db.QueryRowContext(ctx,
			`SELECT timestamp FROM parses ORDER BY timestamp DESC LIMIT 1`).Scan(&last.Timestamp)
		if err != nil {
			return nil, dbError(err, "failed to read last entry")
		}
		stats.LastEntry = last.Timestamp
	}

	return stats, nil
}

// Prune deletes entries older than olderThan and returns how many
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().UTC().Add(-olderThan)

	result, err := s.db.ExecContext(ctx, `DELETE FROM parses WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, dbError(err, "failed to prune history")
	}
	deleted, _ := result.RowsAffected()
	return deleted, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
