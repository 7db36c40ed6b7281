package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/salesqueen/internal/model"
	"github.com/nao1215/salesqueen/internal/progress"
)

// DBFileName is the name of the database file inside the data directory.
const DBFileName = "salesqueen.db"

// SQLite stores the document in a local SQLite database and appends every
// save to a revision table.
type SQLite struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string

	// now returns the timestamp recorded for a revision.
	now func() time.Time
}

var (
	_ Backend   = (*SQLite)(nil)
	_ Historian = (*SQLite)(nil)
)

// SQLiteOptions configures SQLite behavior.
type SQLiteOptions struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultSQLiteOptions returns the default database options.
func DefaultSQLiteOptions() SQLiteOptions {
	return SQLiteOptions{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// OpenSQLite opens or creates the database in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func OpenSQLite(dbDir string, opts SQLiteOptions) (*SQLite, error) {
	dbPath := filepath.Join(dbDir, DBFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file; mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &SQLite{
		db:     db,
		dbPath: dbPath,
		now:    time.Now,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLite) Path() string {
	return s.dbPath
}

// Close implements Backend.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (s *SQLite) createTables() error {
	schema := `
	-- The current document, one row per key
	CREATE TABLE IF NOT EXISTS projects (
		key TEXT PRIMARY KEY,
		document TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Append-only history of every save
	CREATE TABLE IF NOT EXISTS revisions (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		key TEXT NOT NULL,
		saved_at TEXT NOT NULL,
		percentage INTEGER NOT NULL DEFAULT 0,
		document TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_revisions_key ON revisions(key);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// Save implements Backend. The document and its revision are written in one
// transaction.
func (s *SQLite) Save(ctx context.Context, p *model.Project) (err error) {
	data, err := Encode(p)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	upsert := `
	INSERT INTO projects (key, document) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET
		document = excluded.document,
		updated_at = CURRENT_TIMESTAMP
	`
	if _, err = tx.ExecContext(ctx, upsert, model.ProjectKey, string(data)); err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}

	insert := `
	INSERT INTO revisions (id, key, saved_at, percentage, document)
	VALUES (?, ?, ?, ?, ?)
	`
	if _, err = tx.ExecContext(ctx, insert,
		uuid.NewString(),
		model.ProjectKey,
		s.now().UTC().Format(time.RFC3339Nano),
		progress.Percentage(p.Progress),
		string(data),
	); err != nil {
		return fmt.Errorf("failed to record revision: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit save: %w", err)
	}
	return nil
}

// Load implements Backend.
func (s *SQLite) Load(ctx context.Context) (*model.Project, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM projects WHERE key = ?`, model.ProjectKey,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	return Decode([]byte(doc))
}

// Clear implements Backend. It also removes the revision history.
func (s *SQLite) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE key = ?`, model.ProjectKey); err != nil {
		return fmt.Errorf("failed to clear project: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM revisions WHERE key = ?`, model.ProjectKey); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// History implements Historian.
func (s *SQLite) History(ctx context.Context, limit int) ([]Revision, error) {
	query := `
	SELECT id, saved_at, percentage FROM revisions
	WHERE key = ?
	ORDER BY seq DESC
	`
	args := []any{model.ProjectKey}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var revs []Revision
	for rows.Next() {
		var (
			rev     Revision
			savedAt string
		)
		if err := rows.Scan(&rev.ID, &savedAt, &rev.Percentage); err != nil {
			return nil, fmt.Errorf("failed to scan revision: %w", err)
		}
		rev.SavedAt = parseTimestamp(savedAt)
		revs = append(revs, rev)
	}
	return revs, rows.Err()
}

// Revision implements Historian.
func (s *SQLite) Revision(ctx context.Context, id string) (*model.Project, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM revisions WHERE key = ? AND id = ?`, model.ProjectKey, id,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRevisionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load revision: %w", err)
	}
	return Decode([]byte(doc))
}

// timestampFormats contains the timestamp formats that may be stored.
// More specific formats come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseTimestamp tries every known format and returns the zero time on failure.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
