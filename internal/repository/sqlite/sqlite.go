package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"tb16pix/internal/graph"
	"tb16pix/internal/repository"
)

// Metadata keys
const (
	keyFingerprint = "fingerprint"
	keyBuiltAt     = "built_at"
	keyTriples     = "triples"
)

// Repository implements repository.TripleCache using SQLite
type Repository struct {
	db *sql.DB
}

var _ repository.TripleCache = (*Repository)(nil)

// New creates a new SQLite triple cache
func New(dbPath string) (*Repository, error) {
	dsn := dbPath
	if dbPath != ":memory:" {
		dsn = "file:" + dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and serialises writers
	db.SetMaxOpenConns(1)

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS triples (
		seq INTEGER PRIMARY KEY,
		subject_kind INTEGER NOT NULL,
		subject TEXT NOT NULL,
		predicate TEXT NOT NULL,
		object_kind INTEGER NOT NULL,
		object TEXT NOT NULL,
		datatype TEXT,
		lang TEXT
	);

	CREATE TABLE IF NOT EXISTS metadata (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_triples_predicate_object ON triples(predicate, object);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Info returns the fingerprint, size and build time of the cached snapshot
func (r *Repository) Info(ctx context.Context) (repository.CacheInfo, bool, error) {
	meta, err := r.metadata(ctx)
	if err != nil {
		return repository.CacheInfo{}, false, err
	}

	fingerprint, ok := meta[keyFingerprint]
	if !ok || fingerprint == "" {
		return repository.CacheInfo{}, false, nil
	}

	info := repository.CacheInfo{Fingerprint: fingerprint}
	if n, err := strconv.Atoi(meta[keyTriples]); err == nil {
		info.Triples = n
	}
	if t, err := time.Parse(time.RFC3339Nano, meta[keyBuiltAt]); err == nil {
		info.BuiltAt = t
	}
	return info, true, nil
}

func (r *Repository) metadata(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM metadata`)
	if err != nil {
		return nil, fmt.Errorf("failed to query metadata: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}
		meta[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating metadata: %w", err)
	}
	return meta, nil
}

// Triples returns every cached triple in insertion order
func (r *Repository) Triples(ctx context.Context) ([]graph.Triple, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+tripleColumns+` FROM triples ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query triples: %w", err)
	}
	defer rows.Close()

	var triples []graph.Triple
	for rows.Next() {
		var row tripleRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan triple: %w", err)
		}
		tr, err := row.toGraph()
		if err != nil {
			return nil, err
		}
		triples = append(triples, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating triples: %w", err)
	}
	return triples, nil
}

// Replace swaps the cached snapshot in one transaction
func (r *Repository) Replace(ctx context.Context, fingerprint string, triples []graph.Triple) error {
	if fingerprint == "" {
		return errors.New("fingerprint is required")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM triples`); err != nil {
		return fmt.Errorf("failed to clear triples: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM metadata`); err != nil {
		return fmt.Errorf("failed to clear metadata: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO triples (seq, subject_kind, subject, predicate, object_kind, object, datatype, lang)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, tr := range triples {
		if _, err := stmt.ExecContext(ctx, tripleInsertArgs(i, tr)...); err != nil {
			return fmt.Errorf("failed to insert triple %d: %w", i, err)
		}
	}

	meta := map[string]string{
		keyFingerprint: fingerprint,
		keyTriples:     strconv.Itoa(len(triples)),
		keyBuiltAt:     time.Now().UTC().Format(time.RFC3339Nano),
	}
	for key, value := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT INTO metadata (key, value) VALUES (?, ?)`, key, value); err != nil {
			return fmt.Errorf("failed to write metadata %s: %w", key, err)
		}
	}

	return tx.Commit()
}

// Clear drops the cached snapshot
func (r *Repository) Clear(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM triples`); err != nil {
		return fmt.Errorf("failed to clear triples: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM metadata`); err != nil {
		return fmt.Errorf("failed to clear metadata: %w", err)
	}
	return tx.Commit()
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
