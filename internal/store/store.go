// Package store is the SQLite-backed storage gateway for exercises and logged sets.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	_ "modernc.org/sqlite" // register sqlite driver
)

var (
	// ErrNotInitialized is returned by every gateway call made before Init succeeds.
	ErrNotInitialized = errors.New("database not initialized")

	// ErrNotFound is returned when a lookup by id matches no row.
	ErrNotFound = errors.New("not found")
)

// Gateway wraps the workouts database. It is unusable until Init has
// created the schema; Ready reports when that has happened.
type Gateway struct {
	path string

	mu      sync.Mutex // guards db and initErr across Init/Close
	db      *sql.DB
	initErr error
	ready   atomic.Bool
}

// New returns a gateway for the database at path without opening it.
func New(path string) *Gateway {
	return &Gateway{path: path}
}

// Open creates a gateway and initializes it in one step.
func Open(ctx context.Context, path string) (*Gateway, error) {
	g := New(path)
	if err := g.Init(ctx); err != nil {
		return nil, err
	}
	return g, nil
}

// Init opens the database and applies the schema. A failure is kept in
// InitErr and leaves the gateway not ready. Calling Init on a ready
// gateway is a no-op.
func (g *Gateway) Init(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.ready.Load() {
		return nil
	}

	db, err := openDB(ctx, g.path)
	if err != nil {
		g.initErr = err
		return err
	}

	g.db = db
	g.initErr = nil
	g.ready.Store(true)
	return nil
}

func openDB(ctx context.Context, path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening workouts db: %w", err)
	}
	// One connection keeps writes serialized and makes :memory: databases usable.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("opening workouts db: %w", err)
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return db, nil
}

// Ready reports whether schema creation has completed.
func (g *Gateway) Ready() bool {
	return g.ready.Load()
}

// InitErr returns the error from the last failed Init, if any.
func (g *Gateway) InitErr() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.initErr
}

// Path returns the database file path.
func (g *Gateway) Path() string {
	return g.path
}

// Close closes the database. The gateway is not ready afterwards.
func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.ready.Load() {
		return nil
	}
	g.ready.Store(false)
	return g.db.Close()
}

func (g *Gateway) conn() (*sql.DB, error) {
	if !g.ready.Load() {
		return nil, ErrNotInitialized
	}
	return g.db, nil
}

// query runs a parameterized read.
func (g *Gateway) query(ctx context.Context, q string, args ...any) (*sql.Rows, error) {
	db, err := g.conn()
	if err != nil {
		return nil, err
	}
	return db.QueryContext(ctx, q, args...)
}

// exec runs a parameterized write.
func (g *Gateway) exec(ctx context.Context, q string, args ...any) (sql.Result, error) {
	db, err := g.conn()
	if err != nil {
		return nil, err
	}
	return db.ExecContext(ctx, q, args...)
}

// queryRow runs a parameterized single-row read.
func (g *Gateway) queryRow(ctx context.Context, q string, args ...any) (*sql.Row, error) {
	db, err := g.conn()
	if err != nil {
		return nil, err
	}
	return db.QueryRowContext(ctx, q, args...), nil
}

type scanner interface {
	Scan(dest ...any) error
}
