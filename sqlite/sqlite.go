// Package sqlite provides the read-only SQLite dictionary store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/fwojciec/huaci"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"golang.org/x/sync/semaphore"
)

// requiredTables are the tables every dictionary database must provide.
var requiredTables = []string{"collins", "oxford", "forms"}

// DB represents a read-only connection to the bundled dictionary database.
// The connection is opened on first use and kept until Close. All access is
// serialized through a single-slot semaphore.
type DB struct {
	path string
	sem  *semaphore.Weighted
	db   *sql.DB
}

// NewDB creates a new DB instance for the database file at path.
// No file is touched until the first query or an explicit Open.
func NewDB(path string) *DB {
	return &DB{
		path: path,
		sem:  semaphore.NewWeighted(1),
	}
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Open opens the database connection if it is not open yet.
func (db *DB) Open(ctx context.Context) error {
	return db.view(ctx, func(*sql.DB) error { return nil })
}

// Close closes the database connection.
func (db *DB) Close() error {
	if err := db.sem.Acquire(context.Background(), 1); err != nil {
		return err
	}
	defer db.sem.Release(1)

	if db.db == nil {
		return nil
	}
	err := db.db.Close()
	db.db = nil
	return err
}

// view runs fn with exclusive access to the open connection.
func (db *DB) view(ctx context.Context, fn func(conn *sql.DB) error) error {
	if err := ctx.Err(); err != nil {
		return huaci.Errorf(huaci.ELOCK, "failed to lock dictionary connection: %v", err)
	}
	if err := db.sem.Acquire(ctx, 1); err != nil {
		return huaci.Errorf(huaci.ELOCK, "failed to lock dictionary connection: %v", err)
	}
	defer db.sem.Release(1)

	if db.db == nil {
		conn, err := open(ctx, db.path)
		if err != nil {
			return err
		}
		db.db = conn
	}
	return fn(db.db)
}

// open connects to path in read-only, private-cache mode and checks that
// the dictionary tables exist.
func open(ctx context.Context, path string) (*sql.DB, error) {
	dsn, err := readOnlyDSN(path)
	if err != nil {
		return nil, huaci.Errorf(huaci.EDATABASE, "failed to resolve dictionary path %s: %v", path, err)
	}

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, huaci.Errorf(huaci.EDATABASE, "failed to open dictionary %s: %v", path, err)
	}

	// The driver connection is not shared between goroutines.
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, huaci.Errorf(huaci.EDATABASE, "failed to open dictionary %s: %v", path, err)
	}

	if err := checkSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, huaci.Errorf(huaci.EDATABASE, "invalid dictionary %s: %v", path, err)
	}

	return conn, nil
}

// readOnlyDSN builds a file: URI for path with read-only flags.
func readOnlyDSN(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		// Windows drive paths become /C:/...
		p = "/" + p
	}
	u := url.URL{
		Scheme:   "file",
		Path:     p,
		RawQuery: "mode=ro&cache=private",
	}
	return u.String(), nil
}

func checkSchema(ctx context.Context, conn *sql.DB) error {
	for _, name := range requiredTables {
		var n int
		err := conn.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&n)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("table %q does not exist", name)
		}
	}
	return nil
}
