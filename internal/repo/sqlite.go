package repo

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Config names the database the store works against. It is built once at
// process start and never changed afterwards.
type Config struct {
	Path        string
	BusyTimeout time.Duration
}

// DB is the SQLite handle shared by the repositories.
type DB struct {
	db  *sql.DB
	log *slog.Logger
}

// Open opens (creating if needed) the SQLite file named by cfg.
//
// SQLite allows a single writer, so the pool holds one connection. Each
// repository operation checks it out for the duration of one statement and
// returns it afterwards.
func Open(ctx context.Context, cfg Config, log *slog.Logger) (*DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite open: empty path")
	}
	if log == nil {
		log = slog.Default()
	}
	db, err := sql.Open("sqlite3", dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}
	return &DB{db: db, log: log}, nil
}

func dsn(cfg Config) string {
	busy := cfg.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	q := url.Values{}
	q.Set("_busy_timeout", fmt.Sprint(busy.Milliseconds()))
	q.Set("_journal_mode", "WAL")
	q.Set("_foreign_keys", "on")
	return "file:" + uriPathEscaper.Replace(cfg.Path) + "?" + q.Encode()
}

// SQLite decodes %HH in URI filenames, so only the characters that would end
// the path early need escaping.
var uriPathEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// Close releases the database handle. Safe on a nil or closed DB.
func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

// EnsureSchema creates the tasks table if it is absent. It is idempotent and
// meant to run on every start.
func (d *DB) EnsureSchema(ctx context.Context) error {
	fsys, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return &StorageError{Op: "ensure schema", Err: err}
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, d.db, fsys)
	if err != nil {
		return &StorageError{Op: "ensure schema", Err: err}
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return &StorageError{Op: "ensure schema", Err: err}
	}
	for _, r := range results {
		d.log.Info("migration applied", "version", r.Source.Version, "duration", r.Duration)
	}
	d.log.Info("ensured tasks table exists")
	return nil
}

// conn checks out the single connection for one operation. Callers must
// close it on every path.
func (d *DB) conn(ctx context.Context, op string) (*sql.Conn, error) {
	c, err := d.db.Conn(ctx)
	if err != nil {
		return nil, &StorageError{Op: op, Err: err}
	}
	return c, nil
}
