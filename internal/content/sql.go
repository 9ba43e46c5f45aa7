// internal/content/sql.go
//
// SQL-backed content.
// Responsibilities:
//   - Open a database for any of the supported drivers (sqlite3, postgres, mysql).
//   - Read every section in insertion order.
//   - Seed an empty database from a Dataset.
//
// Note: migrations ship for SQLite only; other backends expect the tables
// from assets/sql to be provisioned out of band.

package content

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// OpenDB connects to a content database. For sqlite3 the parent directory
// is created and WAL journaling with a busy timeout is enabled.
func OpenDB(driver, dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("content: empty DSN for driver %q", driver)
	}
	switch driver {
	case "sqlite3":
		dir := filepath.Dir(dsn)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
		db, err := sqlx.Connect("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
		if err != nil {
			return nil, err
		}
		// Single writer keeps SQLite from returning SQLITE_BUSY during seeding.
		db.SetMaxOpenConns(1)
		if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragmas: %w", err)
		}
		return db, nil
	case "postgres", "mysql":
		return sqlx.Connect(driver, dsn)
	default:
		return nil, fmt.Errorf("content: unsupported driver %q", driver)
	}
}

// SQLSource reads content tables through sqlx.
type SQLSource struct {
	DB *sqlx.DB
}

func (s SQLSource) Name() string { return "sql:" + s.DB.DriverName() }

func (s SQLSource) Load(ctx context.Context) (Dataset, error) {
	var ds Dataset
	queries := []struct {
		dest  any
		query string
	}{
		{&ds.Vocabulary, `SELECT word, definition, options, correct FROM vocabulary ORDER BY id`},
		{&ds.Spelling, `SELECT word, phonetic, difficulty FROM spelling ORDER BY id`},
		{&ds.Grammar, `SELECT question, options, correct, explanation FROM grammar ORDER BY id`},
		{&ds.WordMatch, `SELECT word, meaning, category FROM word_match ORDER BY id`},
	}
	for _, q := range queries {
		if err := s.DB.SelectContext(ctx, q.dest, q.query); err != nil {
			return Dataset{}, err
		}
	}
	return ds, nil
}

// Seed inserts every record of ds in one transaction.
func Seed(ctx context.Context, db *sqlx.DB, ds Dataset) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insert := func(query string, arg any) error {
		_, err := tx.NamedExecContext(ctx, query, arg)
		return err
	}
	for _, v := range ds.Vocabulary {
		if err := insert(`INSERT INTO vocabulary (word, definition, options, correct) VALUES (:word, :definition, :options, :correct)`, v); err != nil {
			return fmt.Errorf("seed vocabulary %q: %w", v.Word, err)
		}
	}
	for _, s := range ds.Spelling {
		if err := insert(`INSERT INTO spelling (word, phonetic, difficulty) VALUES (:word, :phonetic, :difficulty)`, s); err != nil {
			return fmt.Errorf("seed spelling %q: %w", s.Word, err)
		}
	}
	for _, g := range ds.Grammar {
		if err := insert(`INSERT INTO grammar (question, options, correct, explanation) VALUES (:question, :options, :correct, :explanation)`, g); err != nil {
			return fmt.Errorf("seed grammar: %w", err)
		}
	}
	for _, m := range ds.WordMatch {
		if err := insert(`INSERT INTO word_match (word, meaning, category) VALUES (:word, :meaning, :category)`, m); err != nil {
			return fmt.Errorf("seed wordMatch %q: %w", m.Word, err)
		}
	}
	return tx.Commit()
}

// SeedIfEmpty seeds ds only when no content rows exist yet.
func SeedIfEmpty(ctx context.Context, db *sqlx.DB, ds Dataset) (bool, error) {
	var total int
	for _, table := range []string{"vocabulary", "spelling", "grammar", "word_match"} {
		var n int
		if err := db.GetContext(ctx, &n, `SELECT COUNT(1) FROM `+table); err != nil {
			return false, fmt.Errorf("count %s: %w", table, err)
		}
		total += n
	}
	if total > 0 {
		return false, nil
	}
	return true, Seed(ctx, db, ds)
}
