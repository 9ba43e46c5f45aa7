// internal/content/source.go
//
// Content sources and the in-memory library snapshot.
// Responsibilities:
//   - Load a Dataset from the embedded default, a JSON file, an xlsx
//     workbook, or a SQL database.
//   - Validate it once, then hand out read-only snapshots to sessions.
//
// Selection (Open):
//   - "embedded" (default): assets/questions.json compiled into the binary.
//   - "json":  Options.File, same shape as the embedded file.
//   - "xlsx":  Options.File, one sheet per section (see workbook.go).
//   - "sql":   Options.Driver + Options.DSN (sqlite3, postgres, mysql).

package content

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordquest/assets"
)

// Source loads a full Dataset.
type Source interface {
	Name() string
	Load(ctx context.Context) (Dataset, error)
}

// EmbeddedSource serves the dataset compiled into the binary.
type EmbeddedSource struct{}

func (EmbeddedSource) Name() string { return "embedded" }

func (EmbeddedSource) Load(ctx context.Context) (Dataset, error) {
	raw, err := assets.Questions()
	if err != nil {
		return Dataset{}, fmt.Errorf("read embedded questions: %w", err)
	}
	return decodeDataset(raw)
}

// FileSource reads a JSON dataset from disk.
type FileSource struct {
	Path string
}

func (f FileSource) Name() string { return "json:" + f.Path }

func (f FileSource) Load(ctx context.Context) (Dataset, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return Dataset{}, err
	}
	return decodeDataset(raw)
}

func decodeDataset(raw []byte) (Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return Dataset{}, fmt.Errorf("decode questions: %w", err)
	}
	return ds, nil
}

// Options select and configure the content source.
type Options struct {
	Kind   string // embedded | json | xlsx | sql
	File   string
	Driver string
	DSN    string
	Seed   bool // sqlite3 only: migrate and seed an empty database from the embedded dataset
}

// Library holds the validated snapshot handed to new sessions.
type Library struct {
	mu       sync.RWMutex
	src      Source
	ds       Dataset
	loadedAt time.Time
	db       *sqlx.DB
}

// NewLibrary wraps src; call Reload before the first Snapshot.
func NewLibrary(src Source) *Library {
	return &Library{src: src}
}

// Open builds the configured source and loads it.
func Open(ctx context.Context, opts Options) (*Library, error) {
	var (
		src Source
		db  *sqlx.DB
	)
	switch opts.Kind {
	case "", "embedded":
		src = EmbeddedSource{}
	case "json":
		src = FileSource{Path: opts.File}
	case "xlsx":
		src = WorkbookSource{Path: opts.File}
	case "sql":
		var err error
		db, err = OpenDB(opts.Driver, opts.DSN)
		if err != nil {
			return nil, err
		}
		if opts.Seed {
			if err := prepareDB(ctx, db); err != nil {
				db.Close()
				return nil, err
			}
		}
		src = SQLSource{DB: db}
	default:
		return nil, fmt.Errorf("unknown content source %q", opts.Kind)
	}

	lib := NewLibrary(src)
	lib.db = db
	if err := lib.Reload(ctx); err != nil {
		lib.Close()
		return nil, err
	}
	return lib, nil
}

// prepareDB migrates a sqlite content database and seeds it when empty.
func prepareDB(ctx context.Context, db *sqlx.DB) error {
	if err := Migrate(db); err != nil {
		return err
	}
	ds, err := EmbeddedSource{}.Load(ctx)
	if err != nil {
		return err
	}
	seeded, err := SeedIfEmpty(ctx, db, ds)
	if err != nil {
		return err
	}
	if seeded {
		log.Info().Int("records", ds.Size()).Msg("seeded content database")
	}
	return nil
}

// Reload fetches and validates a fresh dataset. The previous snapshot stays
// in place when loading fails.
func (l *Library) Reload(ctx context.Context) error {
	ds, err := l.src.Load(ctx)
	if err != nil {
		return fmt.Errorf("load %s: %w", l.src.Name(), err)
	}
	if err := ds.Validate(); err != nil {
		return fmt.Errorf("validate %s: %w", l.src.Name(), err)
	}

	l.mu.Lock()
	l.ds = ds
	l.loadedAt = time.Now()
	l.mu.Unlock()

	log.Info().
		Str("source", l.src.Name()).
		Int("vocabulary", len(ds.Vocabulary)).
		Int("spelling", len(ds.Spelling)).
		Int("grammar", len(ds.Grammar)).
		Int("wordMatch", len(ds.WordMatch)).
		Msg("content loaded")
	return nil
}

// Snapshot returns the current dataset. Callers must treat it as read-only.
func (l *Library) Snapshot() Dataset {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.ds
}

// Stats reports the record count per section.
func (l *Library) Stats() map[string]int {
	ds := l.Snapshot()
	return map[string]int{
		"vocabulary": len(ds.Vocabulary),
		"spelling":   len(ds.Spelling),
		"grammar":    len(ds.Grammar),
		"wordMatch":  len(ds.WordMatch),
	}
}

// SourceName describes where the snapshot came from.
func (l *Library) SourceName() string { return l.src.Name() }

// Close releases the database handle of a SQL source.
func (l *Library) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}
