// Package backend persists dispatched entities. It is the dispatch
// collaborator used by the command line: accepted submits land in a SQLite
// table keyed by a generated id.
package backend

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/goliatone/go-clientform/pkg/form"
	"github.com/goliatone/go-clientform/pkg/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var (
	// ErrNotFound is returned when no entity matches the lookup.
	ErrNotFound = errors.New("backend: entity not found")
	// ErrKindMismatch is returned when an update targets an id of another kind.
	ErrKindMismatch = errors.New("backend: entity kind mismatch")
)

// Record is a persisted entity.
type Record struct {
	ID        string
	Kind      string
	Action    string
	Entity    form.Entity
	CreatedAt time.Time
	UpdatedAt time.Time
}

type entityRow struct {
	ID        string `db:"id"`
	Kind      string `db:"kind"`
	Action    string `db:"action"`
	Payload   string `db:"payload"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

// SQLite stores entities in a SQLite database.
type SQLite struct {
	db     *sqlx.DB
	logger *zap.Logger
	now    func() time.Time
}

// Option configures SQLite.
type Option func(*SQLite)

// WithLogger sets the backend logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *SQLite) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *SQLite) {
		if now != nil {
			s.now = now
		}
	}
}

var _ store.Dispatcher = (*SQLite)(nil)

// Open connects to the database at dsn and applies pending migrations.
func Open(dsn string, opts ...Option) (*SQLite, error) {
	db, err := sqlx.Open("sqlite3", withForeignKeys(dsn))
	if err != nil {
		return nil, fmt.Errorf("backend: open %s: %w", dsn, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("backend: ping %s: %w", dsn, err)
	}
	if err := runMigrations(db.DB); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLite{db: db, logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// withForeignKeys appends the foreign key pragma to dsn, keeping any query
// parameters already present.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("backend: migration driver: %w", err)
	}
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("backend: migration source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("backend: migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("backend: run migrations: %w", err)
	}
	return nil
}

// Close releases the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Dispatch persists action.Entity. Actions carrying an EntityID update that
// record; all others insert a new one.
func (s *SQLite) Dispatch(ctx context.Context, action store.Action) error {
	payload, err := json.Marshal(action.Entity)
	if err != nil {
		return fmt.Errorf("backend: encode %s: %w", action.Kind, err)
	}
	stamp := s.now().UTC().Format(time.RFC3339Nano)

	if action.EntityID != "" {
		return s.update(ctx, action, string(payload), stamp)
	}

	row := entityRow{
		ID:        uuid.NewString(),
		Kind:      action.Kind,
		Action:    action.Type,
		Payload:   string(payload),
		CreatedAt: stamp,
		UpdatedAt: stamp,
	}
	_, err = s.db.NamedExecContext(ctx, `
		INSERT INTO entities (id, kind, action, payload, created_at, updated_at)
		VALUES (:id, :kind, :action, :payload, :created_at, :updated_at)`, row)
	if err != nil {
		return fmt.Errorf("backend: insert %s: %w", action.Kind, err)
	}
	s.logger.Info("entity stored", zap.String("kind", action.Kind), zap.String("id", row.ID))
	return nil
}

func (s *SQLite) update(ctx context.Context, action store.Action, payload, stamp string) error {
	var kind string
	err := s.db.GetContext(ctx, &kind, `SELECT kind FROM entities WHERE id = ?`, action.EntityID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrNotFound, action.EntityID)
	}
	if err != nil {
		return fmt.Errorf("backend: lookup %s: %w", action.EntityID, err)
	}
	if kind != action.Kind {
		return fmt.Errorf("%w: %s is a %s, not a %s", ErrKindMismatch, action.EntityID, kind, action.Kind)
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE entities SET action = ?, payload = ?, updated_at = ? WHERE id = ?`,
		action.Type, payload, stamp, action.EntityID)
	if err != nil {
		return fmt.Errorf("backend: update %s: %w", action.EntityID, err)
	}
	s.logger.Info("entity updated", zap.String("kind", action.Kind), zap.String("id", action.EntityID))
	return nil
}

// List returns every entity of kind, oldest first.
func (s *SQLite) List(ctx context.Context, kind string) ([]Record, error) {
	var rows []entityRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id, kind, action, payload, created_at, updated_at FROM entities WHERE kind = ? ORDER BY created_at, id`, kind)
	if err != nil {
		return nil, fmt.Errorf("backend: list %s: %w", kind, err)
	}
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		record, err := row.record()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// Get returns the entity of kind stored under id.
func (s *SQLite) Get(ctx context.Context, kind, id string) (Record, error) {
	var row entityRow
	err := s.db.GetContext(ctx, &row,
		`SELECT id, kind, action, payload, created_at, updated_at FROM entities WHERE id = ? AND kind = ?`, id, kind)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
	}
	if err != nil {
		return Record{}, fmt.Errorf("backend: get %s: %w", id, err)
	}
	return row.record()
}

func (r entityRow) record() (Record, error) {
	var entity form.Entity
	if err := json.Unmarshal([]byte(r.Payload), &entity); err != nil {
		return Record{}, fmt.Errorf("backend: decode %s: %w", r.ID, err)
	}
	created, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return Record{}, fmt.Errorf("backend: created_at of %s: %w", r.ID, err)
	}
	updated, err := time.Parse(time.RFC3339Nano, r.UpdatedAt)
	if err != nil {
		return Record{}, fmt.Errorf("backend: updated_at of %s: %w", r.ID, err)
	}
	return Record{
		ID:        r.ID,
		Kind:      r.Kind,
		Action:    r.Action,
		Entity:    entity,
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}

// WithID returns the record's entity with its id folded in, ready to pre-fill
// an edit form.
func (r Record) WithID() form.Entity {
	out := r.Entity.Clone()
	if out == nil {
		out = form.Entity{}
	}
	out["id"] = r.ID
	return out
}
