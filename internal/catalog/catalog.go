// Package catalog keeps a SQLite log of single black-hole evaluations.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/san-kum/kerrsim/internal/kerr"
)

// ErrNotFound is returned by Get for an unknown entry id.
var ErrNotFound = errors.New("catalog: entry not found")

// Entry is one recorded evaluation.
type Entry struct {
	ID          string
	CreatedAt   time.Time
	Params      kerr.Parameters
	Observables kerr.Observables
}

type row struct {
	ID         string  `db:"id"`
	CreatedAt  int64   `db:"created_at"`
	Mass       float64 `db:"mass"`
	Spin       float64 `db:"spin"`
	Accretion  float64 `db:"accretion"`
	RsKm       float64 `db:"rs_km"`
	Horizon    float64 `db:"horizon_rg"`
	ISCO       float64 `db:"isco_rg"`
	Efficiency float64 `db:"efficiency"`
	LEdd       float64 `db:"l_edd_w"`
	LBol       float64 `db:"l_bol_w"`
}

func (r row) entry() Entry {
	return Entry{
		ID:        r.ID,
		CreatedAt: time.Unix(0, r.CreatedAt).UTC(),
		Params: kerr.Parameters{
			MassSolar:     r.Mass,
			Spin:          r.Spin,
			AccretionRate: r.Accretion,
		},
		Observables: kerr.Observables{
			SchwarzschildRadiusKm: r.RsKm,
			HorizonRadiusRg:       r.Horizon,
			ISCORadiusRg:          r.ISCO,
			RadiativeEfficiency:   r.Efficiency,
			EddingtonLuminosityW:  r.LEdd,
			BolometricLuminosityW: r.LBol,
		},
	}
}

// DB wraps a SQLite connection.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a catalog database at the given path, creating
// its parent directory if needed.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	slog.Debug("catalog opened", "path", path)
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS evaluations (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		mass REAL NOT NULL,
		spin REAL NOT NULL,
		accretion REAL NOT NULL,
		rs_km REAL NOT NULL,
		horizon_rg REAL NOT NULL,
		isco_rg REAL NOT NULL,
		efficiency REAL NOT NULL,
		l_edd_w REAL NOT NULL,
		l_bol_w REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_evaluations_created ON evaluations(created_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Record stores an evaluation under a fresh id.
func (db *DB) Record(ctx context.Context, p kerr.Parameters, o kerr.Observables) (Entry, error) {
	r := row{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UnixNano(),
		Mass:       p.MassSolar,
		Spin:       p.Spin,
		Accretion:  p.AccretionRate,
		RsKm:       o.SchwarzschildRadiusKm,
		Horizon:    o.HorizonRadiusRg,
		ISCO:       o.ISCORadiusRg,
		Efficiency: o.RadiativeEfficiency,
		LEdd:       o.EddingtonLuminosityW,
		LBol:       o.BolometricLuminosityW,
	}

	_, err := db.conn.NamedExecContext(ctx, `
		INSERT INTO evaluations
			(id, created_at, mass, spin, accretion, rs_km, horizon_rg, isco_rg, efficiency, l_edd_w, l_bol_w)
		VALUES
			(:id, :created_at, :mass, :spin, :accretion, :rs_km, :horizon_rg, :isco_rg, :efficiency, :l_edd_w, :l_bol_w)`, r)
	if err != nil {
		return Entry{}, fmt.Errorf("record evaluation: %w", err)
	}

	slog.Debug("evaluation recorded", "id", r.ID)
	return r.entry(), nil
}

// List returns up to limit entries, newest first. A non-positive limit
// returns everything.
func (db *DB) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}

	var rows []row
	err := db.conn.SelectContext(ctx, &rows,
		`SELECT * FROM evaluations ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}

	entries := make([]Entry, len(rows))
	for i, r := range rows {
		entries[i] = r.entry()
	}
	return entries, nil
}

// Get returns the entry with the given id.
func (db *DB) Get(ctx context.Context, id string) (Entry, error) {
	var r row
	err := db.conn.GetContext(ctx, &r, `SELECT * FROM evaluations WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get evaluation: %w", err)
	}
	return r.entry(), nil
}
