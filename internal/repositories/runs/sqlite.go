package runs

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/runs/migrations"
)

// SQLiteRepository persists runs in a SQLite file
type SQLiteRepository struct {
	db *sql.DB
}

// OpenSQLite opens the archive at path and applies the embedded migrations
func OpenSQLite(path string) (*SQLiteRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.InvalidArgument("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite db")
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to ping sqlite db")
	}
	if err := applyMigrations(db); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to run migrations")
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the SQLite handle
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

var _ Repository = (*SQLiteRepository)(nil)

// Save inserts a run
func (r *SQLiteRepository) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if err := validateSave(input); err != nil {
		return nil, err
	}

	report, err := json.Marshal(input.Run.Report)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal report for run %s", input.Run.ID)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO runs (id, seed, created_at, report) VALUES (?, ?, ?, ?)`,
		input.Run.ID,
		strconv.FormatUint(input.Run.Seed, 10),
		toMillis(input.Run.CreatedAt),
		string(report),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.AlreadyExistsf("run %s already exists", input.Run.ID)
		}
		return nil, errors.Wrapf(err, "failed to save run %s", input.Run.ID)
	}

	return &SaveOutput{Run: input.Run}, nil
}

// Get retrieves a run by ID
func (r *SQLiteRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if err := validateGet(input); err != nil {
		return nil, err
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT id, seed, created_at, report FROM runs WHERE id = ?`, input.ID)
	run, err := scanRun(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFoundf("run %s not found", input.ID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get run %s", input.ID)
	}

	return &GetOutput{Run: run}, nil
}

// List returns the most recent runs
func (r *SQLiteRepository) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	limit, err := listLimit(input)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, seed, created_at, report FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list runs")
	}
	defer func() { _ = rows.Close() }()

	out := make([]*Run, 0, limit)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan run")
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate runs")
	}

	return &ListOutput{Runs: out}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		run       Run
		seed      string
		createdAt int64
		report    string
	)
	if err := row.Scan(&run.ID, &seed, &createdAt, &report); err != nil {
		return nil, err
	}

	parsed, err := strconv.ParseUint(seed, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid seed for run %s", run.ID)
	}
	run.Seed = parsed
	run.CreatedAt = fromMillis(createdAt)

	if err := json.Unmarshal([]byte(report), &run.Report); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal report for run %s", run.ID)
	}

	return &run, nil
}

func applyMigrations(db *sql.DB) error {
	names, err := fs.Glob(migrations.FS, "*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)

	for _, name := range names {
		stmt, err := fs.ReadFile(migrations.FS, name)
		if err != nil {
			return errors.Wrapf(err, "failed to read migration %s", name)
		}
		if _, err := db.Exec(string(stmt)); err != nil {
			return errors.Wrapf(err, "failed to apply migration %s", name)
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if stderrors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}
