// Package pgstore persists a data view's records in a Postgres table whose
// shape is derived from the generated column schema.
package pgstore

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/tangibleinc/dataview/pkg/schema"
	"github.com/tangibleinc/dataview/pkg/storage"
)

var identPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Querier is the slice of a pgx pool the store needs. *pgxpool.Pool
// satisfies it, as does a pgxmock pool in tests.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Option configures a Store.
type Option func(*Store)

// WithLogger attaches a logger for write diagnostics.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// Store implements storage.Adapter over one table.
type Store struct {
	pool   Querier
	table  string
	fields []schema.Column
	log    *zap.SugaredLogger
}

// New constructs a Store for a table shaped by the supplied columns. The id
// column is managed by the store and must be present in the column list.
func New(pool Querier, table string, columns []schema.Column, options ...Option) (*Store, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgstore: nil pool: %w", storage.ErrUnavailable)
	}
	if !identPattern.MatchString(table) {
		return nil, fmt.Errorf("pgstore: invalid table name %q", table)
	}

	var fields []schema.Column
	sawID := false
	for _, column := range columns {
		if column.Name == "id" {
			sawID = true
			continue
		}
		if !identPattern.MatchString(column.Name) {
			return nil, fmt.Errorf("pgstore: invalid column name %q", column.Name)
		}
		fields = append(fields, column)
	}
	if !sawID {
		return nil, fmt.Errorf("pgstore: column list has no id column")
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("pgstore: column list has no data columns")
	}

	s := &Store{
		pool:   pool,
		table:  table,
		fields: fields,
		log:    zap.NewNop().Sugar(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s, nil
}

// EnsureTable creates the backing table when it does not exist yet.
func (s *Store) EnsureTable(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, s.ddl()); err != nil {
		return fmt.Errorf("pgstore: ensure table %s: %w", s.table, err)
	}
	return nil
}

// Create inserts a record and returns the assigned id.
func (s *Store) Create(ctx context.Context, record storage.Record) (int64, error) {
	names, args := s.presentFields(record)
	if len(names) == 0 {
		return 0, fmt.Errorf("pgstore: create with no known fields")
	}

	placeholders := make([]string, len(names))
	for i := range names {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES (%s) RETURNING id`,
		quoteIdent(s.table), joinIdents(names), strings.Join(placeholders, ", "),
	)

	var id int64
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		s.log.Errorw("insert failed", "table", s.table, "error", err)
		return 0, fmt.Errorf("pgstore: insert into %s: %w", s.table, err)
	}
	return id, nil
}

// Get loads one record by id.
func (s *Store) Get(ctx context.Context, id int64) (storage.Record, error) {
	query := fmt.Sprintf(
		`SELECT id, %s FROM %s WHERE id = $1`,
		joinIdents(s.fieldNames()), quoteIdent(s.table),
	)

	rows, err := s.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("pgstore: select from %s: %w", s.table, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("pgstore: select from %s: %w", s.table, err)
		}
		return nil, fmt.Errorf("pgstore: id %d: %w", id, storage.ErrNotFound)
	}
	record, err := s.scanRecord(rows)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// List loads every record ordered by id.
func (s *Store) List(ctx context.Context) ([]storage.Record, error) {
	query := fmt.Sprintf(
		`SELECT id, %s FROM %s ORDER BY id`,
		joinIdents(s.fieldNames()), quoteIdent(s.table),
	)

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgstore: select from %s: %w", s.table, err)
	}
	defer rows.Close()

	var out []storage.Record
	for rows.Next() {
		record, err := s.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgstore: select from %s: %w", s.table, err)
	}
	return out, nil
}

// Update rewrites the supplied fields of an existing record.
func (s *Store) Update(ctx context.Context, id int64, record storage.Record) error {
	names, args := s.presentFields(record)
	if len(names) == 0 {
		return fmt.Errorf("pgstore: update with no known fields")
	}

	assignments := make([]string, len(names))
	for i, name := range names {
		assignments[i] = fmt.Sprintf("%s = $%d", quoteIdent(name), i+1)
	}
	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE %s SET %s WHERE id = $%d`,
		quoteIdent(s.table), strings.Join(assignments, ", "), len(args),
	)

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		s.log.Errorw("update failed", "table", s.table, "id", id, "error", err)
		return fmt.Errorf("pgstore: update %s: %w", s.table, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pgstore: id %d: %w", id, storage.ErrNotFound)
	}
	return nil
}

// Delete removes a record by id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, quoteIdent(s.table))

	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		s.log.Errorw("delete failed", "table", s.table, "id", id, "error", err)
		return fmt.Errorf("pgstore: delete from %s: %w", s.table, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pgstore: id %d: %w", id, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) scanRecord(rows pgx.Rows) (storage.Record, error) {
	values, err := rows.Values()
	if err != nil {
		return nil, fmt.Errorf("pgstore: read row from %s: %w", s.table, err)
	}
	if len(values) != len(s.fields)+1 {
		return nil, fmt.Errorf("pgstore: row width %d does not match %d columns", len(values), len(s.fields)+1)
	}

	record := make(storage.Record, len(s.fields)+1)
	record["id"] = values[0]
	for i, column := range s.fields {
		record[column.Name] = values[i+1]
	}
	return record, nil
}

// presentFields returns the configured columns present in the record, in
// column order, alongside their values.
func (s *Store) presentFields(record storage.Record) ([]string, []any) {
	var names []string
	var args []any
	for _, column := range s.fields {
		value, ok := record[column.Name]
		if !ok {
			continue
		}
		names = append(names, column.Name)
		args = append(args, value)
	}
	return names, args
}

func (s *Store) fieldNames() []string {
	names := make([]string, len(s.fields))
	for i, column := range s.fields {
		names[i] = column.Name
	}
	return names
}

func joinIdents(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = quoteIdent(name)
	}
	return strings.Join(quoted, ", ")
}

func quoteIdent(name string) string {
	return `"` + name + `"`
}
