package pgstore

import (
	"context"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tangibleinc/dataview/pkg/fieldtype"
	"github.com/tangibleinc/dataview/pkg/schema"
	"github.com/tangibleinc/dataview/pkg/storage"
)

func bookColumns(t *testing.T) []schema.Column {
	t.Helper()
	columns, err := schema.Columns([]schema.Field{
		{Name: "title", Type: fieldtype.TypeString},
		{Name: "count", Type: fieldtype.TypeInteger},
	}, fieldtype.NewRegistry())
	require.NoError(t, err)
	return columns
}

func newStore(t *testing.T) (*Store, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	store, err := New(mock, "books", bookColumns(t))
	require.NoError(t, err)
	return store, mock
}

func TestNew_Validation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	_, err = New(nil, "books", bookColumns(t))
	assert.ErrorIs(t, err, storage.ErrUnavailable)

	_, err = New(mock, "Bad-Table", bookColumns(t))
	assert.Error(t, err)

	_, err = New(mock, "books", []schema.Column{{Name: "title", Spec: schema.ColumnSpec{Type: "varchar"}}})
	assert.Error(t, err, "missing id column must be rejected")
}

func TestEnsureTable(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS "books"`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, store.EnsureTable(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDDL(t *testing.T) {
	store, _ := newStore(t)

	ddl := store.ddl()
	assert.Contains(t, ddl, `"id" BIGSERIAL PRIMARY KEY`)
	assert.Contains(t, ddl, `"title" VARCHAR(255)`)
	assert.Contains(t, ddl, `"count" BIGINT DEFAULT 0`)
}

func TestCreate(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "books" ("title", "count") VALUES ($1, $2) RETURNING id`)).
		WithArgs("Test Item", int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := store.Create(context.Background(), storage.Record{"title": "Test Item", "count": int64(5)})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, "title", "count" FROM "books" WHERE id = $1`)).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "count"}).
			AddRow(int64(7), "Test Item", int64(5)))

	record, err := store.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Test Item", record["title"])
	assert.Equal(t, int64(5), record["count"])
	assert.Equal(t, int64(7), record["id"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NotFound(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectQuery(`SELECT id, "title", "count" FROM "books"`).
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "count"}))

	_, err := store.Get(context.Background(), 99)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, "title", "count" FROM "books" ORDER BY id`)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "count"}).
			AddRow(int64(1), "First", int64(2)).
			AddRow(int64(2), "Second", int64(4)))

	records, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "First", records[0]["title"])
	assert.Equal(t, int64(2), records[1]["id"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "books" SET "title" = $1, "count" = $2 WHERE id = $3`)).
		WithArgs("Updated Item", int64(10), int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := store.Update(context.Background(), 7, storage.Record{"title": "Updated Item", "count": int64(10)})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectExec(`UPDATE "books" SET`).
		WithArgs("x", int64(99)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := store.Update(context.Background(), 99, storage.Record{"title": "x"})
	assert.ErrorIs(t, err, storage.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "books" WHERE id = $1`)).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, store.Delete(context.Background(), 7))

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "books" WHERE id = $1`)).
		WithArgs(int64(99)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	assert.ErrorIs(t, store.Delete(context.Background(), 99), storage.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
