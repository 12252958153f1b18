package sql

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqldml/dialect"
)

func TestStatsDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	drv := NewStatsDriver(OpenDB(dialect.SQLite, db))

	mock.ExpectExec("INSERT INTO users DEFAULT VALUES").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	require.NoError(t, drv.Exec(context.Background(), "INSERT INTO users DEFAULT VALUES", []any{}, nil))
	rows := &Rows{}
	require.NoError(t, drv.Query(context.Background(), "SELECT 1", []any{}, rows))
	require.NoError(t, rows.Close())

	stats := drv.StatementStats().Stats()
	assert.Equal(t, int64(1), stats.TotalExecs)
	assert.Equal(t, int64(1), stats.TotalQueries)
	assert.Equal(t, int64(0), stats.Errors)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsDriver_SlowHook(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	var slow []string
	drv := NewStatsDriver(OpenDB(dialect.SQLite, db),
		WithSlowThreshold(0), // every statement counts as slow
		WithSlowStatementHook(func(_ context.Context, query string, _ []any, _ time.Duration) {
			slow = append(slow, query)
		}),
	)

	mock.ExpectExec("INSERT INTO users DEFAULT VALUES").WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, drv.Exec(context.Background(), "INSERT INTO users DEFAULT VALUES", []any{}, nil))

	assert.Equal(t, []string{"INSERT INTO users DEFAULT VALUES"}, slow)
	assert.Equal(t, int64(1), drv.StatementStats().Stats().SlowStatements)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsDriver_Errors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	drv := NewStatsDriver(OpenDB(dialect.SQLite, db))

	mock.ExpectExec("INSERT INTO users DEFAULT VALUES").WillReturnError(assert.AnError)
	require.Error(t, drv.Exec(context.Background(), "INSERT INTO users DEFAULT VALUES", []any{}, nil))
	assert.Equal(t, int64(1), drv.StatementStats().Stats().Errors)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsDriver_Tx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	drv := NewStatsDriver(OpenDB(dialect.SQLite, db))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users DEFAULT VALUES").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	tx, err := drv.Tx(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Exec(context.Background(), "INSERT INTO users DEFAULT VALUES", []any{}, nil))
	require.NoError(t, tx.Commit())
	assert.Equal(t, int64(1), drv.StatementStats().Stats().TotalExecs)
	require.NoError(t, mock.ExpectationsWereMet())
}
