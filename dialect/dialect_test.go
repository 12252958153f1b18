package dialect_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqldml/dialect"
)

type recordDriver struct {
	execs   []string
	queries []string
}

func (d *recordDriver) Exec(_ context.Context, query string, _, _ any) error {
	d.execs = append(d.execs, query)
	return nil
}

func (d *recordDriver) Query(_ context.Context, query string, _, _ any) error {
	d.queries = append(d.queries, query)
	return nil
}

func (d *recordDriver) Tx(context.Context) (dialect.Tx, error) { return &recordTx{d: d}, nil }
func (d *recordDriver) Close() error                           { return nil }
func (d *recordDriver) Dialect() string                        { return dialect.SQLite }

type recordTx struct {
	d          *recordDriver
	committed  bool
	rolledback bool
}

func (t *recordTx) Exec(ctx context.Context, query string, args, v any) error {
	return t.d.Exec(ctx, query, args, v)
}

func (t *recordTx) Query(ctx context.Context, query string, args, v any) error {
	return t.d.Query(ctx, query, args, v)
}

func (t *recordTx) Commit() error   { t.committed = true; return nil }
func (t *recordTx) Rollback() error { t.rolledback = true; return nil }

func TestDebugDriver(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rec := &recordDriver{}
	drv := dialect.DebugWithLogger(rec, log)

	ctx := context.Background()
	require.NoError(t, drv.Exec(ctx, "INSERT INTO users DEFAULT VALUES", []any{}, nil))
	require.NoError(t, drv.Query(ctx, "SELECT 1", []any{}, nil))

	assert.Equal(t, []string{"INSERT INTO users DEFAULT VALUES"}, rec.execs)
	assert.Equal(t, []string{"SELECT 1"}, rec.queries)
	out := buf.String()
	assert.Contains(t, out, "driver.Exec")
	assert.Contains(t, out, "driver.Query")
	assert.Contains(t, out, "INSERT INTO users DEFAULT VALUES")
}

func TestDebugTx(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rec := &recordDriver{}
	drv := dialect.DebugWithLogger(rec, log)

	ctx := context.Background()
	tx, err := drv.Tx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Exec(ctx, "DELETE FROM users", []any{}, nil))
	require.NoError(t, tx.Commit())

	assert.Contains(t, buf.String(), "tx.Exec")
	assert.Contains(t, buf.String(), "tx.Commit")
	assert.Equal(t, []string{"DELETE FROM users"}, rec.execs)
}
