package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/syssam/sqldml"
	"github.com/syssam/sqldml/dialect"
	esql "github.com/syssam/sqldml/dialect/sql"
)

// Row holds the values of one entity row.
type Row struct {
	// Values maps column names to values, across all tables of the
	// entity. Columns with no entry are written as NULL.
	Values map[string]any

	// Keys are the key values, in the order of the entity key columns.
	Keys []any
}

// Executor writes entity rows, using the declared statement overrides
// in place of generated statements.
type Executor struct {
	drv dialect.Driver
	ov  *Overrides
}

// NewExecutor returns an executor for the given driver and bound
// overrides. The driver dialect must match the dialect the overrides
// were validated for.
func NewExecutor(drv dialect.Driver, ov *Overrides) (*Executor, error) {
	if drv.Dialect() != ov.Dialect() {
		return nil, fmt.Errorf("persist: driver dialect %q does not match bound dialect %q", drv.Dialect(), ov.Dialect())
	}
	return &Executor{drv: drv, ov: ov}, nil
}

// Insert writes one entity row, primary table first.
func (e *Executor) Insert(ctx context.Context, row Row) error {
	if err := e.insert(ctx, e.drv, row); err != nil {
		return sqldml.NewMutationError(e.ov.spec.Label, string(sqldml.OpInsert), err)
	}
	return nil
}

// InsertBulk writes the given rows inside a single transaction.
func (e *Executor) InsertBulk(ctx context.Context, rows ...Row) error {
	tx, err := e.drv.Tx(ctx)
	if err != nil {
		return sqldml.NewMutationError(e.ov.spec.Label, string(sqldml.OpInsert), err)
	}
	for _, row := range rows {
		if err := e.insert(ctx, tx, row); err != nil {
			err = sqldml.NewMutationError(e.ov.spec.Label, string(sqldml.OpInsert), err)
			if rerr := tx.Rollback(); rerr != nil {
				err = errors.Join(err, rerr)
			}
			return err
		}
	}
	return tx.Commit()
}

// Update rewrites the columns of one entity row, keyed by row.Keys.
func (e *Executor) Update(ctx context.Context, row Row) error {
	for _, t := range e.ov.spec.Tables() {
		args := append(e.columnValues(t, row), row.Keys...)
		if o, ok := e.ov.Override(sqldml.OpUpdate, t.Name); ok {
			if err := e.exec(ctx, e.drv, o.SQL, args, o.Expectation()); err != nil {
				return sqldml.NewMutationError(e.ov.spec.Label, string(sqldml.OpUpdate), err)
			}
			continue
		}
		if len(t.Columns) == 0 {
			continue
		}
		b := esql.Dialect(e.ov.dialect).Update(t.Name)
		for i, c := range t.Columns {
			b.Set(c, args[i])
		}
		for i, k := range t.Keys {
			b.Where(k, row.Keys[i])
		}
		query, qargs := b.Query()
		if err := e.exec(ctx, e.drv, query, qargs, sqldml.RowCount{}); err != nil {
			return sqldml.NewMutationError(e.ov.spec.Label, string(sqldml.OpUpdate), err)
		}
	}
	return nil
}

// Delete removes one entity row by its key values, secondary tables
// first.
func (e *Executor) Delete(ctx context.Context, keys ...any) error {
	tables := e.ov.spec.Tables()
	for i := len(tables) - 1; i >= 0; i-- {
		t := tables[i]
		if o, ok := e.ov.Override(sqldml.OpDelete, t.Name); ok {
			if err := e.exec(ctx, e.drv, o.SQL, keys, o.Expectation()); err != nil {
				return sqldml.NewMutationError(e.ov.spec.Label, string(sqldml.OpDelete), err)
			}
			continue
		}
		b := esql.Dialect(e.ov.dialect).Delete(t.Name)
		for j, k := range t.Keys {
			b.Where(k, keys[j])
		}
		query, qargs := b.Query()
		// Secondary-table rows may be absent; only the primary row is
		// required to exist.
		exp := sqldml.Expectation(sqldml.None{})
		if i == 0 {
			exp = sqldml.RowCount{}
		}
		if err := e.exec(ctx, e.drv, query, qargs, exp); err != nil {
			return sqldml.NewMutationError(e.ov.spec.Label, string(sqldml.OpDelete), err)
		}
	}
	return nil
}

func (e *Executor) insert(ctx context.Context, cx dialect.ExecQuerier, row Row) error {
	for _, t := range e.ov.spec.Tables() {
		args := append(e.columnValues(t, row), row.Keys...)
		if o, ok := e.ov.Override(sqldml.OpInsert, t.Name); ok {
			if err := e.exec(ctx, cx, o.SQL, args, o.Expectation()); err != nil {
				return err
			}
			continue
		}
		query, qargs := esql.Dialect(e.ov.dialect).
			Insert(t.Name).
			Columns(append(append([]string{}, t.Columns...), t.Keys...)...).
			Values(args...).
			Query()
		if err := e.exec(ctx, cx, query, qargs, sqldml.RowCount{}); err != nil {
			return err
		}
	}
	return nil
}

// columnValues returns the values of the table columns in statement
// order. Columns without a value are written as NULL.
func (e *Executor) columnValues(t TableSpec, row Row) []any {
	vals := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		vals[i] = row.Values[c]
	}
	return vals
}

// exec runs a single statement and verifies its outcome with the given
// expectation. Out-parameter expectations have their parameter bound
// before execution and read back in place of the driver row count.
func (e *Executor) exec(ctx context.Context, cx dialect.ExecQuerier, query string, args []any, exp sqldml.Expectation) error {
	var out *int64
	if p, ok := exp.(sqldml.OutParameter); ok {
		out = new(int64)
		args = bindOut(args, p.Index, out)
	}
	var res esql.Result
	if err := cx.Exec(ctx, query, args, &res); err != nil {
		if IsConstraintError(err) {
			return sqldml.NewConstraintError(err.Error(), err)
		}
		return err
	}
	if _, ok := exp.(sqldml.None); ok {
		return nil
	}
	var rows int64
	if out != nil {
		rows = *out
	} else {
		var err error
		if rows, err = res.RowsAffected(); err != nil {
			return fmt.Errorf("reading affected rows: %w", err)
		}
	}
	return exp.Verify(rows, query)
}

// bindOut inserts the output-parameter destination at the 1-based
// parameter position.
func bindOut(args []any, index int, dest *int64) []any {
	i := index - 1
	if i > len(args) {
		i = len(args)
	}
	bound := make([]any, 0, len(args)+1)
	bound = append(bound, args[:i]...)
	bound = append(bound, esql.Out{Dest: dest})
	bound = append(bound, args[i:]...)
	return bound
}
