package sql

import (
	"strconv"
	"strings"

	"github.com/syssam/sqldml/dialect"
)

// Builder is the base for the DML statement builders. It holds the
// dialect and accumulates the statement text and arguments.
type Builder struct {
	dialect string
	sb      strings.Builder
	args    []any
}

// SetDialect sets the builder dialect. It is used for dialect-aware
// identifier quoting and parameter placeholders.
func (b *Builder) SetDialect(dialect string) {
	b.dialect = dialect
}

// Dialect returns the dialect of the builder.
func (b *Builder) Dialect() string {
	return b.dialect
}

func (b *Builder) postgres() bool {
	return b.dialect == dialect.Postgres
}

func (b *Builder) mysql() bool {
	return b.dialect == dialect.MySQL
}

// Quote quotes the given identifier with the characters based on the
// configured dialect. Identifiers for unknown dialects are quoted with
// double quotes.
func (b *Builder) Quote(ident string) string {
	if b.mysql() {
		return "`" + ident + "`"
	}
	return `"` + ident + `"`
}

// Ident appends the given string as an identifier.
func (b *Builder) Ident(s string) *Builder {
	b.sb.WriteString(b.Quote(s))
	return b
}

// IdentComma calls Ident on all arguments and adds a comma between them.
func (b *Builder) IdentComma(s ...string) *Builder {
	for i := range s {
		if i > 0 {
			b.Comma()
		}
		b.Ident(s[i])
	}
	return b
}

// WriteString appends the string to the statement.
func (b *Builder) WriteString(s string) *Builder {
	b.sb.WriteString(s)
	return b
}

// Comma adds a comma to the statement.
func (b *Builder) Comma() *Builder {
	return b.WriteString(", ")
}

// Pad adds a space to the statement.
func (b *Builder) Pad() *Builder {
	return b.WriteString(" ")
}

// Arg appends an input argument to the builder with its dialect-specific
// placeholder ("?" or "$n").
func (b *Builder) Arg(v any) *Builder {
	b.args = append(b.args, v)
	if b.postgres() {
		b.sb.WriteString("$" + strconv.Itoa(len(b.args)))
	} else {
		b.sb.WriteString("?")
	}
	return b
}

// Args appends a list of input arguments to the builder.
func (b *Builder) Args(vs ...any) *Builder {
	for i := range vs {
		if i > 0 {
			b.Comma()
		}
		b.Arg(vs[i])
	}
	return b
}

// String returns the accumulated statement text.
func (b *Builder) String() string {
	return b.sb.String()
}

// DialectBuilder prefixes all root builders with the dialect.
type DialectBuilder struct {
	dialect string
}

// Dialect creates a new DialectBuilder with the given dialect name.
func Dialect(name string) *DialectBuilder {
	return &DialectBuilder{dialect: name}
}

// Insert creates a InsertBuilder for the configured dialect.
func (d *DialectBuilder) Insert(table string) *InsertBuilder {
	b := Insert(table)
	b.SetDialect(d.dialect)
	return b
}

// Update creates a UpdateBuilder for the configured dialect.
func (d *DialectBuilder) Update(table string) *UpdateBuilder {
	b := Update(table)
	b.SetDialect(d.dialect)
	return b
}

// Delete creates a DeleteBuilder for the configured dialect.
func (d *DialectBuilder) Delete(table string) *DeleteBuilder {
	b := Delete(table)
	b.SetDialect(d.dialect)
	return b
}

// InsertBuilder is a builder for INSERT statements.
type InsertBuilder struct {
	Builder
	table     string
	columns   []string
	values    []any
	returning []string
	defaults  bool
}

// Insert creates a builder for the INSERT statement.
//
//	Insert("users").Columns("name", "id").Values("alice", 1)
func Insert(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

// Columns appends the given columns to the insert statement.
func (i *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	i.columns = append(i.columns, columns...)
	return i
}

// Values appends the given values to the insert statement.
func (i *InsertBuilder) Values(values ...any) *InsertBuilder {
	i.values = append(i.values, values...)
	return i
}

// Default sets the default values clause based on the dialect.
func (i *InsertBuilder) Default() *InsertBuilder {
	i.defaults = true
	return i
}

// Returning adds the RETURNING clause to the insert statement.
// Supported by PostgreSQL and SQLite.
func (i *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	i.returning = columns
	return i
}

// Query returns statement text and its arguments.
func (i *InsertBuilder) Query() (string, []any) {
	i.WriteString("INSERT INTO ").Ident(i.table).Pad()
	if i.defaults && len(i.columns) == 0 {
		if i.mysql() {
			i.WriteString("VALUES ()")
		} else {
			i.WriteString("DEFAULT VALUES")
		}
	} else {
		i.WriteString("(").IdentComma(i.columns...).WriteString(")")
		i.WriteString(" VALUES (").Args(i.values...).WriteString(")")
	}
	if len(i.returning) > 0 && !i.mysql() {
		i.WriteString(" RETURNING ").IdentComma(i.returning...)
	}
	return i.String(), i.args
}

// UpdateBuilder is a builder for UPDATE statements.
type UpdateBuilder struct {
	Builder
	table   string
	columns []string
	values  []any
	wheres  []string
	wargs   []any
}

// Update creates a builder for the UPDATE statement.
//
//	Update("users").Set("name", "bob").Where("id", 1)
func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

// Set sets a column and a its value.
func (u *UpdateBuilder) Set(column string, v any) *UpdateBuilder {
	u.columns = append(u.columns, column)
	u.values = append(u.values, v)
	return u
}

// Where appends an equality condition on the given column. Multiple
// conditions are joined with AND.
func (u *UpdateBuilder) Where(column string, v any) *UpdateBuilder {
	u.wheres = append(u.wheres, column)
	u.wargs = append(u.wargs, v)
	return u
}

// Query returns statement text and its arguments.
func (u *UpdateBuilder) Query() (string, []any) {
	u.WriteString("UPDATE ").Ident(u.table).WriteString(" SET ")
	for i, c := range u.columns {
		if i > 0 {
			u.Comma()
		}
		u.Ident(c).WriteString(" = ").Arg(u.values[i])
	}
	writeConditions(&u.Builder, u.wheres, u.wargs)
	return u.String(), u.args
}

// DeleteBuilder is a builder for DELETE statements.
type DeleteBuilder struct {
	Builder
	table  string
	wheres []string
	wargs  []any
}

// Delete creates a builder for the DELETE statement.
//
//	Delete("users").Where("id", 1)
func Delete(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

// Where appends an equality condition on the given column. Multiple
// conditions are joined with AND.
func (d *DeleteBuilder) Where(column string, v any) *DeleteBuilder {
	d.wheres = append(d.wheres, column)
	d.wargs = append(d.wargs, v)
	return d
}

// Query returns statement text and its arguments.
func (d *DeleteBuilder) Query() (string, []any) {
	d.WriteString("DELETE FROM ").Ident(d.table)
	writeConditions(&d.Builder, d.wheres, d.wargs)
	return d.String(), d.args
}

func writeConditions(b *Builder, columns []string, args []any) {
	for i, c := range columns {
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		b.Ident(c).WriteString(" = ").Arg(args[i])
	}
}
