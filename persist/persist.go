// Package persist binds statement-override annotations to entity
// metadata and executes entity DML with the overrides applied.
//
// The package is the consumer of the sqldml annotation: Bind collects
// the overrides declared on an entity, checks them against the entity's
// tables, and enforces the positional-parameter contract. The Executor
// then writes entity rows, replacing generated statements with the
// declared ones.
package persist

import (
	"fmt"

	"github.com/go-openapi/inflect"

	"github.com/syssam/sqldml"
	"github.com/syssam/sqldml/dialect"
	"github.com/syssam/sqldml/schema"
)

// TableSpec describes one table an entity is written to.
type TableSpec struct {
	// Name is the table name.
	Name string

	// Columns are the writable columns of the table, in statement
	// order. Columns excluded from writes are not listed.
	Columns []string

	// Keys are the key columns. Their parameters come last in every
	// generated and custom statement.
	Keys []string
}

// EntitySpec describes the tables of a mapped entity.
type EntitySpec struct {
	// Label is the entity label, e.g. "user".
	Label string

	// Table is the primary table name. Empty derives the name from
	// the label ("user" becomes "users").
	Table string

	// Columns are the writable columns of the primary table.
	Columns []string

	// Keys are the primary-key columns, shared by all tables.
	Keys []string

	// Secondary lists the secondary tables holding additional entity
	// columns. Keys default to the entity keys when not set.
	Secondary []TableSpec
}

// TableName returns the primary table name, deriving it from the entity
// label when not set explicitly.
func (s EntitySpec) TableName() string {
	if s.Table != "" {
		return s.Table
	}
	return inflect.Underscore(inflect.Pluralize(s.Label))
}

// Tables returns all tables of the entity, primary first.
func (s EntitySpec) Tables() []TableSpec {
	tables := make([]TableSpec, 0, len(s.Secondary)+1)
	tables = append(tables, TableSpec{Name: s.TableName(), Columns: s.Columns, Keys: s.Keys})
	for _, t := range s.Secondary {
		if len(t.Keys) == 0 {
			t.Keys = s.Keys
		}
		tables = append(tables, t)
	}
	return tables
}

// Lookup returns the table spec targeted by the given override table
// name. The empty name selects the primary table.
func (s EntitySpec) Lookup(name string) (TableSpec, bool) {
	tables := s.Tables()
	if name == "" {
		return tables[0], true
	}
	for _, t := range tables {
		if t.Name == name {
			return t, true
		}
	}
	return TableSpec{}, false
}

// Overrides is the bound override set of an entity, validated against
// its table metadata and a dialect.
type Overrides struct {
	spec    EntitySpec
	dialect string
	ant     sqldml.Annotation
}

// Bind collects the sqldml annotations declared on an entity and
// validates them against the entity spec: every override must target a
// known table, be declared at most once per statement kind and table,
// and carry exactly as many positional parameters as the target table
// requires (columns first, key columns last, plus the output parameter
// of a callable verification).
func Bind(spec EntitySpec, dialectName string, ants ...schema.Annotation) (*Overrides, error) {
	merged := schema.MergeAnnotations(ants...)
	var ant sqldml.Annotation
	switch a := merged[sqldml.AnnotationName].(type) {
	case nil:
	case sqldml.Annotation:
		ant = a
	case *sqldml.Annotation:
		ant = *a
	default:
		return nil, sqldml.NewValidationError(sqldml.AnnotationName, fmt.Errorf("unexpected annotation type %T", a))
	}
	if err := ant.Validate(); err != nil {
		return nil, err
	}
	for _, o := range ant.Overrides {
		t, ok := spec.Lookup(o.Table)
		if !ok {
			return nil, sqldml.NewValidationError("table", fmt.Errorf("entity %q has no table %q", spec.Label, o.Table))
		}
		want := paramContract(t, o)
		got := placeholderCount(dialectName, o.SQL)
		if got != want {
			return nil, sqldml.NewValidationError("sql", fmt.Errorf(
				"%s override for table %q has %d positional parameters, expected %d (columns first, keys last)",
				o.Op, t.Name, got, want,
			))
		}
	}
	return &Overrides{spec: spec, dialect: dialectName, ant: ant}, nil
}

// Spec returns the entity spec the overrides were bound to.
func (v *Overrides) Spec() EntitySpec { return v.spec }

// Dialect returns the dialect the overrides were validated for.
func (v *Overrides) Dialect() string { return v.dialect }

// Override returns the bound override for the given statement kind and
// table, if one was declared. The primary table matches both its real
// name and the empty name.
func (v *Overrides) Override(op sqldml.Op, table string) (sqldml.Override, bool) {
	if table == v.spec.TableName() {
		if o, ok := v.ant.Override(op, ""); ok {
			return o, true
		}
	}
	return v.ant.Override(op, table)
}

// paramContract returns the number of positional parameters the custom
// statement must carry for the given table and override.
func paramContract(t TableSpec, o sqldml.Override) int {
	n := len(t.Keys)
	switch o.Op {
	case sqldml.OpInsert, sqldml.OpUpdate:
		n += len(t.Columns)
	}
	if _, ok := o.Expectation().(sqldml.OutParameter); ok {
		n++
	}
	return n
}

// placeholderCount counts the positional parameters of the statement.
// MySQL and SQLite use "?" markers; Postgres uses "$n" ordinals, where
// the highest ordinal determines the parameter count. Markers inside
// quoted literals and quoted identifiers are ignored.
func placeholderCount(dialectName, query string) int {
	if dialectName == dialect.Postgres {
		return maxOrdinal(query)
	}
	count := 0
	for i := 0; i < len(query); i++ {
		switch query[i] {
		case '\'', '"', '`':
			i = skipQuoted(query, i)
		case '?':
			count++
		}
	}
	return count
}

func maxOrdinal(query string) int {
	maxn := 0
	for i := 0; i < len(query); i++ {
		switch query[i] {
		case '\'', '"':
			i = skipQuoted(query, i)
		case '$':
			n := 0
			j := i + 1
			for ; j < len(query) && query[j] >= '0' && query[j] <= '9'; j++ {
				n = n*10 + int(query[j]-'0')
			}
			if j > i+1 && n > maxn {
				maxn = n
			}
			i = j - 1
		}
	}
	return maxn
}

// skipQuoted returns the index of the closing quote matching the
// opening quote at i. Doubled quotes inside literals are handled.
func skipQuoted(query string, i int) int {
	quote := query[i]
	for j := i + 1; j < len(query); j++ {
		if query[j] == quote {
			if j+1 < len(query) && query[j+1] == quote {
				j++
				continue
			}
			return j
		}
	}
	return len(query) - 1
}
