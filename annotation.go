package sqldml

import (
	"fmt"

	"github.com/syssam/sqldml/schema"
)

// AnnotationName is the name used for statement-override annotations.
const AnnotationName = "sqldml"

// Op identifies the DML statement kind an override replaces.
type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Valid reports whether the operation is a known DML statement kind.
func (o Op) Valid() bool {
	switch o {
	case OpInsert, OpUpdate, OpDelete:
		return true
	}
	return false
}

// String returns the string representation of the operation.
func (o Op) String() string { return string(o) }

// Override declares a custom SQL statement to be used in place of the
// statement generated for an entity table. The value is immutable once
// declared and is attached to an entity through an [Annotation].
//
// The SQL text must carry exactly as many positional parameters as the
// target table has mapped columns, in column order, with the key columns
// last. Columns excluded from writes have no parameter in the custom SQL.
//
// An entity may declare one override per statement kind and table; the
// Table field selects a secondary table, and the empty string denotes
// the primary table.
type Override struct {
	// Op is the statement kind this override replaces.
	Op Op

	// SQL is the statement text, or the stored-procedure name when
	// Callable is set.
	SQL string

	// Callable reports that the statement is invoked through the
	// callable-statement protocol (a stored procedure).
	Callable bool

	// Verify is the strategy used to judge that the statement
	// succeeded. A nil value selects the default policy: row-count
	// checking for plain statements, no checking for callable ones.
	Verify Expectation

	// Check is the legacy result-check style.
	//
	// Deprecated: use Verify with an [Expectation] value.
	Check ResultCheckStyle

	// Table is the name of the secondary table the statement targets.
	// Empty denotes the primary table.
	Table string
}

// Expectation resolves the effective verification strategy for the
// override: Verify when set, the expectation derived from Check when the
// legacy style is set, and the default policy otherwise.
func (o Override) Expectation() Expectation {
	switch {
	case o.Verify != nil:
		return o.Verify
	case o.Check != CheckNone:
		return ExpectationFor(o.Check)
	case o.Callable:
		return None{}
	default:
		return RowCount{}
	}
}

// Validate reports whether the override is well-formed on its own.
// Cross-override rules (one per statement kind and table, known table
// names, parameter counts) are enforced at bind time.
func (o Override) Validate() error {
	if !o.Op.Valid() {
		return NewValidationError("op", fmt.Errorf("unknown statement kind %q", o.Op))
	}
	if o.SQL == "" {
		return NewValidationError("sql", fmt.Errorf("missing statement text for %s override", o.Op))
	}
	if !o.Check.Valid() {
		return NewValidationError("check", fmt.Errorf("unknown result-check style %d", o.Check))
	}
	if o.Verify != nil && o.Check != CheckNone {
		return NewValidationError("verify", fmt.Errorf("verify and check are mutually exclusive for %s override", o.Op))
	}
	if p, ok := o.Expectation().(OutParameter); ok {
		if !o.Callable {
			return NewValidationError("verify", fmt.Errorf("out-parameter verification requires a callable %s override", o.Op))
		}
		if p.Index < 1 {
			return NewValidationError("verify", fmt.Errorf("out-parameter index must be positive, got %d", p.Index))
		}
	}
	return nil
}

// Annotation carries the statement overrides declared on an entity.
// Can be used with functional constructors or struct literals:
//
//	// Functional style
//	sqldml.Insert("INSERT INTO users (name, id) VALUES (?, ?)")
//
//	// Struct literal style
//	sqldml.Annotation{Overrides: []sqldml.Override{
//	    {Op: sqldml.OpInsert, SQL: "...", Table: "user_details"},
//	}}
type Annotation struct {
	// Overrides holds one entry per statement kind and table.
	Overrides []Override
}

// Name implements schema.Annotation.
func (Annotation) Name() string {
	return AnnotationName
}

// Merge implements the schema.Merger interface. Overrides from later
// annotations replace earlier ones targeting the same statement kind
// and table.
func (a Annotation) Merge(other schema.Annotation) schema.Annotation {
	var ant Annotation
	switch other := other.(type) {
	case Annotation:
		ant = other
	case *Annotation:
		if other != nil {
			ant = *other
		}
	default:
		return a
	}
	for _, o := range ant.Overrides {
		a = a.add(o)
	}
	return a
}

// add appends the override, replacing an existing entry for the same
// statement kind and table.
func (a Annotation) add(o Override) Annotation {
	merged := Annotation{Overrides: make([]Override, len(a.Overrides))}
	copy(merged.Overrides, a.Overrides)
	for i, prev := range merged.Overrides {
		if prev.Op == o.Op && prev.Table == o.Table {
			merged.Overrides[i] = o
			return merged
		}
	}
	merged.Overrides = append(merged.Overrides, o)
	return merged
}

// Override returns the override declared for the given statement kind
// and table, and whether one was declared. The empty table name selects
// the primary-table override.
func (a Annotation) Override(op Op, table string) (Override, bool) {
	for _, o := range a.Overrides {
		if o.Op == op && o.Table == table {
			return o, true
		}
	}
	return Override{}, false
}

// Validate checks every declared override.
func (a Annotation) Validate() error {
	seen := make(map[[2]string]struct{}, len(a.Overrides))
	for _, o := range a.Overrides {
		if err := o.Validate(); err != nil {
			return err
		}
		key := [2]string{string(o.Op), o.Table}
		if _, ok := seen[key]; ok {
			return NewValidationError("table", fmt.Errorf("duplicate %s override for table %q", o.Op, o.Table))
		}
		seen[key] = struct{}{}
	}
	return nil
}

// Option configures a single override declaration.
type Option func(*Override)

// Callable marks the statement as a stored-procedure invocation using
// the callable-statement protocol.
func Callable() Option {
	return func(o *Override) { o.Callable = true }
}

// Verify sets the expectation used to judge that the statement
// succeeded.
//
// Example:
//
//	sqldml.Insert("CALL insert_user(?, ?, ?)",
//	    sqldml.Callable(),
//	    sqldml.Verify(sqldml.OutParameter{Index: 1}),
//	)
func Verify(e Expectation) Option {
	return func(o *Override) { o.Verify = e }
}

// Check sets the legacy result-check style.
//
// Deprecated: use [Verify] with an [Expectation] value.
func Check(style ResultCheckStyle) Option {
	return func(o *Override) { o.Check = style }
}

// Table targets the override at a secondary table of the entity.
//
// Example:
//
//	sqldml.Insert("INSERT INTO user_details (bio, id) VALUES (?, ?)",
//	    sqldml.Table("user_details"),
//	)
func Table(name string) Option {
	return func(o *Override) { o.Table = name }
}

// Insert declares a custom INSERT statement (or procedure) to be used
// in place of the generated one.
//
// Example:
//
//	func (User) Annotations() []schema.Annotation {
//	    return []schema.Annotation{
//	        sqldml.Insert("INSERT INTO users (name, email, id) VALUES (?, lower(?), ?)"),
//	    }
//	}
func Insert(sql string, opts ...Option) Annotation {
	return declare(OpInsert, sql, opts)
}

// Update declares a custom UPDATE statement (or procedure) to be used
// in place of the generated one.
func Update(sql string, opts ...Option) Annotation {
	return declare(OpUpdate, sql, opts)
}

// Delete declares a custom DELETE statement (or procedure) to be used
// in place of the generated one.
func Delete(sql string, opts ...Option) Annotation {
	return declare(OpDelete, sql, opts)
}

func declare(op Op, sql string, opts []Option) Annotation {
	o := Override{Op: op, SQL: sql}
	for _, opt := range opts {
		opt(&o)
	}
	return Annotation{Overrides: []Override{o}}
}

var (
	_ schema.Annotation = (*Annotation)(nil)
	_ schema.Merger     = (*Annotation)(nil)
)
