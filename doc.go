// Package sqldml provides declarative overrides for the DML statements
// a SQL persistence layer generates for an entity.
//
// An [Override] replaces the generated INSERT, UPDATE, or DELETE for one
// table of an entity with a hand-written statement or a stored-procedure
// call. The override is pure metadata: it carries the statement text,
// whether the callable-statement protocol is used, the policy for
// verifying the outcome, and the table it targets. The binding and
// execution machinery that consumes it lives in the persist package.
//
// # Declaring overrides
//
// Overrides are attached to an entity as schema annotations:
//
//	func (User) Annotations() []schema.Annotation {
//	    return []schema.Annotation{
//	        sqldml.Insert("INSERT INTO users (name, email, id) VALUES (?, lower(?), ?)"),
//	        sqldml.Insert("INSERT INTO user_details (bio, id) VALUES (?, ?)",
//	            sqldml.Table("user_details"),
//	        ),
//	    }
//	}
//
// The annotation is repeatable: an entity declares at most one override
// per statement kind and table, with the empty table name denoting the
// primary table.
//
// # Parameter contract
//
// The custom SQL must have exactly as many positional parameters as the
// target table has mapped columns, in column order, with the key columns
// last. A column excluded from writes has no parameter. The contract is
// enforced when the entity metadata is bound, not at declaration time.
//
// # Stored procedures
//
// A callable override names a procedure instead of carrying SQL text:
//
//	sqldml.Insert("CALL insert_user(?, ?, ?)",
//	    sqldml.Callable(),
//	    sqldml.Verify(sqldml.OutParameter{Index: 1}),
//	)
//
// # Outcome verification
//
// An [Expectation] judges whether the statement succeeded: [RowCount]
// checks the driver-reported affected-row count, [OutParameter] reads a
// numeric output parameter of a callable statement, and [None] skips
// checking. When no expectation is declared, plain statements default to
// row-count checking and callable statements to no checking. The
// [ResultCheckStyle] enumeration is the deprecated predecessor of
// expectations and remains only for declarations that have not migrated.
package sqldml
