package sqldml

// Expectation is a policy for judging that a DML statement succeeded.
// Implementations are immutable values declared on an [Override].
type Expectation interface {
	// Verify judges the outcome of a statement execution given the
	// number of rows the statement reported as affected. The query is
	// included in the returned error for context.
	Verify(rows int64, query string) error
}

// None accepts any outcome without checking. It is the default policy
// for callable statements, whose drivers often report no row count.
type None struct{}

// Verify implements Expectation.
func (None) Verify(int64, string) error { return nil }

// RowCount verifies that the statement affected exactly the expected
// number of rows. The zero value expects a single row, the common case
// for statements writing one entity row.
type RowCount struct {
	// Rows is the expected affected-row count. Zero means one.
	Rows int64
}

// Verify implements Expectation.
func (e RowCount) Verify(rows int64, query string) error {
	want := e.Rows
	if want == 0 {
		want = 1
	}
	if rows != want {
		return NewExpectationError(query, want, rows)
	}
	return nil
}

// OutParameter verifies the outcome of a callable statement through a
// numeric output parameter registered at the given 1-based position in
// the parameter list. The execution layer binds the parameter and hands
// its value to Verify in place of the driver-reported row count.
type OutParameter struct {
	// Index is the 1-based position of the output parameter.
	Index int

	// Rows is the expected value of the parameter. Zero means one.
	Rows int64
}

// Verify implements Expectation.
func (e OutParameter) Verify(rows int64, query string) error {
	want := e.Rows
	if want == 0 {
		want = 1
	}
	if rows != want {
		return NewExpectationError(query, want, rows)
	}
	return nil
}

// ResultCheckStyle enumerates the legacy result-check policies.
//
// Deprecated: declare an [Expectation] on the override instead.
type ResultCheckStyle uint8

const (
	// CheckNone performs no result checking.
	CheckNone ResultCheckStyle = iota

	// CheckCount checks the driver-reported affected-row count.
	CheckCount

	// CheckParam checks a numeric output parameter of a callable
	// statement.
	CheckParam
)

// Valid reports whether the style is a known value.
func (s ResultCheckStyle) Valid() bool {
	return s <= CheckParam
}

// String returns the string representation of the style.
func (s ResultCheckStyle) String() string {
	switch s {
	case CheckNone:
		return "none"
	case CheckCount:
		return "count"
	case CheckParam:
		return "param"
	default:
		return "invalid"
	}
}

// ExpectationFor maps a legacy result-check style to its equivalent
// expectation.
//
// Deprecated: declare an [Expectation] on the override instead.
func ExpectationFor(style ResultCheckStyle) Expectation {
	switch style {
	case CheckCount:
		return RowCount{}
	case CheckParam:
		return OutParameter{Index: 1}
	default:
		return None{}
	}
}

var (
	_ Expectation = None{}
	_ Expectation = RowCount{}
	_ Expectation = OutParameter{}
)
