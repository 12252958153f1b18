package sqldml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqldml"
)

func TestNone(t *testing.T) {
	assert.NoError(t, sqldml.None{}.Verify(0, "..."))
	assert.NoError(t, sqldml.None{}.Verify(42, "..."))
}

func TestRowCount(t *testing.T) {
	t.Run("ZeroMeansOne", func(t *testing.T) {
		assert.NoError(t, sqldml.RowCount{}.Verify(1, "..."))
		assert.Error(t, sqldml.RowCount{}.Verify(0, "..."))
	})

	t.Run("Explicit", func(t *testing.T) {
		assert.NoError(t, sqldml.RowCount{Rows: 3}.Verify(3, "..."))
		assert.Error(t, sqldml.RowCount{Rows: 3}.Verify(2, "..."))
	})

	t.Run("ErrorDetails", func(t *testing.T) {
		err := sqldml.RowCount{}.Verify(0, "INSERT INTO users")
		require.Error(t, err)
		assert.True(t, sqldml.IsExpectationError(err))
		assert.Contains(t, err.Error(), "affected 0 rows, expected 1")
		assert.Contains(t, err.Error(), "INSERT INTO users")
		assert.Contains(t, err.Error(), "stale state")
	})

	t.Run("TooManyRows", func(t *testing.T) {
		err := sqldml.RowCount{}.Verify(2, "...")
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "stale state")
	})
}

func TestOutParameter(t *testing.T) {
	assert.NoError(t, sqldml.OutParameter{Index: 1}.Verify(1, "..."))
	assert.Error(t, sqldml.OutParameter{Index: 1}.Verify(0, "..."))
	assert.NoError(t, sqldml.OutParameter{Index: 1, Rows: 5}.Verify(5, "..."))
}

func TestResultCheckStyle(t *testing.T) {
	assert.Equal(t, "none", sqldml.CheckNone.String())
	assert.Equal(t, "count", sqldml.CheckCount.String())
	assert.Equal(t, "param", sqldml.CheckParam.String())
	assert.Equal(t, "invalid", sqldml.ResultCheckStyle(9).String())
	assert.True(t, sqldml.CheckNone.Valid())
	assert.False(t, sqldml.ResultCheckStyle(9).Valid())
}

func TestExpectationFor(t *testing.T) {
	assert.Equal(t, sqldml.None{}, sqldml.ExpectationFor(sqldml.CheckNone))
	assert.Equal(t, sqldml.RowCount{}, sqldml.ExpectationFor(sqldml.CheckCount))
	assert.Equal(t, sqldml.OutParameter{Index: 1}, sqldml.ExpectationFor(sqldml.CheckParam))
}
