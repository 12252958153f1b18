package sqldml_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/sqldml"
)

func TestValidationError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := sqldml.NewValidationError("sql", errors.New("missing statement text"))
		assert.Equal(t, `sqldml: validation failed for "sql": missing statement text`, err.Error())
	})

	t.Run("IsValidationError", func(t *testing.T) {
		err := sqldml.NewValidationError("table", errors.New("boom"))
		assert.True(t, sqldml.IsValidationError(err))

		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, sqldml.IsValidationError(wrapped))

		assert.False(t, sqldml.IsValidationError(errors.New("other error")))
		assert.False(t, sqldml.IsValidationError(nil))
	})
}

func TestExpectationError(t *testing.T) {
	t.Run("Is", func(t *testing.T) {
		err := sqldml.NewExpectationError("INSERT INTO users", 1, 0)
		assert.True(t, errors.Is(err, sqldml.ErrExpectation))
	})

	t.Run("IsExpectationError", func(t *testing.T) {
		err := sqldml.NewExpectationError("INSERT INTO users", 1, 2)
		assert.True(t, sqldml.IsExpectationError(err))
		assert.True(t, sqldml.IsExpectationError(fmt.Errorf("w: %w", err)))
		assert.True(t, sqldml.IsExpectationError(sqldml.ErrExpectation))
		assert.False(t, sqldml.IsExpectationError(errors.New("other")))
		assert.False(t, sqldml.IsExpectationError(nil))
	})
}

func TestConstraintError(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed: users.email")
	err := sqldml.NewConstraintError(cause.Error(), cause)
	assert.Equal(t, "sqldml: constraint failed: UNIQUE constraint failed: users.email", err.Error())
	assert.True(t, sqldml.IsConstraintError(err))
	assert.ErrorIs(t, err, cause)
	assert.False(t, sqldml.IsConstraintError(cause))
}

func TestMutationError(t *testing.T) {
	cause := errors.New("connection reset")
	err := sqldml.NewMutationError("user", "insert", cause)
	assert.Equal(t, "sqldml: insert user: connection reset", err.Error())
	assert.True(t, sqldml.IsMutationError(err))
	assert.ErrorIs(t, err, cause)
	assert.False(t, sqldml.IsMutationError(nil))
}
