package persist

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type pgError struct {
	state string
}

func (e *pgError) Error() string    { return "pq: error " + e.state }
func (e *pgError) SQLState() string { return e.state }

type mysqlError struct {
	number uint16
}

func (e *mysqlError) Error() string  { return fmt.Sprintf("mysql: error %d", e.number) }
func (e *mysqlError) Number() uint16 { return e.number }

func TestIsUniqueConstraintError(t *testing.T) {
	assert.True(t, IsUniqueConstraintError(&pgError{state: "23505"}))
	assert.True(t, IsUniqueConstraintError(&mysqlError{number: 1062}))
	assert.True(t, IsUniqueConstraintError(errors.New("UNIQUE constraint failed: users.email")))
	assert.True(t, IsUniqueConstraintError(errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`)))
	assert.False(t, IsUniqueConstraintError(&pgError{state: "23503"}))
	assert.False(t, IsUniqueConstraintError(nil))
}

func TestIsForeignKeyConstraintError(t *testing.T) {
	assert.True(t, IsForeignKeyConstraintError(&pgError{state: "23503"}))
	assert.True(t, IsForeignKeyConstraintError(&mysqlError{number: 1451}))
	assert.True(t, IsForeignKeyConstraintError(&mysqlError{number: 1452}))
	assert.True(t, IsForeignKeyConstraintError(errors.New("FOREIGN KEY constraint failed")))
	assert.False(t, IsForeignKeyConstraintError(&mysqlError{number: 1062}))
}

func TestIsCheckConstraintError(t *testing.T) {
	assert.True(t, IsCheckConstraintError(&pgError{state: "23514"}))
	assert.True(t, IsCheckConstraintError(&mysqlError{number: 3819}))
	assert.True(t, IsCheckConstraintError(errors.New("CHECK constraint failed: age")))
	assert.False(t, IsCheckConstraintError(errors.New("syntax error")))
}

func TestIsConstraintError_Wrapped(t *testing.T) {
	err := fmt.Errorf("dialect/sql: exec: %w", &pgError{state: "23505"})
	assert.True(t, IsConstraintError(err))
	assert.True(t, IsUniqueConstraintError(err))
}
